package hedera

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testAccountID(num uint64) AccountID { return AccountIDForNum(0, 0, num) }

// E1: a transfer transaction round-trips through ToBytes/FromBytes with
// its node fan-out, transaction id, and transfer list intact.
func TestTransferTransactionByteRoundTrip(t *testing.T) {
	payer := testAccountID(1001)
	receiver := testAccountID(1002)
	nodeA := testAccountID(3)
	nodeB := testAccountID(4)

	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	tx := NewTransferTransaction().
		AddHbarTransfer(payer, HbarFromTinybars(-100)).
		AddHbarTransfer(receiver, HbarFromTinybars(100))

	require.NoError(t, tx.FreezeWith([]AccountID{nodeA, nodeB}, payer))
	require.NoError(t, tx.Sign(key))

	data, err := tx.ToBytes()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	reconstructed, err := TransactionFromBytes(data, DecodeTransactionPayload)
	require.NoError(t, err)

	require.Len(t, reconstructed.nodeAccountIDs, 2)
	require.Equal(t, nodeA, reconstructed.nodeAccountIDs[0])
	require.Equal(t, nodeB, reconstructed.nodeAccountIDs[1])
	require.Equal(t, tx.transactionID, reconstructed.transactionID)
	require.True(t, reconstructed.IsSignedBy(key.PublicKey()))

	payload, ok := reconstructed.payload.(*transferTransactionPayload)
	require.True(t, ok)
	require.Len(t, payload.transfers, 2)
	require.Equal(t, int64(-100), payload.transfers[0].Amount)
	require.Equal(t, int64(100), payload.transfers[1].Amount)
}

// E2: a 2500-byte message at chunk size 1024 splits into three
// sub-transactions whose chunk ids increment the primary valid-start by
// the chunk index in nanoseconds.
func TestTopicMessageSubmitTransactionChunking(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)
	topic := TopicID{EntityID{Shard: 0, Realm: 0, Num: 777}}

	message := make([]byte, 2500)
	for i := range message {
		message[i] = byte(i % 256)
	}

	builder := NewTopicMessageSubmitTransaction().SetTopicID(topic).SetMessage(message)
	chunks, err := builder.FreezeWith([]AccountID{nodeA}, payer)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	primaryValidStart := chunks[0].transactionID.ValidStart
	for i, chunk := range chunks {
		require.Len(t, chunk.nodeAccountIDs, 1)
		payload, ok := chunk.payload.(*topicMessageSubmitPayload)
		require.True(t, ok)
		require.NotNil(t, payload.chunkInfo)
		require.Equal(t, int32(3), payload.chunkInfo.Total)
		require.Equal(t, int32(i+1), payload.chunkInfo.Number)

		expectedStart := primaryValidStart.PlusNanos(int64(i))
		require.Equal(t, expectedStart, chunk.transactionID.ValidStart)
	}

	require.Len(t, chunks[0].payload.(*topicMessageSubmitPayload).message, 1024)
	require.Len(t, chunks[1].payload.(*topicMessageSubmitPayload).message, 1024)
	require.Len(t, chunks[2].payload.(*topicMessageSubmitPayload).message, 452)
}

func TestTopicMessageSubmitTransactionSingleChunkCarriesNoChunkInfo(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)
	topic := TopicID{EntityID{Shard: 0, Realm: 0, Num: 777}}

	chunks, err := NewTopicMessageSubmitTransaction().
		SetTopicID(topic).
		SetMessage([]byte("hello")).
		FreezeWith([]AccountID{nodeA}, payer)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Nil(t, chunks[0].payload.(*topicMessageSubmitPayload).chunkInfo)
}

func TestTopicMessageSubmitTransactionRejectsTooManyChunks(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)
	message := make([]byte, DefaultChunkSize*(DefaultMaxChunks+1))

	_, err := NewTopicMessageSubmitTransaction().
		SetMessage(message).
		FreezeWith([]AccountID{nodeA}, payer)
	require.Error(t, err)
}

// E6: reconstructing a transaction and attaching a second signer produces
// a two-entry signature map per node while leaving the body untouched.
func TestTransactionReconstructAndResign(t *testing.T) {
	payer := testAccountID(1001)
	receiver := testAccountID(1002)
	nodeA := testAccountID(3)

	firstKey, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)
	secondKey, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	tx := NewTransferTransaction().
		AddHbarTransfer(payer, HbarFromTinybars(-50)).
		AddHbarTransfer(receiver, HbarFromTinybars(50))
	require.NoError(t, tx.FreezeWith([]AccountID{nodeA}, payer))
	require.NoError(t, tx.Sign(firstKey))

	originalBody := tx.bodies[0]

	data, err := tx.ToBytes()
	require.NoError(t, err)

	reconstructed, err := TransactionFromBytes(data, DecodeTransactionPayload)
	require.NoError(t, err)
	require.True(t, reconstructed.IsSignedBy(firstKey.PublicKey()))
	require.False(t, reconstructed.IsSignedBy(secondKey.PublicKey()))
	require.True(t, reconstructed.bodies[0].Equal(originalBody))

	require.NoError(t, reconstructed.Sign(secondKey))
	require.Len(t, reconstructed.sigMaps[0].SigPair, 2)
	require.True(t, reconstructed.bodies[0].Equal(originalBody))

	resignedBytes, err := reconstructed.ToBytes()
	require.NoError(t, err)

	final, err := TransactionFromBytes(resignedBytes, DecodeTransactionPayload)
	require.NoError(t, err)
	require.Len(t, final.sigMaps[0].SigPair, 2)
	require.True(t, final.IsSignedBy(firstKey.PublicKey()))
	require.True(t, final.IsSignedBy(secondKey.PublicKey()))
}

// Signing twice with the same key is a no-op (duplicate-signer
// suppression keyed by public-key prefix).
func TestTransactionSignIsIdempotentPerSigner(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)

	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	tx := NewTransferTransaction().AddHbarTransfer(payer, HbarFromTinybars(0))
	require.NoError(t, tx.FreezeWith([]AccountID{nodeA}, payer))
	require.NoError(t, tx.Sign(key))
	require.NoError(t, tx.Sign(key))

	require.Len(t, tx.sigMaps[0].SigPair, 1)
}

func TestTransactionAddSignaturePairRejectsMultiNode(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)
	nodeB := testAccountID(4)

	tx := NewTransferTransaction().AddHbarTransfer(payer, HbarFromTinybars(0))
	require.NoError(t, tx.FreezeWith([]AccountID{nodeA, nodeB}, payer))

	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	err = tx.AddSignaturePair(key.PublicKey(), []byte("sig"))
	require.Error(t, err)
}

func TestTransactionFromBytesRejectsEmptyList(t *testing.T) {
	_, err := TransactionFromBytes(nil, DecodeTransactionPayload)
	require.Error(t, err)
}
