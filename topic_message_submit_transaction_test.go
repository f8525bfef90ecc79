package hedera

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// E2 (execute path): a chunked send submits each chunk in order and
// awaits its receipt before moving to the next.
func TestTopicMessageSubmitTransactionExecuteAll(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	topic := TopicID{EntityID{Shard: 0, Realm: 0, Num: 777}}
	message := make([]byte, 2500)
	for i := range message {
		message[i] = byte(i % 256)
	}

	channel := newScriptedChannel()
	for i := 0; i < 3; i++ {
		channel.script(wire.MethodConsensusSubmitMessage, transactionResponseBytes(precheck.OK))
		channel.script(wire.MethodTransactionGetReceipt, receiptResponseBytes(ReceiptStatusSuccess))
	}

	client := newTestClient(t, channel, key)

	builder := NewTopicMessageSubmitTransaction().SetTopicID(topic).SetMessage(message)
	responses, err := builder.ExecuteAll(context.Background(), client, 0)
	require.NoError(t, err)
	require.Len(t, responses, 3)
	require.Equal(t, 3, channel.callCount(wire.MethodConsensusSubmitMessage))
	require.Equal(t, 3, channel.callCount(wire.MethodTransactionGetReceipt))
}

// A chunk's consensus rejection stops the send: no later chunk, whose
// chunk info names the first chunk as initial-transaction-id, is
// submitted.
func TestTopicMessageSubmitTransactionExecuteAllStopsOnFailure(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	topic := TopicID{EntityID{Shard: 0, Realm: 0, Num: 777}}
	message := make([]byte, 2500)

	channel := newScriptedChannel()
	channel.script(wire.MethodConsensusSubmitMessage, transactionResponseBytes(precheck.OK))
	channel.script(wire.MethodTransactionGetReceipt, receiptResponseBytes(ReceiptStatusFailed))

	client := newTestClient(t, channel, key)

	builder := NewTopicMessageSubmitTransaction().SetTopicID(topic).SetMessage(message)
	responses, err := builder.ExecuteAll(context.Background(), client, 0)
	require.Error(t, err)
	require.Len(t, responses, 1)
	require.Equal(t, 1, channel.callCount(wire.MethodConsensusSubmitMessage))
}

func TestTopicMessageSubmitTransactionRejectsMaxChunksWithDedicatedError(t *testing.T) {
	payer := testAccountID(1001)
	nodeA := testAccountID(3)
	message := make([]byte, DefaultChunkSize*(DefaultMaxChunks+1))

	_, err := NewTopicMessageSubmitTransaction().
		SetMessage(message).
		FreezeWith([]AccountID{nodeA}, payer)
	require.ErrorIs(t, err, hederaerrors.ErrMaxChunksExceeded)
}
