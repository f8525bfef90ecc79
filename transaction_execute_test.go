package hedera

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

func transactionResponseBytes(code precheck.Status) []byte {
	resp := wire.TransactionResponse{NodeTransactionPrecheckCode: int32(code)}
	return resp.Marshal()
}

func TestTransactionExecuteSubmitSuccess(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	payer := testAccountID(1001)
	receiver := testAccountID(1002)
	node := testAccountID(3)

	channel := newScriptedChannel()
	channel.script(wire.MethodCryptoTransfer, transactionResponseBytes(precheck.OK))

	client := newTestClient(t, channel, key)

	tx := NewTransferTransaction().
		AddHbarTransfer(payer, HbarFromTinybars(-100)).
		AddHbarTransfer(receiver, HbarFromTinybars(100))
	require.NoError(t, tx.FreezeWith([]AccountID{node}, payer))
	require.NoError(t, tx.Sign(key))

	resp, err := tx.Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, node, resp.NodeID)
	require.Equal(t, 1, channel.callCount(wire.MethodCryptoTransfer))
}

func TestTransactionExecuteRegeneratesExpiredAutoGeneratedID(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	payer := testAccountID(1001)
	receiver := testAccountID(1002)
	node := testAccountID(3)

	channel := newScriptedChannel()
	channel.script(wire.MethodCryptoTransfer,
		transactionResponseBytes(precheck.TransactionExpired),
		transactionResponseBytes(precheck.OK),
	)

	client := newTestClient(t, channel, key)

	tx := NewTransferTransaction().
		AddHbarTransfer(payer, HbarFromTinybars(-100)).
		AddHbarTransfer(receiver, HbarFromTinybars(100))
	require.NoError(t, client.FreezeWith(tx))
	firstID := tx.transactionID

	resp, err := tx.Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, node, resp.NodeID)
	require.Equal(t, 2, channel.callCount(wire.MethodCryptoTransfer))
	require.NotEqual(t, firstID, resp.TransactionID)
}

func TestTransactionExecuteFatalOnExpiredPinnedID(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	payer := testAccountID(1001)
	receiver := testAccountID(1002)
	node := testAccountID(3)

	channel := newScriptedChannel()
	channel.script(wire.MethodCryptoTransfer, transactionResponseBytes(precheck.TransactionExpired))

	client := newTestClient(t, channel, key)

	tx := NewTransferTransaction().
		AddHbarTransfer(payer, HbarFromTinybars(-100)).
		AddHbarTransfer(receiver, HbarFromTinybars(100))
	tx.SetTransactionID(TransactionID{AccountID: payer, ValidStart: TimestampFromTime(time.Now())})
	require.NoError(t, tx.FreezeWith([]AccountID{node}, payer))
	require.NoError(t, tx.Sign(key))

	_, err = tx.Execute(context.Background(), client)
	require.Error(t, err)
	require.Equal(t, 1, channel.callCount(wire.MethodCryptoTransfer))
}

func TestTransactionExecuteRejectsMutable(t *testing.T) {
	tx := NewTransferTransaction()
	client := NewClient(nil)
	_, err := tx.Execute(context.Background(), client)
	require.Error(t, err)
}
