package hedera

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/logging"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// scriptedChannel replays a fixed queue of response bytes per gRPC
// method, recording how many times each was called so tests can assert
// on whether a phase ever ran.
type scriptedChannel struct {
	mu        sync.Mutex
	responses map[string][][]byte
	calls     map[string]int
}

func newScriptedChannel() *scriptedChannel {
	return &scriptedChannel{responses: map[string][][]byte{}, calls: map[string]int{}}
}

func (f *scriptedChannel) script(method string, responses ...[]byte) {
	f.responses[method] = append(f.responses[method], responses...)
}

func (f *scriptedChannel) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *scriptedChannel) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	queue := f.responses[method]
	if len(queue) == 0 {
		return fmt.Errorf("scriptedChannel: no response queued for %s", method)
	}
	resp := queue[0]
	f.responses[method] = queue[1:]
	if rm, ok := reply.(*wire.RawMessage); ok {
		rm.SetBytes(resp)
	}
	return nil
}

func (f *scriptedChannel) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, nil
}

var _ grpc.ClientConnInterface = (*scriptedChannel)(nil)

func newTestClient(t *testing.T, channel *scriptedChannel, operatorKey PrivateKey) *Client {
	t.Helper()
	tbl := network.New(logging.NoOpLogger{})
	err := tbl.AddNode(network.NodeID{Shard: 0, Realm: 0, Num: 3}, []string{"stub:50211"}, func(string) (grpc.ClientConnInterface, error) {
		return channel, nil
	})
	require.NoError(t, err)

	return &Client{
		table:                    tbl,
		operator:                 &Operator{AccountID: testAccountID(1001), Signer: operatorKey},
		idGen:                    newIDGenerator(),
		logger:                   logging.NoOpLogger{},
		defaultMaxTransactionFee: HbarFromTinybars(TinybarsPerHbar),
		defaultMaxQueryPayment:   HbarFromTinybars(TinybarsPerHbar),
	}
}

func balanceResponseBytes(t *testing.T, account AccountID, costTinybars, balanceTinybars int64) []byte {
	t.Helper()
	resp := wire.CryptoGetAccountBalanceResponse{
		Header:    wire.ResponseHeader{NodeTransactionPrecheckCode: int32(precheck.OK), Cost: uint64(costTinybars)},
		AccountID: account.ToWire(),
		Balance:   uint64(balanceTinybars),
	}
	return resp.Marshal()
}

// E5: a cost phase reporting 5 hbar against a 1 hbar cap fails before the
// answer-phase RPC is ever invoked.
func TestAccountBalanceQueryMaxPaymentExceeded(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	account := testAccountID(2002)
	channel := newScriptedChannel()
	channel.script(wire.MethodCryptoGetAccountBalance, balanceResponseBytes(t, account, 5*TinybarsPerHbar, 1000))

	client := newTestClient(t, channel, key)
	client.SetDefaultMaxQueryPayment(HbarFromTinybars(TinybarsPerHbar))

	_, err = NewAccountBalanceQuery().SetAccountID(account).Execute(context.Background(), client)
	require.Error(t, err)
	require.Equal(t, 1, channel.callCount(wire.MethodCryptoGetAccountBalance))
}

func TestAccountBalanceQuerySuccess(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	account := testAccountID(2002)
	channel := newScriptedChannel()
	channel.script(wire.MethodCryptoGetAccountBalance,
		balanceResponseBytes(t, account, 1000, 0), // cost phase
		balanceResponseBytes(t, account, 0, 50_000), // answer phase
	)

	client := newTestClient(t, channel, key)

	balance, err := NewAccountBalanceQuery().SetAccountID(account).Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, int64(50_000), balance.Balance.AsTinybar())
	require.Equal(t, 2, channel.callCount(wire.MethodCryptoGetAccountBalance))
}

func receiptResponseBytes(status ReceiptStatus) []byte {
	resp := wire.TransactionGetReceiptResponse{
		Header:  wire.ResponseHeader{NodeTransactionPrecheckCode: int32(precheck.OK)},
		Receipt: wire.TransactionReceipt{Status: int32(status)},
	}
	return resp.Marshal()
}

// A receipt still UNKNOWN is retried until it settles.
func TestTransactionReceiptQueryRetriesUntilFinal(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	channel := newScriptedChannel()
	channel.script(wire.MethodTransactionGetReceipt,
		receiptResponseBytes(ReceiptStatusUnknown),
		receiptResponseBytes(ReceiptStatusUnknown),
		receiptResponseBytes(ReceiptStatusSuccess),
	)

	client := newTestClient(t, channel, key)
	txID := TransactionID{AccountID: testAccountID(1001), ValidStart: Timestamp{Seconds: 1_700_000_000}}

	receipt, err := NewTransactionReceiptQuery().SetTransactionID(txID).Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, ReceiptStatusSuccess, receipt.Status)
	require.Equal(t, 3, channel.callCount(wire.MethodTransactionGetReceipt))
}

func TestTransactionReceiptQueryFailedSurfacesAsError(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	require.NoError(t, err)

	channel := newScriptedChannel()
	channel.script(wire.MethodTransactionGetReceipt, receiptResponseBytes(ReceiptStatusFailed))

	client := newTestClient(t, channel, key)
	txID := TransactionID{AccountID: testAccountID(1001), ValidStart: Timestamp{Seconds: 1_700_000_000}}

	_, err = NewTransactionReceiptQuery().SetTransactionID(txID).Execute(context.Background(), client)
	require.Error(t, err)
}
