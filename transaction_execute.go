package hedera

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/executable"
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// TransactionResponse is returned once a node accepts a transaction for
// consensus. It does not itself mean the transaction reached consensus
// successfully — follow up with TransactionReceiptQuery for that.
type TransactionResponse struct {
	TransactionID TransactionID
	NodeID        AccountID
}

func precheckStatusName(s precheck.Status) string {
	switch s {
	case precheck.OK:
		return "OK"
	case precheck.Busy:
		return "BUSY"
	case precheck.PlatformNotActive:
		return "PLATFORM_NOT_ACTIVE"
	case precheck.TransactionExpired:
		return "TRANSACTION_EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Execute submits the already-frozen, already-signed transaction to the
// network, dispatching through the shared execute engine: it fans out
// across every node the transaction is addressed to, regenerating its
// id and resigning on TRANSACTION_EXPIRED.
func (t *Transaction) Execute(ctx context.Context, client *Client) (TransactionResponse, error) {
	t.mu.Lock()
	if t.state == transactionMutable {
		t.mu.Unlock()
		return TransactionResponse{}, &hederaerrors.UsageError{Op: "execute", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
	}
	fieldNumber := t.payload.FieldNumber()
	checksumSubjects := append([]AccountID{t.transactionID.AccountID}, t.nodeAccountIDs...)
	t.mu.Unlock()

	if err := client.ValidateChecksums(checksumSubjects...); err != nil {
		return TransactionResponse{}, err
	}

	method, ok := methodForFieldNumber(fieldNumber)
	if !ok {
		return TransactionResponse{}, fmt.Errorf("no grpc method registered for transaction field %d", fieldNumber)
	}

	exec := executable.Funcs[TransactionID, TransactionResponse]{
		NodeAccountIDsFunc: t.executableNodeIDs,
		ExplicitTransactionIDFunc: func() (TransactionID, bool) {
			t.mu.Lock()
			defer t.mu.Unlock()
			return t.transactionID, t.transactionIDPinned
		},
		RequiresTransactionIDFunc: func() bool { return true },
		// The engine's top-of-Run generate step only fires when
		// ExplicitTransactionIDFunc reports false; return the id already
		// fixed at freeze rather than minting another, or the first
		// attempt would run under an id the signed bodies don't carry.
		GenerateTransactionIDFunc: func() TransactionID {
			t.mu.Lock()
			defer t.mu.Unlock()
			return t.transactionID
		},
		RegenerateTransactionIDFunc: func(old TransactionID) TransactionID {
			return t.regenerateAndResign(client, old)
		},
		MakeRequestFunc: func(id TransactionID, node network.NodeID) ([]byte, any, error) {
			t.mu.Lock()
			defer t.mu.Unlock()
			idx, ok := t.bodyIndexForNode(node)
			if !ok {
				return nil, nil, hederaerrors.ErrNodeAccountUnknown
			}
			signed := wire.SignedTransaction{BodyBytes: t.bodies[idx].Marshal(), SigMap: t.sigMaps[idx]}
			txn := wire.Transaction{SignedTransactionBytes: signed.Marshal()}
			return txn.Marshal(), nil, nil
		},
		ExecuteFunc: func(ctx context.Context, channel grpc.ClientConnInterface, reqBytes []byte) ([]byte, error) {
			return wire.InvokeRaw(ctx, channel, method, reqBytes, client.callOptions()...)
		},
		ResponsePrecheckStatusFunc: func(wireResp []byte) precheck.Status {
			resp, err := wire.UnmarshalTransactionResponse(wireResp)
			if err != nil {
				return precheck.Unknown
			}
			return precheck.FromWireCode(resp.NodeTransactionPrecheckCode)
		},
		MakeResponseFunc: func(wireResp []byte, attemptCtx any, node network.NodeID, id TransactionID) (TransactionResponse, error) {
			return TransactionResponse{TransactionID: id, NodeID: fromNodeID(node)}, nil
		},
		MakeErrorPrecheckFunc: func(status precheck.Status, id TransactionID) error {
			return &hederaerrors.TransactionPrecheckStatus{Status: precheckStatusName(status), TxID: id}
		},
	}

	return executable.Run[TransactionID, TransactionResponse](ctx, client.table, exec, client.executableOptions())
}

// regenerateAndResign is called by the engine when a node reports
// TRANSACTION_EXPIRED for a transaction with no caller-pinned id: it
// generates a fresh id from the client's operator, rebuilds every node
// body under it, and resigns with the operator. Any signatures beyond
// the operator's are lost and must be re-applied by the caller.
func (t *Transaction) regenerateAndResign(client *Client, old TransactionID) TransactionID {
	if client.operator == nil {
		return old
	}
	newID, err := client.GenerateTransactionID()
	if err != nil {
		return old
	}

	t.mu.Lock()
	t.transactionID = newID
	t.hasTransactionID = true
	_ = t.freezeLocked()
	t.mu.Unlock()

	_ = t.Sign(client.operator.Signer)
	return newID
}
