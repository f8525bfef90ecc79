package hedera

import (
	"context"

	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/executable"
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// ReceiptStatus mirrors the handful of consensus-time outcomes this
// module distinguishes; exact numeric parity with a live network's
// status enum is not attempted (see internal/precheck).
type ReceiptStatus int32

const (
	ReceiptStatusUnknown ReceiptStatus = 0
	ReceiptStatusSuccess ReceiptStatus = 1
	ReceiptStatusFailed  ReceiptStatus = 2
)

// TransactionReceipt is the decoded answer to a TransactionReceiptQuery.
type TransactionReceipt struct {
	Status ReceiptStatus
}

// TransactionReceiptQuery is a free query (no payment phase) that polls
// for a transaction's consensus outcome, retrying at the engine's normal
// backoff cadence for as long as the receipt is still UNKNOWN.
type TransactionReceiptQuery struct {
	baseQuery
	transactionID TransactionID
}

func NewTransactionReceiptQuery() *TransactionReceiptQuery { return &TransactionReceiptQuery{} }

func (q *TransactionReceiptQuery) SetTransactionID(id TransactionID) *TransactionReceiptQuery {
	q.transactionID = id
	return q
}

func (q *TransactionReceiptQuery) SetNodeAccountIDs(ids []AccountID) *TransactionReceiptQuery {
	q.setNodeAccountIDs(ids)
	return q
}

func receiptStatusName(s ReceiptStatus) string {
	switch s {
	case ReceiptStatusSuccess:
		return "SUCCESS"
	case ReceiptStatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Execute polls until the receipt settles to SUCCESS or FAILED, a
// non-retryable precheck, or the engine's own backoff budget is
// exhausted. FAILED surfaces as a taxonomy error rather than a returned
// receipt, matching how a node-rejected transaction's outcome is never a
// successful query result.
func (q *TransactionReceiptQuery) Execute(ctx context.Context, client *Client) (TransactionReceipt, error) {
	subjects := append([]AccountID{q.transactionID.AccountID}, q.nodeAccountIDs...)
	if err := client.ValidateChecksums(subjects...); err != nil {
		return TransactionReceipt{}, err
	}

	exec := executable.Funcs[TransactionID, TransactionReceipt]{
		NodeAccountIDsFunc:        q.executableNodeIDs,
		ExplicitTransactionIDFunc: func() (TransactionID, bool) { return TransactionID{}, false },
		RequiresTransactionIDFunc: func() bool { return false },
		ShouldRetryFunc: func(r TransactionReceipt) bool {
			return r.Status == ReceiptStatusUnknown
		},
		MakeRequestFunc: func(id TransactionID, node network.NodeID) ([]byte, any, error) {
			query := wire.TransactionGetReceiptQuery{
				Header:        wire.QueryHeader{ResponseType: wire.ResponseTypeAnswerOnly},
				TransactionID: q.transactionID.ToWire(),
			}
			return query.Marshal(), nil, nil
		},
		ExecuteFunc: func(ctx context.Context, channel grpc.ClientConnInterface, reqBytes []byte) ([]byte, error) {
			return wire.InvokeRaw(ctx, channel, wire.MethodTransactionGetReceipt, reqBytes, client.callOptions()...)
		},
		ResponsePrecheckStatusFunc: func(wireResp []byte) precheck.Status {
			resp, err := wire.UnmarshalTransactionGetReceiptResponse(wireResp)
			if err != nil {
				return precheck.Unknown
			}
			return precheck.FromWireCode(resp.Header.NodeTransactionPrecheckCode)
		},
		MakeResponseFunc: func(wireResp []byte, attemptCtx any, node network.NodeID, id TransactionID) (TransactionReceipt, error) {
			resp, err := wire.UnmarshalTransactionGetReceiptResponse(wireResp)
			if err != nil {
				return TransactionReceipt{}, &hederaerrors.FromProtobuf{Message: "transaction get receipt response", Err: err}
			}
			status := ReceiptStatus(resp.Receipt.Status)
			if status == ReceiptStatusFailed {
				return TransactionReceipt{}, &hederaerrors.ReceiptStatus{
					Status: receiptStatusName(status),
					TxID:   q.transactionID,
				}
			}
			return TransactionReceipt{Status: status}, nil
		},
		MakeErrorPrecheckFunc: func(status precheck.Status, id TransactionID) error {
			return &hederaerrors.QueryNoPaymentPrecheckStatus{Status: precheckStatusName(status)}
		},
	}

	return executable.Run[TransactionID, TransactionReceipt](ctx, client.table, exec, client.executableOptions())
}
