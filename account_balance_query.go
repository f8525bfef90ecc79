package hedera

import (
	"context"

	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/executable"
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
	"github.com/hashgraph/hedera-sdk-go-core/internal/querypay"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// AccountBalance is the decoded answer to an AccountBalanceQuery.
type AccountBalance struct {
	AccountID AccountID
	Balance   Hbar
}

// AccountBalanceQuery is the seed example of the paid cost-then-pay
// query flow: a cost phase (COST_ANSWER, no payment attached) followed
// by an answer phase (ANSWER_ONLY, a real payment transaction attached),
// capped by the caller's maximum query payment.
type AccountBalanceQuery struct {
	baseQuery
	accountID AccountID
}

func NewAccountBalanceQuery() *AccountBalanceQuery { return &AccountBalanceQuery{} }

func (q *AccountBalanceQuery) SetAccountID(id AccountID) *AccountBalanceQuery {
	q.accountID = id
	return q
}

func (q *AccountBalanceQuery) SetNodeAccountIDs(ids []AccountID) *AccountBalanceQuery {
	q.setNodeAccountIDs(ids)
	return q
}

func (q *AccountBalanceQuery) SetMaxQueryPayment(fee Hbar) *AccountBalanceQuery {
	q.setMaxQueryPayment(fee)
	return q
}

// GetCost runs the cost-only phase: a COST_ANSWER query with no payment
// attached, returning what the answer phase would charge.
func (q *AccountBalanceQuery) GetCost(ctx context.Context, client *Client) (Hbar, error) {
	if err := client.ValidateChecksums(append([]AccountID{q.accountID}, q.nodeAccountIDs...)...); err != nil {
		return Hbar{}, err
	}

	exec := executable.Funcs[TransactionID, Hbar]{
		NodeAccountIDsFunc:        q.executableNodeIDs,
		ExplicitTransactionIDFunc: noTransactionID,
		RequiresTransactionIDFunc: func() bool { return false },
		MakeRequestFunc: func(id TransactionID, node network.NodeID) ([]byte, any, error) {
			query := wire.CryptoGetAccountBalanceQuery{
				Header:    wire.QueryHeader{ResponseType: wire.ResponseTypeCostAnswer},
				AccountID: q.accountID.ToWire(),
			}
			return query.Marshal(), nil, nil
		},
		ExecuteFunc: func(ctx context.Context, channel grpc.ClientConnInterface, reqBytes []byte) ([]byte, error) {
			return wire.InvokeRaw(ctx, channel, wire.MethodCryptoGetAccountBalance, reqBytes, client.callOptions()...)
		},
		ResponsePrecheckStatusFunc: func(wireResp []byte) precheck.Status {
			resp, err := wire.UnmarshalCryptoGetAccountBalanceResponse(wireResp)
			if err != nil {
				return precheck.Unknown
			}
			return precheck.FromWireCode(resp.Header.NodeTransactionPrecheckCode)
		},
		MakeResponseFunc: func(wireResp []byte, attemptCtx any, node network.NodeID, id TransactionID) (Hbar, error) {
			resp, err := wire.UnmarshalCryptoGetAccountBalanceResponse(wireResp)
			if err != nil {
				return Hbar{}, &hederaerrors.FromProtobuf{Message: "crypto get account balance response", Err: err}
			}
			return HbarFromTinybars(int64(resp.Header.Cost)), nil
		},
		MakeErrorPrecheckFunc: func(status precheck.Status, id TransactionID) error {
			return &hederaerrors.QueryNoPaymentPrecheckStatus{Status: precheckStatusName(status)}
		},
	}
	return executable.Run[TransactionID, Hbar](ctx, client.table, exec, client.executableOptions())
}

// Execute runs the full cost-then-pay flow: a cost phase, a cap check
// against the caller's maximum query payment (failing before any
// payment transaction is built or sent if the cap is exceeded), then the
// paid answer phase.
func (q *AccountBalanceQuery) Execute(ctx context.Context, client *Client) (AccountBalance, error) {
	if client.operator == nil {
		return AccountBalance{}, hederaerrors.ErrNoPayerAccountOrTransactionID
	}

	cost, err := q.GetCost(ctx, client)
	if err != nil {
		return AccountBalance{}, err
	}

	maxPayment := q.effectiveMaxQueryPayment(client)
	if err := querypay.CheckMaxPayment(cost.AsTinybar(), maxPayment.AsTinybar()); err != nil {
		return AccountBalance{}, err
	}

	operator := *client.operator

	exec := executable.Funcs[TransactionID, AccountBalance]{
		NodeAccountIDsFunc:        q.executableNodeIDs,
		ExplicitTransactionIDFunc: func() (TransactionID, bool) { return TransactionID{}, false },
		RequiresTransactionIDFunc: func() bool { return true },
		GenerateTransactionIDFunc: func() TransactionID {
			id, genErr := client.GenerateTransactionID()
			if genErr != nil {
				return TransactionID{}
			}
			return id
		},
		RegenerateTransactionIDFunc: func(old TransactionID) TransactionID {
			id, genErr := client.GenerateTransactionID()
			if genErr != nil {
				return old
			}
			return id
		},
		MakeRequestFunc: func(id TransactionID, node network.NodeID) ([]byte, any, error) {
			nodeID := fromNodeID(node)
			transfer := querypay.BuildTransfer(operator.AccountID.ToWire(), nodeID.ToWire(), cost.AsTinybar())

			payment := NewTransaction(&transferTransactionPayload{transfers: transfer.Transfers})
			payment.SetTransactionID(id)
			if err := payment.FreezeWith([]AccountID{nodeID}, operator.AccountID); err != nil {
				return nil, nil, err
			}
			if err := payment.Sign(operator.Signer); err != nil {
				return nil, nil, err
			}
			paymentBytes, err := payment.singleNodeBytes()
			if err != nil {
				return nil, nil, err
			}

			query := wire.CryptoGetAccountBalanceQuery{
				Header:    wire.QueryHeader{Payment: paymentBytes, ResponseType: wire.ResponseTypeAnswerOnly},
				AccountID: q.accountID.ToWire(),
			}
			return query.Marshal(), nil, nil
		},
		ExecuteFunc: func(ctx context.Context, channel grpc.ClientConnInterface, reqBytes []byte) ([]byte, error) {
			return wire.InvokeRaw(ctx, channel, wire.MethodCryptoGetAccountBalance, reqBytes, client.callOptions()...)
		},
		ResponsePrecheckStatusFunc: func(wireResp []byte) precheck.Status {
			resp, err := wire.UnmarshalCryptoGetAccountBalanceResponse(wireResp)
			if err != nil {
				return precheck.Unknown
			}
			return precheck.FromWireCode(resp.Header.NodeTransactionPrecheckCode)
		},
		MakeResponseFunc: func(wireResp []byte, attemptCtx any, node network.NodeID, id TransactionID) (AccountBalance, error) {
			resp, err := wire.UnmarshalCryptoGetAccountBalanceResponse(wireResp)
			if err != nil {
				return AccountBalance{}, &hederaerrors.FromProtobuf{Message: "crypto get account balance response", Err: err}
			}
			return AccountBalance{
				AccountID: AccountIDFromWire(resp.AccountID),
				Balance:   HbarFromTinybars(int64(resp.Balance)),
			}, nil
		},
		MakeErrorPrecheckFunc: func(status precheck.Status, id TransactionID) error {
			return &hederaerrors.QueryPaymentPrecheckStatus{Status: precheckStatusName(status), TxID: id}
		},
	}

	return executable.Run[TransactionID, AccountBalance](ctx, client.table, exec, client.executableOptions())
}
