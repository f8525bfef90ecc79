// Package querypay builds the payment transfer every paid query attaches
// to its answer-phase request, and enforces the caller's payment cap
// against a query's cost-phase result. It is kept apart from the concrete
// query types so any paid query can share the same two-account transfer
// shape; AccountBalanceQuery is its only caller (TransactionReceiptQuery
// is free and attaches no payment).
package querypay

import (
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// DefaultValidDuration is the payment transaction's valid window, per the
// same 120-second default every transaction uses.
const DefaultValidDuration = 120

// BuildTransfer returns the two-entry AccountAmount list for a query
// payment: a positive amount to node, a negative amount from payer, both
// isApproval false, nothing else participates.
func BuildTransfer(payer, node wire.AccountID, amountTinybars int64) wire.CryptoTransferTransactionBody {
	return wire.CryptoTransferTransactionBody{
		Transfers: []wire.AccountAmount{
			{AccountID: node, Amount: amountTinybars},
			{AccountID: payer, Amount: -amountTinybars},
		},
	}
}

// CheckMaxPayment fails the query before any payment transaction is ever
// built if the cost phase reported more than the caller's cap.
func CheckMaxPayment(costTinybars, maxTinybars int64) error {
	if costTinybars > maxTinybars {
		return &hederaerrors.MaxQueryPaymentExceeded{QueryCost: costTinybars, MaxQueryPayment: maxTinybars}
	}
	return nil
}
