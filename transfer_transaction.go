package hedera

import (
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// DefaultMaxTransactionFee applies to every concrete transaction type in
// this module unless SetMaxTransactionFee overrides it.
var defaultMaxTransactionFee = HbarFromTinybars(TinybarsPerHbar) // 1 hbar

// transferTransactionPayload implements TransactionPayload for a hbar
// transfer whose per-account deltas must net to zero.
type transferTransactionPayload struct {
	transfers []wire.AccountAmount
}

func (p *transferTransactionPayload) FieldNumber() wire.FieldNumber { return wire.FieldCryptoTransfer }

func (p *transferTransactionPayload) Marshal() []byte {
	return wire.CryptoTransferTransactionBody{Transfers: p.transfers}.Marshal()
}

func (p *transferTransactionPayload) DefaultMaxTransactionFee() Hbar { return defaultMaxTransactionFee }

// NewTransferTransaction returns an empty, mutable hbar-transfer builder.
func NewTransferTransaction() *Transaction {
	return NewTransaction(&transferTransactionPayload{})
}

// AddHbarTransfer adds a signed tinybar delta for accountID. Callers are
// responsible for balancing the ledger (deltas summing to zero); that
// invariant is checked server-side, not here.
func (t *Transaction) AddHbarTransfer(accountID AccountID, amount Hbar) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.payload.(*transferTransactionPayload)
	if !ok || t.state != transactionMutable {
		return t
	}
	p.transfers = append(p.transfers, wire.AccountAmount{AccountID: accountID.ToWire(), Amount: amount.AsTinybar()})
	return t
}

// decodeTransferPayload is the catalog entry for reconstructing a
// transfer transaction's payload from its wire (field number, bytes)
// pair, used by TransactionFromBytes.
func decodeTransferPayload(dataBytes []byte) (TransactionPayload, error) {
	body, err := wire.UnmarshalCryptoTransferTransactionBody(dataBytes)
	if err != nil {
		return nil, &hederaerrors.FromProtobuf{Message: "crypto transfer body", Err: err}
	}
	return &transferTransactionPayload{transfers: body.Transfers}, nil
}
