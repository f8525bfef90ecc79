package hedera

import (
	"fmt"

	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// transactionDecoders maps each TransactionBody oneof field number this
// module implements to the function that rebuilds its TransactionPayload
// from raw wire bytes. TransactionFromBytes dispatches through this table
// so adding a new concrete transaction type never touches the shared
// pipeline in transaction.go.
var transactionDecoders = map[wire.FieldNumber]func([]byte) (TransactionPayload, error){
	wire.FieldCryptoTransfer:        decodeTransferPayload,
	wire.FieldConsensusSubmitMessage: decodeTopicMessageSubmitPayload,
}

// DecodeTransactionPayload is the catalog lookup TransactionFromBytes
// expects as its decode callback.
func DecodeTransactionPayload(fieldNumber wire.FieldNumber, dataBytes []byte) (TransactionPayload, error) {
	decode, ok := transactionDecoders[fieldNumber]
	if !ok {
		return nil, fmt.Errorf("unknown transaction data: field %d", fieldNumber)
	}
	return decode(dataBytes)
}

// transactionMethods maps each TransactionBody oneof field number to the
// gRPC method that accepts it, so the shared Execute pipeline never
// needs a per-type switch.
var transactionMethods = map[wire.FieldNumber]string{
	wire.FieldCryptoTransfer:         wire.MethodCryptoTransfer,
	wire.FieldConsensusSubmitMessage: wire.MethodConsensusSubmitMessage,
}

func methodForFieldNumber(fieldNumber wire.FieldNumber) (string, bool) {
	m, ok := transactionMethods[fieldNumber]
	return m, ok
}
