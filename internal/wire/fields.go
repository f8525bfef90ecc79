package wire

import "google.golang.org/protobuf/encoding/protowire"

// FieldNumber is a protobuf field number, re-exported so callers outside
// this package can name TransactionBody oneof fields without importing
// protowire themselves.
type FieldNumber = protowire.Number

// TransactionBody oneof field numbers, mirroring the public Hedera
// services proto, for the handful of concrete transaction types this
// module implements end to end.
const (
	FieldCryptoTransfer         protowire.Number = 14
	FieldConsensusSubmitMessage protowire.Number = 27
)

// Query/Response oneof field numbers for the two query types this module
// implements.
const (
	FieldTransactionGetReceipt     protowire.Number = 4
	FieldCryptoGetAccountBalance   protowire.Number = 9
)

// ResponseType values for QueryHeader.ResponseType.
const (
	ResponseTypeAnswerOnly int32 = 0
	ResponseTypeCostAnswer int32 = 2
)

// gRPC full method names for the handful of services.proto RPCs this
// module drives end to end.
const (
	MethodCryptoTransfer       = "/proto.CryptoService/cryptoTransfer"
	MethodCryptoGetAccountBalance = "/proto.CryptoService/cryptoGetBalance"
	MethodConsensusSubmitMessage  = "/proto.ConsensusService/submitMessage"
	MethodTransactionGetReceipt   = "/proto.CryptoService/getTransactionReceipts"
)
