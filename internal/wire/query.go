package wire

import "google.golang.org/protobuf/encoding/protowire"

// QueryHeader is services.QueryHeader: payment(1) (a serialized
// Transaction), responseType(2). Embedded in every concrete query message.
type QueryHeader struct {
	Payment      []byte
	ResponseType int32
}

func (h QueryHeader) Marshal() []byte {
	var b []byte
	if len(h.Payment) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, h.Payment)
	}
	if h.ResponseType != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(h.ResponseType))
	}
	return b
}

func UnmarshalQueryHeader(data []byte) (QueryHeader, error) {
	var h QueryHeader
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			h.Payment = append([]byte(nil), v...)
			return n
		case 2:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			h.ResponseType = int32(v)
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return h, err
}

// ResponseHeader is services.ResponseHeader: nodeTransactionPrecheckCode(1),
// responseType(2), cost(3).
type ResponseHeader struct {
	NodeTransactionPrecheckCode int32
	ResponseType                int32
	Cost                        uint64
}

func UnmarshalResponseHeader(data []byte) (ResponseHeader, error) {
	var h ResponseHeader
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			h.NodeTransactionPrecheckCode = int32(v)
			return n
		case 2:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			h.ResponseType = int32(v)
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			h.Cost = v
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return h, err
}

func (h ResponseHeader) Marshal() []byte {
	var b []byte
	if h.NodeTransactionPrecheckCode != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(h.NodeTransactionPrecheckCode))
	}
	if h.ResponseType != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(h.ResponseType))
	}
	if h.Cost != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, h.Cost)
	}
	return b
}

// TransactionResponse is services.TransactionResponse: the synchronous
// precheck response returned by a node's submit RPC. nodeTransactionPrecheckCode(1),
// cost(2).
type TransactionResponse struct {
	NodeTransactionPrecheckCode int32
	Cost                        uint64
}

func (r TransactionResponse) Marshal() []byte {
	var b []byte
	if r.NodeTransactionPrecheckCode != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.NodeTransactionPrecheckCode))
	}
	if r.Cost != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, r.Cost)
	}
	return b
}

func UnmarshalTransactionResponse(data []byte) (TransactionResponse, error) {
	var r TransactionResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			r.NodeTransactionPrecheckCode = int32(v)
			return n
		case 2:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			r.Cost = v
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return r, err
}

// CryptoGetAccountBalanceQuery is services.CryptoGetAccountBalanceQuery:
// header(1), accountID(2).
type CryptoGetAccountBalanceQuery struct {
	Header    QueryHeader
	AccountID AccountID
}

func (q CryptoGetAccountBalanceQuery) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, q.Header.Marshal())
	b = appendEmbedded(b, 2, q.AccountID.Marshal())
	return b
}

// CryptoGetAccountBalanceResponse is services.CryptoGetAccountBalanceResponse:
// header(1), accountID(2), balance(3).
type CryptoGetAccountBalanceResponse struct {
	Header    ResponseHeader
	AccountID AccountID
	Balance   uint64
}

func (r CryptoGetAccountBalanceResponse) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, r.Header.Marshal())
	b = appendEmbedded(b, 2, r.AccountID.Marshal())
	if r.Balance != 0 {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, r.Balance)
	}
	return b
}

func UnmarshalCryptoGetAccountBalanceResponse(data []byte) (CryptoGetAccountBalanceResponse, error) {
	var r CryptoGetAccountBalanceResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			h, err := UnmarshalResponseHeader(v)
			if err != nil {
				return -1
			}
			r.Header = h
			return n
		case 2:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			id, err := UnmarshalAccountID(v)
			if err != nil {
				return -1
			}
			r.AccountID = id
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			r.Balance = v
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return r, err
}

// TransactionGetReceiptQuery is services.TransactionGetReceiptQuery:
// header(1), transactionID(2).
type TransactionGetReceiptQuery struct {
	Header        QueryHeader
	TransactionID TransactionID
}

func (q TransactionGetReceiptQuery) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, q.Header.Marshal())
	b = appendEmbedded(b, 2, q.TransactionID.Marshal())
	return b
}

// TransactionReceipt is services.TransactionReceipt: status(1).
type TransactionReceipt struct {
	Status int32
}

func (r TransactionReceipt) Marshal() []byte {
	var b []byte
	if r.Status != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.Status))
	}
	return b
}

// TransactionGetReceiptResponse is services.TransactionGetReceiptResponse:
// header(1), receipt(2).
type TransactionGetReceiptResponse struct {
	Header  ResponseHeader
	Receipt TransactionReceipt
}

func (r TransactionGetReceiptResponse) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, r.Header.Marshal())
	b = appendEmbedded(b, 2, r.Receipt.Marshal())
	return b
}

func UnmarshalTransactionGetReceiptResponse(data []byte) (TransactionGetReceiptResponse, error) {
	var r TransactionGetReceiptResponse
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			h, err := UnmarshalResponseHeader(v)
			if err != nil {
				return -1
			}
			r.Header = h
			return n
		case 2:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			var rec TransactionReceipt
			err := walkFields(v, func(num protowire.Number, typ protowire.Type, rest []byte) int {
				if num != 1 {
					return protowire.ConsumeFieldValue(num, typ, rest)
				}
				v, n := protowire.ConsumeVarint(rest)
				if n < 0 {
					return n
				}
				rec.Status = int32(v)
				return n
			})
			if err != nil {
				return -1
			}
			r.Receipt = rec
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return r, err
}
