package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TransactionID is services.TransactionID: transactionValidStart(1),
// accountID(2), scheduled(3), nonce(4). Nonce of 0 means "absent".
type TransactionID struct {
	TransactionValidStart Timestamp
	AccountID             AccountID
	Scheduled             bool
	Nonce                 int32
}

func (t TransactionID) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, t.TransactionValidStart.Marshal())
	b = appendEmbedded(b, 2, t.AccountID.Marshal())
	if t.Scheduled {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	if t.Nonce != 0 {
		b = protowire.AppendTag(b, 4, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(t.Nonce)))
	}
	return b
}

func UnmarshalTransactionID(data []byte) (TransactionID, error) {
	var t TransactionID
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			ts, err := UnmarshalTimestamp(v)
			if err != nil {
				return -1
			}
			t.TransactionValidStart = ts
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
			t.AccountID = id
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			t.Scheduled = v != 0
			return n
		case 4:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			t.Nonce = int32(uint32(v))
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return t, err
}

// SignaturePair is services.SignaturePair: pubKeyPrefix(1), and exactly
// one of ed25519(2) / ECDSASecp256k1(3).
type SignaturePair struct {
	PubKeyPrefix []byte
	IsECDSA      bool
	Signature    []byte
}

func (s SignaturePair) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, s.PubKeyPrefix)
	fieldNum := protowire.Number(2)
	if s.IsECDSA {
		fieldNum = 3
	}
	b = protowire.AppendTag(b, fieldNum, protowire.BytesType)
	b = protowire.AppendBytes(b, s.Signature)
	return b
}

func UnmarshalSignaturePair(data []byte) (SignaturePair, error) {
	var s SignaturePair
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			s.PubKeyPrefix = append([]byte(nil), v...)
			return n
		case 2:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			s.Signature = append([]byte(nil), v...)
			s.IsECDSA = false
			return n
		case 3:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			s.Signature = append([]byte(nil), v...)
			s.IsECDSA = true
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return s, err
}

// SignatureMap is services.SignatureMap: repeated sigPair(1).
type SignatureMap struct {
	SigPair []SignaturePair
}

func (m SignatureMap) Marshal() []byte {
	var b []byte
	for _, p := range m.SigPair {
		b = appendEmbedded(b, 1, p.Marshal())
	}
	return b
}

func UnmarshalSignatureMap(data []byte) (SignatureMap, error) {
	var m SignatureMap
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		if num != 1 {
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
		v, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			return n
		}
		p, err := UnmarshalSignaturePair(v)
		if err != nil {
			return -1
		}
		m.SigPair = append(m.SigPair, p)
		return n
	})
	return m, err
}

// IndexOfPrefix returns the index of the sigpair whose PubKeyPrefix
// matches prefix, or -1. Used to implement duplicate-signer suppression.
func (m SignatureMap) IndexOfPrefix(prefix []byte) int {
	for i, p := range m.SigPair {
		if string(p.PubKeyPrefix) == string(prefix) {
			return i
		}
	}
	return -1
}

// SignedTransaction is services.SignedTransaction: bodyBytes(1), sigMap(2).
type SignedTransaction struct {
	BodyBytes []byte
	SigMap    SignatureMap
}

func (s SignedTransaction) Marshal() []byte {
	var b []byte
	if len(s.BodyBytes) > 0 {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, s.BodyBytes)
	}
	b = appendEmbedded(b, 2, s.SigMap.Marshal())
	return b
}

func UnmarshalSignedTransaction(data []byte) (SignedTransaction, error) {
	var s SignedTransaction
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			s.BodyBytes = append([]byte(nil), v...)
			return n
		case 2:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			sm, err := UnmarshalSignatureMap(v)
			if err != nil {
				return -1
			}
			s.SigMap = sm
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return s, err
}

// Transaction is services.Transaction in its modern, single-field form:
// signedTransactionBytes(4) (field number per the real schema, which
// deprecated the older sigMap/body/bodyBytes fields in favor of this one).
type Transaction struct {
	SignedTransactionBytes []byte
}

func (t Transaction) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendBytes(b, t.SignedTransactionBytes)
	return b
}

func UnmarshalTransaction(data []byte) (Transaction, error) {
	var t Transaction
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		if num != 4 {
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
		v, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			return n
		}
		t.SignedTransactionBytes = append([]byte(nil), v...)
		return n
	})
	return t, err
}

// TransactionList is services.TransactionList: repeated transactionList(1)
// — the outer carrier for a frozen request's fan-out across nodes and
// chunks.
type TransactionList struct {
	TransactionList []Transaction
}

func (l TransactionList) Marshal() []byte {
	var b []byte
	for _, t := range l.TransactionList {
		b = appendEmbedded(b, 1, t.Marshal())
	}
	return b
}

func UnmarshalTransactionList(data []byte) (TransactionList, error) {
	var l TransactionList
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		if num != 1 {
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
		v, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			return n
		}
		t, err := UnmarshalTransaction(v)
		if err != nil {
			return -1
		}
		l.TransactionList = append(l.TransactionList, t)
		return n
	})
	return l, err
}

// TransactionBody is services.TransactionBody. Only the fields needed to
// validate body-equality are modeled here; the concrete per-type payload
// is kept as an opaque (field number, raw bytes) pair beyond its uniform
// contract.
type TransactionBody struct {
	TransactionID            TransactionID
	NodeAccountID             AccountID
	TransactionFee            uint64
	TransactionValidDuration  Duration
	GenerateRecord            bool
	Memo                      string

	// DataFieldNumber is the TransactionBody oneof field number of the
	// concrete transaction type (e.g. 14 for cryptoTransfer, 27 for
	// consensusSubmitMessage). 0 means absent.
	DataFieldNumber protowire.Number
	DataBytes       []byte
}

func (b TransactionBody) Marshal() []byte {
	var out []byte
	out = appendEmbedded(out, 1, b.TransactionID.Marshal())
	out = appendEmbedded(out, 2, b.NodeAccountID.Marshal())
	if b.TransactionFee != 0 {
		out = protowire.AppendTag(out, 3, protowire.VarintType)
		out = protowire.AppendVarint(out, b.TransactionFee)
	}
	out = appendEmbedded(out, 4, b.TransactionValidDuration.Marshal())
	if b.GenerateRecord {
		out = protowire.AppendTag(out, 5, protowire.VarintType)
		out = protowire.AppendVarint(out, 1)
	}
	if b.Memo != "" {
		out = protowire.AppendTag(out, 6, protowire.BytesType)
		out = protowire.AppendBytes(out, []byte(b.Memo))
	}
	if b.DataFieldNumber != 0 {
		out = appendEmbedded(out, b.DataFieldNumber, b.DataBytes)
	}
	return out
}

// knownDataFields enumerates the TransactionBody oneof field numbers this
// package recognizes. from-bytes rejects anything else as unknown
// transaction data.
var knownDataFields = map[protowire.Number]bool{
	FieldCryptoTransfer:        true,
	FieldConsensusSubmitMessage: true,
}

func UnmarshalTransactionBody(data []byte) (TransactionBody, error) {
	var b TransactionBody
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			id, err := UnmarshalTransactionID(v)
			if err != nil {
				return -1
			}
			b.TransactionID = id
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
			b.NodeAccountID = id
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			b.TransactionFee = v
			return n
		case 4:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			d, err := UnmarshalDuration(v)
			if err != nil {
				return -1
			}
			b.TransactionValidDuration = d
			return n
		case 5:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			b.GenerateRecord = v != 0
			return n
		case 6:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			b.Memo = string(v)
			return n
		default:
			if typ != protowire.BytesType || !knownDataFields[num] {
				return protowire.ConsumeFieldValue(num, typ, rest)
			}
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			b.DataFieldNumber = num
			b.DataBytes = append([]byte(nil), v...)
			return n
		}
	})
	if err == nil && b.DataFieldNumber == 0 {
		return b, fmt.Errorf("unknown transaction data")
	}
	return b, err
}

// Equal reports whether two bodies are the same modulo node_account_id
// and the transaction_id.
func (b TransactionBody) Equal(other TransactionBody) bool {
	return b.TransactionFee == other.TransactionFee &&
		b.TransactionValidDuration == other.TransactionValidDuration &&
		b.GenerateRecord == other.GenerateRecord &&
		b.Memo == other.Memo &&
		b.DataFieldNumber == other.DataFieldNumber &&
		string(b.DataBytes) == string(other.DataBytes)
}
