package wire

import "google.golang.org/protobuf/encoding/protowire"

// AccountAmount is services.AccountAmount: accountID(1), amount(2, a
// signed tinybar delta), isApproval(3).
type AccountAmount struct {
	AccountID  AccountID
	Amount     int64
	IsApproval bool
}

func (a AccountAmount) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, a.AccountID.Marshal())
	if a.Amount != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(a.Amount))
	}
	if a.IsApproval {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b
}

func unmarshalAccountAmount(data []byte) (AccountAmount, error) {
	var a AccountAmount
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			id, err := UnmarshalAccountID(v)
			if err != nil {
				return -1
			}
			a.AccountID = id
			return n
		case 2:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			a.Amount = protowire.DecodeZigZag(v)
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			a.IsApproval = v != 0
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return a, err
}

// CryptoTransferTransactionBody is services.CryptoTransferTransactionBody:
// a TransferList(1) of AccountAmount entries whose amounts sum to zero.
type CryptoTransferTransactionBody struct {
	Transfers []AccountAmount
}

func (t CryptoTransferTransactionBody) Marshal() []byte {
	var list []byte
	for _, a := range t.Transfers {
		list = appendEmbedded(list, 1, a.Marshal())
	}
	var b []byte
	b = appendEmbedded(b, 1, list)
	return b
}

func UnmarshalCryptoTransferTransactionBody(data []byte) (CryptoTransferTransactionBody, error) {
	var t CryptoTransferTransactionBody
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		if num != 1 {
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
		v, n := protowire.ConsumeBytes(rest)
		if n < 0 {
			return n
		}
		err := walkFields(v, func(num protowire.Number, typ protowire.Type, rest []byte) int {
			if num != 1 {
				return protowire.ConsumeFieldValue(num, typ, rest)
			}
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			aa, err := unmarshalAccountAmount(v)
			if err != nil {
				return -1
			}
			t.Transfers = append(t.Transfers, aa)
			return n
		})
		if err != nil {
			return -1
		}
		return n
	})
	return t, err
}

// TopicID is services.TopicID: shardNum(1), realmNum(2), topicNum(3).
type TopicID struct {
	ShardNum, RealmNum, TopicNum int64
}

func (t TopicID) Marshal() []byte {
	var b []byte
	if t.ShardNum != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.ShardNum))
	}
	if t.RealmNum != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.RealmNum))
	}
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(t.TopicNum))
	return b
}

func unmarshalTopicID(data []byte) (TopicID, error) {
	var t TopicID
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		v, n := protowire.ConsumeVarint(rest)
		if n < 0 {
			return n
		}
		switch num {
		case 1:
			t.ShardNum = int64(v)
		case 2:
			t.RealmNum = int64(v)
		case 3:
			t.TopicNum = int64(v)
		}
		return n
	})
	return t, err
}

// ConsensusMessageChunkInfo is services.ConsensusMessageChunkInfo:
// initialTransactionID(1), total(2), number(3).
type ConsensusMessageChunkInfo struct {
	InitialTransactionID TransactionID
	Total                int32
	Number               int32
}

func (c ConsensusMessageChunkInfo) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, c.InitialTransactionID.Marshal())
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Total))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Number))
	return b
}

func unmarshalChunkInfo(data []byte) (ConsensusMessageChunkInfo, error) {
	var c ConsensusMessageChunkInfo
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
			c.InitialTransactionID = id
			return n
		case 2:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			c.Total = int32(v)
			return n
		case 3:
			v, n := protowire.ConsumeVarint(rest)
			if n < 0 {
				return n
			}
			c.Number = int32(v)
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return c, err
}

// ConsensusSubmitMessageTransactionBody is
// services.ConsensusSubmitMessageTransactionBody: topicID(1), message(2),
// chunkInfo(3, optional — nil chunk-config means single-chunk semantics).
type ConsensusSubmitMessageTransactionBody struct {
	TopicID    TopicID
	Message    []byte
	ChunkInfo  *ConsensusMessageChunkInfo
}

func (t ConsensusSubmitMessageTransactionBody) Marshal() []byte {
	var b []byte
	b = appendEmbedded(b, 1, t.TopicID.Marshal())
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, t.Message)
	if t.ChunkInfo != nil {
		b = appendEmbedded(b, 3, t.ChunkInfo.Marshal())
	}
	return b
}

func UnmarshalConsensusSubmitMessageTransactionBody(data []byte) (ConsensusSubmitMessageTransactionBody, error) {
	var t ConsensusSubmitMessageTransactionBody
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, rest []byte) int {
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			id, err := unmarshalTopicID(v)
			if err != nil {
				return -1
			}
			t.TopicID = id
			return n
		case 2:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			t.Message = append([]byte(nil), v...)
			return n
		case 3:
			v, n := protowire.ConsumeBytes(rest)
			if n < 0 {
				return n
			}
			c, err := unmarshalChunkInfo(v)
			if err != nil {
				return -1
			}
			t.ChunkInfo = &c
			return n
		default:
			return protowire.ConsumeFieldValue(num, typ, rest)
		}
	})
	return t, err
}
