// Package wire hand-encodes the small slice of the Hedera services
// protobuf schema the Core actually touches. No generated stubs are
// available in this environment, so messages are marshaled and parsed
// directly against google.golang.org/protobuf/encoding/protowire — the
// module's own documented low-level API for implementing a codec without
// running protoc. Field numbers mirror the public Hedera services proto.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Timestamp is services.Timestamp: seconds(1) int64, nanos(2) int32.
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

func (t Timestamp) Marshal() []byte {
	var b []byte
	if t.Seconds != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(t.Seconds))
	}
	if t.Nanos != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(uint32(t.Nanos)))
	}
	return b
}

func UnmarshalTimestamp(data []byte) (Timestamp, error) {
	var t Timestamp
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return t, protowire.ParseError(n)
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return t, protowire.ParseError(n)
			}
			t.Seconds = int64(v)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return t, protowire.ParseError(n)
			}
			t.Nanos = int32(uint32(v))
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return t, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return t, nil
}

// Duration is services.Duration: seconds(1) int64.
type Duration struct {
	Seconds int64
}

func (d Duration) Marshal() []byte {
	var b []byte
	if d.Seconds != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(d.Seconds))
	}
	return b
}

func UnmarshalDuration(data []byte) (Duration, error) {
	var d Duration
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return d, protowire.ParseError(n)
		}
		data = data[n:]
		if num == 1 {
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return d, protowire.ParseError(n)
			}
			d.Seconds = int64(v)
			data = data[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, data)
		if n < 0 {
			return d, protowire.ParseError(n)
		}
		data = data[n:]
	}
	return d, nil
}

// AccountID is services.AccountID: shardNum(1), realmNum(2), and exactly
// one of accountNum(3) / alias(4) / evmAddress(5, a Hedera extension
// field carrying the EVM-address form).
type AccountID struct {
	ShardNum, RealmNum int64

	AccountNum int64
	Alias      []byte
	EvmAddress []byte
}

func (a AccountID) Marshal() []byte {
	var b []byte
	if a.ShardNum != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(a.ShardNum))
	}
	if a.RealmNum != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(a.RealmNum))
	}
	switch {
	case a.Alias != nil:
		b = protowire.AppendTag(b, 4, protowire.BytesType)
		b = protowire.AppendBytes(b, a.Alias)
	case a.EvmAddress != nil:
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendBytes(b, a.EvmAddress)
	default:
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(a.AccountNum))
	}
	return b
}

func UnmarshalAccountID(data []byte) (AccountID, error) {
	var a AccountID
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return a, protowire.ParseError(n)
		}
		data = data[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			a.ShardNum = int64(v)
			data = data[n:]
		case 2:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			a.RealmNum = int64(v)
			data = data[n:]
		case 3:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			a.AccountNum = int64(v)
			data = data[n:]
		case 4:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			a.Alias = append([]byte(nil), v...)
			data = data[n:]
		case 5:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			a.EvmAddress = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return a, protowire.ParseError(n)
			}
			data = data[n:]
		}
	}
	return a, nil
}

// appendEmbedded appends field num as a length-delimited embedded message.
func appendEmbedded(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendBytes(b, payload)
	return b
}

// walkFields is a small helper shared by the message-level parsers in
// this package: it walks data and invokes fn(fieldNumber, fieldType, rest)
// for every top-level field, where rest is everything after the field's
// tag (for BytesType, still including the length prefix). fn consumes
// the field's value from the front of rest and returns the number of
// bytes it consumed, or a negative protowire error code.
func walkFields(data []byte, fn func(num protowire.Number, typ protowire.Type, data []byte) (n int)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		rest := data[n:]
		consumed := fn(num, typ, rest)
		if consumed < 0 {
			return fmt.Errorf("wire: failed to parse field %d (type %d)", num, typ)
		}
		data = rest[consumed:]
	}
	return nil
}
