package hedera

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// AccountID is an EntityID, OR a 20-byte EVM address carried in the num
// slot, OR a public-key alias — exactly one form is present.
// The alias and EVM-address forms carry no checksum.
type AccountID struct {
	Shard, Realm uint64

	// Exactly one of the following is populated.
	Num        uint64
	AliasKey   []byte // public-key alias bytes
	EvmAddress []byte // 20-byte EVM address

	Checksum string
}

// AccountIDForNum builds the entity-triple form.
func AccountIDForNum(shard, realm, num uint64) AccountID {
	return AccountID{Shard: shard, Realm: realm, Num: num}
}

// AccountIDFromEvmAddress builds the EVM-address form. addr may be
// "0x"-prefixed hex and must decode to exactly 20 bytes.
func AccountIDFromEvmAddress(shard, realm uint64, addr string) (AccountID, error) {
	addr = strings.TrimPrefix(addr, "0x")
	b, err := hex.DecodeString(addr)
	if err != nil {
		return AccountID{}, &hederaerrors.BasicParse{Input: addr, Err: err}
	}
	if len(b) != 20 {
		return AccountID{}, &hederaerrors.BasicParse{Input: addr, Err: fmt.Errorf("evm address must be 20 bytes, got %d", len(b))}
	}
	return AccountID{Shard: shard, Realm: realm, EvmAddress: b}, nil
}

// AccountIDFromAlias builds the alias form from raw public-key bytes.
func AccountIDFromAlias(shard, realm uint64, alias []byte) AccountID {
	return AccountID{Shard: shard, Realm: realm, AliasKey: append([]byte(nil), alias...)}
}

// IsEvmAddress, IsAlias, IsNum report which of the three disjoint forms is
// populated.
func (a AccountID) IsEvmAddress() bool { return a.EvmAddress != nil }
func (a AccountID) IsAlias() bool      { return a.AliasKey != nil }
func (a AccountID) IsNum() bool        { return !a.IsEvmAddress() && !a.IsAlias() }

func (a AccountID) String() string {
	switch {
	case a.IsEvmAddress():
		return fmt.Sprintf("%d.%d.0x%s", a.Shard, a.Realm, hex.EncodeToString(a.EvmAddress))
	case a.IsAlias():
		return fmt.Sprintf("%d.%d.%s", a.Shard, a.Realm, hex.EncodeToString(a.AliasKey))
	default:
		s := fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
		if a.Checksum != "" {
			s += "-" + a.Checksum
		}
		return s
	}
}

// ValidateChecksum checks the entity-triple form's checksum against
// ledgerID; a no-op for the alias/EVM-address forms, which carry none.
func (a AccountID) ValidateChecksum(ledgerID []byte) error {
	if !a.IsNum() {
		return nil
	}
	return ValidateChecksum(EntityID{Shard: a.Shard, Realm: a.Realm, Num: a.Num}, a.Checksum, ledgerID)
}

// ToWire converts to the protobuf AccountID wire shape.
func (a AccountID) ToWire() wire.AccountID {
	return wire.AccountID{
		ShardNum:   int64(a.Shard),
		RealmNum:   int64(a.Realm),
		AccountNum: int64(a.Num),
		Alias:      a.AliasKey,
		EvmAddress: a.EvmAddress,
	}
}

// AccountIDFromWire is the from-protobuf inverse of ToWire.
func AccountIDFromWire(w wire.AccountID) AccountID {
	return AccountID{
		Shard:      uint64(w.ShardNum),
		Realm:      uint64(w.RealmNum),
		Num:        uint64(w.AccountNum),
		AliasKey:   w.Alias,
		EvmAddress: w.EvmAddress,
	}
}

// ParseAccountID parses the decimal triple form only ("shard.realm.num[-checksum]");
// the alias/EVM forms are constructed explicitly since they are not
// round-tripped through the entity-id string grammar.
func ParseAccountID(s string) (AccountID, error) {
	id, checksum, err := ParseEntityID(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{Shard: id.Shard, Realm: id.Realm, Num: id.Num, Checksum: checksum}, nil
}
