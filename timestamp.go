package hedera

import (
	"time"

	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// Timestamp is seconds-since-epoch plus sub-second nanoseconds, both
// unsigned; arithmetic saturates at zero.
type Timestamp struct {
	Seconds uint64
	Nanos   uint32
}

// TimestampFromTime converts a time.Time, clamping negative epoch seconds
// to zero (the saturating-at-zero rule applies uniformly).
func TimestampFromTime(t time.Time) Timestamp {
	sec := t.Unix()
	if sec < 0 {
		sec = 0
	}
	return Timestamp{Seconds: uint64(sec), Nanos: uint32(t.Nanosecond())}
}

func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Seconds), int64(t.Nanos))
}

// PlusNanos adds n nanoseconds (n may be negative), saturating at zero and
// normalizing into the nanos field. Used to derive chunk transaction ids
// and to jitter new transaction ids.
func (t Timestamp) PlusNanos(n int64) Timestamp {
	total := int64(t.Seconds)*1e9 + int64(t.Nanos) + n
	if total < 0 {
		total = 0
	}
	return Timestamp{Seconds: uint64(total / 1e9), Nanos: uint32(total % 1e9)}
}

func (t Timestamp) ToWire() wire.Timestamp {
	return wire.Timestamp{Seconds: int64(t.Seconds), Nanos: int32(t.Nanos)}
}

func TimestampFromWire(w wire.Timestamp) Timestamp {
	sec := w.Seconds
	if sec < 0 {
		sec = 0
	}
	return Timestamp{Seconds: uint64(sec), Nanos: uint32(w.Nanos)}
}

// Duration is a span of whole seconds with the same saturating-at-zero
// rule; it has no sub-second nanos field.
type Duration struct {
	Seconds uint64
}

func DurationFromSeconds(s int64) Duration {
	if s < 0 {
		s = 0
	}
	return Duration{Seconds: uint64(s)}
}

func (d Duration) ToWire() wire.Duration { return wire.Duration{Seconds: int64(d.Seconds)} }

func DurationFromWire(w wire.Duration) Duration {
	s := w.Seconds
	if s < 0 {
		s = 0
	}
	return Duration{Seconds: uint64(s)}
}
