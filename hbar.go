package hedera

import (
	"fmt"
	"math"
)

// TinybarsPerHbar is the fixed-point scale between hbars and tinybars.
const TinybarsPerHbar int64 = 100_000_000

// Hbar is a signed count of tinybars.
type Hbar struct {
	tinybars int64
}

// HbarFromTinybars wraps a raw tinybar count.
func HbarFromTinybars(tinybars int64) Hbar { return Hbar{tinybars: tinybars} }

// NewHbar converts a decimal hbar amount to tinybars via exact integer
// multiplication; overflow is reported rather than silently wrapped.
func NewHbar(hbars int64) (Hbar, error) {
	if hbars > math.MaxInt64/TinybarsPerHbar || hbars < math.MinInt64/TinybarsPerHbar {
		return Hbar{}, fmt.Errorf("hbar amount %d overflows tinybar range", hbars)
	}
	return Hbar{tinybars: hbars * TinybarsPerHbar}, nil
}

func (h Hbar) AsTinybar() int64 { return h.tinybars }

func (h Hbar) String() string {
	whole := h.tinybars / TinybarsPerHbar
	frac := h.tinybars % TinybarsPerHbar
	if frac < 0 {
		frac = -frac
	}
	return fmt.Sprintf("%d.%08d", whole, frac)
}

func (h Hbar) Negated() Hbar { return Hbar{tinybars: -h.tinybars} }
func (h Hbar) Cmp(o Hbar) int {
	switch {
	case h.tinybars < o.tinybars:
		return -1
	case h.tinybars > o.tinybars:
		return 1
	default:
		return 0
	}
}
