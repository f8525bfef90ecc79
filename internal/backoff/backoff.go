// Package backoff implements the bounded exponential backoff and the
// random-without-replacement node sampler the execute engine uses
// between and within outer retry iterations.
package backoff

import (
	"math/rand"
	"time"
)

// Exponential is a bounded exponential backoff iterator: each call to
// Next doubles the previous interval up to Max, and the iterator reports
// itself exhausted once the cumulative elapsed time would exceed Budget.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
	Budget  time.Duration

	current time.Duration
	elapsed time.Duration
	started bool
}

// NewExponential builds an iterator with the engine's default curve:
// 250ms initial, doubling, capped at 8s, bounded by budget.
func NewExponential(budget time.Duration) *Exponential {
	return &Exponential{
		Initial: 250 * time.Millisecond,
		Max:     8 * time.Second,
		Budget:  budget,
	}
}

// Next returns the next interval to sleep for, and false if the budget
// is already exhausted (the caller should fail with a timed-out error
// instead of sleeping).
func (e *Exponential) Next() (time.Duration, bool) {
	if !e.started {
		e.started = true
		e.current = e.Initial
	} else {
		e.current *= 2
		if e.current > e.Max {
			e.current = e.Max
		}
	}
	if e.elapsed+e.current > e.Budget {
		return 0, false
	}
	e.elapsed += e.current
	return e.current, true
}

// Remaining returns the portion of Budget not yet consumed by past
// intervals. Used to size the gRPC call deadline for the next attempt.
func (e *Exponential) Remaining() time.Duration {
	remaining := e.Budget - e.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SampleCount returns ceil(len(pool)/3), the engine's default sample
// size when no explicit node subset was requested.
func SampleCount(poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	return (poolSize + 2) / 3
}

// Sample draws min(count, len(pool)) distinct elements from pool
// uniformly at random, without replacement. The input slice is copied,
// not mutated; order of the result is not meaningful.
func Sample(pool []int, count int) []int {
	shuffled := append([]int(nil), pool...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	if count >= len(shuffled) {
		return shuffled
	}
	return shuffled[:count]
}
