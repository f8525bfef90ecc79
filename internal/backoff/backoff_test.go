package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialDoublesUntilCap(t *testing.T) {
	e := NewExponential(time.Minute)

	first, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, 250*time.Millisecond, first)

	second, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, 500*time.Millisecond, second)

	third, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, time.Second, third)
}

func TestExponentialCapsAtMax(t *testing.T) {
	e := NewExponential(time.Hour)
	var last time.Duration
	for i := 0; i < 20; i++ {
		d, ok := e.Next()
		require.True(t, ok)
		last = d
	}
	require.Equal(t, 8*time.Second, last)
}

func TestExponentialExhaustsAtBudget(t *testing.T) {
	e := NewExponential(300 * time.Millisecond)

	d, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, 250*time.Millisecond, d)

	_, ok = e.Next()
	require.False(t, ok, "500ms interval should exceed the 300ms budget")
}

func TestExponentialRemainingTracksElapsed(t *testing.T) {
	e := NewExponential(time.Second)
	require.Equal(t, time.Second, e.Remaining())

	_, ok := e.Next()
	require.True(t, ok)
	require.Equal(t, 750*time.Millisecond, e.Remaining())
}

func TestSampleCount(t *testing.T) {
	cases := []struct {
		pool     int
		expected int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{9, 3},
		{10, 4},
	}
	for _, tc := range cases {
		require.Equal(t, tc.expected, SampleCount(tc.pool), "pool size %d", tc.pool)
	}
}

func TestSampleReturnsDistinctSubset(t *testing.T) {
	pool := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	sampled := Sample(pool, 4)
	require.Len(t, sampled, 4)

	seen := make(map[int]bool)
	for _, v := range sampled {
		require.False(t, seen[v], "sample must not repeat an index")
		seen[v] = true
		require.Contains(t, pool, v)
	}
}

func TestSampleAllWhenCountExceedsPool(t *testing.T) {
	pool := []int{0, 1, 2}
	sampled := Sample(pool, 10)
	require.Len(t, sampled, 3)
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	pool := []int{0, 1, 2, 3, 4}
	original := append([]int(nil), pool...)
	_ = Sample(pool, 2)
	require.Equal(t, original, pool)
}
