package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/logging"
)

// recentlyPingedWindow is the "recently pinged" threshold used to avoid
// re-pinging a node that was contacted moments ago.
const recentlyPingedWindow = 15 * time.Minute

// PenaltyFunc computes how long a node stays unhealthy after its nth
// consecutive failure (n starts at 1).
type PenaltyFunc func(consecutiveFailures int) time.Duration

// DefaultPenalty rises exponentially per consecutive failure, capped at
// one hour, starting at one second, and resets on the next success.
func DefaultPenalty(consecutiveFailures int) time.Duration {
	const cap = time.Hour
	if consecutiveFailures <= 0 {
		return 0
	}
	d := time.Second
	for i := 1; i < consecutiveFailures && d < cap; i++ {
		d *= 2
	}
	if d > cap {
		d = cap
	}
	return d
}

// slot holds one node's mutable health state. Each field is updated with
// relaxed ordering via atomics; concurrent tasks may race, but the worst
// case is an extra unnecessary ping or attempt.
type slot struct {
	id            NodeID
	endpoints     []string
	balancer      *Balancer
	healthyUntil  atomic.Int64 // unix nanos; healthy when now >= value
	lastPinged    atomic.Int64 // unix nanos
	failureStreak atomic.Int32
}

// Table is the network routing table: node-id keyed health, last-ping,
// and channel pool state.
type Table struct {
	mu      sync.RWMutex
	slots   []*slot
	index   map[NodeID]int
	penalty PenaltyFunc
	logger  logging.Logger
}

// New creates an empty Table. A nil logger defaults to logging.NoOpLogger.
func New(logger logging.Logger) *Table {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Table{
		index:   make(map[NodeID]int),
		penalty: DefaultPenalty,
		logger:  logger,
	}
}

// SetPenalty overrides the unhealthy-duration policy.
func (t *Table) SetPenalty(p PenaltyFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.penalty = p
}

// AddNode registers a node and eagerly dials every endpoint behind it,
// building its Balancer once.
func (t *Table) AddNode(id NodeID, endpoints []string, dial Dialer) error {
	balancer, err := newBalancer(endpoints, dial)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	s := &slot{id: id, endpoints: endpoints, balancer: balancer}
	t.index[id] = len(t.slots)
	t.slots = append(t.slots, s)
	return nil
}

// Len returns the number of registered nodes.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

// NodeIDAt returns the node id at index i.
func (t *Table) NodeIDAt(i int) NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slots[i].id
}

// BalancerAt returns the load-balanced channel pool for node index i.
func (t *Table) BalancerAt(i int) *Balancer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slots[i].balancer
}

// IsHealthy reports whether node index i is currently healthy.
func (t *Table) IsHealthy(i int, now time.Time) bool {
	t.mu.RLock()
	s := t.slots[i]
	t.mu.RUnlock()
	return now.UnixNano() >= s.healthyUntil.Load()
}

// HealthyIndexes returns the indexes of every currently-healthy node, in
// their natural (registration) order.
func (t *Table) HealthyIndexes(now time.Time) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, len(t.slots))
	for i, s := range t.slots {
		if now.UnixNano() >= s.healthyUntil.Load() {
			out = append(out, i)
		}
	}
	return out
}

// MarkUnhealthy records a failure on node index i and advances its
// healthy-until instant according to the table's PenaltyFunc.
func (t *Table) MarkUnhealthy(i int, now time.Time) {
	t.mu.RLock()
	s := t.slots[i]
	penalty := t.penalty
	t.mu.RUnlock()

	n := s.failureStreak.Add(1)
	d := penalty(int(n))
	s.healthyUntil.Store(now.Add(d).UnixNano())
	t.logger.Warn("node marked unhealthy", "node", s.id.String(), "penalty", d, "consecutive_failures", n)
}

// MarkHealthy clears a node's failure streak and makes it immediately
// eligible again.
func (t *Table) MarkHealthy(i int) {
	t.mu.RLock()
	s := t.slots[i]
	t.mu.RUnlock()
	s.failureStreak.Store(0)
	s.healthyUntil.Store(0)
}

// MarkUsed stamps last-pinged for node index i.
func (t *Table) MarkUsed(i int, now time.Time) {
	t.mu.RLock()
	s := t.slots[i]
	t.mu.RUnlock()
	s.lastPinged.Store(now.UnixNano())
}

// RecentlyPinged reports whether node index i was used within the last
// 15 minutes.
func (t *Table) RecentlyPinged(i int, now time.Time) bool {
	t.mu.RLock()
	s := t.slots[i]
	t.mu.RUnlock()
	last := s.lastPinged.Load()
	if last == 0 {
		return false
	}
	return now.Sub(time.Unix(0, last)) < recentlyPingedWindow
}

// IndexesForIDs resolves an explicit subset of node-account-ids, failing on the first miss.
func (t *Table) IndexesForIDs(ids []NodeID) ([]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		idx, ok := t.index[id]
		if !ok {
			return nil, hederaerrors.ErrNodeAccountUnknown
		}
		out = append(out, idx)
	}
	return out, nil
}
