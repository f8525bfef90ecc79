package hedera

import "github.com/hashgraph/hedera-sdk-go-core/internal/network"

// baseQuery holds the fields every concrete query type shares: an
// optional explicit node subset (bypassing health-based sampling, same
// as Transaction) and a per-query override of the client's default
// payment cap.
type baseQuery struct {
	nodeAccountIDs  []AccountID
	maxQueryPayment *Hbar
}

func (q *baseQuery) setNodeAccountIDs(ids []AccountID) { q.nodeAccountIDs = append([]AccountID(nil), ids...) }

func (q *baseQuery) setMaxQueryPayment(fee Hbar) { q.maxQueryPayment = &fee }

func (q *baseQuery) executableNodeIDs() []network.NodeID {
	if len(q.nodeAccountIDs) == 0 {
		return nil
	}
	out := make([]network.NodeID, len(q.nodeAccountIDs))
	for i, id := range q.nodeAccountIDs {
		out[i] = toNodeID(id)
	}
	return out
}

func (q *baseQuery) effectiveMaxQueryPayment(client *Client) Hbar {
	if q.maxQueryPayment != nil {
		return *q.maxQueryPayment
	}
	return client.DefaultMaxQueryPayment()
}

// noTransactionID is the ID type queries use when a phase requires none
// (cost phase, free answer phase): Funcs still needs a concrete,
// fmt.Stringer-satisfying type parameter; it reports no explicit id, and
// with RequiresTransactionID false Generate is never invoked.
func noTransactionID() (TransactionID, bool) { return TransactionID{}, false }
