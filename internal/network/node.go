// Package network implements the client-side routing table and channel
// pool: {node-id -> endpoint-list}, per-node health and last-ping
// timestamps, a healthy-node sampler, and a load-balanced channel pool
// behind each node.
package network

import "fmt"

// NodeID is the node-account-id key of the routing table. It is a plain
// triple (not the root package's AccountID) so this package has no
// dependency on the public API surface.
type NodeID struct {
	Shard, Realm, Num int64
}

func (n NodeID) String() string { return fmt.Sprintf("%d.%d.%d", n.Shard, n.Realm, n.Num) }
