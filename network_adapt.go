package hedera

import "github.com/hashgraph/hedera-sdk-go-core/internal/network"

// toNodeID adapts the public AccountID space to the engine's internal
// NodeID space.
func toNodeID(id AccountID) network.NodeID {
	return network.NodeID{Shard: int64(id.Shard), Realm: int64(id.Realm), Num: int64(id.Num)}
}

// fromNodeID is the inverse of toNodeID.
func fromNodeID(id network.NodeID) AccountID {
	return AccountIDForNum(uint64(id.Shard), uint64(id.Realm), uint64(id.Num))
}
