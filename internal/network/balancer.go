package network

import (
	"math/rand"

	"google.golang.org/grpc"
)

// Dialer opens a channel to a single hostname:port endpoint. Production
// callers pass grpc.NewClient/grpc.Dial; tests substitute an in-memory
// stub, since grpc.ClientConnInterface is the real gRPC abstraction and
// needs no bespoke mock type of its own.
type Dialer func(endpoint string) (grpc.ClientConnInterface, error)

// Balancer forwards each outgoing call to a uniformly random channel among
// the endpoints behind one node, avoiding the synchronized cold-start a
// round-robin pool would produce across a fleet of clients starting at
// once. The channel pool is built once, at AddNode time, and is
// immutable afterward.
type Balancer struct {
	channels []grpc.ClientConnInterface
}

func newBalancer(endpoints []string, dial Dialer) (*Balancer, error) {
	channels := make([]grpc.ClientConnInterface, 0, len(endpoints))
	for _, ep := range endpoints {
		ch, err := dial(ep)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return &Balancer{channels: channels}, nil
}

// Pick returns one of the balancer's channels, chosen uniformly at random.
func (b *Balancer) Pick() grpc.ClientConnInterface {
	if len(b.channels) == 1 {
		return b.channels[0]
	}
	return b.channels[rand.Intn(len(b.channels))]
}
