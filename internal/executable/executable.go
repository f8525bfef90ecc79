// Package executable implements the generic retry/dispatch engine shared
// by every request type: queries, single- and multi-chunk transactions,
// and node pings. The engine is parameterized over the Executable
// capability interface so it never needs to know the concrete request
// or response shape.
package executable

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
)

// Executable is the capability a concrete request type (transaction,
// query, or ping) implements to be driven by Run. ID is the caller's
// transaction-id representation (kept generic so this package never
// imports the root package's TransactionID, avoiding an import cycle);
// it must be a Stringer so the engine can attach it to taxonomy errors.
// Resp is the decoded response type returned on success.
type Executable[ID fmt.Stringer, Resp any] interface {
	// NodeAccountIDs returns an explicit node subset, or nil to mean
	// "sample from every healthy node".
	NodeAccountIDs() []network.NodeID

	// ExplicitTransactionID returns a caller-supplied id, if any.
	ExplicitTransactionID() (ID, bool)

	// RequiresTransactionID is true for transactions and paid queries,
	// false for pings and free queries.
	RequiresTransactionID() bool

	// GenerateTransactionID is called once, only when
	// RequiresTransactionID is true and no explicit id was supplied.
	GenerateTransactionID() ID

	// RegenerateTransactionID is called when a node reports the
	// in-flight id as expired and no explicit id was supplied.
	RegenerateTransactionID(old ID) ID

	// ShouldRetryPrecheck is a per-type hook for retrying precheck
	// codes beyond the engine's own Busy/PlatformNotActive handling.
	ShouldRetryPrecheck(status precheck.Status) bool

	// ShouldRetry is a post-success retry hook, used by
	// TransactionReceiptQuery whose payload is itself an async
	// completion (e.g. a receipt still UNKNOWN).
	ShouldRetry(resp Resp) bool

	// MakeRequest builds the wire bytes for one attempt, plus any
	// per-attempt context MakeResponse will need.
	MakeRequest(id ID, node network.NodeID) (wire []byte, attemptCtx any, err error)

	// Execute invokes the correct gRPC method over channel.
	Execute(ctx context.Context, channel grpc.ClientConnInterface, wire []byte) (wireResp []byte, err error)

	// MakeResponse decodes a successful wire response.
	MakeResponse(wireResp []byte, attemptCtx any, node network.NodeID, id ID) (Resp, error)

	// MakeErrorPrecheck builds the taxonomy error for a fatal precheck
	// code.
	MakeErrorPrecheck(status precheck.Status, id ID) error

	// ResponsePrecheckStatus extracts the numeric precheck code from a
	// wire response.
	ResponsePrecheckStatus(wireResp []byte) precheck.Status
}
