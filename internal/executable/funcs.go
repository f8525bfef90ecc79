package executable

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
)

// Funcs is a closure-based Executable, letting call sites build one-off
// request types (a query's cost phase, its payment phase) without
// declaring a named type for each. Every field has the same signature as
// the matching Executable method; nil ShouldRetryPrecheck/ShouldRetry
// default to "never retry".
type Funcs[ID fmt.Stringer, Resp any] struct {
	NodeAccountIDsFunc        func() []network.NodeID
	ExplicitTransactionIDFunc func() (ID, bool)
	RequiresTransactionIDFunc func() bool
	GenerateTransactionIDFunc func() ID
	RegenerateTransactionIDFunc func(old ID) ID
	ShouldRetryPrecheckFunc   func(precheck.Status) bool
	ShouldRetryFunc           func(Resp) bool
	MakeRequestFunc           func(id ID, node network.NodeID) ([]byte, any, error)
	ExecuteFunc               func(ctx context.Context, channel grpc.ClientConnInterface, wire []byte) ([]byte, error)
	MakeResponseFunc          func(wireResp []byte, attemptCtx any, node network.NodeID, id ID) (Resp, error)
	MakeErrorPrecheckFunc     func(status precheck.Status, id ID) error
	ResponsePrecheckStatusFunc func(wireResp []byte) precheck.Status
}

func (f Funcs[ID, Resp]) NodeAccountIDs() []network.NodeID {
	if f.NodeAccountIDsFunc == nil {
		return nil
	}
	return f.NodeAccountIDsFunc()
}

func (f Funcs[ID, Resp]) ExplicitTransactionID() (ID, bool) { return f.ExplicitTransactionIDFunc() }

func (f Funcs[ID, Resp]) RequiresTransactionID() bool {
	if f.RequiresTransactionIDFunc == nil {
		return true
	}
	return f.RequiresTransactionIDFunc()
}

func (f Funcs[ID, Resp]) GenerateTransactionID() ID {
	if f.GenerateTransactionIDFunc == nil {
		var zero ID
		return zero
	}
	return f.GenerateTransactionIDFunc()
}

func (f Funcs[ID, Resp]) RegenerateTransactionID(old ID) ID {
	if f.RegenerateTransactionIDFunc == nil {
		return old
	}
	return f.RegenerateTransactionIDFunc(old)
}

func (f Funcs[ID, Resp]) ShouldRetryPrecheck(status precheck.Status) bool {
	if f.ShouldRetryPrecheckFunc == nil {
		return false
	}
	return f.ShouldRetryPrecheckFunc(status)
}

func (f Funcs[ID, Resp]) ShouldRetry(resp Resp) bool {
	if f.ShouldRetryFunc == nil {
		return false
	}
	return f.ShouldRetryFunc(resp)
}

func (f Funcs[ID, Resp]) MakeRequest(id ID, node network.NodeID) ([]byte, any, error) {
	return f.MakeRequestFunc(id, node)
}

func (f Funcs[ID, Resp]) Execute(ctx context.Context, channel grpc.ClientConnInterface, wire []byte) ([]byte, error) {
	return f.ExecuteFunc(ctx, channel, wire)
}

func (f Funcs[ID, Resp]) MakeResponse(wireResp []byte, attemptCtx any, node network.NodeID, id ID) (Resp, error) {
	return f.MakeResponseFunc(wireResp, attemptCtx, node, id)
}

func (f Funcs[ID, Resp]) MakeErrorPrecheck(status precheck.Status, id ID) error {
	return f.MakeErrorPrecheckFunc(status, id)
}

func (f Funcs[ID, Resp]) ResponsePrecheckStatus(wireResp []byte) precheck.Status {
	return f.ResponsePrecheckStatusFunc(wireResp)
}

var _ Executable[fmt.Stringer, int] = Funcs[fmt.Stringer, int]{}
