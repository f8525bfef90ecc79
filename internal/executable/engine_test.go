package executable

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
)

// fakeChannel satisfies grpc.ClientConnInterface without dialing
// anything; tests never inspect it, only pass it through.
type fakeChannel struct{}

func (fakeChannel) Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error {
	return nil
}

func (fakeChannel) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, nil
}

var _ grpc.ClientConnInterface = fakeChannel{}

func newTestTable(t *testing.T, nodeCount int) *network.Table {
	t.Helper()
	tbl := network.New(nil)
	for i := 0; i < nodeCount; i++ {
		id := network.NodeID{Shard: 0, Realm: 0, Num: int64(i) + 3}
		err := tbl.AddNode(id, []string{"stub:50211"}, func(string) (grpc.ClientConnInterface, error) {
			return fakeChannel{}, nil
		})
		require.NoError(t, err)
	}
	return tbl
}

// testID is a minimal Stringer id standing in for the root package's
// TransactionID, so the engine never needs to import it.
type testID struct{ n int }

func (t testID) String() string { return fmt.Sprintf("id-%d", t.n) }

// scriptedExecutable replays a fixed precheck status per call, regardless
// of which node was picked, and counts attempts.
type scriptedExecutable struct {
	statuses []precheck.Status // consumed in order across all attempts
	calls    int

	explicitID *testID
	genCalls   int
	regenCalls int
}

func (s *scriptedExecutable) NodeAccountIDs() []network.NodeID { return nil }

func (s *scriptedExecutable) ExplicitTransactionID() (testID, bool) {
	if s.explicitID != nil {
		return *s.explicitID, true
	}
	return testID{}, false
}

func (s *scriptedExecutable) RequiresTransactionID() bool { return true }

func (s *scriptedExecutable) GenerateTransactionID() testID {
	s.genCalls++
	return testID{n: s.genCalls}
}

func (s *scriptedExecutable) RegenerateTransactionID(old testID) testID {
	s.regenCalls++
	return testID{n: old.n + 100}
}

func (s *scriptedExecutable) ShouldRetryPrecheck(precheck.Status) bool { return false }
func (s *scriptedExecutable) ShouldRetry(string) bool                 { return false }

func (s *scriptedExecutable) MakeRequest(id testID, node network.NodeID) ([]byte, any, error) {
	return []byte("req"), nil, nil
}

func (s *scriptedExecutable) Execute(ctx context.Context, channel grpc.ClientConnInterface, wire []byte) ([]byte, error) {
	return []byte("resp"), nil
}

func (s *scriptedExecutable) MakeResponse(wireResp []byte, attemptCtx any, node network.NodeID, id testID) (string, error) {
	return fmt.Sprintf("ok from %s for %s", node.String(), id.String()), nil
}

func (s *scriptedExecutable) MakeErrorPrecheck(status precheck.Status, id testID) error {
	return &hederaerrors.TransactionPrecheckStatus{Status: fmt.Sprintf("%d", status), TxID: id}
}

func (s *scriptedExecutable) ResponsePrecheckStatus(wireResp []byte) precheck.Status {
	st := s.statuses[s.calls]
	if s.calls < len(s.statuses)-1 {
		s.calls++
	}
	return st
}

func TestRunSucceedsImmediately(t *testing.T) {
	tbl := newTestTable(t, 3)
	exec := &scriptedExecutable{statuses: []precheck.Status{precheck.OK}}

	resp, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: time.Second})
	require.NoError(t, err)
	require.Contains(t, resp, "ok from")
}

func TestRunRetriesOnBusyThenSucceeds(t *testing.T) {
	tbl := newTestTable(t, 1)
	exec := &scriptedExecutable{statuses: []precheck.Status{
		precheck.Busy, precheck.Busy, precheck.Busy, precheck.OK,
	}}

	resp, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Contains(t, resp, "ok from")
	require.Equal(t, 3, exec.calls, "should have consumed three busy responses before OK")
}

func TestRunRegeneratesExpiredTransactionID(t *testing.T) {
	tbl := newTestTable(t, 1)
	exec := &scriptedExecutable{statuses: []precheck.Status{
		precheck.TransactionExpired, precheck.OK,
	}}

	resp, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Contains(t, resp, "ok from")
	require.Equal(t, 1, exec.regenCalls)
}

func TestRunFatalWhenExpiredWithExplicitID(t *testing.T) {
	tbl := newTestTable(t, 1)
	id := testID{n: 42}
	exec := &scriptedExecutable{
		statuses:   []precheck.Status{precheck.TransactionExpired},
		explicitID: &id,
	}

	_, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 5 * time.Second})
	require.Error(t, err)
	require.Equal(t, 0, exec.regenCalls)
}

func TestRunFatalOnUnrecognizedStatus(t *testing.T) {
	tbl := newTestTable(t, 1)
	exec := &scriptedExecutable{statuses: []precheck.Status{precheck.Unknown}}

	_, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 5 * time.Second})
	require.ErrorIs(t, err, hederaerrors.ErrResponseStatusUnrecognized)
}

// alwaysBusyExecutable never resolves, to exercise the timed-out path.
type alwaysBusyExecutable struct{ scriptedExecutable }

func (a *alwaysBusyExecutable) ResponsePrecheckStatus(wireResp []byte) precheck.Status {
	return precheck.Busy
}

func TestRunTimesOutWhenBudgetExhausted(t *testing.T) {
	tbl := newTestTable(t, 1)
	exec := &alwaysBusyExecutable{}

	_, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 300 * time.Millisecond})
	require.Error(t, err)
	var timedOut *hederaerrors.TimedOut
	require.ErrorAs(t, err, &timedOut)
}

func TestRunTransportUnavailableMarksNodeUnhealthyAndRotates(t *testing.T) {
	tbl := newTestTable(t, 2)
	exec := &unavailableOnceExecutable{statuses: []precheck.Status{precheck.OK}}

	resp, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.Contains(t, resp, "ok from")
}

type unavailableOnceExecutable struct {
	scriptedExecutable
	statuses []precheck.Status
	failed   bool
}

func (u *unavailableOnceExecutable) Execute(ctx context.Context, channel grpc.ClientConnInterface, wire []byte) ([]byte, error) {
	if !u.failed {
		u.failed = true
		return nil, grpcstatus.Error(codes.Unavailable, "node down")
	}
	return []byte("resp"), nil
}

func (u *unavailableOnceExecutable) ResponsePrecheckStatus(wireResp []byte) precheck.Status {
	return u.statuses[0]
}

func (u *unavailableOnceExecutable) MakeResponse(wireResp []byte, attemptCtx any, node network.NodeID, id testID) (string, error) {
	return fmt.Sprintf("ok from %s for %s", node.String(), id.String()), nil
}

// TestRunRespectsMaxAttempts exercises MaxAttempts independently of
// Timeout: a generous budget would otherwise let this run for minutes.
func TestRunRespectsMaxAttempts(t *testing.T) {
	tbl := newTestTable(t, 1)
	exec := &alwaysBusyExecutable{}

	_, err := Run[testID, string](context.Background(), tbl, exec, Options{Timeout: time.Minute, MaxAttempts: 2})
	require.Error(t, err)
	var timedOut *hederaerrors.TimedOut
	require.ErrorAs(t, err, &timedOut)
}
