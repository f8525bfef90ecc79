package executable

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hashgraph/hedera-sdk-go-core/internal/backoff"
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/logging"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/precheck"
)

// DefaultTimeout is the engine's total wall-clock budget per invocation
// when the caller doesn't supply one.
const DefaultTimeout = 10 * time.Minute

// Pinger performs a lightweight liveness check against a channel. It
// gates whether an unhealthy node that hasn't been contacted recently is
// worth an attempt. A nil Pinger disables the gate (every sampled index
// is tried regardless of health) — adequate for pings themselves, which
// are one engine task per node with no further pinging beneath them.
type Pinger func(ctx context.Context, channel grpc.ClientConnInterface) error

// Options configures one engine invocation.
type Options struct {
	Timeout time.Duration
	Pinger  Pinger
	Logger  logging.Logger
	Now     func() time.Time

	// MaxAttempts caps the number of outer attempt-loop iterations
	// (each a fresh sample over the candidate pool), independent of
	// Timeout. Zero means unbounded — only Timeout governs.
	MaxAttempts int
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = logging.NoOpLogger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Run drives the attempt loop for exec against table until it succeeds,
// fails fatally, or exhausts its backoff budget.
func Run[ID fmt.Stringer, Resp any](ctx context.Context, table *network.Table, exec Executable[ID, Resp], opts Options) (Resp, error) {
	var zero Resp
	opts = opts.withDefaults()

	// requestID correlates every log line this invocation emits — the
	// attempt loop may span several nodes and backoff waits, and this is
	// the only way to tie them back together in a log stream shared by
	// many concurrent Run calls.
	requestID := uuid.NewString()
	opts.Logger.Debug("execute request started", "request_id", requestID)

	txID, explicitID := exec.ExplicitTransactionID()
	if !explicitID && exec.RequiresTransactionID() {
		txID = exec.GenerateTransactionID()
	}

	explicitNodes := exec.NodeAccountIDs()
	bo := backoff.NewExponential(opts.Timeout)
	var lastErr error
	attempts := 0

	for {
		if err := ctx.Err(); err != nil {
			return zero, &hederaerrors.TimedOut{Cause: err}
		}
		if opts.MaxAttempts > 0 && attempts >= opts.MaxAttempts {
			return zero, &hederaerrors.TimedOut{Cause: lastErr}
		}
		attempts++

		pool, err := candidatePool(table, explicitNodes, opts.Now())
		if err != nil {
			return zero, err
		}

		var sampled []int
		if len(explicitNodes) > 0 {
			sampled = pool
		} else {
			sampled = backoff.Sample(pool, backoff.SampleCount(len(pool)))
		}

		outcome := innerLoop(ctx, table, exec, &txID, explicitID, sampled, opts)
		switch {
		case outcome.fatal != nil:
			return zero, outcome.fatal
		case outcome.response != nil:
			return *outcome.response, nil
		}
		if outcome.lastErr != nil {
			lastErr = outcome.lastErr
		}

		d, ok := bo.Next()
		if !ok {
			return zero, &hederaerrors.TimedOut{Cause: lastErr}
		}
		opts.Logger.Debug("execute engine backing off", "request_id", requestID, "interval", d)

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, &hederaerrors.TimedOut{Cause: ctx.Err()}
		case <-timer.C:
		}
	}
}

func candidatePool(table *network.Table, explicitNodes []network.NodeID, now time.Time) ([]int, error) {
	if len(explicitNodes) > 0 {
		return table.IndexesForIDs(explicitNodes)
	}
	return table.HealthyIndexes(now), nil
}

type innerOutcome[Resp any] struct {
	response *Resp
	fatal    error
	lastErr  error
}

// innerLoop runs one pass over the sampled indexes, implementing the
// decision table. It returns with a conclusive outcome (success or
// fatal error) or with lastErr set to request an outer backoff.
func innerLoop[ID fmt.Stringer, Resp any](
	ctx context.Context,
	table *network.Table,
	exec Executable[ID, Resp],
	txID *ID,
	explicitID bool,
	sampled []int,
	opts Options,
) innerOutcome[Resp] {
	var out innerOutcome[Resp]

	for _, idx := range sampled {
		if err := ctx.Err(); err != nil {
			out.fatal = &hederaerrors.TimedOut{Cause: err}
			return out
		}

		now := opts.Now()
		if !table.IsHealthy(idx, now) {
			if !table.RecentlyPinged(idx, now) {
				if opts.Pinger != nil {
					channel := table.BalancerAt(idx).Pick()
					pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
					err := opts.Pinger(pingCtx, channel)
					cancel()
					if err != nil {
						continue
					}
				}
			}
		}

		nodeID := table.NodeIDAt(idx)
		channel := table.BalancerAt(idx).Pick()
		table.MarkUsed(idx, now)

		wireReq, attemptCtx, err := exec.MakeRequest(*txID, nodeID)
		if err != nil {
			out.fatal = err
			return out
		}

		wireResp, err := exec.Execute(ctx, channel, wireReq)
		if err != nil {
			code := status.Code(err)
			if code == codes.Unavailable || code == codes.ResourceExhausted {
				table.MarkUnhealthy(idx, now)
				out.lastErr = err
				continue
			}
			out.fatal = &hederaerrors.GRPCStatus{Code: code.String(), Err: err}
			return out
		}
		table.MarkHealthy(idx)

		pc := exec.ResponsePrecheckStatus(wireResp)
		switch {
		case pc == precheck.OK:
			resp, err := exec.MakeResponse(wireResp, attemptCtx, nodeID, *txID)
			if err != nil {
				out.fatal = err
				return out
			}
			if exec.ShouldRetry(resp) {
				out.lastErr = fmt.Errorf("response for %v not yet final, retrying", *txID)
				return out
			}
			out.response = &resp
			return out

		case pc == precheck.Busy || pc == precheck.PlatformNotActive:
			out.lastErr = exec.MakeErrorPrecheck(pc, *txID)
			continue

		case pc == precheck.TransactionExpired && !explicitID:
			*txID = exec.RegenerateTransactionID(*txID)
			continue

		case pc == precheck.TransactionExpired && explicitID:
			out.fatal = exec.MakeErrorPrecheck(pc, *txID)
			return out

		case pc == precheck.Unknown:
			out.fatal = hederaerrors.ErrResponseStatusUnrecognized
			return out

		case exec.ShouldRetryPrecheck(pc):
			out.lastErr = exec.MakeErrorPrecheck(pc, *txID)
			return out

		default:
			out.fatal = exec.MakeErrorPrecheck(pc, *txID)
			return out
		}
	}

	return out
}
