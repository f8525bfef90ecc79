package hedera

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/hashgraph/hedera-sdk-go-core/internal/executable"
	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/logging"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
)

// checksumCacheSize bounds the per-client checksum LRU. Entity ids are
// small and cheap to recompute, but a client validating checksums on
// every call site (transaction submit, every query) re-derives the same
// handful of node/payer checksums repeatedly; the cache just avoids the
// redundant FNV passes.
const checksumCacheSize = 256

// Operator is the account a Client signs and pays as by default: every
// auto-generated transaction id names it as payer, and Client.FreezeWith
// auto-signs with it right after freezing.
type Operator struct {
	AccountID AccountID
	Signer    Signer
}

// Client owns a network routing table, an optional operator, and the
// defaults every Transaction/Query falls back to when the caller doesn't
// override them explicitly.
type Client struct {
	table *network.Table

	operator *Operator
	ledgerID []byte

	autoValidateChecksums    bool
	defaultMaxTransactionFee Hbar
	defaultMaxQueryPayment   Hbar

	idGen  *idGenerator
	logger logging.Logger

	checksumCache           *lru.Cache[EntityID, string]
	useTransportCompression bool

	maxAttempts            int
	maxNodesPerTransaction int
}

// NewClient returns an empty client with no nodes and no operator. Most
// callers want ClientForName instead.
func NewClient(logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	cache, _ := lru.New[EntityID, string](checksumCacheSize)
	return &Client{
		table:                    network.New(logger),
		idGen:                    newIDGenerator(),
		logger:                   logger,
		defaultMaxTransactionFee: HbarFromTinybars(TinybarsPerHbar), // 1 hbar
		defaultMaxQueryPayment:   HbarFromTinybars(TinybarsPerHbar),
		checksumCache:            cache,
	}
}

// networkPreset is one of the three built-in node sets. Node addresses
// here are a small, representative subset of each network's published
// address book — enough to exercise routing/health/sampling, not a
// complete mirror of the live address book (which production clients
// load dynamically from the network itself, out of this module's scope).
type networkPreset struct {
	ledgerID []byte
	nodes    map[uint64][]string // node account num -> endpoints
}

var networkPresets = map[string]networkPreset{
	"mainnet": {
		ledgerID: []byte{0x00},
		nodes: map[uint64][]string{
			3: {"35.237.200.180:50211"},
			4: {"35.186.191.247:50211"},
			5: {"35.192.2.25:50211"},
		},
	},
	"testnet": {
		ledgerID: []byte{0x01},
		nodes: map[uint64][]string{
			3: {"0.testnet.hedera.com:50211"},
			4: {"1.testnet.hedera.com:50211"},
			5: {"2.testnet.hedera.com:50211"},
		},
	},
	"previewnet": {
		ledgerID: []byte{0x02},
		nodes: map[uint64][]string{
			3: {"0.previewnet.hedera.com:50211"},
			4: {"1.previewnet.hedera.com:50211"},
			5: {"2.previewnet.hedera.com:50211"},
		},
	},
}

// ClientForName builds a Client preloaded with one of the three named
// network presets (mainnet, testnet, previewnet), dialing every node
// eagerly the same way Table.AddNode always does.
func ClientForName(name string) (*Client, error) {
	preset, ok := networkPresets[name]
	if !ok {
		return nil, &hederaerrors.BasicParse{Input: name, Err: fmt.Errorf("unknown network name")}
	}
	c := NewClient(logging.NewDefaultLogger())
	c.ledgerID = preset.ledgerID
	for num, endpoints := range preset.nodes {
		id := network.NodeID{Shard: 0, Realm: 0, Num: int64(num)}
		if err := c.table.AddNode(id, endpoints, dialTLS); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// dialTLS is the production Dialer: a TLS gRPC connection to a single
// node endpoint, matching the teacher's own grpc.NewClient usage for its
// peer connections.
func dialTLS(endpoint string) (grpc.ClientConnInterface, error) {
	return grpc.NewClient(endpoint, grpc.WithTransportCredentials(credentials.NewTLS(nil)))
}

// SetOperator designates the default payer and auto-signer.
func (c *Client) SetOperator(accountID AccountID, signer Signer) *Client {
	c.operator = &Operator{AccountID: accountID, Signer: signer}
	return c
}

func (c *Client) GetOperatorAccountID() (AccountID, bool) {
	if c.operator == nil {
		return AccountID{}, false
	}
	return c.operator.AccountID, true
}

// SetLedgerID also invalidates the checksum cache: a ledger id is part of
// the checksum's input, so every cached entry was derived under the old
// one and would silently validate against the wrong network otherwise.
func (c *Client) SetLedgerID(id []byte) *Client {
	c.ledgerID = id
	c.checksumCache.Purge()
	return c
}
func (c *Client) LedgerID() []byte { return c.ledgerID }

func (c *Client) SetAutoValidateChecksums(enabled bool) *Client {
	c.autoValidateChecksums = enabled
	return c
}
func (c *Client) AutoValidateChecksums() bool { return c.autoValidateChecksums }

func (c *Client) SetDefaultMaxTransactionFee(fee Hbar) *Client {
	c.defaultMaxTransactionFee = fee
	return c
}
func (c *Client) DefaultMaxTransactionFee() Hbar { return c.defaultMaxTransactionFee }

func (c *Client) SetDefaultMaxQueryPayment(fee Hbar) *Client {
	c.defaultMaxQueryPayment = fee
	return c
}
func (c *Client) DefaultMaxQueryPayment() Hbar { return c.defaultMaxQueryPayment }

// SetLogger swaps the structured logger used by this client and every
// engine invocation it drives from this point on. Nil restores the
// no-op logger.
func (c *Client) SetLogger(logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	c.logger = logger
	return c
}
func (c *Client) Logger() logging.Logger { return c.logger }

// SetMaxAttempts caps the execute engine's outer attempt-loop iterations
// for every call this client drives. Zero (the default) leaves the
// engine bounded only by its timeout.
func (c *Client) SetMaxAttempts(n int) *Client {
	c.maxAttempts = n
	return c
}
func (c *Client) MaxAttempts() int { return c.maxAttempts }

// executableOptions builds the per-call executable.Options every
// Transaction/Query Execute uses, carrying this client's logger and
// attempt cap.
func (c *Client) executableOptions() executable.Options {
	return executable.Options{Logger: c.logger, MaxAttempts: c.maxAttempts}
}

// SetMaxNodesPerTransaction caps how many of the registered nodes a
// client-driven freeze (FreezeWith) fans a transaction out to. Zero (the
// default) uses every registered node.
func (c *Client) SetMaxNodesPerTransaction(n int) *Client {
	c.maxNodesPerTransaction = n
	return c
}
func (c *Client) MaxNodesPerTransaction() int { return c.maxNodesPerTransaction }

// AddNetworkNode registers one node and dials it. For use against a
// custom (non-preset) network, e.g. a local test net.
func (c *Client) AddNetworkNode(id AccountID, endpoints []string, dial network.Dialer) error {
	if dial == nil {
		dial = dialTLS
	}
	return c.table.AddNode(toNodeID(id), endpoints, dial)
}

// ValidateChecksums runs every id's checksum against the client's ledger
// id when AutoValidateChecksums is enabled, fast-failing the whole
// request on the first mismatch. This is step 1 of the attempt loop's
// contract, mirrored at each call site rather than inside the engine
// itself, since internal/executable intentionally knows nothing about
// AccountID or checksums.
func (c *Client) ValidateChecksums(ids ...AccountID) error {
	if !c.autoValidateChecksums {
		return nil
	}
	for _, id := range ids {
		if !id.IsNum() || id.Checksum == "" {
			continue
		}
		entity := EntityID{Shard: id.Shard, Realm: id.Realm, Num: id.Num}
		expected, ok := c.checksumCache.Get(entity)
		if !ok {
			expected = Checksum(c.ledgerID, entity.Shard, entity.Realm, entity.Num)
			c.checksumCache.Add(entity, expected)
		}
		if expected != id.Checksum {
			return &hederaerrors.BadEntityID{
				Shard: entity.Shard, Realm: entity.Realm, Num: entity.Num,
				PresentChecksum: id.Checksum, ExpectedChecksum: expected,
			}
		}
	}
	return nil
}

// GenerateTransactionID produces a fresh id for the operator. Fails if no
// operator is set.
func (c *Client) GenerateTransactionID() (TransactionID, error) {
	if c.operator == nil {
		return TransactionID{}, hederaerrors.ErrNoPayerAccountOrTransactionID
	}
	return c.idGen.Generate(c.operator.AccountID), nil
}

// defaultNodeAccountIDs returns every registered node, converted to the
// public AccountID space, for Transaction/Query freeze defaults —
// capped at MaxNodesPerTransaction when set.
func (c *Client) defaultNodeAccountIDs() []AccountID {
	n := c.table.Len()
	if c.maxNodesPerTransaction > 0 && c.maxNodesPerTransaction < n {
		n = c.maxNodesPerTransaction
	}
	out := make([]AccountID, n)
	for i := 0; i < n; i++ {
		out[i] = fromNodeID(c.table.NodeIDAt(i))
	}
	return out
}

// FreezeWith fixes a transaction's node fan-out and transaction id using
// this client's operator and registered nodes, auto-signing with the
// operator afterward (the common case: caller supplies additional
// signers only when the operator isn't the sole required signer).
func (c *Client) FreezeWith(tx *Transaction) error {
	if c.operator == nil {
		return hederaerrors.ErrNoPayerAccountOrTransactionID
	}
	if err := tx.freezeWithClient(c.defaultNodeAccountIDs(), c.operator.AccountID, c.idGen); err != nil {
		return err
	}
	return tx.Sign(c.operator.Signer)
}

// Ping runs a minimal account-balance query against exactly one node, to
// test its liveness. Since this module's AccountBalanceQuery always runs
// the paid cost-then-pay flow, Ping requires an operator the same as any
// other paid query.
func (c *Client) Ping(ctx context.Context, nodeID AccountID, timeout time.Duration) error {
	_, err := NewAccountBalanceQuery().
		SetAccountID(nodeID).
		SetNodeAccountIDs([]AccountID{nodeID}).
		Execute(ctx, c)
	return err
}

// PingAll concurrently pings every registered node via errgroup and
// returns once every ping has finished. A failed ping is not reported to
// the caller and does not cancel the others; the engine records transport
// failures in that node's health state, and PingAll itself returns nil.
func (c *Client) PingAll(ctx context.Context, timeout time.Duration) error {
	n := c.table.Len()
	var g errgroup.Group
	for i := 0; i < n; i++ {
		nodeID := fromNodeID(c.table.NodeIDAt(i))
		g.Go(func() error {
			pingCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			_ = c.Ping(pingCtx, nodeID, timeout)
			return nil
		})
	}
	return g.Wait()
}

// Close releases nothing further at this layer; kept for API parity with
// a connection-owning client and for callers that defer it
// unconditionally.
func (c *Client) Close() error { return nil }
