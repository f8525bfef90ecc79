package hedera

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// TransactionID is (payer, valid-start, optional nonce, scheduled flag)
//. String form: "payer@seconds.nanos[/nonce][?scheduled]".
type TransactionID struct {
	AccountID     AccountID
	ValidStart    Timestamp
	Nonce         int32 // 0 means absent)
	Scheduled     bool
}

func (id TransactionID) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s@%d.%d", id.AccountID.String(), id.ValidStart.Seconds, id.ValidStart.Nanos)
	if id.Nonce != 0 {
		fmt.Fprintf(&b, "/%d", id.Nonce)
	}
	if id.Scheduled {
		b.WriteString("?scheduled")
	}
	return b.String()
}

func ParseTransactionID(s string) (TransactionID, error) {
	scheduled := false
	if strings.HasSuffix(s, "?scheduled") {
		scheduled = true
		s = strings.TrimSuffix(s, "?scheduled")
	}
	var nonce int64
	if i := strings.IndexByte(s, '/'); i >= 0 {
		n, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return TransactionID{}, &hederaerrors.BasicParse{Input: s, Err: err}
		}
		nonce = n
		s = s[:i]
	}
	at := strings.IndexByte(s, '@')
	if at < 0 {
		return TransactionID{}, &hederaerrors.BasicParse{Input: s, Err: fmt.Errorf("missing '@'")}
	}
	account, err := ParseAccountID(s[:at])
	if err != nil {
		return TransactionID{}, err
	}
	validStart := s[at+1:]
	dot := strings.IndexByte(validStart, '.')
	if dot < 0 {
		return TransactionID{}, &hederaerrors.BasicParse{Input: s, Err: fmt.Errorf("missing valid-start nanos")}
	}
	secs, err := strconv.ParseUint(validStart[:dot], 10, 64)
	if err != nil {
		return TransactionID{}, &hederaerrors.BasicParse{Input: s, Err: err}
	}
	nanos, err := strconv.ParseUint(validStart[dot+1:], 10, 32)
	if err != nil {
		return TransactionID{}, &hederaerrors.BasicParse{Input: s, Err: err}
	}
	return TransactionID{
		AccountID:  account,
		ValidStart: Timestamp{Seconds: secs, Nanos: uint32(nanos)},
		Nonce:      int32(nonce),
		Scheduled:  scheduled,
	}, nil
}

func (id TransactionID) ToWire() wire.TransactionID {
	return wire.TransactionID{
		TransactionValidStart: id.ValidStart.ToWire(),
		AccountID:             id.AccountID.ToWire(),
		Scheduled:             id.Scheduled,
		Nonce:                 id.Nonce,
	}
}

func TransactionIDFromWire(w wire.TransactionID) TransactionID {
	return TransactionID{
		AccountID:  AccountIDFromWire(w.AccountID),
		ValidStart: TimestampFromWire(w.TransactionValidStart),
		Nonce:      w.Nonce,
		Scheduled:  w.Scheduled,
	}
}

// idGenerator produces strictly monotonic valid-start timestamps for a
// single payer, deduplicating bursts on the same wall-clock second with a
// jittered nanos field. One generator per Client.
type idGenerator struct {
	mu   sync.Mutex
	last Timestamp
}

func newIDGenerator() *idGenerator { return &idGenerator{} }

// Generate returns a new TransactionID for payer whose valid-start is
// strictly after every previously generated value from this generator.
func (g *idGenerator) Generate(payer AccountID) TransactionID {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := TimestampFromTime(time.Now())
	candidate := now.PlusNanos(-int64(jitterNanos()))
	if !candidate.after(g.last) {
		candidate = g.last.PlusNanos(1)
	}
	g.last = candidate

	return TransactionID{AccountID: payer, ValidStart: candidate}
}

func (t Timestamp) after(o Timestamp) bool {
	if t.Seconds != o.Seconds {
		return t.Seconds > o.Seconds
	}
	return t.Nanos > o.Nanos
}

// jitterNanos returns a value in [0, 1e9) sourced from crypto/rand, used
// to deduplicate transaction ids generated within the same wall-clock
// second by different goroutines on the same payer.
func jitterNanos() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b[:]) % 1_000_000_000
}
