package hedera

import (
	"sync"
	"time"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/network"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// DefaultTransactionValidDuration is the window, from valid-start, during
// which a node will accept a transaction for consensus.
const DefaultTransactionValidDuration = 120 * time.Second

// TransactionPayload is the contract a concrete transaction type (a
// transfer, a topic message submission, ...) implements to ride the
// shared freeze/sign/serialize pipeline below. The payload owns only its
// own typed body; everything common (ids, fee, memo, node fan-out,
// signing) lives on Transaction.
type TransactionPayload interface {
	// FieldNumber is the TransactionBody oneof field this payload
	// occupies once marshaled.
	FieldNumber() wire.FieldNumber
	// Marshal returns the payload's own wire encoding, unwrapped (not
	// tagged with FieldNumber — Transaction does that).
	Marshal() []byte
	// DefaultMaxTransactionFee is used when the caller never calls
	// SetMaxTransactionFee.
	DefaultMaxTransactionFee() Hbar
}

type transactionState int

const (
	transactionMutable transactionState = iota
	transactionFrozen
	transactionSourced
)

// Transaction is the generic build/freeze/sign/serialize pipeline shared
// by every concrete transaction type. A fresh Transaction is mutable:
// every setter is available. Freeze fixes the node fan-out and bodies and
// moves it to frozen, at which point only signing and serialization are
// legal. FromBytes produces a transaction in the sourced state directly,
// skipping freeze (the bytes already encode frozen bodies).
type Transaction struct {
	mu sync.Mutex

	payload TransactionPayload

	nodeAccountIDs   []AccountID
	transactionID    TransactionID
	hasTransactionID bool
	// transactionIDPinned is set only by SetTransactionID, distinct from
	// hasTransactionID (which also covers an id fixed automatically at
	// freeze). It is what Execute reports as "explicit" to the engine:
	// an auto-generated id is still regenerated on TRANSACTION_EXPIRED,
	// a caller-pinned one is not.
	transactionIDPinned bool

	maxTransactionFee        *Hbar
	transactionValidDuration time.Duration
	memo                     string
	generateRecord           bool

	state transactionState

	// Set at freeze (or reconstructed by FromBytes): one entry per node
	// in nodeAccountIDs, sharing an identical body apart from
	// node_account_id. A chunked send is one Transaction per chunk.
	bodies  []wire.TransactionBody
	sigMaps []wire.SignatureMap
}

// NewTransaction wraps payload in a fresh, mutable Transaction.
func NewTransaction(payload TransactionPayload) *Transaction {
	return &Transaction{
		payload:                  payload,
		transactionValidDuration: DefaultTransactionValidDuration,
	}
}

// SetNodeAccountIDs pins the transaction to an explicit node subset,
// bypassing the client's health-based sampling at execute time.
func (t *Transaction) SetNodeAccountIDs(ids []AccountID) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		t.nodeAccountIDs = append([]AccountID(nil), ids...)
	}
	return t
}

// SetTransactionID pins an explicit transaction id. A transaction with an
// explicit id is never regenerated on TRANSACTION_EXPIRED; the engine
// surfaces it as fatal instead.
func (t *Transaction) SetTransactionID(id TransactionID) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		t.transactionID = id
		t.hasTransactionID = true
		t.transactionIDPinned = true
	}
	return t
}

func (t *Transaction) SetMaxTransactionFee(fee Hbar) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		t.maxTransactionFee = &fee
	}
	return t
}

func (t *Transaction) SetTransactionValidDuration(d time.Duration) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		t.transactionValidDuration = d
	}
	return t
}

func (t *Transaction) SetTransactionMemo(memo string) *Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		t.memo = memo
	}
	return t
}

// IsFrozen reports whether Freeze/FreezeWith/FromBytes has already run.
func (t *Transaction) IsFrozen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state != transactionMutable
}

func (t *Transaction) maxFee() Hbar {
	if t.maxTransactionFee != nil {
		return *t.maxTransactionFee
	}
	return t.payload.DefaultMaxTransactionFee()
}

// FreezeWith fixes the node fan-out and payer explicitly, without a
// Client. payer is supplied by the caller (there is no operator to
// source it from); if no transaction id was set, one is built from payer
// and the current time. This is the "explicit node ids and no client"
// half of the freeze contract.
func (t *Transaction) FreezeWith(nodeAccountIDs []AccountID, payer AccountID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != transactionMutable {
		return nil
	}
	if len(nodeAccountIDs) == 0 && len(t.nodeAccountIDs) == 0 {
		return &hederaerrors.UsageError{Op: "freeze", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
	}
	if len(nodeAccountIDs) > 0 {
		t.nodeAccountIDs = append([]AccountID(nil), nodeAccountIDs...)
	}
	if !t.hasTransactionID {
		t.transactionID = TransactionID{AccountID: payer, ValidStart: TimestampFromTime(time.Now())}
		t.hasTransactionID = true
	}
	return t.freezeLocked()
}

// freezeWithClient is called by Client.FreezeWith (component H); it supplies
// the operator-derived payer/txID and the routing table's current node
// set when the caller hasn't pinned an explicit one.
func (t *Transaction) freezeWithClient(defaultNodeIDs []AccountID, operator AccountID, gen *idGenerator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != transactionMutable {
		return nil
	}
	if len(t.nodeAccountIDs) == 0 {
		if len(defaultNodeIDs) == 0 {
			return &hederaerrors.UsageError{Op: "freeze", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
		}
		t.nodeAccountIDs = defaultNodeIDs
	}
	if !t.hasTransactionID {
		t.transactionID = gen.Generate(operator)
		t.hasTransactionID = true
	}
	return t.freezeLocked()
}

// freezeLocked builds one body per node account id, all identical apart
// from node_account_id. Caller holds t.mu and has already resolved
// nodeAccountIDs and transactionID.
func (t *Transaction) freezeLocked() error {
	dataBytes := t.payload.Marshal()
	fieldNumber := t.payload.FieldNumber()

	t.bodies = make([]wire.TransactionBody, len(t.nodeAccountIDs))
	t.sigMaps = make([]wire.SignatureMap, len(t.nodeAccountIDs))
	for i, nodeID := range t.nodeAccountIDs {
		t.bodies[i] = wire.TransactionBody{
			TransactionID:            t.transactionID.ToWire(),
			NodeAccountID:            nodeID.ToWire(),
			TransactionFee:           uint64(t.maxFee().AsTinybar()),
			TransactionValidDuration: DurationFromSeconds(int64(t.transactionValidDuration / time.Second)).ToWire(),
			GenerateRecord:           t.generateRecord,
			Memo:                     t.memo,
			DataFieldNumber:          fieldNumber,
			DataBytes:                dataBytes,
		}
	}
	t.state = transactionFrozen
	return nil
}

// Sign attaches a signature from signer over every body's canonical
// bytes. Calling Sign twice with signers carrying the same public key is
// a no-op on the second call (duplicate-signer suppression): the
// signature map is keyed by public-key prefix, and an existing entry is
// left untouched rather than appended to or replaced.
func (t *Transaction) Sign(signer Signer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		return &hederaerrors.UsageError{Op: "sign", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
	}
	prefix := signer.PublicKey().Bytes
	for i, body := range t.bodies {
		if t.sigMaps[i].IndexOfPrefix(prefix) >= 0 {
			continue
		}
		pair, err := ToWirePair(signer, body.Marshal())
		if err != nil {
			return err
		}
		t.sigMaps[i].SigPair = append(t.sigMaps[i].SigPair, pair)
	}
	return nil
}

// AddSignaturePair attaches a single externally-produced signature
// directly, bypassing Signer. This only makes sense when every node body
// is byte-identical, i.e. the transaction fans out to exactly one node
// body — a raw signature can't cover more than one distinct body.
// Multi-node or multi-chunk requests must use Sign instead.
func (t *Transaction) AddSignaturePair(pub PublicKey, signature []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		return &hederaerrors.UsageError{Op: "add-signature", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
	}
	if len(t.bodies) != 1 {
		return &hederaerrors.UsageError{Op: "add-signature", Err: hederaerrors.ErrChunksRequireNoManualSigning}
	}
	if t.sigMaps[0].IndexOfPrefix(pub.Bytes) >= 0 {
		return nil
	}
	t.sigMaps[0].SigPair = append(t.sigMaps[0].SigPair, wire.SignaturePair{
		PubKeyPrefix: pub.Bytes,
		IsECDSA:      pub.IsECDSA,
		Signature:    signature,
	})
	return nil
}

// IsSignedBy reports whether pub has already contributed a signature to
// the first node's signature map (every node's map carries the same set
// of signers).
func (t *Transaction) IsSignedBy(pub PublicKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.sigMaps) == 0 {
		return false
	}
	return t.sigMaps[0].IndexOfPrefix(pub.Bytes) >= 0
}

// signedTransactionsLocked builds one wire.SignedTransaction per node,
// pairing each body with its signature map. Caller holds t.mu.
func (t *Transaction) signedTransactionsLocked() []wire.SignedTransaction {
	out := make([]wire.SignedTransaction, len(t.bodies))
	for i, body := range t.bodies {
		out[i] = wire.SignedTransaction{
			BodyBytes: body.Marshal(),
			SigMap:    t.sigMaps[i],
		}
	}
	return out
}

// ToBytes serializes the frozen, signed transaction as a wire.TransactionList:
// one services.Transaction per node, each carrying its own signed
// transaction bytes.
func (t *Transaction) ToBytes() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == transactionMutable {
		return nil, &hederaerrors.UsageError{Op: "to-bytes", Err: hederaerrors.ErrFreezeUnsetNodeAccountIDs}
	}
	signed := t.signedTransactionsLocked()
	list := wire.TransactionList{TransactionList: make([]wire.Transaction, len(signed))}
	for i, s := range signed {
		list.TransactionList[i] = wire.Transaction{SignedTransactionBytes: s.Marshal()}
	}
	return list.Marshal(), nil
}

// TransactionFromBytes reconstructs a Transaction from the bytes produced
// by ToBytes. decode turns the body's opaque (field number, bytes) pair
// back into a TransactionPayload; it is provided by the caller (the
// catalog) so this shared pipeline never names a concrete transaction
// type.
func TransactionFromBytes(data []byte, decode func(fieldNumber wire.FieldNumber, dataBytes []byte) (TransactionPayload, error)) (*Transaction, error) {
	list, err := wire.UnmarshalTransactionList(data)
	if err != nil {
		return nil, &hederaerrors.FromProtobuf{Message: "transaction list", Err: err}
	}
	if len(list.TransactionList) == 0 {
		return nil, &hederaerrors.FromProtobuf{Message: "transaction had no signed transaction bytes"}
	}

	bodies := make([]wire.TransactionBody, len(list.TransactionList))
	sigMaps := make([]wire.SignatureMap, len(list.TransactionList))
	nodeIDs := make([]AccountID, len(list.TransactionList))

	for i, txn := range list.TransactionList {
		if len(txn.SignedTransactionBytes) == 0 {
			return nil, &hederaerrors.FromProtobuf{Message: "transaction had no signed transaction bytes"}
		}
		signed, err := wire.UnmarshalSignedTransaction(txn.SignedTransactionBytes)
		if err != nil {
			return nil, &hederaerrors.FromProtobuf{Message: "signed transaction", Err: err}
		}
		body, err := wire.UnmarshalTransactionBody(signed.BodyBytes)
		if err != nil {
			return nil, &hederaerrors.FromProtobuf{Message: "unknown transaction data", Err: err}
		}
		if i > 0 && !body.Equal(bodies[0]) {
			return nil, &hederaerrors.FromProtobuf{Message: "transaction parts unexpectedly unequal"}
		}
		bodies[i] = body
		sigMaps[i] = signed.SigMap
		nodeIDs[i] = AccountIDFromWire(body.NodeAccountID)
	}

	payload, err := decode(bodies[0].DataFieldNumber, bodies[0].DataBytes)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		payload:                  payload,
		nodeAccountIDs:           nodeIDs,
		transactionID:            TransactionIDFromWire(bodies[0].TransactionID),
		hasTransactionID:         true,
		maxTransactionFee:        hbarPtr(HbarFromTinybars(int64(bodies[0].TransactionFee))),
		transactionValidDuration: time.Duration(bodies[0].TransactionValidDuration.Seconds) * time.Second,
		memo:                     bodies[0].Memo,
		generateRecord:           bodies[0].GenerateRecord,
		state:                    transactionSourced,
		bodies:                   bodies,
		sigMaps:                  sigMaps,
	}, nil
}

func hbarPtr(h Hbar) *Hbar { return &h }

// singleNodeBytes returns the wire.Transaction bytes for the sole node
// this transaction is addressed to. A QueryHeader.Payment is one
// Transaction message, not a TransactionList, so this is distinct from
// ToBytes and only valid for a transaction frozen against exactly one
// node — the shape every query payment transaction takes.
func (t *Transaction) singleNodeBytes() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.bodies) != 1 {
		return nil, &hederaerrors.UsageError{Op: "query-payment", Err: hederaerrors.ErrQueryPaymentMustTargetOneNode}
	}
	signed := t.signedTransactionsLocked()[0]
	txn := wire.Transaction{SignedTransactionBytes: signed.Marshal()}
	return txn.Marshal(), nil
}

// executableNodeIDs adapts nodeAccountIDs to the engine's NodeID space.
func (t *Transaction) executableNodeIDs() []network.NodeID {
	out := make([]network.NodeID, len(t.nodeAccountIDs))
	for i, id := range t.nodeAccountIDs {
		out[i] = toNodeID(id)
	}
	return out
}

// bodyIndexForNode finds the body/sigMap slot matching node, used by
// Execute to pick the right pre-signed body for whichever node the
// engine samples.
func (t *Transaction) bodyIndexForNode(node network.NodeID) (int, bool) {
	for i, id := range t.nodeAccountIDs {
		if toNodeID(id) == node {
			return i, true
		}
	}
	return 0, false
}
