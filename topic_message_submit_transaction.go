package hedera

import (
	"context"
	"time"

	"github.com/hashgraph/hedera-sdk-go-core/internal/hederaerrors"
	"github.com/hashgraph/hedera-sdk-go-core/internal/wire"
)

// DefaultChunkSize and DefaultMaxChunks bound an unchunked message
// submission's automatic split into a sequence of sub-transactions.
const (
	DefaultChunkSize = 1024
	DefaultMaxChunks = 20
)

func (id TopicID) ToWire() wire.TopicID {
	return wire.TopicID{ShardNum: int64(id.Shard), RealmNum: int64(id.Realm), TopicNum: int64(id.Num)}
}

func TopicIDFromWire(w wire.TopicID) TopicID {
	return TopicID{EntityID{Shard: uint64(w.ShardNum), Realm: uint64(w.RealmNum), Num: uint64(w.TopicNum)}}
}

// topicMessageSubmitPayload implements TransactionPayload for one chunk
// of a topic message submission. message is this chunk's slice only;
// chunkInfo is nil for a single-chunk send.
type topicMessageSubmitPayload struct {
	topicID   TopicID
	message   []byte
	chunkInfo *wire.ConsensusMessageChunkInfo
}

func (p *topicMessageSubmitPayload) FieldNumber() wire.FieldNumber {
	return wire.FieldConsensusSubmitMessage
}

func (p *topicMessageSubmitPayload) Marshal() []byte {
	return wire.ConsensusSubmitMessageTransactionBody{
		TopicID:   p.topicID.ToWire(),
		Message:   p.message,
		ChunkInfo: p.chunkInfo,
	}.Marshal()
}

func (p *topicMessageSubmitPayload) DefaultMaxTransactionFee() Hbar { return defaultMaxTransactionFee }

// TopicMessageSubmitTransaction is the builder for a (possibly chunked)
// consensus message send. Unlike every other concrete type, it does not
// itself satisfy TransactionPayload: Freeze here fans out over chunks
// first, producing one independent *Transaction per chunk, each of which
// then fans out over nodes exactly like any other transaction.
type TopicMessageSubmitTransaction struct {
	topicID   TopicID
	message   []byte
	chunkSize int
	maxChunks int

	maxTransactionFee *Hbar
}

func NewTopicMessageSubmitTransaction() *TopicMessageSubmitTransaction {
	return &TopicMessageSubmitTransaction{chunkSize: DefaultChunkSize, maxChunks: DefaultMaxChunks}
}

func (b *TopicMessageSubmitTransaction) SetTopicID(id TopicID) *TopicMessageSubmitTransaction {
	b.topicID = id
	return b
}

func (b *TopicMessageSubmitTransaction) SetMessage(message []byte) *TopicMessageSubmitTransaction {
	b.message = message
	return b
}

func (b *TopicMessageSubmitTransaction) SetChunkSize(n int) *TopicMessageSubmitTransaction {
	b.chunkSize = n
	return b
}

func (b *TopicMessageSubmitTransaction) SetMaxChunks(n int) *TopicMessageSubmitTransaction {
	b.maxChunks = n
	return b
}

func (b *TopicMessageSubmitTransaction) SetMaxTransactionFee(fee Hbar) *TopicMessageSubmitTransaction {
	b.maxTransactionFee = &fee
	return b
}

// usedChunks returns ceil(len(message)/chunkSize), with a floor of 1 so an
// empty message still produces one sub-transaction.
func (b *TopicMessageSubmitTransaction) usedChunks() int {
	if len(b.message) == 0 {
		return 1
	}
	return (len(b.message) + b.chunkSize - 1) / b.chunkSize
}

// FreezeWith splits the message into usedChunks() pieces and returns one
// frozen *Transaction per chunk, fanned out across nodeAccountIDs. The
// first chunk carries the primary transaction id; subsequent chunks
// derive theirs by adding the chunk index to the primary id's valid-start
// nanos, so every chunk's id is a deterministic, collision-free
// descendant of the first.
func (b *TopicMessageSubmitTransaction) FreezeWith(nodeAccountIDs []AccountID, payer AccountID) ([]*Transaction, error) {
	used := b.usedChunks()
	if used > b.maxChunks {
		return nil, &hederaerrors.UsageError{
			Op:  "freeze",
			Err: hederaerrors.ErrMaxChunksExceeded,
		}
	}

	primaryID := TransactionID{AccountID: payer, ValidStart: TimestampFromTime(time.Now())}
	out := make([]*Transaction, used)

	for i := 0; i < used; i++ {
		start := i * b.chunkSize
		end := start + b.chunkSize
		if end > len(b.message) {
			end = len(b.message)
		}

		chunkID := primaryID
		if i > 0 {
			chunkID.ValidStart = primaryID.ValidStart.PlusNanos(int64(i))
		}

		payload := &topicMessageSubmitPayload{
			topicID: b.topicID,
			message: append([]byte(nil), b.message[start:end]...),
		}
		if used > 1 {
			payload.chunkInfo = &wire.ConsensusMessageChunkInfo{
				InitialTransactionID: primaryID.ToWire(),
				Total:                int32(used),
				Number:               int32(i + 1),
			}
		}

		tx := NewTransaction(payload)
		if b.maxTransactionFee != nil {
			tx.SetMaxTransactionFee(*b.maxTransactionFee)
		}
		tx.SetTransactionID(chunkID)
		if err := tx.FreezeWith(nodeAccountIDs, payer); err != nil {
			return nil, err
		}
		out[i] = tx
	}

	return out, nil
}

// ExecuteAll freezes, signs, and submits every chunk through client in
// strict order, awaiting each chunk's consensus receipt before
// submitting the next: a later chunk references the first chunk's
// transaction id as its initial-transaction-id, so a chunk that never
// reached consensus would leave any that follow it unexecutable anyway.
// perChunkTimeout bounds each chunk's post-submit receipt wait; zero
// uses the receipt query's own engine default. Responses are returned
// in chunk order, truncated at the first failure.
func (b *TopicMessageSubmitTransaction) ExecuteAll(ctx context.Context, client *Client, perChunkTimeout time.Duration) ([]TransactionResponse, error) {
	if client.operator == nil {
		return nil, hederaerrors.ErrNoPayerAccountOrTransactionID
	}

	chunks, err := b.FreezeWith(client.defaultNodeAccountIDs(), client.operator.AccountID)
	if err != nil {
		return nil, err
	}
	for _, chunk := range chunks {
		if err := chunk.Sign(client.operator.Signer); err != nil {
			return nil, err
		}
	}

	responses := make([]TransactionResponse, 0, len(chunks))
	for _, chunk := range chunks {
		resp, err := chunk.Execute(ctx, client)
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)

		receiptCtx := ctx
		if perChunkTimeout > 0 {
			var cancel context.CancelFunc
			receiptCtx, cancel = context.WithTimeout(ctx, perChunkTimeout)
			defer cancel()
		}
		if _, err := NewTransactionReceiptQuery().
			SetTransactionID(resp.TransactionID).
			SetNodeAccountIDs([]AccountID{resp.NodeID}).
			Execute(receiptCtx, client); err != nil {
			return responses, err
		}
	}
	return responses, nil
}

// decodeTopicMessageSubmitPayload is the catalog entry for reconstructing
// a single chunk's payload from its wire (field number, bytes) pair.
func decodeTopicMessageSubmitPayload(dataBytes []byte) (TransactionPayload, error) {
	body, err := wire.UnmarshalConsensusSubmitMessageTransactionBody(dataBytes)
	if err != nil {
		return nil, &hederaerrors.FromProtobuf{Message: "consensus submit message body", Err: err}
	}
	return &topicMessageSubmitPayload{
		topicID:   TopicIDFromWire(body.TopicID),
		message:   body.Message,
		chunkInfo: body.ChunkInfo,
	}, nil
}
