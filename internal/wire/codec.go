package wire

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// RawRequest wraps an already-encoded protobuf payload (everything in
// this module is hand-marshaled via protowire, never through generated
// struct types) so it can ride a grpc.ClientConnInterface.Invoke call
// without a generated proto.Message on either side.
type RawRequest struct {
	bytes []byte
}

// NewRawMessage wraps data for use as an Invoke arg.
func NewRawMessage(data []byte) *RawRequest { return &RawRequest{bytes: data} }

// Bytes returns the wrapped request payload, for fake channels in tests
// that need to inspect what was sent without a real transport round trip.
func (m *RawRequest) Bytes() []byte { return m.bytes }

// RawMessage is the Invoke reply target; Bytes returns what the server
// sent back once the call completes.
type RawMessage struct {
	bytes []byte
}

func (m *RawMessage) Bytes() []byte { return m.bytes }

// SetBytes lets a fake channel in tests fill in the reply without a real
// transport round trip through the codec above.
func (m *RawMessage) SetBytes(b []byte) { m.bytes = append([]byte(nil), b...) }

const rawCodecName = "hedera-raw"

type rawCodec struct{}

func (rawCodec) Name() string { return rawCodecName }

func (rawCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *RawRequest:
		return m.bytes, nil
	default:
		return nil, fmt.Errorf("hedera-raw codec: unsupported marshal type %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case *RawMessage:
		m.bytes = append([]byte(nil), data...)
		return nil
	default:
		return fmt.Errorf("hedera-raw codec: unsupported unmarshal type %T", v)
	}
}

func init() {
	encoding.RegisterCodec(rawCodec{})
}

// CallContentSubtype is the per-call option every Execute hook passes to
// Invoke so the raw codec above is used instead of grpc's default proto
// codec, which would otherwise require a generated proto.Message.
const CallContentSubtype = rawCodecName

// InvokeRaw calls method over channel with reqBytes as the already
// protobuf-encoded request body, and returns the response body exactly
// as the server framed it. extraOpts rides alongside the mandatory
// raw-codec subtype option, e.g. a caller's compressor selection.
func InvokeRaw(ctx context.Context, channel grpc.ClientConnInterface, method string, reqBytes []byte, extraOpts ...grpc.CallOption) ([]byte, error) {
	var reply RawMessage
	opts := append([]grpc.CallOption{grpc.CallContentSubtype(CallContentSubtype)}, extraOpts...)
	err := channel.Invoke(ctx, method, NewRawMessage(reqBytes), &reply, opts...)
	if err != nil {
		return nil, err
	}
	return reply.Bytes(), nil
}
