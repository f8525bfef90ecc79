// Package precheck defines the small set of transaction/query precheck
// status codes the execute engine needs to classify, as a behavioral
// stand-in for the much larger response-code enum a live network
// returns. Exact numeric parity with any particular network's wire enum
// is not attempted; only the codes the decision table inspects are
// named here (see DESIGN.md).
package precheck

// Status is a numeric precheck/response code extracted from a decoded
// response's header.
type Status int32

const (
	// Unknown marks a status this package has no classification for.
	// The engine treats it as "unrecognized" and fails fatally.
	Unknown Status = 0

	// OK means the attempt was accepted for processing.
	OK Status = 1

	// Busy means the node is temporarily overloaded; retry against the
	// next sampled node without advancing the outer backoff.
	Busy Status = 2

	// PlatformNotActive means the node's consensus platform isn't
	// caught up yet; same handling as Busy.
	PlatformNotActive Status = 3

	// TransactionExpired means the submitted valid-start is too old by
	// the time the node processed it.
	TransactionExpired Status = 4
)

// FromWireCode converts a response's raw precheck/response code field to
// a Status, collapsing anything outside the known range to Unknown
// rather than letting an unrecognized value masquerade as OK.
func FromWireCode(code int32) Status {
	s := Status(code)
	switch s {
	case OK, Busy, PlatformNotActive, TransactionExpired:
		return s
	default:
		return Unknown
	}
}
