// Package hederaerrors defines the structured error taxonomy surfaced by
// the client, network, execute engine, transaction pipeline, and query
// payment protocol. Every variant wraps enough context to let a caller
// branch on status codes without parsing strings.
package hederaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra per-instance context.
var (
	ErrNoPayerAccountOrTransactionID = errors.New("no payer account or transaction id: freeze requires a client with an operator, or an explicit transaction id and payer signer")
	ErrNodeAccountUnknown            = errors.New("node account unknown: explicit node id does not map to a known endpoint")
	ErrResponseStatusUnrecognized    = errors.New("response status unrecognized")
	ErrFreezeUnsetNodeAccountIDs     = errors.New("freeze attempted without a client and without explicit node account ids")
	ErrSignatureVerify               = errors.New("signature verification failed")
	ErrChunksRequireNoManualSigning  = errors.New("cannot manually sign a request with more than one chunk: a signature would cover only one sub-body")
	ErrQueryPaymentMustTargetOneNode = errors.New("query payment transaction must be frozen against exactly one node")
	ErrMaxChunksExceeded             = errors.New("message requires more chunks than max-chunks allows")
)

// TimedOut reports that the execute engine's backoff budget was exhausted
// without a conclusive outcome. Cause is the most recent retryable error
// observed, kept for diagnostics.
type TimedOut struct {
	Cause error
}

func (e *TimedOut) Error() string {
	if e.Cause == nil {
		return "operation timed out"
	}
	return fmt.Sprintf("operation timed out: %v", e.Cause)
}

func (e *TimedOut) Unwrap() error { return e.Cause }

// GRPCStatus reports a non-retryable transport failure.
type GRPCStatus struct {
	Code string
	Err  error
}

func (e *GRPCStatus) Error() string {
	return fmt.Sprintf("grpc status %s: %v", e.Code, e.Err)
}

func (e *GRPCStatus) Unwrap() error { return e.Err }

// TransactionPrecheckStatus is a server-reported rejection of a transaction
// before consensus, scoped to a known transaction id.
type TransactionPrecheckStatus struct {
	Status string
	TxID   fmt.Stringer
}

func (e *TransactionPrecheckStatus) Error() string {
	return fmt.Sprintf("transaction %v failed precheck with status %s", e.TxID, e.Status)
}

// TransactionNoIDPrecheckStatus mirrors TransactionPrecheckStatus for the
// case where no transaction id was available (e.g. ping).
type TransactionNoIDPrecheckStatus struct {
	Status string
}

func (e *TransactionNoIDPrecheckStatus) Error() string {
	return fmt.Sprintf("transaction failed precheck with status %s", e.Status)
}

// QueryPrecheckStatus mirrors TransactionPrecheckStatus for queries.
type QueryPrecheckStatus struct {
	Status string
	TxID   fmt.Stringer
}

func (e *QueryPrecheckStatus) Error() string {
	return fmt.Sprintf("query %v failed precheck with status %s", e.TxID, e.Status)
}

// QueryPaymentPrecheckStatus reports a precheck rejection of the payment
// transaction attached to a paid query.
type QueryPaymentPrecheckStatus struct {
	Status string
	TxID   fmt.Stringer
}

func (e *QueryPaymentPrecheckStatus) Error() string {
	return fmt.Sprintf("query payment %v failed precheck with status %s", e.TxID, e.Status)
}

// QueryNoPaymentPrecheckStatus mirrors QueryPrecheckStatus without a
// transaction id (free queries).
type QueryNoPaymentPrecheckStatus struct {
	Status string
}

func (e *QueryNoPaymentPrecheckStatus) Error() string {
	return fmt.Sprintf("query failed precheck with status %s", e.Status)
}

// ReceiptStatus is a consensus-time failure surfaced by a follow-up
// receipt query. TxID is optional (nil when unknown).
type ReceiptStatus struct {
	Status string
	TxID   fmt.Stringer
}

func (e *ReceiptStatus) Error() string {
	if e.TxID == nil {
		return fmt.Sprintf("receipt failed with status %s", e.Status)
	}
	return fmt.Sprintf("receipt for %v failed with status %s", e.TxID, e.Status)
}

// MaxQueryPaymentExceeded reports that a query's cost phase produced a
// value above the caller's cap.
type MaxQueryPaymentExceeded struct {
	QueryCost      int64 // tinybars
	MaxQueryPayment int64 // tinybars
}

func (e *MaxQueryPaymentExceeded) Error() string {
	return fmt.Sprintf("query cost %d tinybar exceeds max query payment %d tinybar", e.QueryCost, e.MaxQueryPayment)
}

// FromProtobuf reports a wire-decoding failure.
type FromProtobuf struct {
	Message string
	Err     error
}

func (e *FromProtobuf) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("from-protobuf: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("from-protobuf: %s", e.Message)
}

func (e *FromProtobuf) Unwrap() error { return e.Err }

// BadEntityID reports an entity-id checksum mismatch.
type BadEntityID struct {
	Shard, Realm, Num uint64
	PresentChecksum   string
	ExpectedChecksum  string
}

func (e *BadEntityID) Error() string {
	return fmt.Sprintf("entity id %d.%d.%d-%s has invalid checksum, expected %s",
		e.Shard, e.Realm, e.Num, e.PresentChecksum, e.ExpectedChecksum)
}

// BasicParse wraps a low-level parse failure (network name, entity id
// string form, etc).
type BasicParse struct {
	Input string
	Err   error
}

func (e *BasicParse) Error() string { return fmt.Sprintf("failed to parse %q: %v", e.Input, e.Err) }
func (e *BasicParse) Unwrap() error { return e.Err }

// UsageError reports a programmer error detected at freeze/sign time that
// is not a server response: mutually exclusive fields set together,
// manual signing of a multi-chunk transaction, and similar cases.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *UsageError) Unwrap() error { return e.Err }
