// Package ferr defines the error taxonomy shared by every layer of the
// fingerprinting service, so that transport bindings can map a failure to
// the right status code without string-matching error messages.
package ferr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by its recovery and visibility disposition.
type Kind int

const (
	// InvalidInput covers malformed request data: bad BIC, out-of-range
	// currency, pre-epoch timestamp, malformed compact encoding.
	InvalidInput Kind = iota
	// PeerUnavailable covers a single cooperative peer failing or
	// returning malformed data; the peer is dropped from the quorum,
	// nothing is retried, and nothing is surfaced to the caller.
	PeerUnavailable
	// QuorumUnavailable means fewer than the threshold of peers
	// responded successfully.
	QuorumUnavailable
	// InternalCrypto covers failures inside Poseidon, hash-to-curve, or
	// curve point decoding that are not attributable to caller input.
	InternalCrypto
	// ConfigInvalid covers startup-time configuration errors: agent id
	// out of range, topology missing a peer, threshold out of bounds.
	ConfigInvalid
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case PeerUnavailable:
		return "peer_unavailable"
	case QuorumUnavailable:
		return "quorum_unavailable"
	case InternalCrypto:
		return "internal_crypto"
	case ConfigInvalid:
		return "config_invalid"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carried across every package boundary
// in this module. Use errors.As to recover the Kind at a transport edge.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no underlying cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("%s", msg)}
}

// Wrap builds an *Error around an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
