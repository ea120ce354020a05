// Package oprf implements the oblivious-PRF protocol (§4.5, §4.6): a
// single-key naive evaluator and a t-of-n threshold cooperative
// evaluator that blinds the input, fans out to peer agents, collects a
// quorum of partial evaluations, interpolates, and unblinds.
package oprf

import (
	"context"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// Protocol is the capability the fingerprint pipeline consumes (mirrors
// txfp.OPRF; restated here so this package has no dependency on txfp).
type Protocol interface {
	Process(ctx context.Context, u field.Scalar) (field.Scalar, error)
}

// hashToPoint is the shared first step of both variants: P = hash_to_curve(u).
func hashToPoint(u field.Scalar) (curve.Point, error) {
	ub := u.Bytes()
	return curve.HashToCurve(ub[:])
}
