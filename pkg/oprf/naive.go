package oprf

import (
	"context"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/poseidon"
)

// Naive is the single-key OPRF evaluator (§4.5): no network I/O, no
// suspension. Equivalent to Cooperative when the master key is held
// whole by one party.
type Naive struct {
	key field.Scalar
}

// NewNaive builds a Naive evaluator holding the whole master secret.
func NewNaive(key field.Scalar) *Naive {
	return &Naive{key: key}
}

// Process implements Protocol: P = hash_to_curve(u); Q = k*P; return
// squeeze(Q).
func (n *Naive) Process(_ context.Context, u field.Scalar) (field.Scalar, error) {
	p, err := hashToPoint(u)
	if err != nil {
		return field.Scalar{}, err
	}
	q := curve.ScalarMul(p, n.key)
	return poseidon.Point(q), nil
}
