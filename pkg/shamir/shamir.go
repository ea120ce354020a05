// Package shamir implements Shamir secret sharing over the BN254 scalar
// field and the Lagrange interpolation used to reconstruct a secret or
// to combine partial OPRF evaluations (§4.1).
package shamir

import (
	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// SecretSharing holds a (threshold, total) Shamir split of a secret. The
// secret itself is never retained; only its shares are.
type SecretSharing struct {
	threshold int
	total     int
	shares    map[int]field.Scalar
}

// Threshold returns t.
func (s *SecretSharing) Threshold() int { return s.threshold }

// Total returns n.
func (s *SecretSharing) Total() int { return s.total }

// Shares returns the full {1..n} -> F share map.
func (s *SecretSharing) Shares() map[int]field.Scalar {
	out := make(map[int]field.Scalar, len(s.shares))
	for k, v := range s.shares {
		out[k] = v
	}
	return out
}

// Share returns the share for agent i, if present.
func (s *SecretSharing) Share(i int) (field.Scalar, bool) {
	v, ok := s.shares[i]
	return v, ok
}

// scalarFromIndex embeds a positive party index into F.
func scalarFromIndex(i int) field.Scalar {
	return field.FromUint64(uint64(i))
}

// Generate builds a Shamir (t, n) sharing of k: 1<=t<=n is required,
// and a violation returns a ConfigInvalid error (§4.1 precondition).
// Samples t-1 uniform
// coefficients and evaluates the resulting degree-(t-1) polynomial at
// 1..n.
func Generate(k field.Scalar, t, n int) (*SecretSharing, error) {
	if t < 1 {
		return nil, ferr.New(ferr.ConfigInvalid, "shamir.Generate", "threshold must be >= 1")
	}
	if t > n {
		return nil, ferr.New(ferr.ConfigInvalid, "shamir.Generate", "threshold must be <= total shares")
	}

	coefficients := make([]field.Scalar, t)
	coefficients[0] = k
	for j := 1; j < t; j++ {
		c, err := field.Random()
		if err != nil {
			return nil, ferr.Wrap(ferr.InternalCrypto, "shamir.Generate", err)
		}
		coefficients[j] = c
	}

	shares := make(map[int]field.Scalar, n)
	for i := 1; i <= n; i++ {
		x := scalarFromIndex(i)
		share := coefficients[0]
		xPower := x
		for j := 1; j < t; j++ {
			share = share.Add(coefficients[j].Mul(xPower))
			xPower = xPower.Mul(x)
		}
		shares[i] = share
	}

	return &SecretSharing{threshold: t, total: n, shares: shares}, nil
}

// LagrangeCoefficient computes lambda_i(0) = Prod_{j in indices, j!=i} (-j)*(i-j)^-1,
// the Lagrange basis polynomial for index i evaluated at x=0 (§4.1).
func LagrangeCoefficient(i int, indices []int) field.Scalar {
	iF := scalarFromIndex(i)
	result := field.One()
	for _, j := range indices {
		if j == i {
			continue
		}
		jF := scalarFromIndex(j)
		numerator := jF.Neg()
		denominator := iF.Sub(jF)
		result = result.Mul(numerator.Mul(denominator.Inverse()))
	}
	return result
}

// Reconstruct recombines the secret from a quorum of shares, keyed by
// agent id, using Lagrange interpolation at x=0 (§4.1 invariant).
func Reconstruct(shares map[int]field.Scalar) field.Scalar {
	indices := make([]int, 0, len(shares))
	for i := range shares {
		indices = append(indices, i)
	}

	acc := field.Zero()
	for _, i := range indices {
		lambda := LagrangeCoefficient(i, indices)
		acc = acc.Add(lambda.Mul(shares[i]))
	}
	return acc
}
