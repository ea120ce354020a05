// Package curve wraps the BN254 G1 group: the fixed generator, compressed
// encoding, scalar multiplication, and the domain-separated hash-to-curve
// map used by the OPRF (§3, §4.5).
package curve

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// Size is the compressed encoding length of a Point.
const Size = 32

// DomainTag is the fixed domain-separation tag for hash-to-curve (§3).
const DomainTag = "TX_FINGERPRINT"

// Point is an element of G1.
type Point struct {
	inner bn254.G1Affine
}

// Generator returns the fixed G1 generator.
func Generator() Point {
	_, _, g1, _ := bn254.Generators()
	return Point{inner: g1}
}

// HashToCurve deterministically maps msg to a point in G1, domain-separated
// by DomainTag. The Rust original specifies an "Elligator2-style" suite;
// no such BN254 suite exists in the reference pack, so gnark-crypto's
// RFC 9380 SSWU-based HashToG1 is substituted (see DESIGN.md).
func HashToCurve(msg []byte) (Point, error) {
	p, err := bn254.HashToG1(msg, []byte(DomainTag))
	if err != nil {
		return Point{}, ferr.Wrap(ferr.InternalCrypto, "curve.HashToCurve", err)
	}
	return Point{inner: p}, nil
}

// ScalarMul returns k*p.
func ScalarMul(p Point, k field.Scalar) Point {
	var r bn254.G1Affine
	r.ScalarMultiplication(&p.inner, k.BigInt())
	return Point{inner: r}
}

// Add returns p+q.
func Add(p, q Point) Point {
	var pj, qj, rj bn254.G1Jac
	pj.FromAffine(&p.inner)
	qj.FromAffine(&q.inner)
	rj.Set(&pj).AddAssign(&qj)
	var r bn254.G1Affine
	r.FromJacobian(&rj)
	return Point{inner: r}
}

// Bytes returns the compressed 32-byte encoding.
func (p Point) Bytes() [Size]byte {
	return p.inner.Bytes()
}

// SetBytes decodes a compressed 32-byte encoding, rejecting any buffer
// that is not the canonical compressed form of a point on the curve
// (§4.8's peer-input validation relies on this).
func SetBytes(b []byte) (Point, error) {
	if len(b) != Size {
		return Point{}, ferr.New(ferr.InvalidInput, "curve.SetBytes", "point must be exactly 32 bytes")
	}
	var p bn254.G1Affine
	var arr [Size]byte
	copy(arr[:], b)
	if _, err := p.SetBytes(arr[:]); err != nil {
		return Point{}, ferr.Wrap(ferr.InvalidInput, "curve.SetBytes", err)
	}
	return Point{inner: p}, nil
}
