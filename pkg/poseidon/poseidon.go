// Package poseidon provides the fixed-arity Poseidon squeeze functions
// used throughout the fingerprint pipeline (§4.3, §4.4): folding two or
// three field elements, a curve point, or an arbitrary byte buffer down
// to a single element of F.
//
// gnark-crypto ships a generic streaming Poseidon2 Merkle-Damgard sponge
// rather than fixed-arity circomlib round constants (no circom-exact
// BN254 Poseidon implementation appears anywhere in the reference pack).
// The fixed-arity contract is realized here by feeding exactly the
// required number of field-element chunks through that streaming sponge,
// the same pattern the grounding reference uses for its own HashPair.
package poseidon

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/field"
)

func fold(elems ...field.Scalar) field.Scalar {
	h := poseidon2.NewMerkleDamgardHasher()
	for _, e := range elems {
		b := e.BytesBE()
		_, _ = h.Write(b[:])
	}
	sum := h.Sum(nil)
	return field.FromBigEndianReduced(sum)
}

// Pair is the arity-2 Poseidon squeeze.
func Pair(a, b field.Scalar) field.Scalar {
	return fold(a, b)
}

// Triple is the arity-3 Poseidon squeeze, used by the DateTime
// component (§4.3).
func Triple(a, b, c field.Scalar) field.Scalar {
	return fold(a, b, c)
}

// Point squeezes a curve point into F (§4.4, group-element variant):
// split the 32-byte compressed encoding into two 16-byte chunks, decode
// each with the canonical-or-zero fallback, and fold through Pair.
func Point(p curve.Point) field.Scalar {
	enc := p.Bytes()
	lo := field.FromCanonicalOrZero(enc[:16])
	hi := field.FromCanonicalOrZero(enc[16:])
	return Pair(lo, hi)
}

// Bytes squeezes an arbitrary byte buffer into F (§4.4, byte-buffer
// variant): split into four equal limbs (L must be >=4 and a multiple of
// 4), decode each with the canonical-or-zero fallback, and fold left
// through Pair starting from zero.
func Bytes(buf []byte) field.Scalar {
	l := len(buf)
	if l < 4 || l%4 != 0 {
		panic("poseidon: buffer length must be >=4 and a multiple of 4")
	}
	limb := l / 4
	h := field.Zero()
	for i := 0; i < 4; i++ {
		chunk := buf[i*limb : (i+1)*limb]
		elem := field.FromCanonicalOrZero(chunk)
		h = Pair(elem, h)
	}
	return h
}
