// Package field wraps the BN254 scalar field F used for every secret,
// share, Poseidon output, and fingerprint in this system.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/luxfi/fingerprinting/pkg/ferr"
)

// Size is the canonical byte length of a Scalar encoding.
const Size = fr.Bytes

// Scalar is an element of F.
type Scalar struct {
	inner fr.Element
}

// Zero returns the additive identity.
func Zero() Scalar { return Scalar{} }

// One returns the multiplicative identity.
func One() Scalar {
	var s Scalar
	s.inner.SetOne()
	return s
}

// FromUint64 embeds a u64 into F.
func FromUint64(v uint64) Scalar {
	var s Scalar
	s.inner.SetUint64(v)
	return s
}

// Random draws a uniform element of F from a cryptographic RNG.
func Random() (Scalar, error) {
	var s Scalar
	if _, err := s.inner.SetRandom(); err != nil {
		return Scalar{}, ferr.Wrap(ferr.InternalCrypto, "field.Random", err)
	}
	return s, nil
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.inner.IsZero() }

// Equal reports value equality.
func (s Scalar) Equal(o Scalar) bool { return s.inner.Equal(&o.inner) }

// Add returns s + o.
func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.inner.Add(&s.inner, &o.inner)
	return r
}

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.inner.Sub(&s.inner, &o.inner)
	return r
}

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar {
	var r Scalar
	r.inner.Mul(&s.inner, &o.inner)
	return r
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	var r Scalar
	r.inner.Neg(&s.inner)
	return r
}

// Inverse returns s^-1. Panics if s is zero; callers on the hot path
// (Lagrange interpolation with distinct indices) never pass zero here.
func (s Scalar) Inverse() Scalar {
	var r Scalar
	if s.inner.IsZero() {
		panic("field: inverse of zero")
	}
	r.inner.Inverse(&s.inner)
	return r
}

// BigInt returns the scalar's canonical unsigned representation.
func (s Scalar) BigInt() *big.Int {
	var bi big.Int
	s.inner.BigInt(&bi)
	return &bi
}

// BytesBE returns the canonical big-endian 32-byte encoding, the native
// gnark-crypto representation, used internally when feeding field
// elements into Poseidon.
func (s Scalar) BytesBE() [Size]byte {
	return s.inner.Bytes()
}

// Bytes returns the canonical little-endian 32-byte encoding mandated by
// §3 for shares, secrets, and fingerprints, via gnark-crypto's own
// fr.LittleEndian codec rather than a hand-rolled reversal.
func (s Scalar) Bytes() [Size]byte {
	var le [Size]byte
	fr.LittleEndian.PutElement(&le, s.inner)
	return le
}

// SetBytes decodes a little-endian 32-byte encoding, reducing mod the
// field order like gnark-crypto's own (big-endian) SetBytes. Used on data
// that is already known-valid (e.g. values coming back out of our own
// storage). fr.LittleEndian.Element rejects non-canonical input outright,
// so the reducing case still goes through a manual byte reversal into
// the native big-endian SetBytes, which gnark-crypto does not expose a
// little-endian wrapper for.
func SetBytes(le []byte) (Scalar, error) {
	if len(le) != Size {
		return Scalar{}, ferr.New(ferr.InvalidInput, "field.SetBytes", "scalar must be exactly 32 bytes")
	}
	be := make([]byte, Size)
	for i := 0; i < Size; i++ {
		be[i] = le[Size-1-i]
	}
	var s Scalar
	s.inner.SetBytes(be)
	return s, nil
}

// ParseCanonicalLE decodes a little-endian 32-byte buffer via
// fr.LittleEndian.Element, requiring it to be a canonical (fully reduced)
// field element. Used by the Compact decoder (§6), which must fail
// closed on non-canonical input rather than silently reduce it.
func ParseCanonicalLE(le []byte) (Scalar, error) {
	if len(le) != Size {
		return Scalar{}, ferr.New(ferr.InvalidInput, "field.ParseCanonicalLE", "scalar must be exactly 32 bytes")
	}
	var arr [Size]byte
	copy(arr[:], le)
	elem, err := fr.LittleEndian.Element(&arr)
	if err != nil {
		return Scalar{}, ferr.Wrap(ferr.InvalidInput, "field.ParseCanonicalLE", err)
	}
	return Scalar{inner: elem}, nil
}

// FromCanonicalOrZero implements the §4.4 "bytes-to-field fallback"
// rule: zero-pad the input to 32 bytes (big-endian) and decode it,
// returning zero (not an error) when the value is not a canonical field
// element. This is deliberately distinct from ParseCanonicalLE, which
// fails closed; §4.4 requires the fallback to be silent.
func FromCanonicalOrZero(chunk []byte) Scalar {
	padded := make([]byte, Size)
	copy(padded[Size-len(chunk):], chunk)
	var bi big.Int
	bi.SetBytes(padded)
	if bi.Cmp(fr.Modulus()) >= 0 {
		return Scalar{}
	}
	var s Scalar
	s.inner.SetBigInt(&bi)
	return s
}

// FromBigEndianReduced embeds an arbitrary-size big-endian buffer into F
// by reducing it modulo the field order, the behavior gnark-crypto's
// SetBytes gives for oversize input. Used for the DateTime component's
// nonce limb (§4.3), where the Rust original injects raw 256-bit limbs
// without a prior canonical check; gnark-crypto's reducing SetBytes is
// the closest faithful equivalent (see DESIGN.md Open Questions).
func FromBigEndianReduced(be []byte) Scalar {
	var s Scalar
	s.inner.SetBytes(be)
	return s
}

// RandomNonZero draws a uniform nonzero element, re-sampling on the
// vanishing-probability zero case (§4.6 step 2, and the Lagrange
// preconditions generally).
func RandomNonZero() (Scalar, error) {
	for {
		s, err := Random()
		if err != nil {
			return Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}
