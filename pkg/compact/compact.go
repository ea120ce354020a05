// Package compact implements the base58 "Compact" encoding (§6) used
// wherever scalars or byte buffers are rendered for humans or configs:
// shares, secrets, and fingerprints.
package compact

import (
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// Scalar renders a field element as base58 of its canonical
// little-endian 32-byte encoding.
func Scalar(s field.Scalar) string {
	b := s.Bytes()
	return base58.Encode(b[:])
}

// ParseScalar decodes a Compact-encoded scalar, requiring exactly 32
// decoded bytes and a canonical field element (§6).
func ParseScalar(s string) (field.Scalar, error) {
	decoded := base58.Decode(s)
	if decoded == nil || len(decoded) != field.Size {
		return field.Scalar{}, ferr.New(ferr.InvalidInput, "compact.ParseScalar", "decoded value must be exactly 32 bytes")
	}
	return field.ParseCanonicalLE(decoded)
}

// Bytes renders an arbitrary byte buffer as base58.
func Bytes(b []byte) string {
	return base58.Encode(b)
}

// ParseBytes decodes a Compact-encoded byte buffer, requiring the
// decoded length to match expectedLen exactly.
func ParseBytes(s string, expectedLen int) ([]byte, error) {
	decoded := base58.Decode(s)
	if decoded == nil || len(decoded) != expectedLen {
		return nil, ferr.New(ferr.InvalidInput, "compact.ParseBytes", "decoded value has unexpected length")
	}
	return decoded, nil
}
