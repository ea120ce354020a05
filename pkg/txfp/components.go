// Package txfp implements the transaction fingerprint derivation
// pipeline: canonical normalization of the raw transaction fields
// (§4.2–§4.3), the hash-squeeze primitives it depends on (§4.4), and the
// final pipeline that composes normalized components with an OPRF
// output into the fingerprint (§4.7).
package txfp

import (
	"regexp"
	"time"

	"github.com/holiman/uint256"

	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/poseidon"
)

// Epoch is the zero reference for all time arithmetic (§3).
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

var bicPattern = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)

// BICSize is the normalized, serialized size of the BIC component.
const BICSize = 6

// AmountSize is the normalized, serialized size of the Amount component.
const AmountSize = 32

// CurrencySize is the normalized, serialized size of the Currency component.
const CurrencySize = 2

// DateTimeSize is the serialized size of the DateTime component's digest.
const DateTimeSize = 32

// BIC normalizes a raw BIC string into its 6-byte bank+country prefix
// (§4.2); branch and location codes are deliberately discarded.
type BIC struct {
	raw string
}

// NewBIC validates raw against the ISO 9362 BIC pattern.
func NewBIC(raw string) (BIC, error) {
	if !bicPattern.MatchString(raw) {
		return BIC{}, ferr.New(ferr.InvalidInput, "txfp.NewBIC", "BIC does not match the required pattern")
	}
	return BIC{raw: raw}, nil
}

// Raw returns the original string.
func (b BIC) Raw() string { return b.raw }

// Serialize writes the normalized 6-byte encoding.
func (b BIC) Serialize() [BICSize]byte {
	var out [BICSize]byte
	copy(out[:], b.raw[:BICSize])
	return out
}

// Amount normalizes a (base, atto) pair into a 256-bit unsigned integer
// value-in-smallest-unit (§4.2): base*10^18 + atto.
type Amount struct {
	base uint64
	atto uint64
}

// NewAmount is total on any (base, atto) pair.
func NewAmount(base, atto uint64) Amount {
	return Amount{base: base, atto: atto}
}

// FullAmount returns base*10^18 + atto as a 256-bit unsigned integer,
// matching the Cantor pairing function's own wrapping semantics (§9).
func (a Amount) FullAmount() *uint256.Int {
	full := uint256.NewInt(a.base)
	full.Mul(full, uint256.NewInt(1_000_000_000_000_000_000))
	full.Add(full, uint256.NewInt(a.atto))
	return full
}

// Serialize writes the normalized 32-byte big-endian encoding.
func (a Amount) Serialize() [AmountSize]byte {
	return a.FullAmount().Bytes32()
}

// Currency normalizes an ISO 4217 numeric code (§4.2).
type Currency struct {
	code uint16
}

// NewCurrency is total on any u16.
func NewCurrency(code uint16) Currency { return Currency{code: code} }

// Code returns the raw numeric code.
func (c Currency) Code() uint16 { return c.code }

// Serialize writes the normalized 2-byte big-endian encoding.
func (c Currency) Serialize() [CurrencySize]byte {
	return [CurrencySize]byte{byte(c.code >> 8), byte(c.code)}
}

// DateTime normalizes a UTC instant plus the transaction's amount into a
// single field element via the Cantor-pairing nonce construction of §4.3.
type DateTime struct {
	instant time.Time
	amount  Amount
}

// NewDateTime validates that instant is not before Epoch (§3, §8
// property 7); the amount is threaded through because the nonce
// construction mixes in full_amount (§4.3).
func NewDateTime(instant time.Time, amount Amount) (DateTime, error) {
	instant = instant.UTC()
	if instant.Before(Epoch) {
		return DateTime{}, ferr.New(ferr.InvalidInput, "txfp.NewDateTime", "timestamp is before the epoch")
	}
	return DateTime{instant: instant, amount: amount}, nil
}

// cantor computes (x^2 + 3x + 2xy + y + y^2) / 2 over 256-bit unsigned
// integers with deterministic mod-2^256 wraparound on overflow (§4.3,
// §9); uint256.Int arithmetic is wrapping by construction.
func cantor(x, y *uint256.Int) *uint256.Int {
	xSq := new(uint256.Int).Mul(x, x)
	threeX := new(uint256.Int).Mul(uint256.NewInt(3), x)
	twoXY := new(uint256.Int).Mul(uint256.NewInt(2), new(uint256.Int).Mul(x, y))
	ySq := new(uint256.Int).Mul(y, y)

	sum := new(uint256.Int).Add(xSq, threeX)
	sum.Add(sum, twoXY)
	sum.Add(sum, y)
	sum.Add(sum, ySq)

	return sum.Rsh(sum, 1)
}

// Squeeze computes the DateTime component's digest (§4.3):
//  1. secs = whole seconds since Epoch (validated non-negative by NewDateTime)
//  2. days = whole days between the instant's date and Epoch's date
//  3. nonce = cantor(secs, full_amount/days); days==0 is rejected here
//     as InvalidInput per §4.3's recommended resolution of the
//     divide-by-zero open question
//  4. digest = Poseidon(arity=3)(secs, days, nonce)
func (dt DateTime) Squeeze() (field.Scalar, error) {
	secs := uint64(dt.instant.Sub(Epoch) / time.Second)

	epochDate := time.Date(Epoch.Year(), Epoch.Month(), Epoch.Day(), 0, 0, 0, 0, time.UTC)
	txDate := time.Date(dt.instant.Year(), dt.instant.Month(), dt.instant.Day(), 0, 0, 0, 0, time.UTC)
	daysI := int64(txDate.Sub(epochDate) / (24 * time.Hour))
	if daysI < 0 {
		return field.Scalar{}, ferr.New(ferr.InvalidInput, "txfp.DateTime.Squeeze", "date precedes the epoch")
	}
	if daysI == 0 {
		return field.Scalar{}, ferr.New(ferr.InvalidInput, "txfp.DateTime.Squeeze", "transactions on the epoch day are not supported (division by zero in nonce derivation)")
	}
	days := uint64(daysI)

	fullAmount := dt.amount.FullAmount()
	quotient := new(uint256.Int).Div(fullAmount, uint256.NewInt(days))

	nonce := cantor(uint256.NewInt(secs), quotient)

	secsF := field.FromUint64(secs)
	daysF := field.FromUint64(days)
	nonceBytes := nonce.Bytes32()
	nonceF := field.FromBigEndianReduced(nonceBytes[:])

	return poseidon.Triple(secsF, daysF, nonceF), nil
}
