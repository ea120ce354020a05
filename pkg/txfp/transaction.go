package txfp

import (
	"context"
	"time"

	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/poseidon"
)

// squeezeBuffer applies the byte-buffer Poseidon squeeze variant (§4.4)
// to the assembled fingerprint input buffer.
func squeezeBuffer(buf []byte) field.Scalar {
	return poseidon.Bytes(buf)
}

// OPRF is the single capability the fingerprint pipeline depends on
// (§9): evaluate the oblivious PRF at a field element, possibly
// suspending and possibly failing with QuorumUnavailable. Both the
// naive and cooperative variants (pkg/oprf) implement it.
type OPRF interface {
	Process(ctx context.Context, u field.Scalar) (field.Scalar, error)
}

// RawTransaction is the external input to the pipeline (§3).
type RawTransaction struct {
	BIC      string
	Base     uint64
	Atto     uint64
	Currency uint16
	At       time.Time
}

// Prefix is the fixed, non-configurable 8-byte fingerprint buffer
// prefix (§4.7).
var Prefix = [8]byte{0xFF, 0xFE, 0xED, 0xDD, 0xCC, 0x00, 0xDD, 0xEE}

// BufferSize is the exact size of the fingerprint input buffer:
// 8 (prefix) + 6 (BIC) + 32 (amount) + 2 (currency) + 32 (OPRF output) = 80.
const BufferSize = 8 + BICSize + AmountSize + CurrencySize + 32

// normalized holds the validated, normalized components of a
// RawTransaction, ready to feed the pipeline.
type normalized struct {
	bic      BIC
	amount   Amount
	currency Currency
	dateTime DateTime
}

// normalize validates and normalizes every field of tx (§4.7 step 1).
func normalize(tx RawTransaction) (normalized, error) {
	bic, err := NewBIC(tx.BIC)
	if err != nil {
		return normalized{}, err
	}
	amount := NewAmount(tx.Base, tx.Atto)
	currency := NewCurrency(tx.Currency)
	dateTime, err := NewDateTime(tx.At, amount)
	if err != nil {
		return normalized{}, err
	}
	return normalized{bic: bic, amount: amount, currency: currency, dateTime: dateTime}, nil
}

// Fingerprint runs the full pipeline of §4.7: normalize, squeeze the
// DateTime digest, evaluate the OPRF, assemble the 80-byte buffer in the
// normative field order, and squeeze the buffer into the final
// fingerprint.
func Fingerprint(ctx context.Context, tx RawTransaction, oprf OPRF) (field.Scalar, error) {
	n, err := normalize(tx)
	if err != nil {
		return field.Scalar{}, err
	}

	u, err := n.dateTime.Squeeze()
	if err != nil {
		return field.Scalar{}, err
	}

	d, err := oprf.Process(ctx, u)
	if err != nil {
		return field.Scalar{}, err
	}

	var buf [BufferSize]byte
	offset := 0
	offset += copy(buf[offset:], Prefix[:])
	bicBytes := n.bic.Serialize()
	offset += copy(buf[offset:], bicBytes[:])
	amountBytes := n.amount.Serialize()
	offset += copy(buf[offset:], amountBytes[:])
	currencyBytes := n.currency.Serialize()
	offset += copy(buf[offset:], currencyBytes[:])
	// d is serialized as its canonical little-endian F representation
	// (§3), same encoding used everywhere else a scalar is serialized.
	dBytes := d.Bytes()
	copy(buf[offset:], dBytes[:])

	return squeezeBuffer(buf[:]), nil
}
