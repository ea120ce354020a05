// Package service binds the fingerprint derivation pipeline to the
// client-facing Fingerprint service operations named in §6:
// ComputeSingleFingerprint and the bounded-concurrency, out-of-order
// ComputeBatchFingerprint.
package service

import (
	"context"
	"time"

	"github.com/luxfi/fingerprinting/pkg/compact"
	"github.com/luxfi/fingerprinting/pkg/txfp"
)

// DefaultBatchConcurrency bounds how many items of a batch request are
// processed at once, and the capacity of the response channel (§5:
// "bounded concurrency (suggested 16)... delivered ... through a bounded
// channel (capacity 16)").
const DefaultBatchConcurrency = 16

// Money is the wire shape of an amount (§6: `{currency, units, atto}`).
type Money struct {
	Currency uint16 `json:"currency" cbor:"currency"`
	Units    uint64 `json:"units" cbor:"units"`
	Atto     uint64 `json:"atto" cbor:"atto"`
}

// Timestamp is the wire shape of a date-time (§6: `{seconds, nanos}`).
type Timestamp struct {
	Seconds uint64 `json:"seconds" cbor:"seconds"`
	Nanos   uint32 `json:"nanos" cbor:"nanos"`
}

// TransactionFingerprintData is the wire request payload for a single
// transaction (§6).
type TransactionFingerprintData struct {
	BIC      string    `json:"bic" cbor:"bic"`
	Amount   Money     `json:"amount" cbor:"amount"`
	DateTime Timestamp `json:"date_time" cbor:"date_time"`
}

// Fingerprint is the wire response shape (§6: `{bytes, compact}`).
type Fingerprint struct {
	Bytes   []byte `json:"bytes" cbor:"bytes"`
	Compact string `json:"compact" cbor:"compact"`
}

// BatchItem pairs a client-supplied correlation id with a transaction
// (§6: `Item{item_id, TransactionFingerprintData}`).
type BatchItem struct {
	ItemID   string                     `json:"item_id" cbor:"item_id"`
	TxData   TransactionFingerprintData `json:"transaction_data" cbor:"transaction_data"`
}

// BatchResult pairs a correlation id with its fingerprint, or an error.
type BatchResult struct {
	ItemID      string       `json:"item_id" cbor:"item_id"`
	Fingerprint *Fingerprint `json:"fingerprint,omitempty" cbor:"fingerprint,omitempty"`
	Error       string       `json:"error,omitempty" cbor:"error,omitempty"`
}

func toRawTransaction(d TransactionFingerprintData) txfp.RawTransaction {
	return txfp.RawTransaction{
		BIC:      d.BIC,
		Base:     d.Amount.Units,
		Atto:     d.Amount.Atto,
		Currency: d.Amount.Currency,
		At:       time.Unix(int64(d.DateTime.Seconds), int64(d.DateTime.Nanos)).UTC(),
	}
}

func toWireFingerprint(ctx context.Context, tx txfp.RawTransaction, protocol txfp.OPRF) (Fingerprint, error) {
	scalar, err := txfp.Fingerprint(ctx, tx, protocol)
	if err != nil {
		return Fingerprint{}, err
	}
	b := scalar.Bytes()
	return Fingerprint{Bytes: b[:], Compact: compact.Scalar(scalar)}, nil
}

// FingerprintService implements the client-facing RPC surface over a
// single OPRF protocol instance (naive or cooperative); it has no state
// of its own beyond that reference (§5 "Shared state").
type FingerprintService struct {
	protocol txfp.OPRF
}

// New builds a FingerprintService bound to protocol.
func New(protocol txfp.OPRF) *FingerprintService {
	return &FingerprintService{protocol: protocol}
}

// ComputeSingleFingerprint implements §6's unary operation.
func (s *FingerprintService) ComputeSingleFingerprint(ctx context.Context, data TransactionFingerprintData) (Fingerprint, error) {
	return toWireFingerprint(ctx, toRawTransaction(data), s.protocol)
}

// ComputeBatchFingerprint implements §6's server-streaming operation:
// items are processed with bounded concurrency and delivered out of
// order through a bounded channel, backpressure applied by channel send
// (§5). The returned channel is closed once every item has been
// delivered or ctx is done.
func (s *FingerprintService) ComputeBatchFingerprint(ctx context.Context, items []BatchItem) <-chan BatchResult {
	out := make(chan BatchResult, DefaultBatchConcurrency)
	sem := make(chan struct{}, DefaultBatchConcurrency)

	go func() {
		defer close(out)
		done := make(chan struct{}, len(items))

		for _, item := range items {
			item := item
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			go func() {
				defer func() { <-sem; done <- struct{}{} }()

				fp, err := toWireFingerprint(ctx, toRawTransaction(item.TxData), s.protocol)
				result := BatchResult{ItemID: item.ItemID}
				if err != nil {
					result.Error = err.Error()
				} else {
					result.Fingerprint = &fp
				}

				select {
				case out <- result:
				case <-ctx.Done():
				}
			}()
		}

		for range items {
			select {
			case <-done:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
