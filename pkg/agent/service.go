package agent

import (
	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// CooperationService hosts one Shamir share and answers partial
// evaluation requests (§4.8). It is stateless beyond its share,
// idempotent, and safe for concurrent use.
type CooperationService struct {
	agentID int
	share   field.Scalar
}

// NewCooperationService builds a service for agentID holding share.
func NewCooperationService(agentID int, share field.Scalar) *CooperationService {
	return &CooperationService{agentID: agentID, share: share}
}

// AgentID returns the id this service answers for.
func (s *CooperationService) AgentID() int { return s.agentID }

// ComputeExponent implements the §4.8 validation and evaluation rules:
// reject any generation other than 0, reject a blinded value that is
// not exactly 32 bytes, reject a non-canonical curve point, and
// otherwise return k_a * B in compressed form.
func (s *CooperationService) ComputeExponent(generation uint64, blindedValue []byte) (ComputeExponentResponse, error) {
	if generation != 0 {
		return ComputeExponentResponse{}, ferr.New(ferr.InvalidInput, "agent.ComputeExponent", "only generation 0 is accepted")
	}
	if len(blindedValue) != curve.Size {
		return ComputeExponentResponse{}, ferr.New(ferr.InvalidInput, "agent.ComputeExponent", "blinded_value must be exactly 32 bytes")
	}

	b, err := curve.SetBytes(blindedValue)
	if err != nil {
		return ComputeExponentResponse{}, ferr.Wrap(ferr.InvalidInput, "agent.ComputeExponent", err)
	}

	exponent := curve.ScalarMul(b, s.share)
	encoded := exponent.Bytes()

	return ComputeExponentResponse{
		Generation:         0,
		BlindedExponent:    encoded[:],
		ProofOfComputation: nil,
	}, nil
}
