// Package agent implements the peer side of the cooperative OPRF
// (§4.8, the Cooperation service) and a config-driven AgentsTopology
// (§3) that dispatches ObtainShard calls to remote agents over HTTP.
//
// The RPC transport/framework binding is explicitly out of scope
// (§1/§6); what is in scope is the service's request/response shape and
// validation rules. A thin net/http + cbor envelope realizes that shape
// concretely without fabricating a generated gRPC stub that was never
// part of the reference material (see DESIGN.md).
package agent

// ComputeExponentRequest is the wire envelope for the Cooperation
// service's single operation (§4.8, §6).
type ComputeExponentRequest struct {
	Generation   uint64 `cbor:"generation"`
	BlindedValue []byte `cbor:"blinded_value"`
}

// ComputeExponentResponse is the wire envelope returned by a peer.
// ProofOfComputation is reserved and always empty (§4.8, §9: no
// proof-of-computation scheme is defined).
type ComputeExponentResponse struct {
	Generation         uint64 `cbor:"generation"`
	BlindedExponent    []byte `cbor:"blinded_exponent"`
	ProofOfComputation []byte `cbor:"proof_of_computation"`
}
