package agent

import (
	"context"
	"math/rand"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/ferr"
)

// Member is one agent's identity plus its redundant set of endpoints
// (§3's AgentsTopology: "agent_id -> non-empty ordered list of
// endpoints"), matching fingerprinting-cli/src/config.rs's
// CooperativeTopologyConfig.members shape.
type Member struct {
	AgentID   int
	Addresses []string // host:port, resolved by the transport (RemoteClient)
}

// RemoteClient is the capability StaticTopology needs to actually reach
// a peer; HTTPClient below is the concrete net/http implementation.
// Kept as an interface so tests can substitute an in-memory double
// without starting a listener.
type RemoteClient interface {
	ComputeExponent(ctx context.Context, address string, req ComputeExponentRequest) (ComputeExponentResponse, error)
}

// StaticTopology is a config-driven, immutable-after-construction
// AgentsTopology (§3) that dispatches ObtainShard calls to remote peers.
type StaticTopology struct {
	threshold int
	count     int
	members   map[int]Member
	client    RemoteClient
}

// NewStaticTopology builds a StaticTopology for the given threshold and
// member list. count is the total number of agents (n); it need not
// equal len(members) when some peers are not locally reachable (the
// caller is still one of the n).
func NewStaticTopology(threshold, count int, members []Member, client RemoteClient) (*StaticTopology, error) {
	if threshold < 1 || threshold > count {
		return nil, ferr.New(ferr.ConfigInvalid, "agent.NewStaticTopology", "threshold must satisfy 1 <= t <= n")
	}
	byID := make(map[int]Member, len(members))
	for _, m := range members {
		if m.AgentID < 1 || m.AgentID > count {
			return nil, ferr.New(ferr.ConfigInvalid, "agent.NewStaticTopology", "agent id out of range")
		}
		if len(m.Addresses) == 0 {
			return nil, ferr.New(ferr.ConfigInvalid, "agent.NewStaticTopology", "agent must have at least one endpoint")
		}
		byID[m.AgentID] = m
	}
	return &StaticTopology{threshold: threshold, count: count, members: byID, client: client}, nil
}

func (t *StaticTopology) Count() int     { return t.count }
func (t *StaticTopology) Threshold() int { return t.threshold }

func (t *StaticTopology) PeerIDs(self int) []int {
	ids := make([]int, 0, len(t.members))
	for id := range t.members {
		if id != self {
			ids = append(ids, id)
		}
	}
	return ids
}

// ObtainShard picks one of the peer's endpoints uniformly at random
// (§4.6 "Tie-breaks") and issues the (generation=0, blinded) request.
func (t *StaticTopology) ObtainShard(ctx context.Context, id int, blinded curve.Point) (curve.Point, error) {
	member, ok := t.members[id]
	if !ok {
		return curve.Point{}, ferr.New(ferr.PeerUnavailable, "agent.ObtainShard", "unknown agent id")
	}
	address := member.Addresses[rand.Intn(len(member.Addresses))]

	encoded := blinded.Bytes()
	resp, err := t.client.ComputeExponent(ctx, address, ComputeExponentRequest{
		Generation:   0,
		BlindedValue: encoded[:],
	})
	if err != nil {
		return curve.Point{}, ferr.Wrap(ferr.PeerUnavailable, "agent.ObtainShard", err)
	}
	if resp.Generation != 0 {
		return curve.Point{}, ferr.New(ferr.PeerUnavailable, "agent.ObtainShard", "peer returned unexpected generation")
	}
	point, err := curve.SetBytes(resp.BlindedExponent)
	if err != nil {
		return curve.Point{}, ferr.Wrap(ferr.PeerUnavailable, "agent.ObtainShard", err)
	}
	return point, nil
}
