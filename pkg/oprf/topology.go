package oprf

import (
	"context"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/field"
)

// Topology maps agent ids to the ability to request a partial
// evaluation from that agent (§3's AgentsTopology, §4.6). Concrete
// implementations (pkg/agent.StaticTopology) resolve agent ids to
// network endpoints; LocalTopology below is an in-process test double
// mirroring the Rust original's LocalAgentsTopology test harness.
type Topology interface {
	// Count returns n, the total number of agents.
	Count() int
	// Threshold returns t.
	Threshold() int
	// PeerIDs returns every agent id other than self.
	PeerIDs(self int) []int
	// ObtainShard issues (generation=0, blinded) to agent id and returns
	// its partial point k_id * blinded.
	ObtainShard(ctx context.Context, id int, blinded curve.Point) (curve.Point, error)
}

// LocalTopology is an in-process Topology backed directly by a
// SecretSharing's shares, used for tests and for the OPRF-equivalence
// property (§8 property 1) without any network I/O.
type LocalTopology struct {
	threshold int
	shares    map[int]field.Scalar
}

// NewLocalTopology builds a LocalTopology directly from an agent id ->
// share map.
func NewLocalTopology(threshold int, shares map[int]field.Scalar) *LocalTopology {
	cp := make(map[int]field.Scalar, len(shares))
	for id, s := range shares {
		cp[id] = s
	}
	return &LocalTopology{threshold: threshold, shares: cp}
}

func (t *LocalTopology) Count() int     { return len(t.shares) }
func (t *LocalTopology) Threshold() int { return t.threshold }

func (t *LocalTopology) PeerIDs(self int) []int {
	ids := make([]int, 0, len(t.shares))
	for id := range t.shares {
		if id != self {
			ids = append(ids, id)
		}
	}
	return ids
}

func (t *LocalTopology) ObtainShard(_ context.Context, id int, blinded curve.Point) (curve.Point, error) {
	share := t.shares[id]
	return curve.ScalarMul(blinded, share), nil
}
