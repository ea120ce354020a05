package oprf

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/poseidon"
	"github.com/luxfi/fingerprinting/pkg/shamir"
)

// DefaultFanoutConcurrency bounds how many peer requests run at once
// (§4.6 "Concurrency", suggested 1024).
const DefaultFanoutConcurrency = 1024

// Cooperative is the t-of-n threshold OPRF evaluator (§4.6): it blinds
// the input, fans out to peer agents, collects the first t valid
// responses (including its own), interpolates, and unblinds.
type Cooperative struct {
	selfID     int
	selfShare  field.Scalar
	topology   Topology
	fanoutSize int
}

// NewCooperative builds a Cooperative evaluator for agent selfID holding
// selfShare, fanning out through topology.
func NewCooperative(selfID int, selfShare field.Scalar, topology Topology) *Cooperative {
	return &Cooperative{selfID: selfID, selfShare: selfShare, topology: topology, fanoutSize: DefaultFanoutConcurrency}
}

// WithFanoutConcurrency overrides the default bounded fan-out.
func (c *Cooperative) WithFanoutConcurrency(n int) *Cooperative {
	c.fanoutSize = n
	return c
}

type peerResult struct {
	id    int
	point curve.Point
	err   error
}

// Process implements the full §4.6 protocol.
func (c *Cooperative) Process(ctx context.Context, u field.Scalar) (field.Scalar, error) {
	p, err := hashToPoint(u)
	if err != nil {
		return field.Scalar{}, err
	}

	r, err := field.RandomNonZero()
	if err != nil {
		return field.Scalar{}, ferr.Wrap(ferr.InternalCrypto, "oprf.Cooperative.Process", err)
	}
	b := curve.ScalarMul(p, r)

	threshold := c.topology.Threshold()
	quorum := map[int]curve.Point{
		c.selfID: curve.ScalarMul(b, c.selfShare),
	}

	if len(quorum) < threshold {
		quorum, err = c.collectPeerQuorum(ctx, b, quorum, threshold)
		if err != nil {
			return field.Scalar{}, err
		}
	}

	y := interpolatePoints(quorum)
	z := curve.ScalarMul(y, r.Inverse())
	return poseidon.Point(z), nil
}

// collectPeerQuorum fans out to every peer concurrently (bounded by
// fanoutSize), consuming the first threshold-1 successful responses
// (any order) and cancelling the rest once the quorum is filled.
func (c *Cooperative) collectPeerQuorum(ctx context.Context, blinded curve.Point, quorum map[int]curve.Point, threshold int) (map[int]curve.Point, error) {
	peers := c.topology.PeerIDs(c.selfID)

	fctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan peerResult, len(peers))
	g, gctx := errgroup.WithContext(fctx)
	g.SetLimit(c.fanoutSize)

	for _, id := range peers {
		id := id
		g.Go(func() error {
			pt, err := c.topology.ObtainShard(gctx, id, blinded)
			select {
			case results <- peerResult{id: id, point: pt, err: err}:
			case <-fctx.Done():
			}
			// Peer failures are dropped, never aborted for the group:
			// they demote this peer for this request only (§7).
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	for len(quorum) < threshold {
		res, ok := <-results
		if !ok {
			break
		}
		if res.err != nil {
			log.Debug().Int("agent_id", res.id).Err(res.err).Msg("oprf: peer unavailable, dropped from quorum")
			continue
		}
		quorum[res.id] = res.point
	}
	// Cancel remaining in-flight peer requests; no commitments are owed.
	cancel()

	if len(quorum) < threshold {
		return nil, ferr.New(ferr.QuorumUnavailable, "oprf.Cooperative.Process", "fewer than threshold agents responded")
	}
	return quorum, nil
}

// interpolatePoints computes Y = sum_{i in S} lambda_i(0) * E_i (§4.6
// step 6), the curve-point analogue of shamir.Reconstruct.
func interpolatePoints(quorum map[int]curve.Point) curve.Point {
	indices := make([]int, 0, len(quorum))
	for i := range quorum {
		indices = append(indices, i)
	}

	var acc curve.Point
	first := true
	for _, i := range indices {
		lambda := shamir.LagrangeCoefficient(i, indices)
		term := curve.ScalarMul(quorum[i], lambda)
		if first {
			acc = term
			first = false
			continue
		}
		acc = curve.Add(acc, term)
	}
	return acc
}
