package oprf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/oprf"
	"github.com/luxfi/fingerprinting/pkg/shamir"
)

func TestNaiveDeterministic(t *testing.T) {
	key := field.FromUint64(42)
	n := oprf.NewNaive(key)

	u := field.FromUint64(7)
	a, err := n.Process(context.Background(), u)
	require.NoError(t, err)
	b, err := n.Process(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestCooperativeEquivalesNaive(t *testing.T) {
	key := field.FromUint64(42)
	sharing, err := shamir.Generate(key, 6, 10)
	require.NoError(t, err)

	topology := oprf.NewLocalTopology(6, sharing.Shares())

	u := field.FromUint64(123456789)
	naive := oprf.NewNaive(key)
	naiveOut, err := naive.Process(context.Background(), u)
	require.NoError(t, err)

	for _, selfID := range []int{1, 3, 10} {
		share, ok := sharing.Share(selfID)
		require.True(t, ok)
		coop := oprf.NewCooperative(selfID, share, topology)
		coopOut, err := coop.Process(context.Background(), u)
		require.NoError(t, err)
		assert.True(t, naiveOut.Equal(coopOut), "self id %d", selfID)
	}
}

func TestCooperativeThresholdOne(t *testing.T) {
	key := field.FromUint64(99)
	sharing, err := shamir.Generate(key, 1, 3)
	require.NoError(t, err)
	topology := oprf.NewLocalTopology(1, sharing.Shares())

	share, _ := sharing.Share(2)
	coop := oprf.NewCooperative(2, share, topology)

	u := field.FromUint64(1)
	got, err := coop.Process(context.Background(), u)
	require.NoError(t, err)

	naiveOut, err := oprf.NewNaive(key).Process(context.Background(), u)
	require.NoError(t, err)
	assert.True(t, naiveOut.Equal(got))
}

// TestCooperativeQuorumUnavailable exercises the QuorumUnavailable path
// (§8 property 10) by using a topology that only ever knows self's share.
func TestCooperativeQuorumUnavailable(t *testing.T) {
	key := field.FromUint64(1)
	sharing, err := shamir.Generate(key, 3, 5)
	require.NoError(t, err)

	// The LocalTopology holds only self's share, so PeerIDs returns no
	// peers at all and the quorum stays at one of the three required,
	// forcing a quorum failure.
	undersized := oprf.NewLocalTopology(3, map[int]field.Scalar{1: mustShare(t, sharing, 1)})
	share := mustShare(t, sharing, 1)
	coop := oprf.NewCooperative(1, share, undersized)

	_, err = coop.Process(context.Background(), field.FromUint64(5))
	require.Error(t, err)
	assert.True(t, ferr.Is(err, ferr.QuorumUnavailable))
}

func mustShare(t *testing.T, sharing *shamir.SecretSharing, id int) field.Scalar {
	t.Helper()
	s, ok := sharing.Share(id)
	require.True(t, ok)
	return s
}
