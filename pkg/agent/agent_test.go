package agent_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fingerprinting/pkg/agent"
	"github.com/luxfi/fingerprinting/pkg/curve"
	"github.com/luxfi/fingerprinting/pkg/ferr"
	"github.com/luxfi/fingerprinting/pkg/field"
)

func TestComputeExponentRejectsNonZeroGeneration(t *testing.T) {
	svc := agent.NewCooperationService(1, field.FromUint64(7))
	blinded := curve.ScalarMul(curve.Generator(), field.FromUint64(3)).Bytes()

	_, err := svc.ComputeExponent(1, blinded[:])
	require.Error(t, err)
	assert.True(t, ferr.Is(err, ferr.InvalidInput))
}

func TestComputeExponentRejectsWrongLength(t *testing.T) {
	svc := agent.NewCooperationService(1, field.FromUint64(7))
	_, err := svc.ComputeExponent(0, []byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, ferr.Is(err, ferr.InvalidInput))
}

func TestComputeExponentRejectsNonCanonicalPoint(t *testing.T) {
	svc := agent.NewCooperationService(1, field.FromUint64(7))
	garbage := make([]byte, 32)
	for i := range garbage {
		garbage[i] = 0xFF
	}
	_, err := svc.ComputeExponent(0, garbage)
	require.Error(t, err)
	assert.True(t, ferr.Is(err, ferr.InvalidInput))
}

func TestComputeExponentCorrectness(t *testing.T) {
	share := field.FromUint64(11)
	svc := agent.NewCooperationService(1, share)

	b := curve.ScalarMul(curve.Generator(), field.FromUint64(5))
	encoded := b.Bytes()

	resp, err := svc.ComputeExponent(0, encoded[:])
	require.NoError(t, err)
	assert.Equal(t, uint64(0), resp.Generation)

	want := curve.ScalarMul(b, share).Bytes()
	assert.Equal(t, want[:], resp.BlindedExponent)
}

func TestHTTPRoundTrip(t *testing.T) {
	share := field.FromUint64(13)
	svc := agent.NewCooperationService(2, share)
	server := httptest.NewServer(agent.Handler(svc))
	defer server.Close()

	client := agent.NewHTTPClient()
	b := curve.ScalarMul(curve.Generator(), field.FromUint64(9))
	encoded := b.Bytes()

	resp, err := client.ComputeExponent(context.Background(), server.Listener.Addr().String(), agent.ComputeExponentRequest{
		Generation:   0,
		BlindedValue: encoded[:],
	})
	require.NoError(t, err)

	want := curve.ScalarMul(b, share).Bytes()
	assert.Equal(t, want[:], resp.BlindedExponent)
}

func TestStaticTopologyRejectsBadConfig(t *testing.T) {
	_, err := agent.NewStaticTopology(3, 2, nil, agent.NewHTTPClient())
	require.Error(t, err)

	_, err = agent.NewStaticTopology(1, 3, []agent.Member{{AgentID: 1}}, agent.NewHTTPClient())
	require.Error(t, err)
}
