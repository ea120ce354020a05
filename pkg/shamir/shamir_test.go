package shamir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/shamir"
)

func reconstructSubset(t *testing.T, sharing *shamir.SecretSharing, indices []int) field.Scalar {
	t.Helper()
	shares := make(map[int]field.Scalar, len(indices))
	for _, i := range indices {
		s, ok := sharing.Share(i)
		require.True(t, ok)
		shares[i] = s
	}
	return shamir.Reconstruct(shares)
}

func TestBasicSecretReconstruction(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)

	sharing, err := shamir.Generate(secret, 3, 5)
	require.NoError(t, err)

	got := reconstructSubset(t, sharing, []int{1, 2, 3})
	assert.True(t, secret.Equal(got))
}

func TestAnyThresholdSubsetReconstructs(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)
	sharing, err := shamir.Generate(secret, 3, 7)
	require.NoError(t, err)

	for _, indices := range [][]int{{1, 2, 3}, {2, 4, 6}, {1, 5, 7}, {3, 4, 5}} {
		got := reconstructSubset(t, sharing, indices)
		assert.True(t, secret.Equal(got), "indices %v", indices)
	}
}

func TestInvalidThresholdTooLarge(t *testing.T) {
	_, err := shamir.Generate(field.FromUint64(42), 6, 5)
	require.Error(t, err)
}

func TestInvalidThresholdZero(t *testing.T) {
	_, err := shamir.Generate(field.FromUint64(42), 0, 5)
	require.Error(t, err)
}

func TestThresholdOne(t *testing.T) {
	secret := field.FromUint64(42)
	sharing, err := shamir.Generate(secret, 1, 3)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		got := reconstructSubset(t, sharing, []int{i})
		assert.True(t, secret.Equal(got))
	}
}

func TestThresholdEqualsTotal(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)
	sharing, err := shamir.Generate(secret, 5, 5)
	require.NoError(t, err)

	got := reconstructSubset(t, sharing, []int{1, 2, 3, 4, 5})
	assert.True(t, secret.Equal(got))
}

func TestLagrangeCoefficientSumToOne(t *testing.T) {
	indices := []int{1, 3, 5, 7}
	sum := field.Zero()
	for _, i := range indices {
		sum = sum.Add(shamir.LagrangeCoefficient(i, indices))
	}
	assert.True(t, sum.Equal(field.One()))
}

func TestLagrangeCoefficientKnownValues(t *testing.T) {
	indices := []int{1, 2, 3}
	l1 := shamir.LagrangeCoefficient(1, indices)
	l2 := shamir.LagrangeCoefficient(2, indices)
	l3 := shamir.LagrangeCoefficient(3, indices)

	assert.True(t, l1.Equal(field.FromUint64(3)))
	assert.True(t, l2.Equal(field.FromUint64(3).Neg()))
	assert.True(t, l3.Equal(field.FromUint64(1)))
	assert.True(t, l1.Add(l2).Add(l3).Equal(field.One()))
}

func TestLargeThreshold(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)
	sharing, err := shamir.Generate(secret, 20, 30)
	require.NoError(t, err)

	indices := make([]int, 20)
	for i := range indices {
		indices[i] = i + 1
	}
	got := reconstructSubset(t, sharing, indices)
	assert.True(t, secret.Equal(got))
}

func TestSharesAreDistinct(t *testing.T) {
	sharing, err := shamir.Generate(field.FromUint64(999), 3, 5)
	require.NoError(t, err)

	shares := sharing.Shares()
	for i := 1; i <= 5; i++ {
		for j := i + 1; j <= 5; j++ {
			assert.False(t, shares[i].Equal(shares[j]), "shares %d and %d identical", i, j)
		}
	}
}

func TestShareNotEqualSecret(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)
	sharing, err := shamir.Generate(secret, 3, 5)
	require.NoError(t, err)

	shares := sharing.Shares()
	for i := 1; i <= 5; i++ {
		assert.False(t, shares[i].Equal(secret))
	}
}

func TestReconstructionWithNonSequentialIndices(t *testing.T) {
	secret, err := field.Random()
	require.NoError(t, err)
	sharing, err := shamir.Generate(secret, 4, 10)
	require.NoError(t, err)

	got := reconstructSubset(t, sharing, []int{2, 5, 7, 9})
	assert.True(t, secret.Equal(got))
}

func TestZeroSecret(t *testing.T) {
	sharing, err := shamir.Generate(field.Zero(), 3, 5)
	require.NoError(t, err)

	got := reconstructSubset(t, sharing, []int{1, 2, 3})
	assert.True(t, got.IsZero())
}

func TestPolynomialDegreeCrossCheck(t *testing.T) {
	secret := field.FromUint64(100)
	sharing, err := shamir.Generate(secret, 3, 10)
	require.NoError(t, err)

	for _, indices := range [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}} {
		got := reconstructSubset(t, sharing, indices)
		assert.True(t, secret.Equal(got))
	}
}
