package oprf_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/fingerprinting/pkg/field"
	"github.com/luxfi/fingerprinting/pkg/oprf"
	"github.com/luxfi/fingerprinting/pkg/shamir"
)

// thresholdPair is one (t, n) combination exercised by the equivalence
// property below (§8 property 1: "For every k in F, (t,n) with
// 1<=t<=n<=30 ... cooperative OPRF ... equals naive OPRF").
type thresholdPair struct{ t, n int }

var _ = Describe("Cooperative OPRF", func() {
	pairs := []thresholdPair{
		{1, 1}, {1, 5}, {2, 3}, {3, 5}, {5, 5}, {6, 10}, {10, 30},
	}

	for _, pair := range pairs {
		pair := pair
		It("matches the naive evaluator for any quorum subset", func() {
			key, err := field.Random()
			Expect(err).NotTo(HaveOccurred())

			sharing, err := shamir.Generate(key, pair.t, pair.n)
			Expect(err).NotTo(HaveOccurred())

			topology := oprf.NewLocalTopology(pair.t, sharing.Shares())
			naiveOut, err := oprf.NewNaive(key).Process(context.Background(), field.FromUint64(424242))
			Expect(err).NotTo(HaveOccurred())

			// Exercise a handful of distinct self-ids as the "entry
			// point" agent; each should independently reach the same
			// output regardless of which other peers fill the quorum.
			for _, selfID := range []int{1, pair.n} {
				share, ok := sharing.Share(selfID)
				Expect(ok).To(BeTrue())

				coop := oprf.NewCooperative(selfID, share, topology)
				coopOut, err := coop.Process(context.Background(), field.FromUint64(424242))
				Expect(err).NotTo(HaveOccurred())
				Expect(coopOut.Equal(naiveOut)).To(BeTrue())
			}
		})
	}
})

var _ = Describe("Lagrange coefficients", func() {
	It("always sum to one over any distinct index set", func() {
		for _, indices := range [][]int{{1}, {1, 2}, {1, 2, 3}, {2, 4, 6, 8}, {1, 5, 9, 13, 17}} {
			sum := field.Zero()
			for _, i := range indices {
				sum = sum.Add(shamir.LagrangeCoefficient(i, indices))
			}
			Expect(sum.Equal(field.One())).To(BeTrue())
		}
	})
})
