package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
)

var _ = Describe("InspiralingBinary", func() {
	var ib *physics.InspiralingBinary

	BeforeEach(func() {
		var err error
		ib, err = physics.NewInspiralingBinary(physics.InspiralParams{
			M1: 36, M2: 29, Alpha: 50, Beta: 20, Gamma: 95, Omega0: 40,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with the construction frame", func() {
		Expect(ib.Frames()).To(Equal(1))
		Expect(ib.Termination()).To(Equal(dynamo.Running))
		Expect(ib.Err()).NotTo(HaveOccurred())
	})

	It("keeps the mass-weighted separation in every frame", func() {
		Expect(ib.Evolve(10)).To(Succeed())
		radii := ib.Radii()
		f1, f2 := physics.MassFractions(36, 29)
		for i := 0; i < ib.Frames(); i++ {
			pair := ib.Frame(i)
			Expect(pair.Primary.Vec().Len()).To(BeNumerically("~", radii[i]*f1, radii[i]*1e-12))
			Expect(pair.Secondary.Vec().Len()).To(BeNumerically("~", radii[i]*f2, radii[i]*1e-12))
		}
	})

	Context("when run to completion", func() {
		var end dynamo.Termination

		BeforeEach(func() {
			end = ib.Inspiral()
		})

		It("ends in a terminal state", func() {
			Expect(end).To(Or(Equal(dynamo.Merged), Equal(dynamo.Breakdown)))
			Expect(ib.Termination()).To(Equal(end))
		})

		It("shrinks the orbit monotonically while chirping upwards", func() {
			radii, omegas := ib.Radii(), ib.Omegas()
			Expect(radii).To(HaveLen(ib.Frames()))
			Expect(omegas).To(HaveLen(ib.Frames()))
			for i := 1; i < len(radii); i++ {
				Expect(radii[i]).To(BeNumerically("<=", radii[i-1]))
				Expect(omegas[i]).To(BeNumerically(">=", omegas[i-1]))
			}
		})

		It("stops at the merger separation or records the breakdown cause", func() {
			if end == dynamo.Merged {
				Expect(ib.Radius()).To(BeNumerically("<=", ib.MergerSeparation()))
			} else {
				Expect(ib.Err()).To(MatchError(dynamo.ErrNumericDomain))
			}
		})

		It("refuses further steps", func() {
			frames := ib.Frames()
			Expect(ib.Step()).To(MatchError(dynamo.ErrMerged))
			Expect(ib.Evolve(3)).To(MatchError(dynamo.ErrMerged))
			Expect(ib.Frames()).To(Equal(frames))
		})
	})
})
