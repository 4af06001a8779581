package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/espresso/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should expose the architected exception registers", func() {
		*regFile.ArchSPR(emu.SPRSRR0) = 1
		*regFile.ArchSPR(emu.SPRSRR1) = 2
		*regFile.ArchSPR(emu.SPRDAR) = 3
		*regFile.ArchSPR(emu.SPRDSISR) = 4

		Expect(*regFile).To(Equal(emu.RegFile{SRR0: 1, SRR1: 2, DAR: 3, DSISR: 4}))
	})

	It("should not hold bank-owned registers", func() {
		for _, n := range []emu.SPR{emu.SPRSPRG0, emu.SPRDEC, emu.SPRHID0, emu.SPRPVR, 0} {
			Expect(regFile.ArchSPR(n)).To(BeNil())
		}
	})
})
