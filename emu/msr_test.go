package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/espresso/emu"
)

var _ = Describe("MSRController", func() {
	var (
		translator *fakeTranslator
		controller *emu.MSRController
	)

	BeforeEach(func() {
		translator = &fakeTranslator{}
		controller = emu.NewMSRController(translator)
	})

	It("should enable both translations in supervisor mode for 0x30", func() {
		controller.OnMachineStateWrite(0x0030)

		Expect(translator.dataTranslation).To(Equal([]bool{true}))
		Expect(translator.instructionTranslation).To(Equal([]bool{true}))
		Expect(translator.supervisor).To(Equal([]bool{true}))
	})

	It("should switch to user mode with translation off for 0x4000", func() {
		controller.OnMachineStateWrite(0x4000)

		Expect(translator.dataTranslation).To(Equal([]bool{false}))
		Expect(translator.instructionTranslation).To(Equal([]bool{false}))
		Expect(translator.supervisor).To(Equal([]bool{false}))
	})

	It("should decode the bits independently", func() {
		controller.OnMachineStateWrite(emu.MSRDR)
		controller.OnMachineStateWrite(emu.MSRIR | emu.MSRPR)

		Expect(translator.dataTranslation).To(Equal([]bool{true, false}))
		Expect(translator.instructionTranslation).To(Equal([]bool{false, true}))
		Expect(translator.supervisor).To(Equal([]bool{true, false}))
	})

	It("should forward on every write, even when nothing changes", func() {
		controller.OnMachineStateWrite(0)
		controller.OnMachineStateWrite(0)
		controller.OnMachineStateWrite(emu.MSREE | emu.MSRME)

		Expect(translator.dataTranslation).To(HaveLen(3))
		Expect(translator.instructionTranslation).To(HaveLen(3))
		Expect(translator.supervisor).To(Equal([]bool{true, true, true}))
	})
})
