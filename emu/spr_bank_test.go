package emu_test

import (
	"strings"

	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/espresso/emu"
)

var _ = Describe("SPRBank", func() {
	var (
		core       *fakeCore
		translator *fakeTranslator
		logLines   []string
		bank       *emu.SPRBank
	)

	BeforeEach(func() {
		core = newFakeCore()
		core.pc = 0x80001234
		translator = &fakeTranslator{}
		logLines = nil
		logger := funcr.New(func(prefix, args string) {
			logLines = append(logLines, args)
		}, funcr.Options{})
		bank = emu.NewSPRBank(core, translator,
			emu.WithCoreID(2),
			emu.WithBankLogger(logger),
		)
	})

	Describe("SPRG scratch registers", func() {
		It("should read back what was written", func() {
			for i, n := range []emu.SPR{emu.SPRSPRG0, emu.SPRSPRG1, emu.SPRSPRG2, emu.SPRSPRG3} {
				bank.Write(n, 0xCAFE0000+uint32(i))
			}
			Expect(bank.Read(emu.SPRSPRG0)).To(Equal(uint32(0xCAFE0000)))
			Expect(bank.Read(emu.SPRSPRG1)).To(Equal(uint32(0xCAFE0001)))
			Expect(bank.Read(emu.SPRSPRG2)).To(Equal(uint32(0xCAFE0002)))
			Expect(bank.Read(emu.SPRSPRG3)).To(Equal(uint32(0xCAFE0003)))
		})
	})

	Describe("Time base", func() {
		It("should combine independent half writes", func() {
			bank.Write(emu.SPRTBLWrite, 0x89ABCDEF)
			bank.Write(emu.SPRTBUWrite, 0x01234567)

			Expect(bank.Read(emu.SPRTBLRead)).To(Equal(uint32(0x89ABCDEF)))
			Expect(bank.Read(emu.SPRTBURead)).To(Equal(uint32(0x01234567)))
			Expect(bank.TimeBase()).To(Equal(uint64(0x0123456789ABCDEF)))
		})

		It("should preserve the high half on a low write", func() {
			bank.SetTimeBase(0xAAAAAAAA_BBBBBBBB)
			bank.Write(emu.SPRTBLWrite, 0x11111111)
			Expect(bank.TimeBase()).To(Equal(uint64(0xAAAAAAAA_11111111)))
		})

		It("should preserve the low half on a high write", func() {
			bank.SetTimeBase(0xAAAAAAAA_BBBBBBBB)
			bank.Write(emu.SPRTBUWrite, 0x22222222)
			Expect(bank.TimeBase()).To(Equal(uint64(0x22222222_BBBBBBBB)))
		})

		It("should not treat the write encodings as readable", func() {
			bank.SetTimeBase(0x1_00000002)
			Expect(bank.Read(emu.SPRTBLWrite)).To(BeZero())
			Expect(bank.Read(emu.SPRTBUWrite)).To(BeZero())
		})
	})

	Describe("Identification registers", func() {
		It("should report the default PVR", func() {
			Expect(bank.Read(emu.SPRPVR)).To(Equal(uint32(0x70010201)))
		})

		It("should honour a PVR override", func() {
			b := emu.NewSPRBank(core, translator, emu.WithPVR(0x00083214))
			Expect(b.Read(emu.SPRPVR)).To(Equal(uint32(0x00083214)))
		})

		It("should ignore writes to PVR", func() {
			bank.Write(emu.SPRPVR, 0)
			Expect(bank.Read(emu.SPRPVR)).To(Equal(emu.DefaultPVR))
		})

		It("should report the core ID through UPIR", func() {
			Expect(bank.Read(emu.SPRUPIR)).To(Equal(uint32(2)))
		})
	})

	Describe("BAT forwarding", func() {
		It("should route IBAT0U and IBAT0L to slot 0", func() {
			bank.Write(528, 0x1000)
			bank.Write(529, 0x2000)
			Expect(translator.ibatu[0]).To(Equal(uint32(0x1000)))
			Expect(translator.ibatl[0]).To(Equal(uint32(0x2000)))
		})

		It("should route the high bands to slots 4-7", func() {
			bank.Write(560, 0x3000)
			bank.Write(575, 0x4000)
			Expect(translator.ibatu[4]).To(Equal(uint32(0x3000)))
			Expect(translator.dbatl[7]).To(Equal(uint32(0x4000)))
		})

		It("should read back through the translator", func() {
			translator.dbatu[3] = 0xFFF0001F
			translator.dbatl[6] = 0x00000002
			Expect(bank.Read(542)).To(Equal(uint32(0xFFF0001F)))
			Expect(bank.Read(573)).To(Equal(uint32(0x00000002)))
		})
	})

	Describe("Decrementer and SDR1", func() {
		It("should start the decrementer at 0xFFFFFFFF", func() {
			Expect(bank.Decrementer()).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should set the raw decrementer on write", func() {
			bank.Write(emu.SPRDEC, 1234)
			Expect(bank.Decrementer()).To(Equal(uint32(1234)))
		})

		It("should forward SDR1 writes to the translator", func() {
			bank.Write(emu.SPRSDR1, 0x0FFF0003)
			Expect(translator.sdr1).To(Equal(uint32(0x0FFF0003)))
		})
	})

	Describe("Model-specific registers", func() {
		DescribeTable("should store read/write registers",
			func(n emu.SPR) {
				bank.Write(n, 0x5A5A0000|uint32(n))
				Expect(bank.Read(n)).To(Equal(0x5A5A0000 | uint32(n)))
			},
			Entry("HID0", emu.SPRHID0),
			Entry("HID2", emu.SPRHID2),
			Entry("HID4", emu.SPRHID4),
			Entry("HID5", emu.SPRHID5),
			Entry("WPAR", emu.SPRWPAR),
			Entry("SCR", emu.SPRSCR),
			Entry("CAR", emu.SPRCAR),
			Entry("L2CR", emu.SPRL2CR),
			Entry("THRM3", emu.SPRTHRM3),
		)

		It("should accept BCR writes without making it readable", func() {
			bank.Write(emu.SPRBCR, 0x1234)
			Expect(logLines).To(BeEmpty())
			Expect(bank.Read(emu.SPRBCR)).To(BeZero())
		})

		It("should read HID1 but drop writes to it", func() {
			bank.Write(emu.SPRHID1, 0x1234)
			Expect(bank.Read(emu.SPRHID1)).To(BeZero())
			Expect(logLines).To(HaveLen(1))
		})

		It("should silently discard performance monitor writes", func() {
			for _, n := range []emu.SPR{
				emu.SPRMMCR0, emu.SPRPMC1, emu.SPRPMC2,
				emu.SPRMMCR1, emu.SPRPMC3, emu.SPRPMC4,
			} {
				bank.Write(n, 0xFFFFFFFF)
			}
			Expect(logLines).To(BeEmpty())
		})

		It("should treat performance monitor reads as unmapped", func() {
			Expect(bank.Read(emu.SPRPMC1)).To(BeZero())
			Expect(logLines).To(HaveLen(1))
		})
	})

	Describe("Unmapped registers", func() {
		It("should read zero and log the SPR and PC", func() {
			Expect(bank.Read(1)).To(BeZero())
			Expect(core.raised).To(BeEmpty())
			Expect(logLines).To(HaveLen(1))
			Expect(logLines[0]).To(ContainSubstring(`"spr"=1`))
			Expect(logLines[0]).To(ContainSubstring("80001234"))
		})

		It("should drop writes and log the value", func() {
			bank.Write(1, 0xDEADBEEF)
			Expect(core.raised).To(BeEmpty())
			Expect(logLines).To(HaveLen(1))
			Expect(logLines[0]).To(ContainSubstring("DEADBEEF"))
		})

		It("should never panic for any SPR number", func() {
			for _, n := range []emu.SPR{0, 527, 544, 559, 576, 1023, 1024, 0xFFFFFFFF} {
				Expect(func() {
					bank.Write(n, 1)
					bank.Read(n)
				}).NotTo(Panic())
			}
			for _, line := range logLines {
				Expect(strings.Contains(line, `"msg"="unmapped SPR`)).To(BeTrue())
			}
		})
	})
})
