// Package emu provides the supervisor-level register and exception model of a
// PowerPC 750-class core.
package emu

import "fmt"

// SPR is a special-purpose register number as encoded in mfspr/mtspr.
type SPR uint32

// Architected and model-specific SPR numbers.
const (
	SPRDSISR SPR = 18
	SPRDAR   SPR = 19
	SPRDEC   SPR = 22
	SPRSDR1  SPR = 25
	SPRSRR0  SPR = 26
	SPRSRR1  SPR = 27

	// Time base has separate read (user) and write (supervisor) encodings.
	SPRTBLRead  SPR = 268
	SPRTBURead  SPR = 269
	SPRTBLWrite SPR = 284
	SPRTBUWrite SPR = 285

	SPRSPRG0 SPR = 272
	SPRSPRG1 SPR = 273
	SPRSPRG2 SPR = 274
	SPRSPRG3 SPR = 275
	SPRPVR   SPR = 287

	SPRHID2  SPR = 920
	SPRWPAR  SPR = 921
	SPRHID5  SPR = 944
	SPRSCR   SPR = 947
	SPRCAR   SPR = 948
	SPRBCR   SPR = 949
	SPRMMCR0 SPR = 952
	SPRPMC1  SPR = 953
	SPRPMC2  SPR = 954
	SPRMMCR1 SPR = 956
	SPRPMC3  SPR = 957
	SPRPMC4  SPR = 958
	SPRUPIR  SPR = 1007
	SPRHID0  SPR = 1008
	SPRHID1  SPR = 1009
	SPRHID4  SPR = 1011
	SPRL2CR  SPR = 1017
	SPRTHRM3 SPR = 1022
)

// DefaultPVR is the processor version reported by the modeled core.
const DefaultPVR uint32 = 0x70010201

var sprNames = map[SPR]string{
	SPRDSISR:    "DSISR",
	SPRDAR:      "DAR",
	SPRDEC:      "DEC",
	SPRSDR1:     "SDR1",
	SPRSRR0:     "SRR0",
	SPRSRR1:     "SRR1",
	SPRTBLRead:  "TBL",
	SPRTBURead:  "TBU",
	SPRTBLWrite: "TBL",
	SPRTBUWrite: "TBU",
	SPRSPRG0:    "SPRG0",
	SPRSPRG1:    "SPRG1",
	SPRSPRG2:    "SPRG2",
	SPRSPRG3:    "SPRG3",
	SPRPVR:      "PVR",
	SPRHID2:     "HID2",
	SPRWPAR:     "WPAR",
	SPRHID5:     "HID5",
	SPRSCR:      "SCR",
	SPRCAR:      "CAR",
	SPRBCR:      "BCR",
	SPRMMCR0:    "MMCR0",
	SPRPMC1:     "PMC1",
	SPRPMC2:     "PMC2",
	SPRMMCR1:    "MMCR1",
	SPRPMC3:     "PMC3",
	SPRPMC4:     "PMC4",
	SPRUPIR:     "UPIR",
	SPRHID0:     "HID0",
	SPRHID1:     "HID1",
	SPRHID4:     "HID4",
	SPRL2CR:     "L2CR",
	SPRTHRM3:    "THRM3",
}

// String returns the register mnemonic, or "SPR<n>" for numbers without one.
func (n SPR) String() string {
	if name, ok := sprNames[n]; ok {
		return name
	}
	if ref, ok := DecodeBAT(n); ok {
		return ref.String()
	}
	return fmt.Sprintf("SPR%d", uint32(n))
}

// hex32 formats a register value for log output.
func hex32(v uint32) string {
	return fmt.Sprintf("%08X", v)
}
