package emu

import "fmt"

// BATCategory selects the instruction or data BAT array.
type BATCategory uint8

// BAT categories.
const (
	InstructionBAT BATCategory = iota
	DataBAT
)

// BATHalf selects the upper or lower word of a BAT pair.
type BATHalf uint8

// BAT halves. Even SPR numbers address the upper word.
const (
	BATUpper BATHalf = iota
	BATLower
)

// NumBATs is the number of BAT pairs per category.
const NumBATs = 8

// batBand is one contiguous run of eight SPR numbers covering four BAT pairs.
type batBand struct {
	base       SPR
	category   BATCategory
	slotOffset int
}

// The second band of each category holds pairs 4-7.
var batBands = [...]batBand{
	{base: 528, category: InstructionBAT, slotOffset: 0},
	{base: 536, category: DataBAT, slotOffset: 0},
	{base: 560, category: InstructionBAT, slotOffset: 4},
	{base: 568, category: DataBAT, slotOffset: 4},
}

const batBandWidth = 8

// BATRef identifies one word of one BAT pair.
type BATRef struct {
	Category BATCategory
	Slot     int
	Half     BATHalf
}

// DecodeBAT maps an SPR number onto a BAT word. ok is false if n is outside
// every BAT band.
func DecodeBAT(n SPR) (ref BATRef, ok bool) {
	for _, band := range batBands {
		if n < band.base || n >= band.base+batBandWidth {
			continue
		}

		off := int(n - band.base)
		ref = BATRef{
			Category: band.category,
			Slot:     off/2 + band.slotOffset,
			Half:     BATHalf(off % 2),
		}
		return ref, true
	}
	return BATRef{}, false
}

// EncodeBAT is the inverse of DecodeBAT.
func EncodeBAT(ref BATRef) (SPR, bool) {
	if ref.Slot < 0 || ref.Slot >= NumBATs || ref.Half > BATLower {
		return 0, false
	}
	for _, band := range batBands {
		if band.category != ref.Category {
			continue
		}
		if ref.Slot < band.slotOffset || ref.Slot >= band.slotOffset+4 {
			continue
		}
		return band.base + SPR((ref.Slot-band.slotOffset)*2) + SPR(ref.Half), true
	}
	return 0, false
}

// String returns the mnemonic, e.g. "IBAT3U" or "DBAT6L".
func (r BATRef) String() string {
	cat := "I"
	if r.Category == DataBAT {
		cat = "D"
	}
	half := "U"
	if r.Half == BATLower {
		half = "L"
	}
	return fmt.Sprintf("%sBAT%d%s", cat, r.Slot, half)
}

// BATAccess is the translation subsystem's view of the BAT arrays and the
// page table base. Slots run 0-7 in each category.
type BATAccess interface {
	IBATU(slot int) uint32
	IBATL(slot int) uint32
	DBATU(slot int) uint32
	DBATL(slot int) uint32
	SetIBATU(slot int, v uint32)
	SetIBATL(slot int, v uint32)
	SetDBATU(slot int, v uint32)
	SetDBATL(slot int, v uint32)
	SetSDR1(v uint32)
}

func readBAT(t BATAccess, ref BATRef) uint32 {
	switch {
	case ref.Category == InstructionBAT && ref.Half == BATUpper:
		return t.IBATU(ref.Slot)
	case ref.Category == InstructionBAT:
		return t.IBATL(ref.Slot)
	case ref.Half == BATUpper:
		return t.DBATU(ref.Slot)
	default:
		return t.DBATL(ref.Slot)
	}
}

func writeBAT(t BATAccess, ref BATRef, v uint32) {
	switch {
	case ref.Category == InstructionBAT && ref.Half == BATUpper:
		t.SetIBATU(ref.Slot, v)
	case ref.Category == InstructionBAT:
		t.SetIBATL(ref.Slot, v)
	case ref.Half == BATUpper:
		t.SetDBATU(ref.Slot, v)
	default:
		t.SetDBATL(ref.Slot, v)
	}
}
