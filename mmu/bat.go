package mmu

// Block is a decoded BAT pair.
type Block struct {
	EffectiveBase uint32
	PhysicalBase  uint32
	Size          uint32
	WIMG          uint8
	PP            uint8

	// ValidSupervisor and ValidUser are the Vs and Vp bits.
	ValidSupervisor bool
	ValidUser       bool
}

// DecodeBlock decodes a BAT upper/lower pair.
func DecodeBlock(upper, lower uint32) Block {
	bl := (upper & batBLMask) >> 2
	mask := blockMask(bl)

	return Block{
		EffectiveBase:   upper & batBEPIMask &^ mask,
		PhysicalBase:    lower & batBRPNMask &^ mask,
		Size:            mask + 1,
		WIMG:            uint8((lower & batWIMGMask) >> 3),
		PP:              uint8(lower & batPPMask),
		ValidSupervisor: upper&batVs != 0,
		ValidUser:       upper&batVp != 0,
	}
}

// blockMask returns the offset mask of a block of length code bl.
// bl=0 is 128KB; every set bit doubles it up to 256MB.
func blockMask(bl uint32) uint32 {
	return bl<<17 | 0x1FFFF
}

// Contains reports whether ea falls inside the block.
func (b Block) Contains(ea uint32) bool {
	return ea&^(b.Size-1) == b.EffectiveBase
}

// Valid reports whether the block applies at the given privilege.
func (b Block) Valid(supervisor bool) bool {
	if supervisor {
		return b.ValidSupervisor
	}
	return b.ValidUser
}

// BlockTranslate translates ea through the BAT arrays. With translation
// disabled for the access kind, ea is returned unchanged. ok is false if
// translation is on and no valid block covers ea; the caller falls back to
// the page table.
func (m *MMU) BlockTranslate(ea uint32, instruction bool) (pa uint32, ok bool) {
	upper, lower := &m.dbatu, &m.dbatl
	enabled := m.dataTranslation
	if instruction {
		upper, lower = &m.ibatu, &m.ibatl
		enabled = m.instructionTranslation
	}

	if !enabled {
		return ea, true
	}

	for i := range upper {
		b := DecodeBlock(upper[i], lower[i])
		if !b.Valid(m.supervisor) || !b.Contains(ea) {
			continue
		}
		return b.PhysicalBase | ea&(b.Size-1), true
	}

	return 0, false
}
