package emu

// RegFile represents the PowerPC registers shared between the interpreter
// and the supervisor model: the program counter, the MSR and the
// architected exception registers. General-purpose registers belong to the
// interpreter and are not modeled here.
type RegFile struct {
	// PC is the address of the current instruction.
	PC uint32

	// MSR is the machine state register.
	MSR uint32

	// SRR0 and SRR1 save PC and MSR on exception entry.
	SRR0 uint32
	SRR1 uint32

	// DAR and DSISR describe the last data storage interrupt.
	DAR   uint32
	DSISR uint32
}

// ArchSPR returns a pointer to the architected SPR held in the register
// file, or nil if n is not one of them.
func (r *RegFile) ArchSPR(n SPR) *uint32 {
	switch n {
	case SPRSRR0:
		return &r.SRR0
	case SPRSRR1:
		return &r.SRR1
	case SPRDAR:
		return &r.DAR
	case SPRDSISR:
		return &r.DSISR
	}
	return nil
}
