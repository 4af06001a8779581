package emu

// MSR bits used by the supervisor model.
const (
	MSRLE  uint32 = 0x00000001 // little-endian mode
	MSRRI  uint32 = 0x00000002 // recoverable interrupt
	MSRDR  uint32 = 0x00000010 // data address translation
	MSRIR  uint32 = 0x00000020 // instruction address translation
	MSRIP  uint32 = 0x00000040 // exception prefix
	MSRFE1 uint32 = 0x00000100
	MSRBE  uint32 = 0x00000200
	MSRSE  uint32 = 0x00000400
	MSRFE0 uint32 = 0x00000800
	MSRME  uint32 = 0x00001000 // machine check enable
	MSRFP  uint32 = 0x00002000
	MSRPR  uint32 = 0x00004000 // problem (user) state
	MSREE  uint32 = 0x00008000 // external interrupt enable
	MSRILE uint32 = 0x00010000 // exception little-endian
	MSRPOW uint32 = 0x00040000
)

// ModeSetter receives the translation and privilege switches derived from
// the MSR.
type ModeSetter interface {
	SetDataTranslation(enabled bool)
	SetInstructionTranslation(enabled bool)
	SetSupervisor(supervisor bool)
}

// MSRController forwards MSR writes to the translation subsystem.
type MSRController struct {
	modes ModeSetter
}

// NewMSRController creates a controller driving modes.
func NewMSRController(modes ModeSetter) *MSRController {
	return &MSRController{modes: modes}
}

// OnMachineStateWrite is called with every new MSR value.
func (c *MSRController) OnMachineStateWrite(msr uint32) {
	c.modes.SetDataTranslation(msr&MSRDR != 0)
	c.modes.SetInstructionTranslation(msr&MSRIR != 0)
	c.modes.SetSupervisor(msr&MSRPR == 0)
}
