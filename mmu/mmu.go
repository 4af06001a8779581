// Package mmu holds the translation state the supervisor model forwards to:
// BAT arrays, SDR1, segment registers and the translation switches.
// Page-table walking is not modeled; only block translation is.
package mmu

import (
	"github.com/sarchlab/espresso/emu"
)

// BAT upper word fields.
const (
	batBEPIMask uint32 = 0xFFFE0000
	batBLMask   uint32 = 0x00001FFC
	batVs       uint32 = 0x00000002
	batVp       uint32 = 0x00000001
)

// BAT lower word fields.
const (
	batBRPNMask uint32 = 0xFFFE0000
	batWIMGMask uint32 = 0x00000078
	batPPMask   uint32 = 0x00000003
)

// NumSegments is the number of segment registers.
const NumSegments = 16

// MMU is the translation subsystem state of one core.
type MMU struct {
	ibatu, ibatl [emu.NumBATs]uint32
	dbatu, dbatl [emu.NumBATs]uint32

	sdr1 uint32
	sr   [NumSegments]uint32

	dataTranslation        bool
	instructionTranslation bool
	supervisor             bool
}

// New creates an MMU in the reset state: translation off, supervisor mode.
func New() *MMU {
	return &MMU{supervisor: true}
}

func slotOK(slot int) bool {
	return slot >= 0 && slot < emu.NumBATs
}

// IBATU returns the upper word of instruction BAT slot.
func (m *MMU) IBATU(slot int) uint32 {
	if !slotOK(slot) {
		return 0
	}
	return m.ibatu[slot]
}

// IBATL returns the lower word of instruction BAT slot.
func (m *MMU) IBATL(slot int) uint32 {
	if !slotOK(slot) {
		return 0
	}
	return m.ibatl[slot]
}

// DBATU returns the upper word of data BAT slot.
func (m *MMU) DBATU(slot int) uint32 {
	if !slotOK(slot) {
		return 0
	}
	return m.dbatu[slot]
}

// DBATL returns the lower word of data BAT slot.
func (m *MMU) DBATL(slot int) uint32 {
	if !slotOK(slot) {
		return 0
	}
	return m.dbatl[slot]
}

// SetIBATU sets the upper word of instruction BAT slot.
func (m *MMU) SetIBATU(slot int, v uint32) {
	if slotOK(slot) {
		m.ibatu[slot] = v
	}
}

// SetIBATL sets the lower word of instruction BAT slot.
func (m *MMU) SetIBATL(slot int, v uint32) {
	if slotOK(slot) {
		m.ibatl[slot] = v
	}
}

// SetDBATU sets the upper word of data BAT slot.
func (m *MMU) SetDBATU(slot int, v uint32) {
	if slotOK(slot) {
		m.dbatu[slot] = v
	}
}

// SetDBATL sets the lower word of data BAT slot.
func (m *MMU) SetDBATL(slot int, v uint32) {
	if slotOK(slot) {
		m.dbatl[slot] = v
	}
}

// SDR1 returns the page table base register.
func (m *MMU) SDR1() uint32 {
	return m.sdr1
}

// SetSDR1 sets the page table base register.
func (m *MMU) SetSDR1(v uint32) {
	m.sdr1 = v
}

// SR returns segment register n (mfsr).
func (m *MMU) SR(n int) uint32 {
	return m.sr[n&(NumSegments-1)]
}

// SetSR sets segment register n (mtsr).
func (m *MMU) SetSR(n int, v uint32) {
	m.sr[n&(NumSegments-1)] = v
}

// SetDataTranslation switches data address translation.
func (m *MMU) SetDataTranslation(enabled bool) {
	m.dataTranslation = enabled
}

// SetInstructionTranslation switches instruction address translation.
func (m *MMU) SetInstructionTranslation(enabled bool) {
	m.instructionTranslation = enabled
}

// SetSupervisor switches between supervisor and user privilege.
func (m *MMU) SetSupervisor(supervisor bool) {
	m.supervisor = supervisor
}

// DataTranslation reports whether data translation is on.
func (m *MMU) DataTranslation() bool {
	return m.dataTranslation
}

// InstructionTranslation reports whether instruction translation is on.
func (m *MMU) InstructionTranslation() bool {
	return m.instructionTranslation
}

// Supervisor reports whether the core runs in supervisor mode.
func (m *MMU) Supervisor() bool {
	return m.supervisor
}
