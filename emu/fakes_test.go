package emu_test

import (
	"fmt"

	"github.com/sarchlab/espresso/emu"
)

// fakeCore records every call the supervisor model makes on the core.
type fakeCore struct {
	pc     uint32
	sprs   map[emu.SPR]uint32
	raised []emu.ExceptionKind
	calls  []string
}

func newFakeCore() *fakeCore {
	return &fakeCore{sprs: map[emu.SPR]uint32{}}
}

func (c *fakeCore) PC() uint32 {
	return c.pc
}

func (c *fakeCore) SetSPR(n emu.SPR, v uint32) {
	c.sprs[n] = v
	c.calls = append(c.calls, fmt.Sprintf("SetSPR(%s)", n))
}

func (c *fakeCore) RaiseException(kind emu.ExceptionKind) emu.Signal {
	c.raised = append(c.raised, kind)
	c.calls = append(c.calls, fmt.Sprintf("Raise(%s)", kind))
	return emu.Raised(kind)
}

// fakeTranslator stores BAT words and records mode switches.
type fakeTranslator struct {
	ibatu, ibatl, dbatu, dbatl [emu.NumBATs]uint32
	sdr1                       uint32

	dataTranslation        []bool
	instructionTranslation []bool
	supervisor             []bool
}

func (t *fakeTranslator) IBATU(i int) uint32 { return t.ibatu[i] }
func (t *fakeTranslator) IBATL(i int) uint32 { return t.ibatl[i] }
func (t *fakeTranslator) DBATU(i int) uint32 { return t.dbatu[i] }
func (t *fakeTranslator) DBATL(i int) uint32 { return t.dbatl[i] }
func (t *fakeTranslator) SetIBATU(i int, v uint32) { t.ibatu[i] = v }
func (t *fakeTranslator) SetIBATL(i int, v uint32) { t.ibatl[i] = v }
func (t *fakeTranslator) SetDBATU(i int, v uint32) { t.dbatu[i] = v }
func (t *fakeTranslator) SetDBATL(i int, v uint32) { t.dbatl[i] = v }
func (t *fakeTranslator) SetSDR1(v uint32) { t.sdr1 = v }
func (t *fakeTranslator) SetDataTranslation(b bool) { t.dataTranslation = append(t.dataTranslation, b) }
func (t *fakeTranslator) SetSupervisor(b bool) { t.supervisor = append(t.supervisor, b) }
func (t *fakeTranslator) SetInstructionTranslation(b bool) {
	t.instructionTranslation = append(t.instructionTranslation, b)
}

// pendingLine is an InterruptSource with a settable level.
type pendingLine struct {
	level bool
}

func (l *pendingLine) Pending() bool {
	return l.level
}
