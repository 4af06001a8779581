package emu

import (
	"github.com/go-logr/logr"
)

const (
	// srr1MSRMask selects the MSR bits saved in SRR1 and restored by rfi.
	srr1MSRMask uint32 = 0x87C0FFFF

	// srr1ISIPageFault is set in SRR1 when an ISI finds no translation.
	srr1ISIPageFault uint32 = 0x40000000

	// highVectorBase prefixes vectors while MSR[IP] is set.
	highVectorBase uint32 = 0xFFF00000
)

// Core is the supervisor-visible state of one core: the register file plus
// exception entry and return. It implements CoreAccess for an interpreter
// that delegates exception delivery to it.
type Core struct {
	regFile *RegFile
	msrHook func(msr uint32)
	log     logr.Logger

	pendingDecrementer bool
	taken              [len(exceptionVectors)]uint64
}

// CoreOption is a functional option for configuring the Core.
type CoreOption func(*Core)

// WithMSRHook registers a function called with every new MSR value.
func WithMSRHook(hook func(msr uint32)) CoreOption {
	return func(c *Core) {
		c.msrHook = hook
	}
}

// WithCoreLogger sets the logger used for exception entry tracing.
func WithCoreLogger(log logr.Logger) CoreOption {
	return func(c *Core) {
		c.log = log
	}
}

// NewCore creates a Core operating on regFile.
func NewCore(regFile *RegFile, opts ...CoreOption) *Core {
	c := &Core{
		regFile: regFile,
		log:     logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RegFile returns the core's register file.
func (c *Core) RegFile() *RegFile {
	return c.regFile
}

// PC returns the current program counter.
func (c *Core) PC() uint32 {
	return c.regFile.PC
}

// SetPC sets the program counter.
func (c *Core) SetPC(pc uint32) {
	c.regFile.PC = pc
}

// MSR returns the machine state register.
func (c *Core) MSR() uint32 {
	return c.regFile.MSR
}

// SetMSR writes the machine state register and notifies the MSR hook.
func (c *Core) SetMSR(msr uint32) {
	c.regFile.MSR = msr
	if c.msrHook != nil {
		c.msrHook(msr)
	}
}

// SPR returns an architected SPR held by the core. Other numbers read 0.
func (c *Core) SPR(n SPR) uint32 {
	if p := c.regFile.ArchSPR(n); p != nil {
		return *p
	}
	return 0
}

// SetSPR writes an architected SPR held by the core. Other numbers are
// ignored.
func (c *Core) SetSPR(n SPR, v uint32) {
	if p := c.regFile.ArchSPR(n); p != nil {
		*p = v
	}
}

// DecrementerPending reports whether a masked decrementer exception is
// waiting for MSR[EE].
func (c *Core) DecrementerPending() bool {
	return c.pendingDecrementer
}

// Taken returns how many exceptions of kind have been delivered.
func (c *Core) Taken(kind ExceptionKind) uint64 {
	if int(kind) >= len(c.taken) {
		return 0
	}
	return c.taken[kind]
}

// RaiseException delivers kind. Asynchronous exceptions are held off while
// MSR[EE] is clear: a decrementer is latched until DeliverPending, an
// external interrupt is dropped because its line is polled again.
func (c *Core) RaiseException(kind ExceptionKind) Signal {
	if kind == ExceptionNone || int(kind) >= len(exceptionVectors) {
		return Continue
	}

	if kind.Asynchronous() && c.regFile.MSR&MSREE == 0 {
		if kind == ExceptionDecrementer {
			c.pendingDecrementer = true
		}
		return Continue
	}

	if kind == ExceptionDecrementer {
		c.pendingDecrementer = false
	}

	c.enter(kind)

	return Raised(kind)
}

// DeliverPending takes a latched decrementer exception if MSR[EE] allows it.
func (c *Core) DeliverPending() Signal {
	if !c.pendingDecrementer || c.regFile.MSR&MSREE == 0 {
		return Continue
	}
	return c.RaiseException(ExceptionDecrementer)
}

// ReturnFromInterrupt performs rfi: restore MSR from SRR1 and resume at
// SRR0.
func (c *Core) ReturnFromInterrupt() {
	c.SetMSR(c.regFile.SRR1 & srr1MSRMask)
	c.regFile.PC = c.regFile.SRR0 &^ 3
}

func (c *Core) enter(kind ExceptionKind) {
	rf := c.regFile
	oldMSR := rf.MSR

	rf.SRR0 = rf.PC
	rf.SRR1 = oldMSR & srr1MSRMask
	if kind == ExceptionISI {
		rf.SRR1 |= srr1ISIPageFault
	}

	newMSR := oldMSR & (MSRIP | MSRME)
	if oldMSR&MSRILE != 0 {
		newMSR |= MSRLE
	}
	c.SetMSR(newMSR)

	vector := kind.Vector()
	if oldMSR&MSRIP != 0 {
		vector |= highVectorBase
	}
	rf.PC = vector

	c.taken[kind]++

	c.log.V(2).Info("exception entry",
		"kind", kind.String(), "srr0", hex32(rf.SRR0), "vector", hex32(vector))
}
