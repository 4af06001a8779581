package emu

import (
	"github.com/go-logr/logr"
)

// DSISR bits staged on a data storage interrupt.
const (
	DSISRPageFault uint32 = 0x40000000
	DSISRStore     uint32 = 0x02000000
)

// InterruptSource is the interrupt controller's level-triggered pending line.
type InterruptSource interface {
	Pending() bool
}

// ExceptionDispatcher stages diagnostic registers and raises exceptions on
// the core. Every entry point returns the core's signal; a raised signal
// aborts the instruction that triggered it.
type ExceptionDispatcher struct {
	core       CoreAccess
	interrupts InterruptSource
	log        logr.Logger
}

// DispatcherOption is a functional option for configuring the dispatcher.
type DispatcherOption func(*ExceptionDispatcher)

// WithDispatcherLogger sets the logger used for fault diagnostics.
func WithDispatcherLogger(log logr.Logger) DispatcherOption {
	return func(d *ExceptionDispatcher) {
		d.log = log
	}
}

// NewExceptionDispatcher creates a dispatcher for core, polling interrupts
// for external interrupts. interrupts may be nil when the core has no
// interrupt controller.
func NewExceptionDispatcher(
	core CoreAccess,
	interrupts InterruptSource,
	opts ...DispatcherOption,
) *ExceptionDispatcher {
	d := &ExceptionDispatcher{
		core:       core,
		interrupts: interrupts,
		log:        logr.Discard(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// OnDataFault raises a DSI for an access to addr.
func (d *ExceptionDispatcher) OnDataFault(addr uint32, isWrite bool) Signal {
	dsisr := DSISRPageFault
	if isWrite {
		dsisr |= DSISRStore
	}

	d.log.V(1).Info("DSI", "addr", hex32(addr), "write", isWrite, "pc", hex32(d.core.PC()))

	d.core.SetSPR(SPRDAR, addr)
	d.core.SetSPR(SPRDSISR, dsisr)
	return d.core.RaiseException(ExceptionDSI)
}

// OnInstructionFault raises an ISI for a fetch from addr.
func (d *ExceptionDispatcher) OnInstructionFault(addr uint32) Signal {
	d.log.V(1).Info("ISI", "addr", hex32(addr))

	return d.core.RaiseException(ExceptionISI)
}

// OnExternalInterruptPending raises an external interrupt if the interrupt
// line is asserted. It is level triggered and meant to be polled.
func (d *ExceptionDispatcher) OnExternalInterruptPending() Signal {
	if d.interrupts == nil || !d.interrupts.Pending() {
		return Continue
	}
	return d.core.RaiseException(ExceptionExternal)
}

// OnDecrementerUnderflow raises a decrementer exception.
func (d *ExceptionDispatcher) OnDecrementerUnderflow() Signal {
	return d.core.RaiseException(ExceptionDecrementer)
}
