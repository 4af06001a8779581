// Package machine wires the supervisor model of one Espresso core together
// and drives its timer from an Akita event engine.
package machine

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/espresso/config"
	"github.com/sarchlab/espresso/emu"
	"github.com/sarchlab/espresso/mmu"
)

// Stats holds exception statistics for one core.
type Stats struct {
	// Firings is the number of alarm firings.
	Firings uint64
	// Underflows is the number of decrementer underflows, delivered or not.
	Underflows uint64
	// Decrementer is the number of decrementer exceptions taken.
	Decrementer uint64
	// External is the number of external interrupts taken.
	External uint64
	// DSI and ISI count storage interrupts taken.
	DSI uint64
	ISI uint64
}

// Machine is one core with its supervisor collaborators.
type Machine struct {
	Config *config.MachineConfig

	RegFile    *emu.RegFile
	Core       *emu.Core
	MMU        *mmu.MMU
	Interrupts *emu.InterruptLine

	SPRs       *emu.SPRBank
	MSR        *emu.MSRController
	Exceptions *emu.ExceptionDispatcher
	Timer      *emu.TimerDriver

	name       string
	log        logr.Logger
	firings    uint64
	autoReturn bool
}

// Option is a functional option for configuring the Machine.
type Option func(*Machine)

// WithLogger sets the logger handed to every component.
func WithLogger(log logr.Logger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// WithAutoReturn makes every taken exception return immediately, as if the
// guest handler were a bare rfi.
func WithAutoReturn() Option {
	return func(m *Machine) {
		m.autoReturn = true
	}
}

// New builds a machine from cfg. The core comes up in supervisor mode with
// translation off and high exception vectors, as after reset.
func New(cfg *config.MachineConfig, opts ...Option) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}

	m := &Machine{
		Config: cfg.Clone(),
		log:    logr.Discard(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.name = fmt.Sprintf("Core%d", cfg.CoreID)

	m.RegFile = &emu.RegFile{}
	m.MMU = mmu.New()
	m.Interrupts = emu.NewInterruptLine()
	m.MSR = emu.NewMSRController(m.MMU)
	m.Core = emu.NewCore(m.RegFile,
		emu.WithMSRHook(m.MSR.OnMachineStateWrite),
		emu.WithCoreLogger(m.log.WithName(m.name)),
	)
	m.SPRs = emu.NewSPRBank(m.Core, m.MMU,
		emu.WithPVR(cfg.PVR),
		emu.WithCoreID(cfg.CoreID),
		emu.WithBankLogger(m.log.WithName(m.name).WithName("SPR")),
	)
	m.Exceptions = emu.NewExceptionDispatcher(m.Core, m.Interrupts,
		emu.WithDispatcherLogger(m.log.WithName(m.name)),
	)
	m.Timer = emu.NewTimerDriver(m.SPRs, m.Exceptions, cfg.TickCycles)

	m.Core.SetMSR(emu.MSRIP)

	return m, nil
}

// Fire performs one alarm firing: advance the timer, deliver a held-off
// decrementer, then poll the external interrupt line. It returns the first
// exception taken.
func (m *Machine) Fire() emu.Signal {
	m.firings++

	sig := m.fire()
	if sig.IsRaised() && m.autoReturn {
		m.Core.ReturnFromInterrupt()
	}

	return sig
}

func (m *Machine) fire() emu.Signal {
	if sig := m.Timer.OnTick(); sig.IsRaised() {
		// The external line is level triggered; the next firing polls it.
		return sig
	}

	if sig := m.Core.DeliverPending(); sig.IsRaised() {
		return sig
	}

	return m.Exceptions.OnExternalInterruptPending()
}

// Name returns the component name of the core, e.g. "Core0".
func (m *Machine) Name() string {
	return m.name
}

// Stats returns exception statistics.
func (m *Machine) Stats() Stats {
	return Stats{
		Firings:     m.firings,
		Underflows:  m.Timer.Underflows(),
		Decrementer: m.Core.Taken(emu.ExceptionDecrementer),
		External:    m.Core.Taken(emu.ExceptionExternal),
		DSI:         m.Core.Taken(emu.ExceptionDSI),
		ISI:         m.Core.Taken(emu.ExceptionISI),
	}
}
