package emu

// DefaultTickCycles is the amount the time base advances per alarm firing.
const DefaultTickCycles uint32 = 400

// TimerDriver advances the time base and the decrementer. It is driven by
// a host alarm at a fixed period.
type TimerDriver struct {
	bank       *SPRBank
	dispatcher *ExceptionDispatcher
	tick       uint32

	underflows uint64
}

// NewTimerDriver creates a timer that moves bank's counters by tick per
// firing. A zero tick selects DefaultTickCycles.
func NewTimerDriver(bank *SPRBank, dispatcher *ExceptionDispatcher, tick uint32) *TimerDriver {
	if tick == 0 {
		tick = DefaultTickCycles
	}

	return &TimerDriver{
		bank:       bank,
		dispatcher: dispatcher,
		tick:       tick,
	}
}

// TickSize returns the per-firing increment.
func (t *TimerDriver) TickSize() uint32 {
	return t.tick
}

// Underflows returns how many decrementer underflows have occurred.
func (t *TimerDriver) Underflows() uint64 {
	return t.underflows
}

// OnTick performs one alarm firing.
func (t *TimerDriver) OnTick() Signal {
	t.bank.timeBase += uint64(t.tick)

	dec := int64(t.bank.decrementer) - int64(t.tick)
	if dec >= 0 {
		t.bank.decrementer = uint32(dec)
		return Continue
	}

	// Wrap before raising so nothing observes a negative count.
	t.bank.decrementer = uint32(dec + 1<<32)
	t.underflows++

	return t.dispatcher.OnDecrementerUnderflow()
}
