package machine

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Alarm is the host alarm that fires the machine's timer every
// AlarmPeriod emulated cycles.
type Alarm struct {
	*sim.TickingComponent

	machine   *Machine
	remaining uint64
}

// NewAlarm creates an alarm for m that fires at most firings times.
func NewAlarm(name string, engine sim.Engine, m *Machine, firings uint64) *Alarm {
	a := &Alarm{
		machine:   m,
		remaining: firings,
	}
	a.TickingComponent = sim.NewTickingComponent(name, engine, AlarmFreq(m), a)

	return a
}

// AlarmFreq returns how often the alarm of m fires.
func AlarmFreq(m *Machine) sim.Freq {
	return sim.Freq(m.Config.FrequencyMHz) * sim.MHz / sim.Freq(m.Config.AlarmPeriod)
}

// Remaining returns how many firings are left.
func (a *Alarm) Remaining() uint64 {
	return a.remaining
}

// Tick fires the machine once. It stops ticking when no firings remain.
func (a *Alarm) Tick() bool {
	if a.remaining == 0 {
		return false
	}

	a.remaining--
	a.machine.Fire()

	return true
}

// Run fires the alarm of m firings times on a fresh serial engine.
func (m *Machine) Run(firings uint64) error {
	engine := sim.NewSerialEngine()
	alarm := NewAlarm(m.name+".Alarm", engine, m, firings)

	alarm.TickLater()

	return engine.Run()
}
