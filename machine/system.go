package machine

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/espresso/config"
)

// MaxCores is the number of cores on an Espresso die.
const MaxCores = 3

// System is a set of cores whose alarms share one engine. Each core has its
// own register bank, interrupt line and UPIR.
type System struct {
	Machines []*Machine
}

// NewSystem builds cores machines from cfg. Core IDs are assigned upwards
// from cfg.CoreID.
func NewSystem(cfg *config.MachineConfig, cores int, opts ...Option) (*System, error) {
	if cores < 1 || cores > MaxCores {
		return nil, fmt.Errorf("core count must be between 1 and %d, got %d", MaxCores, cores)
	}

	s := &System{}
	for i := 0; i < cores; i++ {
		coreCfg := cfg.Clone()
		coreCfg.CoreID = cfg.CoreID + uint32(i)

		m, err := New(coreCfg, opts...)
		if err != nil {
			return nil, fmt.Errorf("core %d: %w", coreCfg.CoreID, err)
		}
		s.Machines = append(s.Machines, m)
	}

	return s, nil
}

// Run fires every core's alarm firings times on one serial engine.
func (s *System) Run(firings uint64) error {
	engine := sim.NewSerialEngine()
	for _, m := range s.Machines {
		NewAlarm(m.name+".Alarm", engine, m, firings).TickLater()
	}

	return engine.Run()
}
