// Package config holds the machine configuration for Espresso.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// MachineConfig holds the per-core supervisor model parameters.
type MachineConfig struct {
	// TickCycles is how far the time base and decrementer move per alarm
	// firing. Default: 400.
	TickCycles uint32 `json:"tick_cycles"`

	// AlarmPeriod is the number of emulated cycles between alarm firings.
	// Default: 5000.
	AlarmPeriod uint64 `json:"alarm_period"`

	// FrequencyMHz is the emulated core clock. Default: 243 MHz.
	FrequencyMHz float64 `json:"frequency_mhz"`

	// PVR is the processor version register value. Default: 0x70010201.
	PVR uint32 `json:"pvr"`

	// CoreID is reported through UPIR. Default: 0.
	CoreID uint32 `json:"core_id"`

	// Firings bounds how many alarm firings a run performs. 0 means the
	// caller decides. Default: 0.
	Firings uint64 `json:"firings"`
}

// Default returns a MachineConfig with the Espresso defaults.
func Default() *MachineConfig {
	return &MachineConfig{
		TickCycles:   400,
		AlarmPeriod:  5000,
		FrequencyMHz: 243,
		PVR:          0x70010201,
		CoreID:       0,
		Firings:      0,
	}
}

// Load loads a MachineConfig from a JSON file. Fields missing from the file
// keep their defaults.
func Load(path string) (*MachineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	return cfg, nil
}

// Save writes a MachineConfig to a JSON file.
func (c *MachineConfig) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize machine config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write machine config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a machine.
func (c *MachineConfig) Validate() error {
	if c.TickCycles == 0 {
		return fmt.Errorf("tick_cycles must be > 0")
	}
	if c.AlarmPeriod == 0 {
		return fmt.Errorf("alarm_period must be > 0")
	}
	if c.FrequencyMHz <= 0 {
		return fmt.Errorf("frequency_mhz must be > 0")
	}
	if c.CoreID > 2 {
		return fmt.Errorf("core_id must be 0, 1 or 2")
	}
	return nil
}

// Clone returns a copy of the MachineConfig.
func (c *MachineConfig) Clone() *MachineConfig {
	clone := *c
	return &clone
}
