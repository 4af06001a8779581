// Package main provides the command-line front end for Espresso.
// It runs the supervisor timer model of up to three cores and decodes SPR
// numbers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/sarchlab/espresso/config"
	"github.com/sarchlab/espresso/emu"
	"github.com/sarchlab/espresso/machine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "espresso",
		Short: "Espresso supervisor register and timer model",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newRunCmd(), newSPRCmd())

	return rootCmd
}

type runOptions struct {
	configPath string
	savePath   string
	firings    uint64
	cores      int
	enableEE   bool
	irq        bool
	rfi        bool
	verbose    bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fire the timer alarms of the cores and report exceptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachine(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to machine configuration JSON file")
	flags.StringVar(&opts.savePath, "save-config", "", "Write the effective configuration to this path")
	flags.Uint64Var(&opts.firings, "firings", 0, "Number of alarm firings (overrides config)")
	flags.IntVar(&opts.cores, "cores", 1, "Number of cores, numbered upwards from the configured core_id")
	flags.BoolVar(&opts.enableEE, "ee", false, "Start with external interrupts enabled (MSR[EE])")
	flags.BoolVar(&opts.irq, "irq", false, "Assert every core's external interrupt line before running")
	flags.BoolVar(&opts.rfi, "rfi", false, "Return from every exception immediately")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runMachine(cmd *cobra.Command, opts runOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}
	if opts.firings != 0 {
		cfg.Firings = opts.firings
	}
	if cfg.Firings == 0 {
		cfg.Firings = 1000
	}

	if opts.savePath != "" {
		if err := cfg.Save(opts.savePath); err != nil {
			return err
		}
	}

	machineOpts := []machine.Option{machine.WithLogger(newLogger(opts.verbose))}
	if opts.rfi {
		machineOpts = append(machineOpts, machine.WithAutoReturn())
	}

	sys, err := machine.NewSystem(cfg, opts.cores, machineOpts...)
	if err != nil {
		return err
	}

	for _, m := range sys.Machines {
		if opts.enableEE {
			m.Core.SetMSR(m.Core.MSR() | emu.MSREE)
		}
		if opts.irq {
			m.Interrupts.Assert(0)
		}
	}

	if err := sys.Run(cfg.Firings); err != nil {
		return fmt.Errorf("alarm engine failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for i, m := range sys.Machines {
		if i > 0 {
			fmt.Fprintf(out, "\n")
		}
		report(out, m)
	}

	return nil
}

func report(out io.Writer, m *machine.Machine) {
	stats := m.Stats()

	fmt.Fprintf(out, "Core: %s\n", m.Name())
	fmt.Fprintf(out, "Firings: %d\n", stats.Firings)
	fmt.Fprintf(out, "Time base: 0x%016X\n", m.SPRs.TimeBase())
	fmt.Fprintf(out, "Decrementer: 0x%08X\n", m.SPRs.Decrementer())
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Exceptions:\n")
	fmt.Fprintf(out, "  Decrementer underflows: %d\n", stats.Underflows)
	fmt.Fprintf(out, "  Decrementer taken:      %d\n", stats.Decrementer)
	fmt.Fprintf(out, "  External taken:         %d\n", stats.External)
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "PC: 0x%08X  MSR: 0x%08X  SRR0: 0x%08X  SRR1: 0x%08X\n",
		m.Core.PC(), m.Core.MSR(), m.RegFile.SRR0, m.RegFile.SRR1)
	fmt.Fprintf(out, "SR0-3: 0x%08X 0x%08X 0x%08X 0x%08X\n",
		m.MMU.SR(0), m.MMU.SR(1), m.MMU.SR(2), m.MMU.SR(3))
}

func newSPRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spr <number>...",
		Short: "Decode SPR numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				n, err := strconv.ParseUint(arg, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid SPR number %q: %w", arg, err)
				}

				spr := emu.SPR(n)
				if ref, ok := emu.DecodeBAT(spr); ok {
					fmt.Fprintf(out, "%d\t%s\tslot %d\n", n, spr, ref.Slot)
					continue
				}
				fmt.Fprintf(out, "%d\t%s\n", n, spr)
			}
			return nil
		},
	}
}

func newLogger(verbose bool) logr.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.Level(-2)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return logr.FromSlogHandler(handler)
}
