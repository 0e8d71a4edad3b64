// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/rng"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Machine returns the virtual machine configuration for the program options.
func Machine(logger *log.Logger, opts options.Program) vm.Config {
	cfg := vm.Config{
		Quirks:     opts.Quirks,
		StackLimit: opts.StackLimit,
		Logger:     logger,
		Trace:      opts.Trace,
	}
	if opts.Seed != 0 {
		cfg.Random = rng.NewSeeded(opts.Seed)
	}
	return cfg
}

// Driver returns the frame pacing configuration for the program options.
func Driver(opts options.Program) host.Config {
	return host.Config{
		StepsPerFrame: opts.StepsPerFrame,
		FrameRate:     opts.FrameRate,
		MaxFrames:     opts.MaxFrames,
	}
}

// Describe returns a short description of the machine configuration for
// the start up log.
func Describe(opts options.Program) string {
	dialect := "chip-48"
	if opts.Quirks {
		dialect = "cosmac-vip"
	}
	return fmt.Sprintf("%s, %d instructions per frame", dialect, opts.StepsPerFrame)
}
