// Package app wires the loader, the virtual machine, the frontend and the
// frame pacing driver together.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/sdl"
	"github.com/retroenv/retrochip8/internal/frontend/term"
	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// frontend is a host frontend that holds resources.
type frontend interface {
	host.Frontend
	Close() error
}

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the ROM and the machine setup.
func PrintInfo(logger *log.Logger, opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
		log.String("machine", config.Describe(opts)),
	)
}

// Run loads the ROM and either runs it until the user quits, the frame limit
// is reached or the machine fails, or writes its disassembly to out.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, out io.Writer) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.Listing(out, program, memory.ProgramOffset); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	PrintInfo(logger, opts, program)

	machine, err := vm.New(config.Machine(logger, opts), program)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	front, err := newFrontend(logger, opts, out)
	if err != nil {
		return fmt.Errorf("creating %s frontend: %w", opts.Frontend, err)
	}
	defer func() {
		if err := front.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	driver := host.New(logger, machine, front, config.Driver(opts))
	runErr := driver.Run(ctx)

	logger.Debug("Run finished",
		log.Int("frames", driver.Frames()),
		log.Int("presented", driver.Presents()),
		log.Hex("pc", machine.PC()),
	)

	if screen, ok := front.(*headless.Frontend); ok {
		if err := screen.Dump(out); err != nil {
			return fmt.Errorf("dumping screen: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running machine: %w", runErr)
	}
	return nil
}

func newFrontend(logger *log.Logger, opts options.Program, out io.Writer) (frontend, error) {
	switch opts.Frontend {
	case options.FrontendSDL:
		return sdl.New(logger, "retrochip8 - "+opts.Input, opts.Scale)
	case options.FrontendTerminal:
		return term.New(logger, os.Stdin, out)
	case options.FrontendHeadless:
		return headless.New(), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
