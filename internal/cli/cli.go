// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
)

var validFrontends = []string{options.FrontendSDL, options.FrontendTerminal, options.FrontendHeadless}

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args)
}

func parseArgs(args []string) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	// parse errors and usage are printed by the caller through UsageError
	flags.Usage = func() {}
	flags.SetOutput(io.Discard)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args[1:]); err != nil {
		usageErr := &UsageError{flags: flags, msg: err.Error()}
		if errors.Is(err, flag.ErrHelp) {
			usageErr.msg = ""
		}
		return opts, usageErr
	}
	positional := flags.Args()
	if len(positional) == 0 {
		return opts, &UsageError{flags: flags, msg: "no ROM file specified"}
	}

	if err := validateArgs(flags, positional); err != nil {
		return opts, err
	}
	opts.Input = positional[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "usage requested"
	}
	return e.msg
}

// ShowUsage prints the usage information to stdout.
func (e *UsageError) ShowUsage() {
	e.WriteUsage(os.Stdout)
}

// WriteUsage writes the usage information and the flag defaults to w.
func (e *UsageError) WriteUsage(w io.Writer) {
	if e.msg != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", e.msg)
	}
	_, _ = fmt.Fprintf(w, "usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(w)
		e.flags.PrintDefaults()
	}
	_, _ = fmt.Fprintln(w)
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{flags: flags, msg: "only a single ROM file can be run"}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(validFrontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	switch {
	case opts.StepsPerFrame <= 0:
		return fmt.Errorf("instructions per frame must be positive, got %d", opts.StepsPerFrame)
	case opts.FrameRate < 0:
		return fmt.Errorf("frame rate must not be negative, got %d", opts.FrameRate)
	case opts.MaxFrames < 0:
		return fmt.Errorf("frame limit must not be negative, got %d", opts.MaxFrames)
	case opts.StackLimit < 0:
		return fmt.Errorf("stack limit must not be negative, got %d", opts.StackLimit)
	case opts.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %d", opts.Scale)
	}

	// the trace is logged at debug level
	if opts.Trace {
		opts.Debug = true
		opts.Quiet = false
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendSDL, "frontend to use (sdl/term/headless)")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")

	flags.BoolVar(&opts.Quirks, "quirks", false, "use the COSMAC VIP behavior of the shift, jump with offset and register load/store instructions")
	flags.IntVar(&opts.StackLimit, "stack-limit", 0, "maximum call stack depth, 0 is unbounded")
	flags.Uint64Var(&opts.Seed, "seed", 0, "fixed seed of the random generator, 0 seeds from the system entropy source")

	flags.IntVar(&opts.StepsPerFrame, "ipf", host.DefaultStepsPerFrame, "instructions executed per displayed frame")
	flags.IntVar(&opts.FrameRate, "fps", host.DefaultFrameRate, "displayed frames per second, 0 runs unthrottled")
	flags.IntVar(&opts.MaxFrames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.IntVar(&opts.Scale, "scale", 16, "size of a pixel in the sdl window")
}
