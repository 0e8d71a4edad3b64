// Package host implements the frame pacing driver that connects a machine to
// a frontend. Per displayed frame it decrements the timers, gates the tone,
// polls the keys, executes a fixed number of instructions and presents the
// framebuffer if any instruction changed it.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultFrameRate is the number of displayed frames per second.
	DefaultFrameRate = 60
	// DefaultStepsPerFrame approximates 700 instructions per second at 60 frames per second.
	DefaultStepsPerFrame = 700 / DefaultFrameRate
)

// ErrQuit is returned by Frame when the frontend requested to end the run.
var ErrQuit = errors.New("quit requested")

// Frontend presents the machine to the user.
type Frontend interface {
	// Poll returns the keypad state for the next frame and whether the
	// user requested to quit.
	Poll() (vm.Keys, bool)
	// Present displays the framebuffer.
	Present(fb *vm.Framebuffer) error
	// Tone starts or stops the tone.
	Tone(on bool)
}

// Machine is the part of the virtual machine that the driver uses.
type Machine interface {
	Step(keys vm.Keys) (bool, error)
	TickTimers()
	SoundTimer() byte
	Framebuffer() *vm.Framebuffer
	PC() uint16
}

// Config contains the pacing options of the driver.
type Config struct {
	StepsPerFrame int
	FrameRate     int // 0 runs without waiting between frames
	MaxFrames     int // 0 runs until cancelled or quit
}

// Driver runs a machine frame by frame. It is the only caller of the machine
// while running.
type Driver struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend
	cfg      Config

	frames   int
	toneOn   bool
	presents int
}

// New returns a new driver.
func New(logger *log.Logger, machine Machine, frontend Frontend, cfg Config) *Driver {
	if cfg.StepsPerFrame <= 0 {
		cfg.StepsPerFrame = DefaultStepsPerFrame
	}
	return &Driver{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		cfg:      cfg,
	}
}

// Run executes frames until the context is cancelled, the frontend requests
// to quit, the frame limit is reached or the machine fails. Only a machine
// failure is returned as error.
func (d *Driver) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if d.cfg.FrameRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(d.cfg.FrameRate))
		defer ticker.Stop()
		tick = ticker.C
	}
	defer d.frontend.Tone(false)

	for d.cfg.MaxFrames == 0 || d.frames < d.cfg.MaxFrames {
		if err := ctx.Err(); err != nil {
			d.logger.Debug("Run cancelled", log.Int("frames", d.frames))
			return nil
		}

		err := d.Frame()
		switch {
		case errors.Is(err, ErrQuit):
			d.logger.Debug("Quit requested", log.Int("frames", d.frames))
			return nil
		case err != nil:
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}

	d.logger.Debug("Frame limit reached", log.Int("frames", d.frames))
	return nil
}

// Frame runs a single displayed frame.
func (d *Driver) Frame() error {
	d.machine.TickTimers()
	d.setTone(d.machine.SoundTimer() > 0)

	keys, quit := d.frontend.Poll()
	if quit {
		return ErrQuit
	}

	var changed bool
	for range d.cfg.StepsPerFrame {
		stepChanged, err := d.machine.Step(keys)
		if err != nil {
			return fmt.Errorf("frame %d, pc $%04X: %w", d.frames, d.machine.PC(), err)
		}
		changed = changed || stepChanged
	}

	if changed {
		if err := d.frontend.Present(d.machine.Framebuffer()); err != nil {
			return fmt.Errorf("presenting frame %d: %w", d.frames, err)
		}
		d.presents++
	}

	d.frames++
	return nil
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() int {
	return d.frames
}

// Presents returns the number of frames that were presented.
func (d *Driver) Presents() int {
	return d.presents
}

func (d *Driver) setTone(on bool) {
	if on == d.toneOn {
		return
	}
	d.toneOn = on
	d.frontend.Tone(on)
}
