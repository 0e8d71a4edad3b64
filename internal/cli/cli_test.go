package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/host"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseArgs_Defaults(t *testing.T) {
	opts, err := parseArgs([]string{"prog", "game.ch8"})
	assert.NoError(t, err)

	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, options.FrontendSDL, opts.Frontend)
	assert.Equal(t, host.DefaultStepsPerFrame, opts.StepsPerFrame)
	assert.Equal(t, host.DefaultFrameRate, opts.FrameRate)
	assert.Equal(t, 0, opts.MaxFrames)
	assert.Equal(t, 0, opts.StackLimit)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.Quirks)
	assert.False(t, opts.Disasm)
}

func TestParseArgs_Flags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "quirks",
			args: []string{"prog", "-quirks", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Quirks)
			},
		},
		{
			name: "headless frontend",
			args: []string{"prog", "-frontend", "HEADLESS", "-frames", "120", "-fps", "0", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, options.FrontendHeadless, opts.Frontend)
				assert.Equal(t, 120, opts.MaxFrames)
				assert.Equal(t, 0, opts.FrameRate)
			},
		},
		{
			name: "machine flags",
			args: []string{"prog", "-stack-limit", "16", "-seed", "1234", "-ipf", "20", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 16, opts.StackLimit)
				assert.Equal(t, uint64(1234), opts.Seed)
				assert.Equal(t, 20, opts.StepsPerFrame)
			},
		},
		{
			name: "trace implies debug",
			args: []string{"prog", "-q", "-trace", "game.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Trace)
				assert.True(t, opts.Debug)
				assert.False(t, opts.Quiet)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"missing ROM", []string{"prog"}, true},
		{"flag after ROM", []string{"prog", "game.ch8", "-quirks"}, true},
		{"multiple ROMs", []string{"prog", "a.ch8", "b.ch8"}, true},
		{"unknown frontend", []string{"prog", "-frontend", "vga", "game.ch8"}, false},
		{"zero instructions per frame", []string{"prog", "-ipf", "0", "game.ch8"}, false},
		{"negative stack limit", []string{"prog", "-stack-limit", "-1", "game.ch8"}, false},
		{"zero scale", []string{"prog", "-scale", "0", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}

func TestUsageError_WriteUsage(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing ROM", []string{"prog"}, "no ROM file specified"},
		{"flag after ROM", []string{"prog", "game.ch8", "-quirks"}, "found after ROM file"},
		{"multiple ROMs", []string{"prog", "a.ch8", "b.ch8"}, "only a single ROM file"},
		{"unknown flag", []string{"prog", "-vga", "game.ch8"}, "flag provided but not defined"},
		{"help", []string{"prog", "-h"}, "usage: retrochip8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))

			var buf bytes.Buffer
			usageErr.WriteUsage(&buf)
			usage := buf.String()
			assert.True(t, strings.Contains(usage, tt.message))
			assert.Equal(t, 1, strings.Count(usage, "usage: retrochip8"))
			assert.Equal(t, 1, strings.Count(usage, "-stack-limit"))
		})
	}
}

func TestUsageError_WithoutFlags(t *testing.T) {
	usageErr := &UsageError{msg: "no flags"}

	var buf bytes.Buffer
	usageErr.WriteUsage(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), "no flags\n\nusage: retrochip8"))
}
