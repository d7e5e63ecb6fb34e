// Package input opens the device that receives typed key events.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/waytype/internal/logger"
	"github.com/bnema/waytype/internal/sequencer"
	"github.com/bnema/waytype/internal/wayland"
)

// Backend names accepted in configuration
const (
	BackendWayland = "wayland"
	BackendUInput  = "uinput"
	BackendTrace   = "trace"
)

var (
	// ErrBackendClosed is returned when sending to a closed backend
	ErrBackendClosed = errors.New("backend is closed")
	// ErrUnknownBackend is returned for unsupported backend names
	ErrUnknownBackend = errors.New("unknown backend")
)

// Backend receives the keymap once, then events in order, then Close.
type Backend interface {
	sequencer.Sink
	Keymap(text string) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend    string
	Display    string
	Seat       string
	UInputPath string
	DeviceName string
	// Out receives trace output; nil means stdout.
	Out io.Writer
}

// Open creates the backend named in opts
func Open(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendWayland, "":
		session, err := wayland.Connect(wayland.Options{Display: opts.Display, Seat: opts.Seat})
		if err != nil {
			return nil, err
		}
		logger.Debug("Using Wayland virtual keyboard backend")
		return session, nil
	case BackendUInput:
		kbd, err := newUInputKeyboard(opts.UInputPath, opts.DeviceName)
		if err != nil {
			return nil, err
		}
		logger.Debug("Using uinput backend", "path", opts.UInputPath)
		return kbd, nil
	case BackendTrace:
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		return NewTrace(out), nil
	default:
		return nil, fmt.Errorf("%w: %q (expected %s, %s or %s)", ErrUnknownBackend, opts.Backend, BackendWayland, BackendUInput, BackendTrace)
	}
}
