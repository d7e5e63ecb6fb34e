// Package wayland owns the compositor connection and the virtual keyboard
// created on it.
package wayland

import (
	"errors"
	"fmt"
	"os"

	"github.com/bnema/waytype/internal/keymap"
	"github.com/bnema/waytype/internal/logger"
	"github.com/bnema/waytype/internal/protocols"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	"golang.org/x/sys/unix"
)

var (
	// ErrNoVirtualKeyboard means the compositor does not advertise the manager global.
	ErrNoVirtualKeyboard = errors.New("compositor does not support " + protocols.VirtualKeyboardManagerInterface)
	// ErrNoSeat means no usable wl_seat was advertised.
	ErrNoSeat = errors.New("no wl_seat available")
)

// seat name events arrive from version 2
const maxSeatVersion = 5

// Options selects the display and seat to type on.
type Options struct {
	// Display is a socket name or path; empty uses $WAYLAND_DISPLAY.
	Display string
	// Seat picks a seat by name; empty uses the first advertised seat.
	Seat string
}

type seatInfo struct {
	seat *client.Seat
	name string
}

// Session is one virtual keyboard on one compositor connection.
type Session struct {
	display  *client.Display
	registry *client.Registry
	seats    []*seatInfo
	manager  *protocols.VirtualKeyboardManager
	keyboard *protocols.VirtualKeyboard

	protocolErr error
	closed      bool
}

// Connect discovers the seat and virtual keyboard manager and creates the keyboard.
func Connect(opts Options) (*Session, error) {
	display, err := client.Connect(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Wayland display: %w", err)
	}

	s := &Session{display: display}
	display.SetErrorHandler(s.handleDisplayError)

	registry, err := display.GetRegistry()
	if err != nil {
		s.closeConnection()
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	s.registry = registry
	registry.SetGlobalHandler(s.handleGlobal)

	// The first roundtrip binds globals, the second collects seat names.
	for i := 0; i < 2; i++ {
		if err := s.roundTrip(); err != nil {
			s.closeConnection()
			return nil, fmt.Errorf("failed to discover globals: %w", err)
		}
	}

	if s.manager == nil {
		s.closeConnection()
		return nil, ErrNoVirtualKeyboard
	}

	seat, err := s.pickSeat(opts.Seat)
	if err != nil {
		s.closeConnection()
		return nil, err
	}

	keyboard, err := s.manager.CreateVirtualKeyboard(seat.seat)
	if err != nil {
		s.closeConnection()
		return nil, fmt.Errorf("failed to create virtual keyboard: %w", err)
	}
	s.keyboard = keyboard
	logger.Debug("Virtual keyboard created", "seat", seat.name, "id", keyboard.ID())

	return s, nil
}

func (s *Session) handleGlobal(e client.RegistryGlobalEvent) {
	logger.Debug("Global", "name", e.Name, "interface", e.Interface, "version", e.Version)

	switch e.Interface {
	case "wl_seat":
		seat := client.NewSeat(s.display.Context())
		version := e.Version
		if version > maxSeatVersion {
			version = maxSeatVersion
		}
		if err := s.registry.Bind(e.Name, e.Interface, version, seat); err != nil {
			logger.Warnf("Failed to bind seat %d: %v", e.Name, err)
			return
		}
		info := &seatInfo{seat: seat}
		seat.SetNameHandler(func(ev client.SeatNameEvent) {
			info.name = ev.Name
		})
		s.seats = append(s.seats, info)

	case protocols.VirtualKeyboardManagerInterface:
		manager := protocols.NewVirtualKeyboardManager(s.display.Context())
		if err := s.registry.Bind(e.Name, e.Interface, 1, manager); err != nil {
			logger.Warnf("Failed to bind %s: %v", e.Interface, err)
			return
		}
		s.manager = manager
	}
}

func (s *Session) handleDisplayError(e client.DisplayErrorEvent) {
	s.protocolErr = fmt.Errorf("compositor protocol error %d: %s", e.Code, e.Message)
}

func (s *Session) pickSeat(name string) (*seatInfo, error) {
	if len(s.seats) == 0 {
		return nil, ErrNoSeat
	}
	if name == "" {
		return s.seats[0], nil
	}
	for _, seat := range s.seats {
		if seat.name == name {
			return seat, nil
		}
	}
	return nil, fmt.Errorf("%w: seat %q not found", ErrNoSeat, name)
}

// roundTrip blocks until the compositor has processed every request sent so far.
func (s *Session) roundTrip() error {
	callback, err := s.display.Sync()
	if err != nil {
		return fmt.Errorf("failed to sync display: %w", err)
	}
	defer func() {
		if err := callback.Destroy(); err != nil {
			logger.Debugf("Failed to destroy sync callback: %v", err)
		}
	}()

	done := false
	callback.SetDoneHandler(func(client.CallbackDoneEvent) {
		done = true
	})
	for !done {
		if err := s.display.Context().Dispatch(); err != nil {
			return err
		}
		if s.protocolErr != nil {
			return s.protocolErr
		}
	}
	return nil
}

// Keymap uploads text as an xkb_v1 keymap through a memfd.
func (s *Session) Keymap(text string) error {
	fd, err := unix.MemfdCreate("keymap", unix.MFD_CLOEXEC)
	if err != nil {
		return fmt.Errorf("failed to create keymap memfd: %w", err)
	}
	f := os.NewFile(uintptr(fd), "keymap")
	defer f.Close()

	// The compositor maps size bytes and expects a NUL-terminated string.
	data := make([]byte, len(text)+1)
	copy(data, text)
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write keymap: %w", err)
	}

	if err := s.keyboard.Keymap(keymap.FormatXKBV1, int(f.Fd()), uint32(len(data))); err != nil {
		return fmt.Errorf("failed to send keymap: %w", err)
	}
	logger.Debug("Keymap sent", "size", len(data))
	return nil
}

// Modifiers implements sequencer.Sink.
func (s *Session) Modifiers(state keymap.ModifierState) error {
	return s.keyboard.Modifiers(state.Depressed, state.Latched, state.Locked, state.Effective)
}

// Key implements sequencer.Sink.
func (s *Session) Key(time, code uint32, pressed bool) error {
	state := uint32(protocols.KeyStateReleased)
	if pressed {
		state = protocols.KeyStatePressed
	}
	return s.keyboard.Key(time, code, state)
}

// Close destroys the keyboard, waits for the compositor to catch up and
// disconnects. Calling it again is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.keyboard != nil {
		if err := s.keyboard.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("failed to destroy virtual keyboard: %w", err))
		} else if err := s.roundTrip(); err != nil {
			errs = append(errs, fmt.Errorf("final roundtrip failed: %w", err))
		}
	}
	if err := s.closeConnection(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Session) closeConnection() error {
	if s.manager != nil {
		_ = s.manager.Destroy()
		s.manager = nil
	}
	if s.display == nil {
		return nil
	}
	err := s.display.Context().Close()
	s.display = nil
	if err != nil {
		return fmt.Errorf("failed to close Wayland connection: %w", err)
	}
	return nil
}
