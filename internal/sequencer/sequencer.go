// Package sequencer turns input bytes into ordered virtual keyboard events.
package sequencer

import (
	"fmt"

	"github.com/bnema/waytype/internal/charmap"
	"github.com/bnema/waytype/internal/keymap"
	"github.com/bnema/waytype/internal/logger"
)

// DefaultStep is the timestamp increment between two events.
const DefaultStep = 10

// Kind distinguishes modifier updates from key transitions.
type Kind int

const (
	KindModifiers Kind = iota
	KindKey
)

func (k Kind) String() string {
	if k == KindModifiers {
		return "modifiers"
	}
	return "key"
}

// Event is one request for the virtual keyboard.
type Event struct {
	Time     uint32
	Kind     Kind
	Modifier keymap.Modifier // KindModifiers only
	Code     uint32          // KindKey only
	Pressed  bool            // KindKey only
}

// Sink receives events in emission order.
type Sink interface {
	Modifiers(state keymap.ModifierState) error
	Key(time, code uint32, pressed bool) error
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithStep sets the timestamp increment. Zero is ignored.
func WithStep(step uint32) Option {
	return func(s *Sequencer) {
		if step > 0 {
			s.step = step
		}
	}
}

// WithStart sets the first timestamp.
func WithStart(start uint32) Option {
	return func(s *Sequencer) {
		s.now = start
	}
}

// Sequencer owns the session clock. It is not safe for concurrent use.
type Sequencer struct {
	mods keymap.ModifierTable
	sink Sink
	now  uint32
	step uint32
}

// New returns a Sequencer forwarding to sink. sink may be nil when only
// Translate is used.
func New(mods keymap.ModifierTable, sink Sink, opts ...Option) *Sequencer {
	s := &Sequencer{
		mods: mods,
		sink: sink,
		step: DefaultStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Time returns the timestamp the next event will carry.
func (s *Sequencer) Time() uint32 {
	return s.now
}

// Translate returns the events typing b and advances the clock once per event.
// Bytes without a key produce nothing, even when classified as shifted.
func (s *Sequencer) Translate(b byte) []Event {
	m := charmap.Lookup(b)
	if m.Absent() {
		return nil
	}

	events := make([]Event, 0, 6)
	if m.Shift {
		events = append(events,
			s.next(Event{Kind: KindModifiers, Modifier: keymap.ModShift}),
			s.next(Event{Kind: KindKey, Code: charmap.LeftShift, Pressed: true}))
	}
	events = append(events,
		s.next(Event{Kind: KindKey, Code: m.Code, Pressed: true}),
		s.next(Event{Kind: KindKey, Code: m.Code, Pressed: false}))
	if m.Shift {
		events = append(events,
			s.next(Event{Kind: KindModifiers, Modifier: keymap.ModNone}),
			s.next(Event{Kind: KindKey, Code: charmap.LeftShift, Pressed: false}))
	}
	return events
}

func (s *Sequencer) next(e Event) Event {
	e.Time = s.now
	s.now += s.step
	return e
}

// Type translates b and sends the events to the sink. The first sink error
// aborts the remaining events of b.
func (s *Sequencer) Type(b byte) error {
	for _, e := range s.Translate(b) {
		if err := s.emit(e); err != nil {
			return fmt.Errorf("failed to send %s event for byte 0x%02x: %w", e.Kind, b, err)
		}
	}
	return nil
}

func (s *Sequencer) emit(e Event) error {
	if s.sink == nil {
		return nil
	}
	switch e.Kind {
	case KindModifiers:
		logger.Debug("modifiers", "time", e.Time, "state", e.Modifier)
		return s.sink.Modifiers(s.mods.State(e.Modifier))
	default:
		logger.Debug("key", "time", e.Time, "code", e.Code, "pressed", e.Pressed)
		return s.sink.Key(e.Time, e.Code, e.Pressed)
	}
}
