// Package keymap compiles the keymap handed to the compositor and derives the
// serialized modifier masks the virtual keyboard sends alongside key events.
package keymap

import (
	"errors"
	"fmt"

	"github.com/bnema/waytype/internal/logger"
)

// FormatXKBV1 is wl_keyboard.keymap_format.xkb_v1.
const FormatXKBV1 = 1

// KeyLeftShift is the evdev code of the key simulated to derive the Shift masks.
const KeyLeftShift = 42

// ErrUnsupportedLayout is returned when a compiler cannot build the requested names.
var ErrUnsupportedLayout = errors.New("unsupported keymap")

// Modifier selects one of the two canonical modifier states.
type Modifier int

const (
	ModNone Modifier = iota
	ModShift
)

func (m Modifier) String() string {
	switch m {
	case ModNone:
		return "none"
	case ModShift:
		return "shift"
	default:
		return fmt.Sprintf("modifier(%d)", int(m))
	}
}

// ModifierState holds the serialized masks in wire order.
type ModifierState struct {
	Depressed uint32
	Latched   uint32
	Locked    uint32
	Effective uint32
}

// ModifierTable maps each Modifier to its masks. The zero value is all-zero masks.
type ModifierTable struct {
	states [2]ModifierState
}

// State returns the masks for m. Out-of-range values resolve to ModNone.
func (t ModifierTable) State(m Modifier) ModifierState {
	if m < ModNone || m > ModShift {
		return t.states[ModNone]
	}
	return t.states[m]
}

// KeyDirection is the direction of a simulated key transition.
type KeyDirection int

const (
	KeyUp KeyDirection = iota
	KeyDown
)

// Component selects one of the serialized mask components of a State.
type Component int

const (
	Depressed Component = iota
	Latched
	Locked
	Effective
)

// RuleNames are the RMLVO names a keymap is compiled from.
type RuleNames struct {
	Rules   string
	Model   string
	Layout  string
	Variant string
	Options string
}

// DefaultRuleNames is a pc104 model with the compiler's default layout.
var DefaultRuleNames = RuleNames{Model: "pc104"}

// State is a simulatable keyboard state machine bound to one Keymap.
type State interface {
	UpdateKey(code uint32, dir KeyDirection)
	Serialize(c Component) uint32
}

// Keymap is a compiled keymap.
type Keymap interface {
	// String returns the text_v1 serialization sent to the compositor.
	String() string
	NewState() State
	Close()
}

// Compiler builds keymaps from rule names.
type Compiler interface {
	Name() string
	Compile(names RuleNames) (Keymap, error)
}

// BuildModifierTable simulates a left Shift press and release on a fresh state.
func BuildModifierTable(km Keymap) ModifierTable {
	state := km.NewState()
	var t ModifierTable

	state.UpdateKey(KeyLeftShift, KeyDown)
	t.states[ModShift] = capture(state)

	state.UpdateKey(KeyLeftShift, KeyUp)
	t.states[ModNone] = capture(state)

	return t
}

func capture(s State) ModifierState {
	return ModifierState{
		Depressed: s.Serialize(Depressed),
		Latched:   s.Serialize(Latched),
		Locked:    s.Serialize(Locked),
		Effective: s.Serialize(Effective),
	}
}

// Loaded is everything a session needs from the keymap compiler.
type Loaded struct {
	Text      string
	Modifiers ModifierTable
}

// Load compiles names and derives the modifier table. The compiled keymap is
// released before returning; only its text and masks are kept.
func Load(c Compiler, names RuleNames) (*Loaded, error) {
	km, err := c.Compile(names)
	if err != nil {
		return nil, fmt.Errorf("failed to compile keymap (model=%q layout=%q): %w", names.Model, names.Layout, err)
	}
	defer km.Close()

	loaded := &Loaded{
		Text:      km.String(),
		Modifiers: BuildModifierTable(km),
	}
	shift := loaded.Modifiers.State(ModShift)
	logger.Debug("Keymap compiled",
		"compiler", c.Name(),
		"bytes", len(loaded.Text),
		"shift_depressed", shift.Depressed,
		"shift_effective", shift.Effective)
	return loaded, nil
}
