package keymap

import (
	"fmt"

	evdev "github.com/gvalkov/golang-evdev"
)

// builtinText leaves compilation to the compositor's own xkbcommon; the
// include set matches what "pc104" with the default layout resolves to.
const builtinText = `xkb_keymap {
	xkb_keycodes  { include "evdev+aliases(qwerty)"	};
	xkb_types     { include "complete"	};
	xkb_compat    { include "complete"	};
	xkb_symbols   { include "pc+us+inet(evdev)"	};
	xkb_geometry  { include "pc(pc104)"	};
};
`

// Real modifier bits, fixed by the core protocol for every xkb keymap.
const (
	maskShift   = 1 << 0
	maskLock    = 1 << 1
	maskControl = 1 << 2
	maskMod1    = 1 << 3
	maskMod4    = 1 << 6
)

// builtinModMap is the modifier_map of pc+us for the keys it binds.
var builtinModMap = map[uint32]uint32{
	evdev.KEY_LEFTSHIFT:  maskShift,
	evdev.KEY_RIGHTSHIFT: maskShift,
	evdev.KEY_LEFTCTRL:   maskControl,
	evdev.KEY_RIGHTCTRL:  maskControl,
	evdev.KEY_LEFTALT:    maskMod1,
	evdev.KEY_LEFTMETA:   maskMod4,
	evdev.KEY_RIGHTMETA:  maskMod4,
}

var builtinModels = map[string]bool{"": true, "pc104": true, "pc105": true}
var builtinLayouts = map[string]bool{"": true, "us": true}

// BuiltinCompiler serves the US pc keymap without linking libxkbcommon.
type BuiltinCompiler struct{}

func (BuiltinCompiler) Name() string { return "builtin" }

func (BuiltinCompiler) Compile(names RuleNames) (Keymap, error) {
	if !builtinModels[names.Model] {
		return nil, fmt.Errorf("%w: model %q", ErrUnsupportedLayout, names.Model)
	}
	if !builtinLayouts[names.Layout] || names.Variant != "" {
		return nil, fmt.Errorf("%w: layout %q variant %q", ErrUnsupportedLayout, names.Layout, names.Variant)
	}
	return builtinKeymap{}, nil
}

type builtinKeymap struct{}

func (builtinKeymap) String() string { return builtinText }

func (builtinKeymap) NewState() State {
	return &builtinState{pressed: make(map[uint32]bool)}
}

func (builtinKeymap) Close() {}

type builtinState struct {
	pressed map[uint32]bool
	locked  uint32
}

func (s *builtinState) UpdateKey(code uint32, dir KeyDirection) {
	if code == evdev.KEY_CAPSLOCK {
		if dir == KeyDown && !s.pressed[code] {
			s.locked ^= maskLock
		}
	}
	if dir == KeyDown {
		s.pressed[code] = true
	} else {
		delete(s.pressed, code)
	}
}

func (s *builtinState) Serialize(c Component) uint32 {
	var depressed uint32
	for code := range s.pressed {
		depressed |= builtinModMap[code]
	}
	switch c {
	case Depressed:
		return depressed
	case Latched:
		return 0
	case Locked:
		return s.locked
	case Effective:
		return depressed | s.locked
	default:
		return 0
	}
}
