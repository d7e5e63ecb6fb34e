//go:build xkbcommon

package keymap

/*
#cgo pkg-config: xkbcommon
#include <xkbcommon/xkbcommon.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// DefaultCompiler returns the compiler linked into this build.
func DefaultCompiler() Compiler {
	return XKBCompiler{}
}

// XKBCompiler compiles keymaps with libxkbcommon.
type XKBCompiler struct{}

func (XKBCompiler) Name() string { return "xkbcommon" }

func (XKBCompiler) Compile(names RuleNames) (Keymap, error) {
	ctx := C.xkb_context_new(C.XKB_CONTEXT_NO_FLAGS)
	if ctx == nil {
		return nil, fmt.Errorf("xkb_context_new failed")
	}

	var rmlvo C.struct_xkb_rule_names
	var allocated []*C.char
	set := func(dst **C.char, v string) {
		if v == "" {
			return
		}
		cs := C.CString(v)
		allocated = append(allocated, cs)
		*dst = cs
	}
	set(&rmlvo.rules, names.Rules)
	set(&rmlvo.model, names.Model)
	set(&rmlvo.variant, names.Variant)
	set(&rmlvo.options, names.Options)
	// An empty layout string selects the compiler default, not the environment.
	layout := C.CString(names.Layout)
	allocated = append(allocated, layout)
	rmlvo.layout = layout
	defer func() {
		for _, cs := range allocated {
			C.free(unsafe.Pointer(cs))
		}
	}()

	km := C.xkb_keymap_new_from_names(ctx, &rmlvo, C.XKB_KEYMAP_COMPILE_NO_FLAGS)
	if km == nil {
		C.xkb_context_unref(ctx)
		return nil, fmt.Errorf("%w: model %q layout %q", ErrUnsupportedLayout, names.Model, names.Layout)
	}
	return &xkbKeymap{ctx: ctx, keymap: km}, nil
}

type xkbKeymap struct {
	ctx    *C.struct_xkb_context
	keymap *C.struct_xkb_keymap
	states []*C.struct_xkb_state
}

func (k *xkbKeymap) String() string {
	cs := C.xkb_keymap_get_as_string(k.keymap, C.XKB_KEYMAP_FORMAT_TEXT_V1)
	if cs == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs)
}

func (k *xkbKeymap) NewState() State {
	st := C.xkb_state_new(k.keymap)
	k.states = append(k.states, st)
	return &xkbState{state: st}
}

func (k *xkbKeymap) Close() {
	for _, st := range k.states {
		C.xkb_state_unref(st)
	}
	k.states = nil
	C.xkb_keymap_unref(k.keymap)
	C.xkb_context_unref(k.ctx)
}

type xkbState struct {
	state *C.struct_xkb_state
}

// UpdateKey takes an evdev code; xkb keycodes are offset by 8.
func (s *xkbState) UpdateKey(code uint32, dir KeyDirection) {
	direction := C.enum_xkb_key_direction(C.XKB_KEY_UP)
	if dir == KeyDown {
		direction = C.XKB_KEY_DOWN
	}
	C.xkb_state_update_key(s.state, C.xkb_keycode_t(code+8), direction)
}

func (s *xkbState) Serialize(c Component) uint32 {
	var component C.enum_xkb_state_component
	switch c {
	case Depressed:
		component = C.XKB_STATE_MODS_DEPRESSED
	case Latched:
		component = C.XKB_STATE_MODS_LATCHED
	case Locked:
		component = C.XKB_STATE_MODS_LOCKED
	default:
		component = C.XKB_STATE_MODS_EFFECTIVE
	}
	return uint32(C.xkb_state_serialize_mods(s.state, component))
}
