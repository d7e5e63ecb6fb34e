// Package charmap classifies input bytes into US QWERTY evdev key codes.
package charmap

import (
	evdev "github.com/gvalkov/golang-evdev"
)

// LeftShift is the key pressed around every shifted character.
const LeftShift uint32 = evdev.KEY_LEFTSHIFT

// Mapping is the classification of one byte. A zero Code means the byte has no key.
type Mapping struct {
	Code  uint32
	Shift bool
}

// Absent reports whether the byte produces no key.
func (m Mapping) Absent() bool {
	return m.Code == 0
}

// Entry is a mapped byte, as listed by Entries.
type Entry struct {
	Byte byte
	Mapping
}

type pair struct {
	plain, shifted byte
	code           uint32
}

// Keys that type a different character with Shift held.
var pairs = []pair{
	{'1', '!', evdev.KEY_1},
	{'2', '@', evdev.KEY_2},
	{'3', '#', evdev.KEY_3},
	{'4', '$', evdev.KEY_4},
	{'5', '%', evdev.KEY_5},
	{'6', '^', evdev.KEY_6},
	{'7', '&', evdev.KEY_7},
	{'8', '*', evdev.KEY_8},
	{'9', '(', evdev.KEY_9},
	{'0', ')', evdev.KEY_0},
	{'-', '_', evdev.KEY_MINUS},
	{'=', '+', evdev.KEY_EQUAL},
	{'q', 'Q', evdev.KEY_Q},
	{'w', 'W', evdev.KEY_W},
	{'e', 'E', evdev.KEY_E},
	{'r', 'R', evdev.KEY_R},
	{'t', 'T', evdev.KEY_T},
	{'y', 'Y', evdev.KEY_Y},
	{'u', 'U', evdev.KEY_U},
	{'i', 'I', evdev.KEY_I},
	{'o', 'O', evdev.KEY_O},
	{'p', 'P', evdev.KEY_P},
	{'[', '{', evdev.KEY_LEFTBRACE},
	{']', '}', evdev.KEY_RIGHTBRACE},
	{'a', 'A', evdev.KEY_A},
	{'s', 'S', evdev.KEY_S},
	{'d', 'D', evdev.KEY_D},
	{'f', 'F', evdev.KEY_F},
	{'g', 'G', evdev.KEY_G},
	{'h', 'H', evdev.KEY_H},
	{'j', 'J', evdev.KEY_J},
	{'k', 'K', evdev.KEY_K},
	{'l', 'L', evdev.KEY_L},
	{';', ':', evdev.KEY_SEMICOLON},
	{'\'', '"', evdev.KEY_APOSTROPHE},
	{'`', '~', evdev.KEY_GRAVE},
	{'\\', '|', evdev.KEY_BACKSLASH},
	{'z', 'Z', evdev.KEY_Z},
	{'x', 'X', evdev.KEY_X},
	{'c', 'C', evdev.KEY_C},
	{'v', 'V', evdev.KEY_V},
	{'b', 'B', evdev.KEY_B},
	{'n', 'N', evdev.KEY_N},
	{'m', 'M', evdev.KEY_M},
	{',', '<', evdev.KEY_COMMA},
	{'.', '>', evdev.KEY_DOT},
	{'/', '?', evdev.KEY_SLASH},
}

// Keys with a single unshifted character.
var singles = map[byte]uint32{
	0x1b: evdev.KEY_ESC,
	0x08: evdev.KEY_BACKSPACE,
	'\t': evdev.KEY_TAB,
	'\n': evdev.KEY_ENTER,
	' ':  evdev.KEY_SPACE,
}

var table [256]Mapping

func init() {
	for _, p := range pairs {
		set(p.plain, Mapping{Code: p.code})
		set(p.shifted, Mapping{Code: p.code, Shift: true})
	}
	for b, code := range singles {
		set(b, Mapping{Code: code})
	}
}

func set(b byte, m Mapping) {
	if !table[b].Absent() {
		panic("charmap: duplicate entry for byte " + string(rune(b)))
	}
	table[b] = m
}

// Lookup classifies b. Unmapped bytes return the zero Mapping.
func Lookup(b byte) Mapping {
	return table[b]
}

// Entries lists every mapped byte in ascending order.
func Entries() []Entry {
	entries := make([]Entry, 0, len(pairs)*2+len(singles))
	for i, m := range table {
		if m.Absent() {
			continue
		}
		entries = append(entries, Entry{Byte: byte(i), Mapping: m})
	}
	return entries
}

// Name returns a printable label for b, naming the control keys.
func Name(b byte) string {
	switch b {
	case 0x1b:
		return "Esc"
	case 0x08:
		return "BackSpace"
	case '\t':
		return "Tab"
	case '\n':
		return "Enter"
	case ' ':
		return "Space"
	}
	if b > ' ' && b < 0x7f {
		return string(rune(b))
	}
	return ""
}
