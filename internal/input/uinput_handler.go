package input

import (
	"fmt"

	"github.com/ThomasT75/uinput"
	"github.com/bnema/waytype/internal/keymap"
)

// DefaultUInputPath is the kernel uinput device node
const DefaultUInputPath = "/dev/uinput"

// uInputKeyboard types through a kernel virtual keyboard. The kernel keymap
// and modifier tracking apply, so keymap and modifier updates are dropped.
type uInputKeyboard struct {
	keyboard uinput.Keyboard
	closed   bool
}

func newUInputKeyboard(path, name string) (*uInputKeyboard, error) {
	if path == "" {
		path = DefaultUInputPath
	}
	if name == "" {
		name = "waytype virtual keyboard"
	}
	keyboard, err := uinput.CreateKeyboard(path, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual keyboard on %s: %w", path, err)
	}
	return &uInputKeyboard{keyboard: keyboard}, nil
}

func (k *uInputKeyboard) Keymap(string) error {
	if k.closed {
		return ErrBackendClosed
	}
	return nil
}

func (k *uInputKeyboard) Modifiers(keymap.ModifierState) error {
	if k.closed {
		return ErrBackendClosed
	}
	return nil
}

func (k *uInputKeyboard) Key(_, code uint32, pressed bool) error {
	if k.closed {
		return ErrBackendClosed
	}
	if pressed {
		return k.keyboard.KeyDown(int(code))
	}
	return k.keyboard.KeyUp(int(code))
}

func (k *uInputKeyboard) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true
	return k.keyboard.Close()
}
