// Package protocols implements the client side of the virtual keyboard
// protocol on top of the go-wayland connection.
package protocols

import (
	"encoding/binary"
	"fmt"

	"github.com/rajveermalviya/go-wayland/wayland/client"
	"golang.org/x/sys/unix"
)

// Protocol interface names for virtual keyboard
const (
	VirtualKeyboardManagerInterface = "zwp_virtual_keyboard_manager_v1"
	VirtualKeyboardInterface        = "zwp_virtual_keyboard_v1"
)

// wl_keyboard.key_state
const (
	KeyStateReleased = 0
	KeyStatePressed  = 1
)

// VirtualKeyboardManager creates virtual keyboards for a seat
type VirtualKeyboardManager struct {
	client.BaseProxy
}

// NewVirtualKeyboardManager registers a manager proxy; bind it with Registry.Bind
func NewVirtualKeyboardManager(ctx *client.Context) *VirtualKeyboardManager {
	manager := &VirtualKeyboardManager{}
	ctx.Register(manager)
	return manager
}

// CreateVirtualKeyboard creates a new virtual keyboard on seat
func (m *VirtualKeyboardManager) CreateVirtualKeyboard(seat *client.Seat) (*VirtualKeyboard, error) {
	keyboard := NewVirtualKeyboard(m.Context())

	// Opcode 0: create_virtual_keyboard(seat, id)
	req := newRequest(m, 0, 2)
	req.putUint32(seat.ID())
	req.putUint32(keyboard.ID())
	if err := req.send(nil); err != nil {
		m.Context().Unregister(keyboard)
		return nil, err
	}

	return keyboard, nil
}

// Destroy forgets the manager locally (no destructor in protocol)
func (m *VirtualKeyboardManager) Destroy() error {
	m.Context().Unregister(m)
	return nil
}

// VirtualKeyboard represents a virtual keyboard device
type VirtualKeyboard struct {
	client.BaseProxy
}

// NewVirtualKeyboard allocates an id for a new virtual keyboard
func NewVirtualKeyboard(ctx *client.Context) *VirtualKeyboard {
	keyboard := &VirtualKeyboard{}
	ctx.Register(keyboard)
	return keyboard
}

// Keymap sets the keyboard mapping; fd travels as ancillary data
func (k *VirtualKeyboard) Keymap(format uint32, fd int, size uint32) error {
	if fd < 0 {
		return fmt.Errorf("invalid file descriptor: %d", fd)
	}

	// Opcode 0: keymap(format, fd, size)
	req := newRequest(k, 0, 2)
	req.putUint32(format)
	req.putUint32(size)
	return req.send(unix.UnixRights(fd))
}

// Key sends a key press/release using evdev key codes
func (k *VirtualKeyboard) Key(time, key, state uint32) error {
	// Opcode 1: key(time, key, state)
	req := newRequest(k, 1, 3)
	req.putUint32(time)
	req.putUint32(key)
	req.putUint32(state)
	return req.send(nil)
}

// Modifiers updates modifier state
func (k *VirtualKeyboard) Modifiers(modsDepressed, modsLatched, modsLocked, group uint32) error {
	// Opcode 2: modifiers(mods_depressed, mods_latched, mods_locked, group)
	req := newRequest(k, 2, 4)
	req.putUint32(modsDepressed)
	req.putUint32(modsLatched)
	req.putUint32(modsLocked)
	req.putUint32(group)
	return req.send(nil)
}

// Destroy destroys the virtual keyboard
func (k *VirtualKeyboard) Destroy() error {
	// Opcode 3: destroy
	err := newRequest(k, 3, 0).send(nil)
	k.Context().Unregister(k)
	return err
}

// request is a wire message made only of uint32 arguments, in host byte order.
type request struct {
	proxy client.Proxy
	buf   []byte
	off   int
}

func newRequest(p client.Proxy, opcode uint32, args int) *request {
	size := 8 + 4*args
	r := &request{proxy: p, buf: make([]byte, size)}
	r.putUint32(p.ID())
	r.putUint32(uint32(size)<<16 | opcode&0xffff)
	return r
}

func (r *request) putUint32(v uint32) {
	binary.NativeEndian.PutUint32(r.buf[r.off:r.off+4], v)
	r.off += 4
}

func (r *request) send(oob []byte) error {
	return r.proxy.Context().WriteMsg(r.buf, oob)
}
