package input

import (
	"fmt"
	"io"

	"github.com/bnema/waytype/internal/charmap"
	"github.com/bnema/waytype/internal/keymap"
	"github.com/bnema/waytype/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Trace prints every request instead of sending it to a compositor.
type Trace struct {
	out    io.Writer
	closed bool

	timeStyle lipgloss.Style
	kindStyle lipgloss.Style
	downStyle lipgloss.Style
	upStyle   lipgloss.Style
}

// NewTrace writes one line per request to out
func NewTrace(out io.Writer) *Trace {
	r := lipgloss.NewRenderer(out)
	return &Trace{
		out:       out,
		timeStyle: r.NewStyle().Foreground(ui.ColorSubtle).Width(8).Align(lipgloss.Right),
		kindStyle: r.NewStyle().Foreground(ui.ColorPrimary).Bold(true).PaddingLeft(2).Width(12),
		downStyle: r.NewStyle().Foreground(ui.ColorSuccess),
		upStyle:   r.NewStyle().Foreground(ui.ColorWarning),
	}
}

func (t *Trace) Keymap(text string) error {
	return t.printf("", "keymap", "format=%d size=%d", keymap.FormatXKBV1, len(text)+1)
}

func (t *Trace) Modifiers(state keymap.ModifierState) error {
	return t.printf("", "modifiers", "depressed=%d latched=%d locked=%d group=%d",
		state.Depressed, state.Latched, state.Locked, state.Effective)
}

func (t *Trace) Key(time, code uint32, pressed bool) error {
	state := t.upStyle.Render("released")
	if pressed {
		state = t.downStyle.Render("pressed")
	}
	label := ""
	if code == charmap.LeftShift {
		label = " (LeftShift)"
	}
	return t.printf(fmt.Sprint(time), "key", "%d %s%s", code, state, label)
}

func (t *Trace) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.printf("", "destroy", "")
}

func (t *Trace) printf(time, kind, format string, args ...interface{}) error {
	if t.closed && kind != "destroy" {
		return ErrBackendClosed
	}
	_, err := fmt.Fprintf(t.out, "%s%s%s\n", t.timeStyle.Render(time), t.kindStyle.Render(kind), fmt.Sprintf(format, args...))
	return err
}
