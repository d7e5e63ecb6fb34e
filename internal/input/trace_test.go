package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bnema/waytype/internal/keymap"
	"github.com/bnema/waytype/internal/sequencer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceRecordsSequence(t *testing.T) {
	var buf bytes.Buffer
	trace := NewTrace(&buf)

	loaded, err := keymap.Load(keymap.BuiltinCompiler{}, keymap.DefaultRuleNames)
	require.NoError(t, err)
	require.NoError(t, trace.Keymap(loaded.Text))

	seq := sequencer.New(loaded.Modifiers, trace)
	require.NoError(t, seq.Type('A'))
	require.NoError(t, trace.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)

	assert.Contains(t, lines[0], "keymap")
	assert.Contains(t, lines[1], "depressed=1 latched=0 locked=0 group=1")
	assert.Contains(t, lines[2], "42 pressed (LeftShift)")
	assert.Contains(t, lines[3], "30 pressed")
	assert.Contains(t, lines[4], "30 released")
	assert.Contains(t, lines[5], "depressed=0 latched=0 locked=0 group=0")
	assert.Contains(t, lines[6], "42 released")
	assert.Contains(t, lines[7], "destroy")
}

func TestTraceRejectsAfterClose(t *testing.T) {
	var buf bytes.Buffer
	trace := NewTrace(&buf)
	require.NoError(t, trace.Close())
	require.NoError(t, trace.Close())

	assert.ErrorIs(t, trace.Key(0, 30, true), ErrBackendClosed)
	assert.Equal(t, 1, strings.Count(buf.String(), "destroy"))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "x11"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpenTrace(t *testing.T) {
	var buf bytes.Buffer
	backend, err := Open(Options{Backend: BackendTrace, Out: &buf})
	require.NoError(t, err)
	require.NoError(t, backend.Key(10, 57, true))
	assert.Contains(t, buf.String(), "57 pressed")
}
