package input

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUInputMissingDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "uinput")

	_, err := Open(Options{Backend: BackendUInput, UInputPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestUInputClosedKeyboard(t *testing.T) {
	kbd := &uInputKeyboard{closed: true}

	assert.ErrorIs(t, kbd.Key(0, 30, true), ErrBackendClosed)
	assert.ErrorIs(t, kbd.Keymap(""), ErrBackendClosed)
	assert.NoError(t, kbd.Close())
}
