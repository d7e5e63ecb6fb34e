package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	SetConfigPath("")
	Set(nil)
	t.Cleanup(func() {
		viper.Reset()
		SetConfigPath("")
		Set(nil)
	})
}

func TestInitDefaults(t *testing.T) {
	resetConfig(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, Init())

	c := Get()
	assert.Equal(t, "wayland", c.Keyboard.Backend)
	assert.Equal(t, "pc104", c.Keymap.Model)
	assert.Equal(t, "", c.Keymap.Layout)
	assert.Equal(t, uint32(10), c.Typing.TimestampStep)
	assert.Equal(t, 100, c.Typing.ChunkSize)
	assert.Zero(t, c.Typing.Delay)
}

func TestInitReadsFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "waytype.toml")
	content := `[keyboard]
backend = "trace"
seat = "seat1"

[typing]
delay = "15ms"
timestamp_step = 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	SetConfigPath(path)

	require.NoError(t, Init())

	c := Get()
	assert.Equal(t, "trace", c.Keyboard.Backend)
	assert.Equal(t, "seat1", c.Keyboard.Seat)
	assert.Equal(t, 15*time.Millisecond, c.Typing.Delay)
	assert.Equal(t, uint32(4), c.Typing.TimestampStep)
	assert.Equal(t, 100, c.Typing.ChunkSize, "unset keys keep their default")
	assert.Equal(t, path, GetConfigPath())
}

func TestInitRejectsInvalidTOML(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "waytype.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keyboard\nbackend = "), 0600))
	SetConfigPath(path)

	assert.Error(t, Init())
}

func TestInitMissingExplicitFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "custom", "waytype.toml")
	SetConfigPath(path)

	require.NoError(t, Init())
	assert.Equal(t, "wayland", Get().Keyboard.Backend)
	assert.Equal(t, path, GetConfigPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"uinput backend", func(c *Config) { c.Keyboard.Backend = "uinput" }, false},
		{"unknown backend", func(c *Config) { c.Keyboard.Backend = "x11" }, true},
		{"negative chunk", func(c *Config) { c.Typing.ChunkSize = -1 }, true},
		{"negative delay", func(c *Config) { c.Typing.Delay = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetConfigPath(t *testing.T) {
	resetConfig(t)

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/waytype/waytype.toml", GetConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/testuser")
	assert.Equal(t, "/home/testuser/.config/waytype/waytype.toml", GetConfigPath())
}

func TestSaveWritesFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "nested", "waytype.toml")
	SetConfigPath(path)
	SetDefaults()

	require.NoError(t, Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend")
}
