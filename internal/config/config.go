// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Keyboard KeyboardConfig `mapstructure:"keyboard"`
	Keymap   KeymapConfig   `mapstructure:"keymap"`
	Typing   TypingConfig   `mapstructure:"typing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// KeyboardConfig selects where key events are sent
type KeyboardConfig struct {
	Backend    string `mapstructure:"backend"`     // wayland, uinput or trace
	Display    string `mapstructure:"display"`     // Empty means $WAYLAND_DISPLAY
	Seat       string `mapstructure:"seat"`        // Empty means first seat
	UInputPath string `mapstructure:"uinput_path"` // uinput backend only
	DeviceName string `mapstructure:"device_name"` // uinput backend only
}

// KeymapConfig holds the names the keymap is compiled from
type KeymapConfig struct {
	Model  string `mapstructure:"model"`
	Layout string `mapstructure:"layout"`
}

// TypingConfig controls event timing
type TypingConfig struct {
	TimestampStep uint32        `mapstructure:"timestamp_step"`
	Delay         time.Duration `mapstructure:"delay"` // Pause between input bytes
	ChunkSize     int           `mapstructure:"chunk_size"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Keyboard: KeyboardConfig{
			Backend:    "wayland",
			UInputPath: "/dev/uinput",
			DeviceName: "waytype virtual keyboard",
		},
		Keymap: KeymapConfig{
			Model:  "pc104",
			Layout: "",
		},
		Typing: TypingConfig{
			TimestampStep: 10,
			Delay:         0,
			ChunkSize:     100,
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// SetDefaults registers every default with viper
func SetDefaults() {
	viper.SetDefault("keyboard.backend", DefaultConfig.Keyboard.Backend)
	viper.SetDefault("keyboard.display", DefaultConfig.Keyboard.Display)
	viper.SetDefault("keyboard.seat", DefaultConfig.Keyboard.Seat)
	viper.SetDefault("keyboard.uinput_path", DefaultConfig.Keyboard.UInputPath)
	viper.SetDefault("keyboard.device_name", DefaultConfig.Keyboard.DeviceName)

	viper.SetDefault("keymap.model", DefaultConfig.Keymap.Model)
	viper.SetDefault("keymap.layout", DefaultConfig.Keymap.Layout)

	viper.SetDefault("typing.timestamp_step", DefaultConfig.Typing.TimestampStep)
	viper.SetDefault("typing.delay", DefaultConfig.Typing.Delay)
	viper.SetDefault("typing.chunk_size", DefaultConfig.Typing.ChunkSize)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("waytype")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			viper.AddConfigPath(filepath.Join(xdg, "waytype"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "waytype"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("WAYTYPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Config file not found, use defaults
		case configPathOverride != "" && errors.Is(err, fs.ErrNotExist):
			// Explicit path that does not exist yet, e.g. before config init
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return Reload()
}

// Reload unmarshals the current viper state, picking up bound flags
func Reload() error {
	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate rejects values the typing loop cannot work with
func (c *Config) Validate() error {
	switch c.Keyboard.Backend {
	case "wayland", "uinput", "trace":
	default:
		return fmt.Errorf("invalid keyboard.backend %q", c.Keyboard.Backend)
	}
	if c.Typing.ChunkSize < 0 {
		return fmt.Errorf("invalid typing.chunk_size %d", c.Typing.ChunkSize)
	}
	if c.Typing.Delay < 0 {
		return fmt.Errorf("invalid typing.delay %s", c.Typing.Delay)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save writes the current viper state to the config file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "waytype", "waytype.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "waytype.toml"
	}

	return filepath.Join(home, ".config", "waytype", "waytype.toml")
}
