package cmd

import (
	"errors"
	"os"

	"github.com/bnema/waytype/internal/config"
	"github.com/bnema/waytype/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrUsage is returned when no subcommand is given
var ErrUsage = errors.New("missing subcommand")

var (
	// Version is set during build
	Version = "0.1.0-dev"

	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "waytype",
		Short: "waytype - type text into a Wayland session",
		Long: `waytype types text into the focused Wayland window through the
zwp_virtual_keyboard_v1 protocol. Text comes from the command line (type)
or from standard input (pipe) and is sent as US QWERTY key presses.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return ErrUsage
		},
	}
)

// Execute runs the root command
func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/waytype/waytype.toml)")
	flags.BoolVar(&debug, "debug", false, "log every key event")
	flags.String("backend", "", "where to send keys: wayland, uinput or trace")
	flags.String("display", "", "Wayland display name (default $WAYLAND_DISPLAY)")
	flags.String("seat", "", "seat to type on (default first seat)")
	flags.Duration("delay", 0, "pause between typed characters")
}

var flagKeys = map[string]string{
	"backend": "keyboard.backend",
	"display": "keyboard.display",
	"seat":    "keyboard.seat",
	"delay":   "typing.delay",
}

func initConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		config.SetConfigPath(cfgFile)
	}
	if err := config.Init(); err != nil {
		return err
	}

	// Only flags set on this invocation override the file. config init
	// writes the viper state, so it keeps file and defaults only.
	if cmd != configInitCmd {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
				viper.Set(key, f.Value.String())
			}
		}
	}
	if err := config.Reload(); err != nil {
		return err
	}

	level := os.Getenv("LOG_LEVEL")
	if cfg := config.Get(); cfg.Logging.LogLevel != "" {
		level = cfg.Logging.LogLevel
	}
	if debug {
		level = "debug"
	}
	logger.SetLevel(level)
	logger.Debugf("Using config %s", config.GetConfigPath())
	return nil
}
