package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/waytype/internal/config"
	"github.com/bnema/waytype/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage waytype configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, ui.SubtleStyle.Render("# "+config.GetConfigPath()))
		fmt.Fprintln(out, ui.HeaderStyle.Render("[keyboard]"))
		fmt.Fprintln(out, ui.FormatSetting("backend", cfg.Keyboard.Backend))
		fmt.Fprintln(out, ui.FormatSetting("display", cfg.Keyboard.Display))
		fmt.Fprintln(out, ui.FormatSetting("seat", cfg.Keyboard.Seat))
		fmt.Fprintln(out, ui.FormatSetting("uinput_path", cfg.Keyboard.UInputPath))
		fmt.Fprintln(out, ui.FormatSetting("device_name", cfg.Keyboard.DeviceName))

		fmt.Fprintln(out, ui.HeaderStyle.Render("[keymap]"))
		fmt.Fprintln(out, ui.FormatSetting("model", cfg.Keymap.Model))
		fmt.Fprintln(out, ui.FormatSetting("layout", cfg.Keymap.Layout))

		fmt.Fprintln(out, ui.HeaderStyle.Render("[typing]"))
		fmt.Fprintln(out, ui.FormatSetting("timestamp_step", fmt.Sprint(cfg.Typing.TimestampStep)))
		fmt.Fprintln(out, ui.FormatSetting("delay", cfg.Typing.Delay.String()))
		fmt.Fprintln(out, ui.FormatSetting("chunk_size", fmt.Sprint(cfg.Typing.ChunkSize)))

		fmt.Fprintln(out, ui.HeaderStyle.Render("[logging]"))
		fmt.Fprintln(out, ui.FormatSetting("log_level", cfg.Logging.LogLevel))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.GetConfigPath()

		if _, err := os.Stat(path); err == nil && !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at %s (use --force to overwrite)\n", path)
			return nil
		}

		config.SetConfigPath(path)
		if err := config.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
