package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/waytype/internal/charmap"
	"github.com/bnema/waytype/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the characters waytype can type",
	Long:  `List every input byte that has a key, with the evdev key code sent and whether Shift is held.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := charmap.Entries()

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			shift := ""
			if e.Shift {
				shift = "shift"
			}
			rows = append(rows, []string{
				fmt.Sprintf("0x%02x", e.Byte),
				charmap.Name(e.Byte),
				fmt.Sprintf("%d", e.Code),
				shift,
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorSubtle)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return lipgloss.NewStyle().
						Foreground(ui.ColorPrimary).
						Bold(true).
						Padding(0, 1)
				case col == 3:
					return lipgloss.NewStyle().
						Foreground(ui.ColorInfo).
						Padding(0, 1)
				default:
					return lipgloss.NewStyle().
						Foreground(ui.ColorText).
						Padding(0, 1)
				}
			}).
			Headers("BYTE", "CHAR", "CODE", "MODIFIER").
			Rows(rows...)

		var output strings.Builder
		output.WriteString(t.String())
		output.WriteString("\n")
		output.WriteString(ui.SubtleStyle.Render(fmt.Sprintf("%d characters, other bytes are skipped", len(entries))))
		fmt.Fprintln(cmd.OutOrStdout(), output.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
