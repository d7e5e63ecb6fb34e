package cmd

import (
	"github.com/bnema/waytype/internal/source"
	"github.com/spf13/cobra"
)

var typeCmd = &cobra.Command{
	Use:   "type <text>",
	Short: "Type the given text",
	Long: `Type the given text into the focused window. Characters without a key on a
US QWERTY keyboard are skipped; \n types Enter and \t types Tab.`,
	Example: `  waytype type 'Hello, world!'
  waytype type "$(printf 'line one\nline two\n')"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := args[0]
		return runTyping(cmd, func(fn source.ByteFunc, opts ...source.Option) error {
			return source.Literal(text, fn, opts...)
		})
	},
}

func init() {
	rootCmd.AddCommand(typeCmd)
}
