package cmd

import (
	"github.com/bnema/waytype/internal/config"
	"github.com/bnema/waytype/internal/source"
	"github.com/spf13/cobra"
)

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Type everything read from standard input",
	Long: `Type everything read from standard input until it is closed. Input is
typed as it arrives, so long-running producers can be piped in.`,
	Example: `  echo 'ls -la' | waytype pipe
  cat notes.txt | waytype pipe --delay 20ms`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		chunk := config.Get().Typing.ChunkSize
		in := cmd.InOrStdin()
		return runTyping(cmd, func(fn source.ByteFunc, opts ...source.Option) error {
			return source.Stream(in, chunk, fn, opts...)
		})
	},
}

func init() {
	rootCmd.AddCommand(pipeCmd)
}
