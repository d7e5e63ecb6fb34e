package cmd

import (
	"fmt"

	"github.com/bnema/waytype/internal/config"
	"github.com/bnema/waytype/internal/input"
	"github.com/bnema/waytype/internal/keymap"
	"github.com/bnema/waytype/internal/logger"
	"github.com/bnema/waytype/internal/sequencer"
	"github.com/bnema/waytype/internal/source"
	"github.com/spf13/cobra"
)

// feedFunc drives the sequencer from one input source
type feedFunc func(fn source.ByteFunc, opts ...source.Option) error

// openBackend is replaced in tests
var openBackend = input.Open

// runTyping sets up the keymap and backend, feeds every input byte through
// the sequencer and tears the backend down exactly once.
func runTyping(cmd *cobra.Command, feed feedFunc) (err error) {
	cfg := config.Get()

	loaded, err := keymap.Load(keymap.DefaultCompiler(), keymap.RuleNames{
		Model:  cfg.Keymap.Model,
		Layout: cfg.Keymap.Layout,
	})
	if err != nil {
		return err
	}

	backend, err := openBackend(input.Options{
		Backend:    cfg.Keyboard.Backend,
		Display:    cfg.Keyboard.Display,
		Seat:       cfg.Keyboard.Seat,
		UInputPath: cfg.Keyboard.UInputPath,
		DeviceName: cfg.Keyboard.DeviceName,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.Keyboard.Backend, err)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := backend.Keymap(loaded.Text); err != nil {
		return fmt.Errorf("failed to install keymap: %w", err)
	}

	seq := sequencer.New(loaded.Modifiers, backend, sequencer.WithStep(cfg.Typing.TimestampStep))
	if err := feed(seq.Type, source.WithDelay(cfg.Typing.Delay)); err != nil {
		return err
	}

	logger.Debug("Typing finished", "timestamp", seq.Time())
	return nil
}
