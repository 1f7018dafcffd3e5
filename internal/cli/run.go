package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by run when stdin or stdout is redirected.
var ErrNotTerminal = errors.New("run needs an interactive terminal")

func newRunCmd(st *state) *cobra.Command {
	var evdev bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive demo",
		Long: `Start the interactive terminal demo.

Keyboard shortcuts come from the built-in keymap merged with paths.keymap.
Press Ctrl+D to list them and q to quit. Theme changes made with
"webutils theme set" in another terminal are picked up live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return ErrNotTerminal
			}
			if evdev {
				st.cfg.UI.Evdev = true
			}
			// Logs would corrupt the screen, so they go to a file.
			if st.cfg.Log.File == "" {
				st.cfg.Log.File = filepath.Join(st.cfg.Paths.DataDir, "webutils.log")
				if err := st.initLogger(cmd.ErrOrStderr()); err != nil {
					return err
				}
			}
			return st.run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&evdev, "evdev", false, "also read Linux keyboard devices (needs the input group)")
	return cmd
}

func (st *state) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := st.openApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	st.logger.Info().Str("data", st.cfg.Paths.DataDir).Msg("starting demo")
	err = application.Run(ctx, screen)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
