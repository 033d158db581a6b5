package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/gogpu/numspiral"
	"github.com/gogpu/numspiral/integration/terminal"
	"github.com/gogpu/numspiral/internal/blit"
)

func newTermCmd(a *app) *cobra.Command {
	var hold bool

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Draw in the terminal with half-block cells",
		Long: `term draws the run in the terminal, two pixels per cell.
Press Esc, q or Ctrl-C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
			return runTerm(cmd.Context(), a, screen, hold)
		},
	}
	cmd.Flags().BoolVar(&hold, "hold", true, "keep the final frame until a quit key is pressed")
	return cmd
}

// runTerm initialises screen, runs the driver on it and finalises it.
func runTerm(ctx context.Context, a *app, screen tcell.Screen, hold bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	term, err := terminal.New(screen, terminal.Options{
		Scaler:     blit.Scaler(a.scaler),
		Background: a.cfg.Background,
		Interval:   a.interval(),
		Hold:       hold,
	})
	if err != nil {
		return err
	}

	d, err := a.newDriver(ctx, numspiral.WithPresenter(term))
	if err != nil {
		return err
	}
	return term.Run(ctx, d)
}
