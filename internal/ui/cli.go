package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/satchel/internal/config"
	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config  *config.Config
	root    *cobra.Command
	debug   bool // Enable debug logging
	logPath string
	closers []func() error
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "satchel",
		Short: "A grid inventory you can drag things around in",
		Long: `Satchel is a grid inventory for tabletop characters.

Items occupy rectangles on a fixed grid. Drag them around with the mouse,
drop them outside the bag to throw them away, and spawn new ones from
the item vault. Every change is saved as it happens.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.open(cmd.Context(), a.screenGeometry())
			if err != nil {
				return err
			}
			return tui.Run(b.engine, a.config, b.log)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (ECS JSON)")
	a.root.PersistentFlags().StringVar(&a.logPath, "log-file", "", "Debug log path (default: ./satchel-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.moveCmd())
	a.root.AddCommand(a.removeCmd())
	a.root.AddCommand(a.resetCmd())
	a.root.AddCommand(a.vaultCmd())

	return a
}

// screenGeometry is the grid measured in terminal cells.
func (a *App) screenGeometry() grid.Geometry {
	return grid.Geometry{
		Width:      a.config.Grid.Width,
		Height:     a.config.Grid.Height,
		CellWidth:  a.config.UI.CellWidth,
		CellHeight: a.config.UI.CellHeight,
	}
}

// gridGeometry is the grid measured in configured pixel cells.
func (a *App) gridGeometry() grid.Geometry {
	return grid.New(a.config.Grid.Width, a.config.Grid.Height, a.config.Grid.CellSize)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "satchel %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI application with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases every backend opened by the last command, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}
