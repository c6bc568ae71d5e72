package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/satchel/internal/engine"
	"github.com/javiermolinar/satchel/internal/item"
)

func (a *App) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [template]",
		Short: "Add an item from the vault",
		Long: `Add an item at the first free cell, scanning rows top to bottom.

Without a template name a random one is picked from the vault.
Run "satchel vault" to see the available templates.`,
		Example: `  satchel add
  satchel add "Potion of Healing"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open(cmd.Context(), a.gridGeometry())
			if err != nil {
				return err
			}

			var it item.Item
			if len(args) == 1 {
				it, err = b.engine.SpawnNamed(args[0])
			} else {
				it, err = b.engine.SpawnRandom()
			}
			if errors.Is(err, item.ErrNoSpaceAvailable) {
				return errors.New(engine.SpawnFailedMessage)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s at %s\n",
				formatRarity(it.Rarity, it.Name),
				formatMuted("["+it.ID+"]"),
				formatCoord(fmt.Sprintf("(%d,%d)", it.Position.X, it.Position.Y)),
			)
			return nil
		},
	}

	return cmd
}
