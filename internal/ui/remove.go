package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Short:   "Throw an item away",
		Aliases: []string{"rm"},
		Example: `  satchel remove potion`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.open(cmd.Context(), a.gridGeometry())
			if err != nil {
				return err
			}

			it, err := findItem(b.engine.Items(), args[0])
			if err != nil {
				return err
			}
			if err := b.engine.Remove(it.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n",
				formatRarity(it.Rarity, it.Name),
				formatMuted("["+it.ID+"]"),
			)
			return nil
		},
	}

	return cmd
}
