package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
)

func (a *App) moveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Move an item to another cell",
		Long: `Move an item so its top-left corner sits on cell (x, y).

The id may be shortened to any unique prefix. The move is refused when the
item would leave the grid or overlap another item.`,
		Example: `  satchel move sword 4 0`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[1], err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[2], err)
			}

			b, err := a.open(cmd.Context(), a.gridGeometry())
			if err != nil {
				return err
			}

			it, err := findItem(b.engine.Items(), args[0])
			if err != nil {
				return err
			}

			to := grid.Coord{X: x, Y: y}
			if err := b.engine.MoveItem(it.ID, to); err != nil {
				if errors.Is(err, item.ErrPlacementConflict) {
					return fmt.Errorf("%s does not fit at (%d,%d)", it.Name, x, y)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s from %s to %s\n",
				formatRarity(it.Rarity, it.Name),
				formatCoord(fmt.Sprintf("(%d,%d)", it.Position.X, it.Position.Y)),
				formatCoord(fmt.Sprintf("(%d,%d)", x, y)),
			)
			return nil
		},
	}

	return cmd
}
