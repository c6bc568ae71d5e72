package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default items",
		Long: `Replace the whole inventory with the vault's default items.

Every stored layer is overwritten. Asks for confirmation unless --yes is given.`,
		Example: `  satchel reset
  satchel reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !promptYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), "Replace the inventory with the default items?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			b, err := a.open(cmd.Context(), a.gridGeometry())
			if err != nil {
				return err
			}
			b.engine.Reset()

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d items)\n",
				formatOK("Inventory reset to defaults"), len(b.engine.Items()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
