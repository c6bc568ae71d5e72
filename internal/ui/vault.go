package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) vaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vault",
		Short: "List the templates items are spawned from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.loadVault(a.gridGeometry())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := "built-in"
			if a.config.Vault.Path != "" {
				source = a.config.Vault.Path
			}
			fmt.Fprintf(out, "%s %s\n",
				formatHeader("Vault"),
				formatMuted(fmt.Sprintf("(%s, %d templates, %d defaults)", source, len(v.Templates), len(v.Defaults))),
			)
			for _, t := range v.Templates {
				fmt.Fprintf(out, "  %-5s  %s  %s\n",
					fmt.Sprintf("%dx%d", t.Size.Width, t.Size.Height),
					formatRarity(t.Rarity, t.Name),
					formatMuted(t.Rarity.Label()),
				)
			}
			return nil
		},
	}
}
