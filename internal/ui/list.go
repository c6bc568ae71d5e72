package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/placement"
)

// mapLabels marks items on the grid map, in list order.
const mapLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func (a *App) listCmd() *cobra.Command {
	var (
		check   bool
		showMap bool
		verbose bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the items in the inventory",
		Long: `List every item with its position, size and rarity.

Items are printed in insertion order, the same order they are saved in.`,
		Example: `  satchel list
  satchel list --map
  satchel list --verbose --no-color
  satchel list --check`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			g := a.gridGeometry()
			b, err := a.open(cmd.Context(), g)
			if err != nil {
				return err
			}
			items := b.engine.Items()
			out := cmd.OutOrStdout()

			if check {
				if err := placement.CheckInvariants(g, items); err != nil {
					return fmt.Errorf("inventory is inconsistent: %w", err)
				}
				fmt.Fprintln(out, formatOK("Inventory is consistent."))
				return nil
			}

			printSummary(out, g, items)
			if len(items) == 0 {
				fmt.Fprintln(out, "The inventory is empty.")
				return nil
			}
			if showMap {
				fmt.Fprintln(out)
				printMap(out, g, items)
			}
			fmt.Fprintln(out)
			printItems(out, items, verbose, showMap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify that no items overlap or leave the grid")
	cmd.Flags().BoolVar(&showMap, "map", false, "Draw the grid with item labels")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show item properties")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

func usedCells(items []item.Item) int {
	n := 0
	for _, it := range items {
		n += it.Size.Width * it.Size.Height
	}
	return n
}

func printSummary(w io.Writer, g grid.Geometry, items []item.Item) {
	fmt.Fprintf(w, "%s %s\n",
		formatHeader(fmt.Sprintf("Inventory %dx%d", g.Width, g.Height)),
		formatMuted(fmt.Sprintf("(%d items, %d/%d cells)", len(items), usedCells(items), g.Cells())),
	)
}

// printMap draws one character pair per cell. Items past the last label
// are drawn as '#'.
func printMap(w io.Writer, g grid.Geometry, items []item.Item) {
	cells := make([][]rune, g.Height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(".", g.Width))
	}
	owner := make([][]int, g.Height)
	for y := range owner {
		owner[y] = make([]int, g.Width)
		for x := range owner[y] {
			owner[y][x] = -1
		}
	}

	for i, it := range items {
		label := '#'
		if i < len(mapLabels) {
			label = rune(mapLabels[i])
		}
		for dy := 0; dy < it.Size.Height; dy++ {
			for dx := 0; dx < it.Size.Width; dx++ {
				x, y := it.Position.X+dx, it.Position.Y+dy
				if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
					continue
				}
				cells[y][x] = label
				owner[y][x] = i
			}
		}
	}

	for y, row := range cells {
		var sb strings.Builder
		sb.WriteString("  ")
		for x, r := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if idx := owner[y][x]; idx >= 0 {
				sb.WriteString(formatRarity(items[idx].Rarity, string(r)))
			} else {
				sb.WriteString(formatMuted(string(r)))
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

func printItems(w io.Writer, items []item.Item, verbose, labels bool) {
	idW := len("ID")
	for _, it := range items {
		idW = max(idW, ansi.StringWidth(it.ID))
	}
	// "  L  ID  NAME  (xx,yy)  WxH  Rarity"
	nameW := max(12, min(32, termWidth()-idW-32))

	for i, it := range items {
		var prefix string
		if labels {
			label := "#"
			if i < len(mapLabels) {
				label = string(mapLabels[i])
			}
			prefix = formatRarity(it.Rarity, label) + "  "
		}

		name := ansi.Truncate(it.Name, nameW, "…")
		name += strings.Repeat(" ", nameW-ansi.StringWidth(name))
		pos := fmt.Sprintf("%-7s", fmt.Sprintf("(%d,%d)", it.Position.X, it.Position.Y))
		size := fmt.Sprintf("%-5s", fmt.Sprintf("%dx%d", it.Size.Width, it.Size.Height))

		fmt.Fprintf(w, "  %s%s  %s  %s  %s  %s\n",
			prefix,
			formatMuted(fmt.Sprintf("%-*s", idW, it.ID)),
			formatRarity(it.Rarity, name),
			formatCoord(pos),
			size,
			formatRarity(it.Rarity, it.Rarity.Label()),
		)

		if verbose {
			for _, p := range it.Properties {
				fmt.Fprintf(w, "      %s %s\n", formatMuted(p.Name+":"), p.Value)
			}
		}
	}
}
