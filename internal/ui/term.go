package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/satchel/internal/item"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Positions and sizes: cyan so coordinates stand out
	colorCoord = color.New(color.FgCyan)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Success: green for confirmations
	colorOK = color.New(color.FgGreen)
)

// rarityColors follows the usual loot palette, brightest for the rarest.
var rarityColors = map[item.Rarity]*color.Color{
	item.RarityCommon:    color.New(color.FgWhite),
	item.RarityUncommon:  color.New(color.FgGreen),
	item.RarityRare:      color.New(color.FgBlue),
	item.RarityVeryRare:  color.New(color.FgYellow),
	item.RarityEpic:      color.New(color.FgMagenta),
	item.RarityUnique:    color.New(color.FgHiYellow, color.Bold),
	item.RaritySet:       color.New(color.FgHiGreen, color.Bold),
	item.RarityLegendary: color.New(color.FgHiRed, color.Bold),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatCoord formats a grid position or size.
func formatCoord(s string) string {
	return colorCoord.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatRarity colors s with the tier's color. Unknown tiers print as common.
func formatRarity(r item.Rarity, s string) string {
	c, ok := rarityColors[r.Effective()]
	if !ok {
		c = rarityColors[item.RarityCommon]
	}
	return c.Sprint(s)
}
