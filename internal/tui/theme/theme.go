// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/satchel/internal/item"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Container margin
	BgSelection string `toml:"bg_selection"` // Empty grid cells
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Cell dots, hints
	Accent      string `toml:"accent"`       // Title, borders
	Valid       string `toml:"valid"`        // Drop preview that fits
	Invalid     string `toml:"invalid"`      // Drop preview that collides
	Warning     string `toml:"warning"`      // Delete zone, notices

	Rarity RarityColors `toml:"rarity"`
}

// RarityColors maps each tier to a border color.
type RarityColors struct {
	Common    string `toml:"common"`
	Uncommon  string `toml:"uncommon"`
	Rare      string `toml:"rare"`
	VeryRare  string `toml:"very_rare"`
	Epic      string `toml:"epic"`
	Unique    string `toml:"unique"`
	Set       string `toml:"set"`
	Legendary string `toml:"legendary"`
	Fallback  string `toml:"fallback"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		// Fallback to mocha
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// RarityColor returns the hex color for a tier. Unknown tiers get the
// fallback; an absent tier reads as common.
func (t *Theme) RarityColor(r item.Rarity) string {
	c := t.Rarity
	switch r.Effective() {
	case item.RarityCommon:
		return c.Common
	case item.RarityUncommon:
		return c.Uncommon
	case item.RarityRare:
		return c.Rare
	case item.RarityVeryRare:
		return c.VeryRare
	case item.RarityEpic:
		return c.Epic
	case item.RarityUnique:
		return c.Unique
	case item.RaritySet:
		return c.Set
	case item.RarityLegendary:
		return c.Legendary
	default:
		return c.Fallback
	}
}

func (t *Theme) applyDefaults() {
	if t.Valid == "" {
		t.Valid = "#00ff00"
	}
	if t.Invalid == "" {
		t.Invalid = "#ff0000"
	}
	if t.Warning == "" {
		t.Warning = t.Invalid
	}
	r := &t.Rarity
	r.Fallback = coalesce(r.Fallback, "#5a3807")
	r.Common = coalesce(r.Common, r.Fallback)
	r.Uncommon = coalesce(r.Uncommon, r.Common)
	r.Rare = coalesce(r.Rare, r.Uncommon)
	r.VeryRare = coalesce(r.VeryRare, r.Rare)
	r.Epic = coalesce(r.Epic, r.VeryRare)
	r.Unique = coalesce(r.Unique, r.Epic)
	r.Set = coalesce(r.Set, r.Unique)
	r.Legendary = coalesce(r.Legendary, r.Set)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
