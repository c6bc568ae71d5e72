package theme

import (
	"testing"

	"github.com/javiermolinar/satchel/internal/item"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha"},
		{name: "load latte theme", themeName: "latte", wantName: "latte"},
		{name: "case insensitive", themeName: "LATTE", wantName: "latte"},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha"},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_ThemeColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%s) unexpected error: %v", name, err)
			}

			colors := map[string]string{
				"Bg":          theme.Bg,
				"BgHighlight": theme.BgHighlight,
				"BgSelection": theme.BgSelection,
				"Fg":          theme.Fg,
				"FgMuted":     theme.FgMuted,
				"Accent":      theme.Accent,
				"Valid":       theme.Valid,
				"Invalid":     theme.Invalid,
				"Warning":     theme.Warning,
				"Fallback":    theme.Rarity.Fallback,
			}
			for _, r := range item.Rarities {
				colors[string(r)] = theme.RarityColor(r)
			}

			for field, hex := range colors {
				if len(hex) != 7 || hex[0] != '#' {
					t.Errorf("%s = %q, want 7-char hex string", field, hex)
				}
			}
		})
	}
}

func TestRarityColor(t *testing.T) {
	theme, err := Load("mocha")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		rarity item.Rarity
		want   string
	}{
		{item.RarityCommon, "#cccccc"},
		{"", "#cccccc"},
		{item.RarityVeryRare, "#cd7f32"},
		{item.RaritySet, "#00ff00"},
		{item.RarityLegendary, "#ffa500"},
		{"mythic", "#5a3807"},
	}

	for _, tt := range tests {
		t.Run(string(tt.rarity), func(t *testing.T) {
			if got := theme.RarityColor(tt.rarity); got != tt.want {
				t.Errorf("RarityColor(%q) = %q, want %q", tt.rarity, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_RarityChain(t *testing.T) {
	theme := &Theme{Rarity: RarityColors{Common: "#111111", Epic: "#222222"}}
	theme.applyDefaults()

	if theme.Rarity.Rare != "#111111" {
		t.Errorf("Rare = %q, want inherited common", theme.Rarity.Rare)
	}
	if theme.Rarity.Legendary != "#222222" {
		t.Errorf("Legendary = %q, want inherited epic", theme.Rarity.Legendary)
	}
	if theme.Rarity.Fallback == "" || theme.Valid == "" || theme.Invalid == "" {
		t.Error("expected fallback, valid and invalid defaults")
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		theme    string
		expected bool
	}{
		{name: "exact match", theme: "mocha", expected: true},
		{name: "case insensitive", theme: "Latte", expected: true},
		{name: "missing theme", theme: "frappe", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.theme); got != tt.expected {
				t.Errorf("IsAvailable(%q) = %t, want %t", tt.theme, got, tt.expected)
			}
		})
	}
}

func TestColor(t *testing.T) {
	hex := "#89b4fa"
	c := Color(hex)
	if string(c) != hex {
		t.Errorf("Color(%q) = %q, want %q", hex, string(c), hex)
	}
}
