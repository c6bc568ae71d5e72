package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/satchel/internal/item"
)

func darkTheme() *Theme {
	t := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Valid:       "#00ff00",
		Invalid:     "#ff0000",
		Warning:     "#ff8800",
		Rarity: RarityColors{
			Common: "#cccccc",
			Rare:   "#4444dd",
		},
	}
	t.applyDefaults()
	return t
}

func TestNewPalette_ItemShades(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	rare := palette.Item(item.RarityRare)
	if rare.Border != lipgloss.Color("#4444dd") {
		t.Fatalf("rare border = %q", rare.Border)
	}
	if rare.Fill != lipgloss.Color(darkenColor("#4444dd")) {
		t.Fatalf("rare fill = %q, want %q", rare.Fill, darkenColor("#4444dd"))
	}
	if palette.Item("").Border != palette.Item(item.RarityCommon).Border {
		t.Error("absent rarity should draw as common")
	}
	if palette.Item("mythic").Border != lipgloss.Color(base.Rarity.Fallback) {
		t.Errorf("unknown rarity border = %q, want fallback", palette.Item("mythic").Border)
	}
}

func TestNewPalette_PreviewTints(t *testing.T) {
	base := darkTheme()
	palette := NewPalette(base)

	if palette.ValidBg != lipgloss.Color(blendColors(base.Valid, base.BgSelection, 0.55)) {
		t.Fatalf("ValidBg = %q", palette.ValidBg)
	}
	if palette.ValidBg == palette.InvalidBg {
		t.Fatal("valid and invalid tints must differ")
	}
}

func TestNewPalette_LightThemeLightensFill(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Rarity:      RarityColors{Rare: "#1d8a8a"},
	}
	base.applyDefaults()

	palette := NewPalette(base)
	fill := string(palette.Item(item.RarityRare).Fill)
	if relativeLuminance(fill) <= relativeLuminance("#1d8a8a") {
		t.Fatalf("fill luminance = %f, want greater than border", relativeLuminance(fill))
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
