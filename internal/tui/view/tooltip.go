package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// TooltipMaxWidth caps the tooltip content width in columns.
const TooltipMaxWidth = 36

// TooltipRow is one property line.
type TooltipRow struct {
	Name  string
	Value string
	Color lipgloss.Color // empty uses the default text color
}

// TooltipViewState describes the hover card for one item.
type TooltipViewState struct {
	Title      string
	TitleColor lipgloss.Color
	Rows       []TooltipRow
	Footer     string
	Border     lipgloss.Color
	Bg         lipgloss.Color
	Fg         lipgloss.Color
	Muted      lipgloss.Color
}

// RenderTooltip renders the hover card: the colored title, one row per
// property, and a muted footer line.
func RenderTooltip(state TooltipViewState) string {
	base := lipgloss.NewStyle().Background(state.Bg)
	title := base.Foreground(state.TitleColor).Bold(true)
	label := base.Foreground(state.Muted)
	footer := base.Foreground(state.Muted).Italic(true)

	lines := []string{title.Render(ansi.Truncate(state.Title, TooltipMaxWidth, "…"))}
	for _, row := range state.Rows {
		value := base.Foreground(state.Fg)
		if row.Color != "" {
			value = value.Foreground(row.Color)
		}
		name := row.Name + ": "
		rest := TooltipMaxWidth - lipgloss.Width(name)
		if rest < 1 {
			rest = 1
		}
		lines = append(lines, label.Render(name)+value.Render(ansi.Truncate(row.Value, rest, "…")))
	}
	if state.Footer != "" {
		lines = append(lines, footer.Render(state.Footer))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(state.Border).
		BorderBackground(state.Bg).
		Background(state.Bg).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}
