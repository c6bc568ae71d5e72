package view

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// HeaderViewState holds the title bar content.
type HeaderViewState struct {
	InnerW     int
	Title      string
	Items      int
	Cells      int
	Used       int
	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style
	Bg         lipgloss.Color
}

// RenderHeader renders the one-line title bar with the item count and
// cell usage on the right.
func RenderHeader(state HeaderViewState) string {
	if state.InnerW <= 0 {
		return ""
	}
	left := state.TitleStyle.Render(state.Title)
	right := state.MetaStyle.Render(fmt.Sprintf("%d items  %d/%d cells", state.Items, state.Used, state.Cells))

	gap := state.InnerW - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return PlaceBox(state.InnerW, 1, lipgloss.Top, left, state.Bg)
	}
	spacer := lipgloss.NewStyle().Background(state.Bg).Width(gap).Render("")
	return left + spacer + right
}
