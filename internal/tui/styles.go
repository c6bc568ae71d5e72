// Package tui provides the terminal user interface for satchel.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/satchel/internal/tui/theme"
	"github.com/javiermolinar/satchel/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	// Header
	TitleStyle lipgloss.Style
	MetaStyle  lipgloss.Style

	// Status message
	StatusStyle     lipgloss.Style
	StatusWarnStyle lipgloss.Style

	// Help text
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
	HelpSepStyle  lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style

	// Tooltip
	TooltipBg lipgloss.Color
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{palette: palette}

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.MetaStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.StatusWarnStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorWarning).
		Background(s.colorBg)

	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)
	s.HelpDescStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)
	s.HelpSepStyle = s.HelpDescStyle

	// Modal: opaque panel over the board
	s.ModalBackdropColor = s.colorBgHighlight
	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		BorderBackground(s.colorBgHighlight).
		Background(s.colorBgHighlight).
		Padding(1, 2)
	s.ModalHeaderStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight)
	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBgHighlight)
	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)
	s.ModalFooterStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight)
	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgSelection).
		Padding(0, 1)
	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Padding(0, 1)

	s.TooltipBg = s.colorBgHighlight

	return s
}

// Modal returns the subset of styles used by modal renderers.
func (s *Styles) Modal() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
	}
}
