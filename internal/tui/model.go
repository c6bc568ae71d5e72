// Package tui provides the terminal user interface for satchel.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/config"
	"github.com/javiermolinar/satchel/internal/engine"
	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // An item is held by the pointer
	ModeModal
)

// String returns the mode name used in debug logs.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeDrag:
		return "Drag"
	case ModeModal:
		return "Modal"
	default:
		return "Unknown"
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalConfirmReset
)

const statusDuration = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	engine *engine.Engine
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	mode      Mode
	modalType ModalType

	// Last pointer position in screen cells
	pointer    grid.Point
	hasPointer bool

	keys    keyMap
	help    help.Model
	overlay OverlayModel

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Messages
	statusMsg  string
	statusWarn bool
	statusTime time.Time

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the clock used to expire status messages.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model around an already bootstrapped engine.
func New(eng *engine.Engine, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.HelpSepStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpSepStyle

	overlay := NewOverlayModel()
	overlay.SetBackground(styles.TooltipBg)

	m := Model{
		engine:  eng,
		config:  cfg,
		theme:   t,
		styles:  styles,
		mode:    ModeNormal,
		keys:    newKeyMap(),
		help:    h,
		overlay: overlay,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.layout = m.buildLayout()
	return m
}

func (m Model) buildLayout() Layout {
	return buildLayout(m.engine.Geometry(), m.config.UI.MarginX, m.config.UI.MarginY, m.width, m.height)
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// hovered returns the item under the pointer, if any. Nothing is hovered
// while an item is held.
func (m Model) hovered() (item.Item, bool) {
	if !m.hasPointer || m.mode != ModeNormal || !m.layout.OnSurface(m.pointer) {
		return item.Item{}, false
	}
	cell := m.engine.Geometry().ToCell(m.pointer.Sub(m.layout.Surface.Origin()))
	return m.engine.ItemAt(cell)
}

// Run starts the TUI on a bootstrapped engine.
func Run(eng *engine.Engine, cfg *config.Config, log logrus.FieldLogger) error {
	SetDebugLogger(log)
	defer SetDebugLogger(nil)

	eng.OnSpawnFailed(func(err error) {
		LogError("spawn", err)
	})

	p := tea.NewProgram(New(eng, cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
