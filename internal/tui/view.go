package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/tui/view"
)

// View renders the header, the board and the footer, then the tooltip and
// modal overlays.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		Overlay:          m.overlay,
		EmptyPlaceholder: "Loading...",
	}

	if it, ok := m.hovered(); ok && !m.layout.TooSmall {
		state.TooltipContent = view.RenderTooltip(m.tooltipViewState(it))
		// One cell to the right of the pointer so the card never hides it.
		state.TooltipX = m.pointer.X + m.engine.Geometry().CellWidth
		state.TooltipY = m.pointer.Y
		state.ShowTooltip = true
	}

	if m.mode == ModeModal && m.modalType != ModalNone {
		state.ModalContent = m.renderModal()
		state.ShowModal = true
	}
	return state
}

func (m Model) renderAppContent() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.layout.TooSmall {
		msg := m.styles.StatusWarnStyle.Render("Terminal too small")
		return view.PlaceBox(m.width, m.height, lipgloss.Center, msg, m.styles.colorBg)
	}

	header := view.RenderHeader(m.headerViewState())
	board := view.IndentLines(view.RenderBoard(m.boardViewState()), m.layout.Container.X, m.styles.colorBg)
	body := view.PadLinesWithBackground(board, m.width, m.layout.BodyH, m.styles.colorBg)
	footer := view.RenderFooter(view.FooterViewState{
		InnerW:     m.width,
		FooterH:    footerHeight,
		StatusLine: m.renderStatus(),
		HelpLine:   m.help.View(m.keys),
		VAlign:     lipgloss.Bottom,
		Bg:         m.styles.colorBg,
	})

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return view.PadLinesWithBackground(content, m.width, m.height, m.styles.colorBg)
}

func (m Model) headerViewState() view.HeaderViewState {
	items := m.engine.Items()
	used := 0
	for _, it := range items {
		used += it.Size.Width * it.Size.Height
	}
	return view.HeaderViewState{
		InnerW:     m.width,
		Title:      "satchel",
		Items:      len(items),
		Cells:      m.engine.Geometry().Cells(),
		Used:       used,
		TitleStyle: m.styles.TitleStyle,
		MetaStyle:  m.styles.MetaStyle,
		Bg:         m.styles.colorBg,
	}
}

func (m Model) boardViewState() view.BoardViewState {
	g := m.engine.Geometry()
	palette := m.styles.palette
	state := view.BoardViewState{
		Width:       m.layout.Container.W,
		Height:      m.layout.Container.H,
		Surface:     m.layout.toBoard(m.layout.Surface),
		Cell:        grid.Extent{Width: g.CellWidth, Height: g.CellHeight},
		Columns:     g.Width,
		Rows:        g.Height,
		ContainerBg: palette.BgHighlight,
		SlotBg:      palette.BgSelection,
		SlotFg:      palette.FgMuted,
	}

	held, dragging := m.engine.Dragging()
	for _, it := range m.engine.Items() {
		// The held item is drawn as the ghost instead of in its cell.
		if dragging && it.ID == held.Item.ID {
			continue
		}
		// Only the on-grid part of a footprint is drawn.
		pos, size, ok := g.Clip(it.Position, it.Size)
		if !ok {
			continue
		}
		box := grid.Rect{
			X: m.layout.Surface.X + pos.X*g.CellWidth,
			Y: m.layout.Surface.Y + pos.Y*g.CellHeight,
			W: size.Width * g.CellWidth,
			H: size.Height * g.CellHeight,
		}
		state.Items = append(state.Items, m.boardItem(it, m.layout.toBoard(box)))
	}

	if dragging {
		size := grid.Extent{
			Width:  min(held.Item.Size.Width, g.Width),
			Height: min(held.Item.Size.Height, g.Height),
		}
		if held.OverGrid {
			state.Preview = m.layout.toBoard(grid.Rect{
				X: m.layout.Surface.X + held.Candidate.X*g.CellWidth,
				Y: m.layout.Surface.Y + held.Candidate.Y*g.CellHeight,
				W: size.Width * g.CellWidth,
				H: size.Height * g.CellHeight,
			})
			state.PreviewBg = palette.InvalidBg
			if held.Valid {
				state.PreviewBg = palette.ValidBg
			}
		}
		ghost := held.Ghost()
		gi := m.boardItem(held.Item, m.layout.toBoard(grid.Rect{
			X: ghost.X,
			Y: ghost.Y,
			W: size.Width * g.CellWidth,
			H: size.Height * g.CellHeight,
		}))
		state.Ghost = &gi
	}
	return state
}

func (m Model) boardItem(it item.Item, box grid.Rect) view.BoardItem {
	colors := m.styles.palette.Item(it.Rarity)
	return view.BoardItem{
		Box:    box,
		Label:  it.Name,
		Border: colors.Border,
		Fill:   colors.Fill,
		Text:   colors.Text,
	}
}

func (m Model) tooltipViewState(it item.Item) view.TooltipViewState {
	rows := make([]view.TooltipRow, 0, len(it.Properties))
	for _, p := range it.Properties {
		rows = append(rows, view.TooltipRow{
			Name:  p.Name,
			Value: p.Value,
			Color: lipgloss.Color(p.Color),
		})
	}
	return view.TooltipViewState{
		Title:      it.Name,
		TitleColor: lipgloss.Color(m.theme.RarityColor(it.Rarity)),
		Rows:       rows,
		Footer:     it.Rarity.Label() + " item",
		Border:     lipgloss.Color(m.theme.RarityColor(it.Rarity)),
		Bg:         m.styles.TooltipBg,
		Fg:         m.styles.colorFg,
		Muted:      m.styles.colorFgMuted,
	}
}

func (m Model) renderModal() string {
	styles := m.styles.Modal()
	switch m.modalType {
	case ModalConfirmReset:
		body := "Replace every item with the default set?\nThis cannot be undone."
		return view.RenderModalFrame("Reset inventory", body, view.ConfirmResetFooter(styles), styles)
	default:
		return ""
	}
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return m.styles.MetaStyle.Render(m.hint())
	}
	if m.statusWarn {
		return m.styles.StatusWarnStyle.Render(m.statusMsg)
	}
	return m.styles.StatusStyle.Render(m.statusMsg)
}

func (m Model) hint() string {
	switch m.mode {
	case ModeDrag:
		return "Release over the grid to place, outside the bag to drop"
	default:
		return "Drag items with the mouse"
	}
}
