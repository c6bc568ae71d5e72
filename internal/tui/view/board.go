package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/satchel/internal/grid"
)

// BoardItem is one item box in board-local coordinates.
type BoardItem struct {
	Box    grid.Rect
	Label  string
	Border lipgloss.Color
	Fill   lipgloss.Color
	Text   lipgloss.Color
}

// BoardViewState holds everything needed to draw the inventory board.
// All boxes are relative to the container's top-left corner.
type BoardViewState struct {
	Width   int
	Height  int
	Surface grid.Rect
	Cell    grid.Extent // terminal cells per grid cell
	Columns int
	Rows    int

	ContainerBg lipgloss.Color
	SlotBg      lipgloss.Color
	SlotFg      lipgloss.Color

	Items []BoardItem

	// Preview is the candidate footprint while dragging. Zero width hides it.
	Preview   grid.Rect
	PreviewBg lipgloss.Color

	// Ghost is the dragged item drawn last, clipped to the board.
	Ghost *BoardItem
}

type canvasCell struct {
	ch rune
	fg lipgloss.Color
	bg lipgloss.Color
}

// canvas is a fixed-size grid of styled runes. A zero rune marks the
// trailing half of a wide character and is skipped on output.
type canvas struct {
	w, h  int
	cells []canvasCell
}

func newCanvas(w, h int, bg lipgloss.Color) *canvas {
	c := &canvas{w: w, h: h, cells: make([]canvasCell, w*h)}
	for i := range c.cells {
		c.cells[i] = canvasCell{ch: ' ', bg: bg}
	}
	return c
}

func (c *canvas) at(x, y int) *canvasCell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *canvas) bounds() grid.Rect {
	return grid.Rect{W: c.w, H: c.h}
}

func (c *canvas) fill(r grid.Rect, bg lipgloss.Color) {
	r = r.Intersect(c.bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cell := c.at(x, y); cell != nil {
				cell.ch = ' '
				cell.bg = bg
			}
		}
	}
}

func (c *canvas) tint(r grid.Rect, bg lipgloss.Color) {
	r = r.Intersect(c.bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cell := c.at(x, y); cell != nil {
				cell.bg = bg
			}
		}
	}
}

func (c *canvas) set(x, y int, ch rune, fg lipgloss.Color) {
	if cell := c.at(x, y); cell != nil {
		cell.ch = ch
		cell.fg = fg
	}
}

// text writes s starting at (x, y), clipped to maxW columns.
func (c *canvas) text(x, y int, s string, maxW int, fg lipgloss.Color) {
	if maxW <= 0 {
		return
	}
	s = ansi.Truncate(s, maxW, "…")
	col := x
	for _, r := range s {
		w := ansi.StringWidth(string(r))
		if w <= 0 {
			continue
		}
		c.set(col, y, r, fg)
		if w == 2 {
			c.set(col+1, y, 0, fg)
		}
		col += w
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for start < len(row) {
			end := start + 1
			for end < len(row) && row[end].fg == row[start].fg && row[end].bg == row[start].bg {
				end++
			}
			var run strings.Builder
			for _, cell := range row[start:end] {
				if cell.ch != 0 {
					run.WriteRune(cell.ch)
				}
			}
			style := lipgloss.NewStyle().Background(row[start].bg)
			if row[start].fg != "" {
				style = style.Foreground(row[start].fg)
			}
			b.WriteString(style.Render(run.String()))
			start = end
		}
	}
	return b.String()
}

// RenderBoard draws the container, the slot grid, committed items, the drag
// preview and the ghost, in that order.
func RenderBoard(state BoardViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}
	c := newCanvas(state.Width, state.Height, state.ContainerBg)

	// Each slot leaves its last column and row as a gutter so the grid reads
	// as separate cells.
	for row := 0; row < state.Rows; row++ {
		for col := 0; col < state.Columns; col++ {
			slot := grid.Rect{
				X: state.Surface.X + col*state.Cell.Width,
				Y: state.Surface.Y + row*state.Cell.Height,
				W: state.Cell.Width - 1,
				H: state.Cell.Height - 1,
			}
			c.fill(slot, state.SlotBg)
			c.set(slot.X+slot.W/2, slot.Y+slot.H/2, '·', state.SlotFg)
		}
	}

	for _, it := range state.Items {
		drawItem(c, it)
	}

	if state.Preview.W > 0 && state.Preview.H > 0 {
		c.tint(state.Preview.Intersect(state.Surface), state.PreviewBg)
	}

	if state.Ghost != nil {
		drawItem(c, *state.Ghost)
	}

	return c.String()
}

func drawItem(c *canvas, it BoardItem) {
	box := grid.Rect{X: it.Box.X, Y: it.Box.Y, W: it.Box.W - 1, H: it.Box.H - 1}
	if box.W <= 0 || box.H <= 0 {
		return
	}
	visible := box.Intersect(c.bounds())
	if visible.W == 0 {
		return
	}
	c.fill(visible, it.Fill)
	for y := visible.Y; y < visible.Y+visible.H; y++ {
		c.set(box.X, y, '▌', it.Border)
	}
	c.text(box.X+1, box.Y, it.Label, min(box.W-1, c.w), it.Text)
}
