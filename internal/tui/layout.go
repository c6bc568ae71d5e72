package tui

import (
	"github.com/javiermolinar/satchel/internal/drag"
	"github.com/javiermolinar/satchel/internal/grid"
)

const (
	headerHeight = 1
	footerHeight = 2
)

// Layout places the board on screen. All rects are in terminal cells with
// the origin at the top-left of the screen, which is the frame mouse
// events arrive in.
type Layout struct {
	Width     int
	Height    int
	Container grid.Rect
	Surface   grid.Rect
	BodyH     int
	TooSmall  bool
}

// buildLayout centers the container horizontally under the header.
func buildLayout(g grid.Geometry, marginX, marginY, width, height int) Layout {
	l := Layout{Width: width, Height: height}

	containerW := g.Width*g.CellWidth + 2*marginX
	containerH := g.Height*g.CellHeight + 2*marginY

	left := (width - containerW) / 2
	if left < 0 {
		left = 0
	}
	origin := grid.Point{X: left + marginX, Y: headerHeight + marginY}

	l.Surface = g.Surface(origin)
	l.Container = g.Container(origin, marginX, marginY)
	l.BodyH = height - headerHeight - footerHeight
	l.TooSmall = width < containerW || l.BodyH < containerH
	return l
}

// Frame returns the drag frame for this layout.
func (l Layout) Frame() drag.Frame {
	return drag.Frame{Surface: l.Surface, Container: l.Container}
}

// OnSurface reports whether p falls on a grid cell. Unlike Rect.Contains
// the far edges are exclusive since they belong to no cell.
func (l Layout) OnSurface(p grid.Point) bool {
	s := l.Surface
	return p.X >= s.X && p.X < s.X+s.W && p.Y >= s.Y && p.Y < s.Y+s.H
}

// toBoard converts a screen rect into container-local coordinates.
func (l Layout) toBoard(r grid.Rect) grid.Rect {
	return grid.Rect{X: r.X - l.Container.X, Y: r.Y - l.Container.Y, W: r.W, H: r.H}
}
