// Package grid describes the inventory grid dimensions and converts
// pointer offsets into cell coordinates.
package grid

import "math"

const (
	// DefaultWidth is the number of columns in a grid.
	DefaultWidth = 10
	// DefaultHeight is the number of rows in a grid.
	DefaultHeight = 10
	// DefaultCellSize is the edge length of one cell in pointer units.
	DefaultCellSize = 40
)

// Coord addresses one cell by column (X) and row (Y).
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Extent is a footprint size in cells.
type Extent struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are at least one cell.
func (e Extent) Valid() bool {
	return e.Width >= 1 && e.Height >= 1
}

// Point is a position in pointer space (pixels, terminal cells, ...).
// The frame is chosen by the caller.
type Point struct {
	X int
	Y int
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned box in pointer space.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether p lies inside r. Both edges are inclusive so a
// pointer resting on the border still counts as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersect returns the overlap of r and o, or the zero Rect when they do
// not overlap. Far edges saturate at MaxInt instead of wrapping.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1 := min(spanEnd(r.X, r.W), spanEnd(o.X, o.W))
	y1 := min(spanEnd(r.Y, r.H), spanEnd(o.Y, o.H))
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func spanEnd(start, length int) int {
	if length <= 0 {
		return start
	}
	if start > math.MaxInt-length {
		return math.MaxInt
	}
	return start + length
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Geometry holds the grid size and the pointer-space size of one cell.
// Cells may be non-square (terminal hosts use wider than tall cells).
type Geometry struct {
	Width      int
	Height     int
	CellWidth  int
	CellHeight int
}

// Default returns the 10x10 geometry with 40 unit square cells.
func Default() Geometry {
	return New(DefaultWidth, DefaultHeight, DefaultCellSize)
}

// New creates a geometry with square cells.
func New(width, height, cellSize int) Geometry {
	return Geometry{
		Width:      width,
		Height:     height,
		CellWidth:  cellSize,
		CellHeight: cellSize,
	}
}

// Cells returns the number of cells in the grid.
func (g Geometry) Cells() int {
	return g.Width * g.Height
}

// InBounds reports whether a footprint at c with extent e lies entirely
// inside the grid. Nothing is summed, so huge coordinates cannot wrap.
func (g Geometry) InBounds(c Coord, e Extent) bool {
	return c.X >= 0 && c.Y >= 0 &&
		e.Width >= 0 && e.Height >= 0 &&
		e.Width <= g.Width && e.Height <= g.Height &&
		c.X <= g.Width-e.Width && c.Y <= g.Height-e.Height
}

// Clip returns the part of a footprint that lies on the grid, in cells.
func (g Geometry) Clip(c Coord, e Extent) (Coord, Extent, bool) {
	r := Rect{X: c.X, Y: c.Y, W: e.Width, H: e.Height}.Intersect(Rect{W: g.Width, H: g.Height})
	if r.W == 0 {
		return Coord{}, Extent{}, false
	}
	return Coord{X: r.X, Y: r.Y}, Extent{Width: r.W, Height: r.H}, true
}

// ToCell snaps a pointer offset, relative to the grid surface origin, to the
// cell it falls in. Offsets left of or above the origin yield negative
// coordinates; nothing is clamped.
func (g Geometry) ToCell(offset Point) Coord {
	return Coord{
		X: floorDiv(offset.X, g.CellWidth),
		Y: floorDiv(offset.Y, g.CellHeight),
	}
}

// Snap rounds an offset down to cell granularity in pointer units.
func (g Geometry) Snap(offset Point) Point {
	c := g.ToCell(offset)
	return Point{X: c.X * g.CellWidth, Y: c.Y * g.CellHeight}
}

// CellOrigin returns the pointer-space offset of a cell's top-left corner
// relative to the grid surface origin.
func (g Geometry) CellOrigin(c Coord) Point {
	return Point{X: c.X * g.CellWidth, Y: c.Y * g.CellHeight}
}

// Surface returns the grid surface box when its top-left corner is at origin.
func (g Geometry) Surface(origin Point) Rect {
	return Rect{
		X: origin.X,
		Y: origin.Y,
		W: g.Width * g.CellWidth,
		H: g.Height * g.CellHeight,
	}
}

// Container returns the outer container box: the surface grown by marginX
// columns and marginY rows of pointer units on every side.
func (g Geometry) Container(origin Point, marginX, marginY int) Rect {
	s := g.Surface(origin)
	return Rect{
		X: s.X - marginX,
		Y: s.Y - marginY,
		W: s.W + 2*marginX,
		H: s.H + 2*marginY,
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
