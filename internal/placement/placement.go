// Package placement decides whether an item may occupy a position on the grid.
package placement

import (
	"fmt"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
)

// Overlaps reports whether two footprints intersect.
// Footprints are half-open: [x, x+w) x [y, y+h).
func Overlaps(a grid.Coord, ae grid.Extent, b grid.Coord, be grid.Extent) bool {
	return spansOverlap(a.X, ae.Width, b.X, be.Width) &&
		spansOverlap(a.Y, ae.Height, b.Y, be.Height)
}

// spansOverlap compares [a, a+al) and [b, b+bl) by distance from the lower
// start so no end point is ever computed.
func spansOverlap(a, al, b, bl int) bool {
	if al <= 0 || bl <= 0 {
		return false
	}
	if a > b {
		a, al, b, bl = b, bl, a, al
	}
	// A gap too wide for int wraps negative, and no length spans it.
	d := b - a
	return d >= 0 && d < al
}

// IsValid reports whether candidate fits at pos: inside the grid and not
// overlapping any item in existing other than excludeID. Pass the id of the
// item being moved so it never collides with its own committed placement.
func IsValid(g grid.Geometry, candidate item.Item, pos grid.Coord, existing []item.Item, excludeID string) bool {
	return Conflict(g, candidate.Size, pos, existing, excludeID) == nil
}

// Conflict is IsValid with a reason. It returns nil when the placement is
// legal, otherwise an error wrapping item.ErrPlacementConflict.
func Conflict(g grid.Geometry, size grid.Extent, pos grid.Coord, existing []item.Item, excludeID string) error {
	if !g.InBounds(pos, size) {
		return fmt.Errorf("%w: %dx%d at (%d,%d) is outside the %dx%d grid",
			item.ErrPlacementConflict, size.Width, size.Height, pos.X, pos.Y, g.Width, g.Height)
	}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if Overlaps(pos, size, other.Position, other.Size) {
			return fmt.Errorf("%w: overlaps %q %q at (%d,%d)",
				item.ErrPlacementConflict, other.ID, other.Name, other.Position.X, other.Position.Y)
		}
	}
	return nil
}

// FirstFit scans cells row by row, left to right, and returns the first
// position where a footprint of the given size is valid.
func FirstFit(g grid.Geometry, size grid.Extent, existing []item.Item) (grid.Coord, bool) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pos := grid.Coord{X: x, Y: y}
			if Conflict(g, size, pos, existing, "") == nil {
				return pos, true
			}
		}
	}
	return grid.Coord{}, false
}

// At returns the index of the item whose footprint covers c, or -1.
func At(items []item.Item, c grid.Coord) int {
	for i, it := range items {
		if Overlaps(c, grid.Extent{Width: 1, Height: 1}, it.Position, it.Size) {
			return i
		}
	}
	return -1
}

// CheckInvariants verifies that every item lies inside the grid and that no
// two footprints overlap. It returns the first violation found.
func CheckInvariants(g grid.Geometry, items []item.Item) error {
	for i, a := range items {
		if !g.InBounds(a.Position, a.Size) {
			return fmt.Errorf("%w: %q is outside the grid", item.ErrPlacementConflict, a.ID)
		}
		for _, b := range items[i+1:] {
			if Overlaps(a.Position, a.Size, b.Position, b.Size) {
				return fmt.Errorf("%w: %q overlaps %q", item.ErrPlacementConflict, a.ID, b.ID)
			}
		}
	}
	return nil
}
