// Package inventory owns the committed set of items on the grid.
package inventory

import (
	"fmt"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/placement"
)

// Listener receives a snapshot after every committed mutation.
type Listener func(snapshot []item.Item)

// Store is the single writer of the inventory. Every mutation either keeps
// the bounds and no-overlap invariants or is rejected without side effects.
//
// Store is not safe for concurrent use; hosts drive it from one goroutine.
type Store struct {
	geometry  grid.Geometry
	defaults  func() []item.Item
	items     []item.Item
	listeners []Listener
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults sets the item set used by ResetToDefaults.
func WithDefaults(fn func() []item.Item) Option {
	return func(s *Store) {
		s.defaults = fn
	}
}

// NewStore creates an empty store for the given geometry.
func NewStore(g grid.Geometry, opts ...Option) *Store {
	s := &Store{
		geometry: g,
		items:    []item.Item{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Geometry returns the grid the store enforces.
func (s *Store) Geometry() grid.Geometry {
	return s.geometry
}

// Subscribe registers fn to be called after each committed mutation.
func (s *Store) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Load replaces the whole set. Input is trusted and not revalidated.
func (s *Store) Load(items []item.Item) {
	s.items = item.CloneAll(items)
	s.changed()
}

// ResetToDefaults loads the default item set.
func (s *Store) ResetToDefaults() {
	var defaults []item.Item
	if s.defaults != nil {
		defaults = s.defaults()
	}
	s.Load(defaults)
}

// Add appends it if its stated position is valid against the current set.
func (s *Store) Add(it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if item.Find(s.items, it.ID) >= 0 {
		return fmt.Errorf("%w: %q", item.ErrDuplicateID, it.ID)
	}
	if err := placement.Conflict(s.geometry, it.Size, it.Position, s.items, ""); err != nil {
		return err
	}

	s.items = append(s.items, it.Clone())
	s.changed()
	return nil
}

// Remove deletes the item with the given id.
func (s *Store) Remove(id string) error {
	idx := item.Find(s.items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", item.ErrNotFound, id)
	}

	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.changed()
	return nil
}

// Move repositions an item. On failure the stored position is untouched.
func (s *Store) Move(id string, pos grid.Coord) error {
	idx := item.Find(s.items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", item.ErrNotFound, id)
	}
	if err := placement.Conflict(s.geometry, s.items[idx].Size, pos, s.items, id); err != nil {
		return err
	}

	s.items[idx].Position = pos
	s.changed()
	return nil
}

// Get returns a copy of the item with the given id.
func (s *Store) Get(id string) (item.Item, bool) {
	idx := item.Find(s.items, id)
	if idx < 0 {
		return item.Item{}, false
	}
	return s.items[idx].Clone(), true
}

// ItemAt returns a copy of the item covering cell c.
func (s *Store) ItemAt(c grid.Coord) (item.Item, bool) {
	idx := placement.At(s.items, c)
	if idx < 0 {
		return item.Item{}, false
	}
	return s.items[idx].Clone(), true
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Snapshot returns a deep copy of the items in insertion order.
func (s *Store) Snapshot() []item.Item {
	return item.CloneAll(s.items)
}

// IsValid reports whether candidate may sit at pos against the committed
// set, ignoring excludeID.
func (s *Store) IsValid(candidate item.Item, pos grid.Coord, excludeID string) bool {
	return placement.IsValid(s.geometry, candidate, pos, s.items, excludeID)
}

// FirstFit finds the first free row-major position for a footprint.
func (s *Store) FirstFit(size grid.Extent) (grid.Coord, bool) {
	return placement.FirstFit(s.geometry, size, s.items)
}

func (s *Store) changed() {
	if len(s.listeners) == 0 {
		return
	}
	for _, fn := range s.listeners {
		fn(s.Snapshot())
	}
}
