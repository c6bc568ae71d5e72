// Package item defines the core domain types for satchel.
package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/satchel/internal/grid"
)

// Placement errors.
var (
	ErrPlacementConflict = errors.New("placement conflicts with grid bounds or another item")
	ErrNotFound          = errors.New("item not found")
	ErrNoSpaceAvailable  = errors.New("no space left in inventory")
)

// Validation errors.
var (
	ErrEmptyID       = errors.New("item id cannot be empty")
	ErrDuplicateID   = errors.New("item id already in use")
	ErrInvalidExtent = errors.New("item size must be at least 1x1")
	ErrInvalidRarity = errors.New("unknown rarity")
)

// Rarity is the item tier. The zero value means common.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very rare"
	RarityEpic      Rarity = "epic"
	RarityUnique    Rarity = "unique"
	RaritySet       Rarity = "set"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every tier in ascending order.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityVeryRare,
	RarityEpic,
	RarityUnique,
	RaritySet,
	RarityLegendary,
}

// ParseRarity validates a wire value. The empty string is accepted and
// stays empty so a round trip keeps the tier absent.
func ParseRarity(s string) (Rarity, error) {
	if s == "" {
		return "", nil
	}
	r := Rarity(s)
	if r.Rank() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRarity, s)
	}
	return r, nil
}

// Rank returns the tier position, or -1 for unknown values.
// An absent tier ranks as common.
func (r Rarity) Rank() int {
	eff := r.Effective()
	for i, v := range Rarities {
		if v == eff {
			return i
		}
	}
	return -1
}

// Effective returns the tier with absence resolved to common.
func (r Rarity) Effective() Rarity {
	if r == "" {
		return RarityCommon
	}
	return r
}

// Label returns the display form, e.g. "Very rare".
func (r Rarity) Label() string {
	s := string(r.Effective())
	return strings.ToUpper(s[:1]) + s[1:]
}

// Property is one descriptive attribute row.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Sounds holds optional asset references played on pickup and drop.
type Sounds struct {
	Pickup string `json:"pickup,omitempty" yaml:"pickup,omitempty"`
	Drop   string `json:"drop,omitempty" yaml:"drop,omitempty"`
}

// Item is a rectangular object occupying cells of the grid.
// Position is the top-left anchor cell; Size is the footprint in cells.
type Item struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Position   grid.Coord  `json:"position" yaml:"position"`
	Size       grid.Extent `json:"size" yaml:"size"`
	ImageURL   string      `json:"imageUrl" yaml:"imageUrl"`
	Rarity     Rarity      `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	Properties []Property  `json:"properties" yaml:"properties"`
	Sounds     *Sounds     `json:"sounds,omitempty" yaml:"sounds,omitempty"`
}

// Validate checks the fields the placement engine depends on.
func (it Item) Validate() error {
	if it.ID == "" {
		return ErrEmptyID
	}
	if !it.Size.Valid() {
		return fmt.Errorf("%w: %q is %dx%d", ErrInvalidExtent, it.ID, it.Size.Width, it.Size.Height)
	}
	if _, err := ParseRarity(string(it.Rarity)); err != nil {
		return err
	}
	return nil
}

// PickupSound returns the pickup asset reference, or "".
func (it Item) PickupSound() string {
	if it.Sounds == nil {
		return ""
	}
	return it.Sounds.Pickup
}

// DropSound returns the drop asset reference, or "".
func (it Item) DropSound() string {
	if it.Sounds == nil {
		return ""
	}
	return it.Sounds.Drop
}

// Clone returns a deep copy. Nil property lists become empty lists so every
// copy has the same shape as a decoded one.
func (it Item) Clone() Item {
	out := it
	out.Properties = make([]Property, len(it.Properties))
	copy(out.Properties, it.Properties)
	if it.Sounds != nil {
		s := *it.Sounds
		out.Sounds = &s
	}
	return out
}

// CloneAll deep copies a slice of items. The result is never nil.
func CloneAll(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Find returns the index of the item with the given id, or -1.
func Find(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Template is a blueprint the spawner turns into a fresh item.
type Template struct {
	Name       string      `yaml:"name"`
	Size       grid.Extent `yaml:"size"`
	ImageURL   string      `yaml:"imageUrl"`
	Rarity     Rarity      `yaml:"rarity,omitempty"`
	Properties []Property  `yaml:"properties"`
	Sounds     *Sounds     `yaml:"sounds,omitempty"`
}

// Validate checks the template's footprint and rarity.
func (t Template) Validate() error {
	if !t.Size.Valid() {
		return fmt.Errorf("%w: template %q is %dx%d", ErrInvalidExtent, t.Name, t.Size.Width, t.Size.Height)
	}
	if _, err := ParseRarity(string(t.Rarity)); err != nil {
		return err
	}
	return nil
}

// Instantiate materializes the template at pos under the given id.
func (t Template) Instantiate(id string, pos grid.Coord) Item {
	return Item{
		ID:         id,
		Name:       t.Name,
		Position:   pos,
		Size:       t.Size,
		ImageURL:   t.ImageURL,
		Rarity:     t.Rarity,
		Properties: t.Properties,
		Sounds:     t.Sounds,
	}.Clone()
}
