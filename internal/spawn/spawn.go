// Package spawn creates new items from templates at the first free cell.
package spawn

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/satchel/internal/inventory"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/notify"
)

// ErrNoTemplates is returned when the factory has nothing to spawn from.
var ErrNoTemplates = errors.New("no item templates configured")

// maxIDAttempts bounds retries when a generated id is already taken.
const maxIDAttempts = 8

// Factory turns templates into items placed in a store.
type Factory struct {
	templates []item.Template
	rng       *rand.Rand
	newID     func() string
	sounds    notify.Sink
}

// Option configures a Factory.
type Option func(*Factory)

// WithRand sets the random source used to pick templates.
func WithRand(r *rand.Rand) Option {
	return func(f *Factory) {
		f.rng = r
	}
}

// WithIDFunc sets the id generator. Defaults to random UUIDs.
func WithIDFunc(fn func() string) Option {
	return func(f *Factory) {
		f.newID = fn
	}
}

// WithSounds sets the sink that receives the spawned item's drop cue.
func WithSounds(s notify.Sink) Option {
	return func(f *Factory) {
		f.sounds = s
	}
}

// NewFactory creates a factory over the given template pool.
func NewFactory(templates []item.Template, opts ...Option) *Factory {
	f := &Factory{
		templates: templates,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:     uuid.NewString,
		sounds:    notify.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Templates returns the template pool.
func (f *Factory) Templates() []item.Template {
	return f.templates
}

// Spawn picks a template uniformly at random and places it at the first
// free row-major cell. When nothing fits it returns item.ErrNoSpaceAvailable
// and the store is unchanged.
func (f *Factory) Spawn(store *inventory.Store) (item.Item, error) {
	if len(f.templates) == 0 {
		return item.Item{}, ErrNoTemplates
	}
	return f.SpawnFrom(store, f.templates[f.rng.Intn(len(f.templates))])
}

// SpawnFrom places a specific template.
func (f *Factory) SpawnFrom(store *inventory.Store, tmpl item.Template) (item.Item, error) {
	if err := tmpl.Validate(); err != nil {
		return item.Item{}, err
	}

	pos, ok := store.FirstFit(tmpl.Size)
	if !ok {
		return item.Item{}, fmt.Errorf("%w: %s needs %dx%d", item.ErrNoSpaceAvailable, tmpl.Name, tmpl.Size.Width, tmpl.Size.Height)
	}

	id, err := f.freshID(store)
	if err != nil {
		return item.Item{}, err
	}

	it := tmpl.Instantiate(id, pos)
	if err := store.Add(it); err != nil {
		return item.Item{}, err
	}

	if ref := it.DropSound(); ref != "" {
		f.sounds.Notify(ref)
	}
	return it, nil
}

func (f *Factory) freshID(store *inventory.Store) (string, error) {
	for range maxIDAttempts {
		id := f.newID()
		if _, taken := store.Get(id); !taken && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: could not generate a free id", item.ErrDuplicateID)
}
