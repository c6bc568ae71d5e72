// Package engine wires the inventory store, persistence, drag gesture,
// spawner and sound cues into one object a host can drive.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/drag"
	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/inventory"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/notify"
	"github.com/javiermolinar/satchel/internal/spawn"
	"github.com/javiermolinar/satchel/internal/storage"
)

// SpawnFailedMessage is the notice shown when a spawn finds no room.
const SpawnFailedMessage = "No space left in inventory!"

// ErrUnknownTemplate is returned by SpawnNamed when no template matches.
var ErrUnknownTemplate = errors.New("unknown template")

// Engine is the embedded inventory core. It is driven from a single
// goroutine; nothing in it blocks on persistence or sound.
type Engine struct {
	ctx       context.Context
	geometry  grid.Geometry
	store     *inventory.Store
	gateway   *storage.Gateway
	session   *drag.Session
	factory   *spawn.Factory
	templates []item.Template
	defaults  func() []item.Item
	sounds    notify.Sink
	log       logrus.FieldLogger

	spawnOpts     []spawn.Option
	changed       []func([]item.Item)
	spawnFailures []func(error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithGateway sets the persistence gateway. Without one nothing is saved
// and bootstrap starts from the defaults.
func WithGateway(g *storage.Gateway) Option {
	return func(e *Engine) {
		e.gateway = g
	}
}

// WithDefaults sets the item set used by Reset and by a gateway-less
// bootstrap.
func WithDefaults(fn func() []item.Item) Option {
	return func(e *Engine) {
		e.defaults = fn
	}
}

// WithTemplates sets the spawn template pool.
func WithTemplates(t []item.Template) Option {
	return func(e *Engine) {
		e.templates = t
	}
}

// WithSounds sets the sink for pickup and drop cues.
func WithSounds(s notify.Sink) Option {
	return func(e *Engine) {
		e.sounds = s
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithSpawnOptions passes options through to the spawn factory.
func WithSpawnOptions(opts ...spawn.Option) Option {
	return func(e *Engine) {
		e.spawnOpts = append(e.spawnOpts, opts...)
	}
}

// New creates an engine with an empty store. Call Bootstrap to load the
// saved inventory.
func New(g grid.Geometry, opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		ctx:      context.Background(),
		geometry: g,
		sounds:   notify.Discard,
		log:      discard,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.gateway == nil {
		e.gateway = storage.NewGateway(storage.WithDefaults(e.defaultItems), storage.WithLogger(e.log))
	}

	e.store = inventory.NewStore(g, inventory.WithDefaults(e.defaultItems))
	e.store.Subscribe(e.itemsChanged)

	e.session = drag.NewSession(e.store,
		drag.WithSounds(e.sounds),
		drag.WithLogger(e.log.WithField("component", "drag")),
	)

	factoryOpts := append([]spawn.Option{spawn.WithSounds(e.sounds)}, e.spawnOpts...)
	e.factory = spawn.NewFactory(e.templates, factoryOpts...)

	return e
}

func (e *Engine) defaultItems() []item.Item {
	if e.defaults == nil {
		return []item.Item{}
	}
	return item.CloneAll(e.defaults())
}

// Bootstrap loads the initial inventory into the store. It never fails;
// the worst case is the default set. ctx is kept for later persistence.
func (e *Engine) Bootstrap(ctx context.Context) []item.Item {
	if ctx != nil {
		e.ctx = ctx
	}
	items := e.gateway.LoadInitial(e.ctx)
	e.store.Load(items)
	return e.store.Snapshot()
}

// OnItemsChanged registers fn to receive every committed snapshot.
func (e *Engine) OnItemsChanged(fn func([]item.Item)) {
	e.changed = append(e.changed, fn)
}

// OnSpawnFailed registers fn to be called when a spawn finds no room.
func (e *Engine) OnSpawnFailed(fn func(error)) {
	e.spawnFailures = append(e.spawnFailures, fn)
}

func (e *Engine) itemsChanged(snapshot []item.Item) {
	e.gateway.Persist(e.ctx, snapshot)
	for _, fn := range e.changed {
		fn(snapshot)
	}
}

// Geometry returns the grid geometry.
func (e *Engine) Geometry() grid.Geometry {
	return e.geometry
}

// Items returns a snapshot of the committed items.
func (e *Engine) Items() []item.Item {
	return e.store.Snapshot()
}

// Get returns the item with the given id.
func (e *Engine) Get(id string) (item.Item, bool) {
	return e.store.Get(id)
}

// ItemAt returns the item covering cell c.
func (e *Engine) ItemAt(c grid.Coord) (item.Item, bool) {
	return e.store.ItemAt(c)
}

// Templates returns the spawn template pool.
func (e *Engine) Templates() []item.Template {
	return e.factory.Templates()
}

// Drag returns the current gesture state.
func (e *Engine) Drag() drag.State {
	return e.session.State()
}

// Dragging returns the in-flight gesture, if any.
func (e *Engine) Dragging() (drag.Dragging, bool) {
	return e.session.Active()
}

// PickUp starts dragging the item with the given id.
func (e *Engine) PickUp(id string, pointer grid.Point, frame drag.Frame) error {
	return e.session.PickUp(id, pointer, frame)
}

// Move updates the live preview of the gesture.
func (e *Engine) Move(pointer grid.Point, frame drag.Frame) error {
	return e.session.Move(pointer, frame)
}

// Release resolves the gesture.
func (e *Engine) Release(pointer grid.Point, frame drag.Frame) (drag.Resolution, error) {
	return e.session.Release(pointer, frame)
}

// MoveItem repositions an item directly, outside of a gesture.
func (e *Engine) MoveItem(id string, pos grid.Coord) error {
	return e.store.Move(id, pos)
}

// Remove deletes an item directly, outside of a gesture.
func (e *Engine) Remove(id string) error {
	return e.store.Remove(id)
}

// SpawnRandom adds a random template at the first free cell. When the grid
// is full every OnSpawnFailed hook runs and item.ErrNoSpaceAvailable is
// returned.
func (e *Engine) SpawnRandom() (item.Item, error) {
	return e.spawn(func() (item.Item, error) {
		return e.factory.Spawn(e.store)
	})
}

// SpawnNamed adds the template whose name matches, ignoring case.
func (e *Engine) SpawnNamed(name string) (item.Item, error) {
	for _, t := range e.factory.Templates() {
		if strings.EqualFold(t.Name, name) {
			return e.spawn(func() (item.Item, error) {
				return e.factory.SpawnFrom(e.store, t)
			})
		}
	}
	return item.Item{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

func (e *Engine) spawn(fn func() (item.Item, error)) (item.Item, error) {
	it, err := fn()
	if err != nil {
		if errors.Is(err, item.ErrNoSpaceAvailable) {
			e.log.WithError(err).Info("Spawn found no free cell.")
			for _, fn := range e.spawnFailures {
				fn(err)
			}
		}
		return item.Item{}, err
	}

	e.log.WithFields(logrus.Fields{
		"item":     it.ID,
		"name":     it.Name,
		"position": it.Position,
	}).Debug("Spawned item.")
	return it, nil
}

// Reset replaces the inventory with the default set.
func (e *Engine) Reset() {
	e.store.ResetToDefaults()
	e.log.Info("Inventory reset to defaults.")
}
