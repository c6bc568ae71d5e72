package storage

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/item"
)

// Gateway loads the initial inventory and writes every committed change to
// whichever backends the host supplied. Neither operation returns an error:
// a failing backend is logged and skipped.
type Gateway struct {
	session    SessionStore
	sessionKey string
	durable    DurableStore
	defaults   func() []item.Item
	log        logrus.FieldLogger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithSession sets the session-scoped backend and the key the inventory is
// stored under. An empty key selects DefaultSessionKey.
func WithSession(s SessionStore, key string) GatewayOption {
	return func(g *Gateway) {
		g.session = s
		if key != "" {
			g.sessionKey = key
		}
	}
}

// WithDurable sets the durable backend.
func WithDurable(d DurableStore) GatewayOption {
	return func(g *Gateway) {
		g.durable = d
	}
}

// WithDefaults sets the built-in item set returned when no backend has data.
func WithDefaults(fn func() []item.Item) GatewayOption {
	return func(g *Gateway) {
		g.defaults = fn
	}
}

// WithLogger sets the logger used for swallowed backend failures.
func WithLogger(l logrus.FieldLogger) GatewayOption {
	return func(g *Gateway) {
		g.log = l
	}
}

// NewGateway creates a gateway. With no options it has no backends and
// always loads an empty default set.
func NewGateway(opts ...GatewayOption) *Gateway {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	g := &Gateway{
		sessionKey: DefaultSessionKey,
		log:        discard,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Defaults returns a fresh copy of the built-in item set.
func (g *Gateway) Defaults() []item.Item {
	if g.defaults == nil {
		return []item.Item{}
	}
	return item.CloneAll(g.defaults())
}

// LoadInitial tries the session store, then the durable store, then the
// defaults. A backend that is missing, empty, or corrupt is skipped.
func (g *Gateway) LoadInitial(ctx context.Context) []item.Item {
	if g.session != nil {
		l := g.log.WithFields(logrus.Fields{"backend": "session", "key": g.sessionKey})
		items, err := g.loadSession(ctx)
		if err == nil {
			l.WithField("items", len(items)).Info("Loaded inventory from session store.")
			return items
		}
		logLoadFailure(l, err)
	}

	if g.durable != nil {
		l := g.log.WithField("backend", "durable")
		items, err := g.durable.ReadInventory(ctx)
		if err == nil {
			l.WithField("items", len(items)).Info("Loaded inventory from durable store.")
			return item.CloneAll(items)
		}
		logLoadFailure(l, err)
	}

	g.log.Info("Using default inventory.")
	return g.Defaults()
}

func (g *Gateway) loadSession(ctx context.Context) ([]item.Item, error) {
	data, err := g.session.Get(ctx, g.sessionKey)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func logLoadFailure(l logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, ErrUnavailable):
		l.Debug("Backend has no saved inventory.")
	case errors.Is(err, ErrCorrupt):
		l.WithError(err).Warn("Ignoring corrupt saved inventory.")
	default:
		l.WithError(err).Warn("Unable to read saved inventory.")
	}
}

// Persist writes items to every available backend. Each channel is written
// independently; failures are logged and never reach the caller.
func (g *Gateway) Persist(ctx context.Context, items []item.Item) {
	if g.session != nil {
		l := g.log.WithFields(logrus.Fields{"backend": "session", "key": g.sessionKey})
		data, err := Encode(items)
		if err == nil {
			err = g.session.Set(ctx, g.sessionKey, data)
		}
		if err != nil {
			l.WithError(err).Warn("Unable to save inventory.")
		} else {
			l.Debug("Saved inventory.")
		}
	}

	if g.durable != nil {
		l := g.log.WithField("backend", "durable")
		if err := g.durable.WriteInventory(ctx, item.CloneAll(items)); err != nil {
			l.WithError(err).Warn("Unable to save inventory.")
		} else {
			l.Debug("Saved inventory.")
		}
	}
}
