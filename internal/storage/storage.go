// Package storage persists the inventory through layered, optional backends:
// a fast session-scoped store, a durable store, and built-in defaults.
package storage

import (
	"context"
	"errors"

	"github.com/javiermolinar/satchel/internal/item"
)

// DefaultSessionKey is the fixed key the inventory is cached under.
const DefaultSessionKey = "dndInventory"

// Backend errors.
var (
	// ErrUnavailable means the backend is missing or holds nothing.
	ErrUnavailable = errors.New("persistence unavailable")
	// ErrCorrupt means stored content failed to parse or validate.
	ErrCorrupt = errors.New("persistence corrupt")
)

// SessionStore is a fast, ephemeral key/value cache.
type SessionStore interface {
	// Get returns the bytes stored under key, or ErrUnavailable.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte) error
}

// DurableStore keeps the inventory across sessions at a fixed location.
type DurableStore interface {
	// ReadInventory returns the stored items, ErrUnavailable when nothing has
	// been saved yet, or ErrCorrupt when stored content cannot be trusted.
	ReadInventory(ctx context.Context) ([]item.Item, error)

	// WriteInventory replaces the stored items.
	WriteInventory(ctx context.Context, items []item.Item) error
}
