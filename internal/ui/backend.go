package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/config"
	"github.com/javiermolinar/satchel/internal/db"
	"github.com/javiermolinar/satchel/internal/engine"
	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/logging"
	"github.com/javiermolinar/satchel/internal/notify"
	"github.com/javiermolinar/satchel/internal/storage"
	"github.com/javiermolinar/satchel/internal/vault"
)

// backend is everything a command needs to read and change the inventory.
type backend struct {
	engine *engine.Engine
	log    *logrus.Logger
}

// open builds the logger, the persistence layers, the vault and the sound
// port from config, then bootstraps an engine over them. Resources are
// released by Close.
func (a *App) open(ctx context.Context, g grid.Geometry) (*backend, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closeLog, err := logging.New(logging.Options{Debug: a.debug, Path: a.logPath})
	if err != nil {
		return nil, err
	}
	a.onClose(closeLog)

	v, err := a.loadVault(g)
	if err != nil {
		return nil, err
	}

	session, err := a.openSession()
	if err != nil {
		return nil, err
	}
	durable, err := a.openDurable()
	if err != nil {
		return nil, err
	}

	gateway := storage.NewGateway(
		storage.WithSession(session, a.config.Storage.SessionKey),
		storage.WithDurable(durable),
		storage.WithDefaults(v.DefaultItems),
		storage.WithLogger(log.WithField("component", "storage")),
	)

	eng := engine.New(g,
		engine.WithGateway(gateway),
		engine.WithDefaults(v.DefaultItems),
		engine.WithTemplates(v.Templates),
		engine.WithSounds(a.openSounds(log)),
		engine.WithLogger(log.WithField("component", "engine")),
	)
	eng.Bootstrap(ctx)

	log.WithFields(logrus.Fields{
		"session": a.config.Storage.Session,
		"durable": a.config.Storage.Durable,
		"items":   len(eng.Items()),
	}).Info("Inventory ready.")

	return &backend{engine: eng, log: log}, nil
}

// loadVault returns the configured vault, or the built-in one.
func (a *App) loadVault(g grid.Geometry) (vault.Vault, error) {
	v := vault.Builtin()
	if path := a.config.Vault.Path; path != "" {
		var err error
		if v, err = vault.LoadFile(path); err != nil {
			return vault.Vault{}, err
		}
	}
	if err := v.Validate(g); err != nil {
		return vault.Vault{}, fmt.Errorf("invalid vault: %w", err)
	}
	return v, nil
}

func (a *App) openSession() (storage.SessionStore, error) {
	cfg := a.config.Storage
	switch cfg.Session {
	case config.SessionCache:
		return storage.NewCacheSession(cfg.CacheDir), nil
	case config.SessionMemory:
		return storage.NewMemorySession(), nil
	case config.SessionRedis:
		ttl, err := a.config.SessionTTL()
		if err != nil {
			return nil, err
		}
		r := storage.NewRedisSession(storage.RedisOptions{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
			TTL:  ttl,
		})
		a.onClose(r.Close)
		return r, nil
	default:
		return nil, nil
	}
}

func (a *App) openDurable() (storage.DurableStore, error) {
	cfg := a.config.Storage
	switch cfg.Durable {
	case config.DurableSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		s, err := db.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.onClose(s.Close)
		return s, nil
	case config.DurableFile:
		return storage.NewFileStore(cfg.FilePath), nil
	default:
		return nil, nil
	}
}

// openSounds returns the sink pickup and drop cues go to. Cues are queued
// so a slow bell never stalls a drag.
func (a *App) openSounds(log *logrus.Logger) notify.Sink {
	if !a.config.Sound.Enabled {
		return notify.Discard
	}

	sinks := notify.Multi{notify.LogSink{Log: log.WithField("component", "sound")}}
	if a.config.Sound.Bell {
		sinks = append(sinks, notify.Bell{W: os.Stderr})
	}

	port := notify.NewPort(sinks, 0, log)
	a.onClose(func() error {
		port.Close()
		return nil
	})
	return port
}
