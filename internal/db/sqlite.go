// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/storage"
)

const savedAtKey = "saved_at"

// SQLite implements storage.DurableStore using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ storage.DurableStore = (*SQLite)(nil)

// openDB is replaced in tests to observe the handle.
var openDB = func(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path)
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SavedAt returns when the inventory was last written.
// Returns storage.ErrUnavailable if nothing has been saved yet.
func (s *SQLite) SavedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, savedAtKey).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, storage.ErrUnavailable
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("querying save time: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: parsing save time: %v", storage.ErrCorrupt, err)
	}
	return t, nil
}

// ReadInventory returns the saved items in their stored order.
// An inventory saved empty is returned as an empty slice; one never saved
// reports storage.ErrUnavailable.
func (s *SQLite) ReadInventory(ctx context.Context) ([]item.Item, error) {
	if _, err := s.SavedAt(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, pos_x, pos_y, width, height, image_url, rarity, pickup_sound, drop_sound
		FROM items
		ORDER BY seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []item.Item{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			it                item.Item
			rarity            sql.NullString
			pickup, dropSound sql.NullString
		)
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Position.X,
			&it.Position.Y,
			&it.Size.Width,
			&it.Size.Height,
			&it.ImageURL,
			&rarity,
			&pickup,
			&dropSound,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		if rarity.Valid {
			it.Rarity = item.Rarity(rarity.String)
		}
		if pickup.Valid || dropSound.Valid {
			it.Sounds = &item.Sounds{Pickup: pickup.String, Drop: dropSound.String}
		}
		it.Properties = []item.Property{}

		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
		}

		index[it.ID] = len(items)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	if err := s.readProperties(ctx, items, index); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *SQLite) readProperties(ctx context.Context, items []item.Item, index map[string]int) error {
	query := `
		SELECT item_id, name, value, color
		FROM item_properties
		ORDER BY item_id, seq
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("querying properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			itemID string
			p      item.Property
			color  sql.NullString
		)
		if err := rows.Scan(&itemID, &p.Name, &p.Value, &color); err != nil {
			return fmt.Errorf("scanning property: %w", err)
		}

		idx, ok := index[itemID]
		if !ok {
			return fmt.Errorf("%w: property for unknown item %q", storage.ErrCorrupt, itemID)
		}
		if color.Valid {
			p.Color = color.String
		}
		items[idx].Properties = append(items[idx].Properties, p)
	}

	return rows.Err()
}

// WriteInventory replaces the saved inventory in a single transaction.
func (s *SQLite) WriteInventory(ctx context.Context, items []item.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_properties`); err != nil {
		return fmt.Errorf("clearing properties: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (
			id, seq, name, pos_x, pos_y, width, height, image_url, rarity, pickup_sound, drop_sound
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing item statement: %w", err)
	}
	defer func() { _ = itemStmt.Close() }()

	propStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO item_properties (item_id, seq, name, value, color)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing property statement: %w", err)
	}
	defer func() { _ = propStmt.Close() }()

	for i, it := range items {
		if _, err := itemStmt.ExecContext(ctx,
			it.ID,
			i,
			it.Name,
			it.Position.X,
			it.Position.Y,
			it.Size.Width,
			it.Size.Height,
			it.ImageURL,
			nullString(string(it.Rarity)),
			soundColumn(it.Sounds, true),
			soundColumn(it.Sounds, false),
		); err != nil {
			return fmt.Errorf("inserting item %q: %w", it.ID, err)
		}

		for j, p := range it.Properties {
			if _, err := propStmt.ExecContext(ctx, it.ID, j, p.Name, p.Value, nullString(p.Color)); err != nil {
				return fmt.Errorf("inserting property %q of %q: %w", p.Name, it.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		savedAtKey, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("recording save time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Clear forgets the saved inventory so the next read reports
// storage.ErrUnavailable.
func (s *SQLite) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM item_properties`,
		`DELETE FROM items`,
		`DELETE FROM meta WHERE key = '` + savedAtKey + `'`,
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clearing inventory: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func soundColumn(s *item.Sounds, pickup bool) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	if pickup {
		return sql.NullString{String: s.Pickup, Valid: true}
	}
	return sql.NullString{String: s.Drop, Valid: true}
}
