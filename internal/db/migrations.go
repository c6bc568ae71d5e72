package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS items (
			id           TEXT PRIMARY KEY,
			seq          INTEGER NOT NULL,
			name         TEXT NOT NULL,
			pos_x        INTEGER NOT NULL,
			pos_y        INTEGER NOT NULL,
			width        INTEGER NOT NULL CHECK(width >= 1),
			height       INTEGER NOT NULL CHECK(height >= 1),
			image_url    TEXT NOT NULL DEFAULT '',
			rarity       TEXT CHECK(rarity IN ('common', 'uncommon', 'rare', 'very rare', 'epic', 'unique', 'set', 'legendary')),
			pickup_sound TEXT,
			drop_sound   TEXT
		);

		CREATE TABLE IF NOT EXISTS item_properties (
			item_id TEXT NOT NULL REFERENCES items(id),
			seq     INTEGER NOT NULL,
			name    TEXT NOT NULL,
			value   TEXT NOT NULL,
			color   TEXT,
			PRIMARY KEY (item_id, seq)
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_items_seq ON items(seq);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating inventory tables: %w", err)
	}

	return nil
}
