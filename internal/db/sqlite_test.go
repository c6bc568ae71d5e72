package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/storage"
)

func testItems() []item.Item {
	return []item.Item{
		{
			ID:       "shield",
			Name:     "Kite Shield",
			Position: grid.Coord{X: 3, Y: 3},
			Size:     grid.Extent{Width: 2, Height: 2},
			ImageURL: "images/shield.png",
			Rarity:   item.RarityVeryRare,
			Properties: []item.Property{
				{Name: "Defense", Value: "12"},
				{Name: "Block", Value: "20%", Color: "#4488ff"},
			},
			Sounds: &item.Sounds{Pickup: "sounds/shield_up.wav"},
		},
		{
			ID:         "potion",
			Name:       "Minor Healing Potion",
			Position:   grid.Coord{X: 0, Y: 0},
			Size:       grid.Extent{Width: 1, Height: 1},
			ImageURL:   "images/potion.png",
			Properties: []item.Property{},
		},
	}
}

func TestReadInventory_NeverSaved(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.ReadInventory(context.Background())
	if !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestWriteAndReadInventory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := testItems()
	if err := repo.WriteInventory(ctx, want); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	got, err := repo.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestWriteInventory_ReplacesPreviousSave(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.WriteInventory(ctx, testItems()); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	moved := testItems()[1:]
	moved[0].Position = grid.Coord{X: 9, Y: 9}
	if err := repo.WriteInventory(ctx, moved); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	got, err := repo.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "potion" || got[0].Position != (grid.Coord{X: 9, Y: 9}) {
		t.Fatalf("unexpected inventory: %+v", got)
	}
}

func TestWriteInventory_PreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var items []item.Item
	for i, id := range []string{"z", "a", "m", "b"} {
		items = append(items, item.Item{
			ID:         id,
			Name:       id,
			Position:   grid.Coord{X: i},
			Size:       grid.Extent{Width: 1, Height: 1},
			Properties: []item.Property{},
		})
	}
	if err := repo.WriteInventory(ctx, items); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	got, err := repo.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	for i, want := range []string{"z", "a", "m", "b"} {
		if got[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestWriteInventory_EmptyIsNotUnavailable(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.WriteInventory(ctx, []item.Item{}); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	got, err := repo.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("expected saved empty inventory, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
}

func TestWriteInventory_RollsBackOnFailure(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.WriteInventory(ctx, testItems()); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}

	dup := []item.Item{testItems()[1], testItems()[1]}
	if err := repo.WriteInventory(ctx, dup); err == nil {
		t.Fatal("expected duplicate id insert to fail")
	}

	got, err := repo.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if !reflect.DeepEqual(got, testItems()) {
		t.Errorf("failed write changed stored inventory: %+v", got)
	}
}

func TestReadInventory_CorruptRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.WriteInventory(ctx, testItems()); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}
	if _, err := repo.db.ExecContext(ctx, `UPDATE items SET id = '' WHERE id = 'potion'`); err != nil {
		t.Fatalf("corrupting row: %v", err)
	}

	_, err := repo.ReadInventory(ctx)
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestSavedAtAndClear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.SavedAt(ctx); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable before first save, got %v", err)
	}

	if err := repo.WriteInventory(ctx, testItems()); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}
	if at, err := repo.SavedAt(ctx); err != nil || at.IsZero() {
		t.Fatalf("expected save time, got %v, %v", at, err)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := repo.ReadInventory(ctx); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable after clear, got %v", err)
	}
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "satchel.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := first.WriteInventory(ctx, testItems()); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.ReadInventory(ctx)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items after reopen, got %d", len(got))
	}
}

func TestNew_ClosesHandleOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, []byte(strings.Repeat("not a database ", 64)), 0o644); err != nil {
		t.Fatal(err)
	}

	var opened *sql.DB
	orig := openDB
	openDB = func(p string) (*sql.DB, error) {
		db, err := orig(p)
		opened = db
		return db, err
	}
	t.Cleanup(func() { openDB = orig })

	if _, err := New(path); err == nil {
		t.Fatal("expected New to fail on a file that is not a database")
	}
	if opened == nil {
		t.Fatal("expected a handle to have been opened")
	}
	if err := opened.Ping(); err == nil || !strings.Contains(err.Error(), "database is closed") {
		t.Errorf("expected the handle to be closed, got %v", err)
	}
}

func newTestRepo(t *testing.T) *SQLite {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	repo, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}

	t.Cleanup(func() {
		_ = repo.Close()
	})

	return repo
}
