package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/satchel/internal/db"
	"github.com/javiermolinar/satchel/internal/drag"
	"github.com/javiermolinar/satchel/internal/engine"
	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/inventory"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/placement"
	"github.com/javiermolinar/satchel/internal/storage"
	"github.com/javiermolinar/satchel/internal/vault"
)

// The grid is laid out at the pointer origin with a 20 unit margin.
var frame = func() drag.Frame {
	g := grid.Default()
	origin := grid.Point{}
	return drag.Frame{Surface: g.Surface(origin), Container: g.Container(origin, 20, 20)}
}()

// cellCenter returns the pointer position in the middle of cell (x, y).
func cellCenter(x, y int) grid.Point {
	return grid.Point{X: x*grid.DefaultCellSize + 20, Y: y*grid.DefaultCellSize + 20}
}

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

type stores struct {
	session storage.SessionStore
	durable storage.DurableStore
}

// openEngine bootstraps an engine over the given stores the way the CLI
// does, with fixed defaults instead of a vault.
func openEngine(t *testing.T, s stores, defaults ...item.Item) *engine.Engine {
	t.Helper()
	defaultsFn := func() []item.Item { return item.CloneAll(defaults) }
	gw := storage.NewGateway(
		storage.WithSession(s.session, ""),
		storage.WithDurable(s.durable),
		storage.WithDefaults(defaultsFn),
	)
	e := engine.New(grid.Default(),
		engine.WithGateway(gw),
		engine.WithDefaults(defaultsFn),
		engine.WithTemplates(vault.Builtin().Templates),
	)
	e.Bootstrap(context.Background())
	return e
}

func newItem(id string, x, y, w, h int) item.Item {
	return item.Item{
		ID:         id,
		Name:       "Item " + id,
		Position:   grid.Coord{X: x, Y: y},
		Size:       grid.Extent{Width: w, Height: h},
		Properties: []item.Property{},
	}
}

func sqliteStores(t *testing.T) (stores, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "satchel.db")
	return stores{
		session: storage.NewCacheSession(filepath.Join(dir, "cache")),
		durable: openRepo(t, path),
	}, dir
}

func TestAddRejectsOverlap(t *testing.T) {
	s := inventory.NewStore(grid.Default())

	if err := s.Add(newItem("A", 0, 0, 1, 1)); err != nil {
		t.Fatalf("Add A failed: %v", err)
	}
	err := s.Add(newItem("B", 0, 0, 1, 1))
	if !errors.Is(err, item.ErrPlacementConflict) {
		t.Fatalf("expected ErrPlacementConflict, got %v", err)
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != "A" {
		t.Fatalf("expected only A, got %+v", snap)
	}
}

func TestDragReposition(t *testing.T) {
	st, _ := sqliteStores(t)
	e := openEngine(t, st, newItem("A", 1, 2, 1, 3))

	if err := e.PickUp("A", cellCenter(1, 2), frame); err != nil {
		t.Fatalf("PickUp failed: %v", err)
	}
	res, err := e.Release(cellCenter(5, 5), frame)
	if err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if res.Outcome != drag.Reposition {
		t.Fatalf("outcome = %v, want reposition", res.Outcome)
	}

	got, _ := e.Get("A")
	if got.Position != (grid.Coord{X: 5, Y: 5}) {
		t.Errorf("position = %+v, want (5,5)", got.Position)
	}

	// A restart reads the move back from the session layer.
	restarted := openEngine(t, st, newItem("A", 1, 2, 1, 3))
	got, _ = restarted.Get("A")
	if got.Position != (grid.Coord{X: 5, Y: 5}) {
		t.Errorf("position after restart = %+v, want (5,5)", got.Position)
	}
}

func TestDragDeleteOutsideContainer(t *testing.T) {
	st, _ := sqliteStores(t)
	e := openEngine(t, st, newItem("A", 1, 2, 1, 3))

	if err := e.PickUp("A", cellCenter(1, 3), frame); err != nil {
		t.Fatalf("PickUp failed: %v", err)
	}
	res, err := e.Release(grid.Point{X: -50, Y: 100}, frame)
	if err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if res.Outcome != drag.Delete {
		t.Fatalf("outcome = %v, want delete", res.Outcome)
	}
	if _, ok := e.Get("A"); ok {
		t.Error("expected A to be deleted")
	}

	items, err := st.durable.ReadInventory(context.Background())
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected the deletion in the durable store, got %+v", items)
	}
}

func TestDragRevertOnCollision(t *testing.T) {
	st, _ := sqliteStores(t)
	e := openEngine(t, st, newItem("A", 0, 0, 1, 1), newItem("B", 2, 2, 1, 1))

	if err := e.PickUp("A", cellCenter(0, 0), frame); err != nil {
		t.Fatalf("PickUp failed: %v", err)
	}
	if err := e.Move(cellCenter(2, 2), frame); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	d, ok := e.Dragging()
	if !ok || !d.OverGrid || d.Valid {
		t.Fatalf("expected an invalid candidate over B, got %+v", e.Drag())
	}

	res, err := e.Release(cellCenter(2, 2), frame)
	if err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if res.Outcome != drag.Revert {
		t.Fatalf("outcome = %v, want revert", res.Outcome)
	}

	got, _ := e.Get("A")
	if got.Position != (grid.Coord{X: 0, Y: 0}) {
		t.Errorf("position = %+v, want (0,0)", got.Position)
	}
	if _, idle := e.Drag().(drag.Idle); !idle {
		t.Error("expected the gesture to end")
	}
}

func TestSpawnOnFullGrid(t *testing.T) {
	var rows []item.Item
	for y := 0; y < grid.DefaultHeight; y++ {
		rows = append(rows, newItem(string(rune('a'+y)), 0, y, grid.DefaultWidth, 1))
	}
	e := openEngine(t, stores{session: storage.NewMemorySession()}, rows...)

	var failed int
	e.OnSpawnFailed(func(error) { failed++ })

	_, err := e.SpawnRandom()
	if !errors.Is(err, item.ErrNoSpaceAvailable) {
		t.Fatalf("expected ErrNoSpaceAvailable, got %v", err)
	}
	if failed != 1 {
		t.Errorf("expected one spawn failure notice, got %d", failed)
	}
	if len(e.Items()) != grid.DefaultHeight {
		t.Errorf("store changed after failed spawn: %d items", len(e.Items()))
	}
}

func TestCorruptSessionFallsBackToDurable(t *testing.T) {
	ctx := context.Background()
	st, _ := sqliteStores(t)

	if err := st.durable.WriteInventory(ctx, []item.Item{newItem("saved", 4, 4, 2, 2)}); err != nil {
		t.Fatalf("WriteInventory failed: %v", err)
	}
	if err := st.session.Set(ctx, storage.DefaultSessionKey, []byte(`{"not": "an array"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	e := openEngine(t, st, newItem("default", 0, 0, 1, 1))
	items := e.Items()
	if len(items) != 1 || items[0].ID != "saved" {
		t.Fatalf("expected the durable inventory, got %+v", items)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory_save.json")
	st := stores{durable: storage.NewFileStore(path)}

	e := openEngine(t, st, newItem("A", 0, 0, 1, 1))
	spawned, err := e.SpawnNamed("Helmet")
	if err != nil {
		t.Fatalf("SpawnNamed failed: %v", err)
	}

	restarted := openEngine(t, stores{durable: storage.NewFileStore(path)})
	got, ok := restarted.Get(spawned.ID)
	if !ok || got.Position != spawned.Position || got.Name != "Helmet" {
		t.Fatalf("expected %+v after restart, got %+v", spawned, got)
	}
	if err := placement.CheckInvariants(restarted.Geometry(), restarted.Items()); err != nil {
		t.Fatal(err)
	}
}
