package inventory

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/placement"
)

func makeItem(id string, x, y, w, h int) item.Item {
	return item.Item{
		ID:       id,
		Name:     "Item " + id,
		Position: grid.Coord{X: x, Y: y},
		Size:     grid.Extent{Width: w, Height: h},
	}
}

func newTestStore(t *testing.T, items ...item.Item) *Store {
	t.Helper()
	s := NewStore(grid.Default())
	s.Load(items)
	return s
}

func TestAdd_RejectsOverlap(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add(makeItem("A", 0, 0, 1, 1)); err != nil {
		t.Fatalf("Add A failed: %v", err)
	}

	err := s.Add(makeItem("B", 0, 0, 1, 1))
	if !errors.Is(err, item.ErrPlacementConflict) {
		t.Fatalf("expected ErrPlacementConflict, got %v", err)
	}

	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != "A" {
		t.Fatalf("expected store to contain only A, got %+v", snap)
	}
}

func TestAdd_RejectsOutOfBounds(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(makeItem("staff", 0, 7, 1, 4))
	if !errors.Is(err, item.ErrPlacementConflict) {
		t.Fatalf("expected ErrPlacementConflict, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
}

func TestAdd_RejectsDuplicateID(t *testing.T) {
	s := newTestStore(t, makeItem("A", 0, 0, 1, 1))

	err := s.Add(makeItem("A", 5, 5, 1, 1))
	if !errors.Is(err, item.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestAdd_RejectsInvalidExtent(t *testing.T) {
	s := newTestStore(t)

	err := s.Add(makeItem("A", 0, 0, 0, 1))
	if !errors.Is(err, item.ErrInvalidExtent) {
		t.Fatalf("expected ErrInvalidExtent, got %v", err)
	}
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	for i, id := range []string{"c", "a", "b"} {
		if err := s.Add(makeItem(id, i, 0, 1, 1)); err != nil {
			t.Fatalf("Add %s failed: %v", id, err)
		}
	}

	snap := s.Snapshot()
	for i, want := range []string{"c", "a", "b"} {
		if snap[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, snap[i].ID, want)
		}
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t, makeItem("A", 0, 0, 1, 1), makeItem("B", 1, 0, 1, 1))

	if err := s.Remove("A"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := s.Get("A"); ok {
		t.Error("expected A to be gone")
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}

	if err := s.Remove("A"); !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMove(t *testing.T) {
	s := newTestStore(t, makeItem("A", 1, 2, 1, 3))

	if err := s.Move("A", grid.Coord{X: 5, Y: 5}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	got, _ := s.Get("A")
	if got.Position != (grid.Coord{X: 5, Y: 5}) {
		t.Errorf("position = %v, want (5,5)", got.Position)
	}
}

func TestMove_OntoOwnFootprint(t *testing.T) {
	s := newTestStore(t, makeItem("shield", 3, 3, 2, 2))

	if err := s.Move("shield", grid.Coord{X: 4, Y: 4}); err != nil {
		t.Fatalf("expected move overlapping its own prior cells to succeed: %v", err)
	}
}

func TestMove_FailureLeavesPositionUntouched(t *testing.T) {
	s := newTestStore(t, makeItem("A", 0, 0, 1, 1), makeItem("B", 2, 2, 1, 1))

	tests := []struct {
		name string
		pos  grid.Coord
	}{
		{"onto B", grid.Coord{X: 2, Y: 2}},
		{"negative", grid.Coord{X: -1, Y: 0}},
		{"past edge", grid.Coord{X: 10, Y: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Move("A", tt.pos)
			if !errors.Is(err, item.ErrPlacementConflict) {
				t.Fatalf("expected ErrPlacementConflict, got %v", err)
			}
			got, _ := s.Get("A")
			if got.Position != (grid.Coord{X: 0, Y: 0}) {
				t.Errorf("position changed to %v after failed move", got.Position)
			}
		})
	}
}

func TestHugeCoordinatesAreRejected(t *testing.T) {
	s := newTestStore(t, makeItem("a", 0, 0, 1, 1))

	err := s.Move("a", grid.Coord{X: math.MaxInt})
	if !errors.Is(err, item.ErrPlacementConflict) {
		t.Fatalf("expected ErrPlacementConflict for move, got %v", err)
	}
	if got, _ := s.Get("a"); got.Position != (grid.Coord{}) {
		t.Errorf("position changed to %v", got.Position)
	}

	for _, it := range []item.Item{
		makeItem("far", 0, math.MaxInt, 1, 1),
		makeItem("wide", 1, 0, math.MaxInt, 1),
		makeItem("tall", 2, 0, 1, math.MaxInt),
	} {
		if err := s.Add(it); !errors.Is(err, item.ErrPlacementConflict) {
			t.Errorf("expected ErrPlacementConflict adding %s, got %v", it.ID, err)
		}
	}

	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
	if err := placement.CheckInvariants(s.Geometry(), s.Snapshot()); err != nil {
		t.Fatal(err)
	}
}

func TestMove_NotFound(t *testing.T) {
	s := newTestStore(t)
	if err := s.Move("ghost", grid.Coord{}); !errors.Is(err, item.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Random add/move sequences never leave overlapping or out-of-bounds items.
func TestInvariantsHoldUnderRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newTestStore(t)

	for i := 0; i < 3000; i++ {
		switch rng.Intn(3) {
		case 0, 1:
			it := makeItem(strconv.Itoa(i), rng.Intn(12)-1, rng.Intn(12)-1, 1+rng.Intn(3), 1+rng.Intn(3))
			_ = s.Add(it)
		default:
			snap := s.Snapshot()
			if len(snap) == 0 {
				continue
			}
			target := snap[rng.Intn(len(snap))]
			before := target.Position
			err := s.Move(target.ID, grid.Coord{X: rng.Intn(12) - 1, Y: rng.Intn(12) - 1})
			if err != nil {
				after, _ := s.Get(target.ID)
				if after.Position != before {
					t.Fatalf("failed move changed position of %s", target.ID)
				}
			}
		}

		if err := placement.CheckInvariants(s.Geometry(), s.Snapshot()); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestSubscribe_NotifiedOnCommittedMutations(t *testing.T) {
	s := newTestStore(t)
	var calls int
	var last []item.Item
	s.Subscribe(func(snap []item.Item) {
		calls++
		last = snap
	})

	_ = s.Add(makeItem("A", 0, 0, 1, 1))
	_ = s.Add(makeItem("B", 0, 0, 1, 1)) // rejected
	_ = s.Move("A", grid.Coord{X: 3, Y: 3})
	_ = s.Move("A", grid.Coord{X: -3, Y: 3}) // rejected
	_ = s.Remove("missing")                 // rejected

	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
	if len(last) != 1 || last[0].Position != (grid.Coord{X: 3, Y: 3}) {
		t.Errorf("unexpected last snapshot: %+v", last)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, makeItem("A", 0, 0, 1, 1))

	snap := s.Snapshot()
	snap[0].Position = grid.Coord{X: 9, Y: 9}

	got, _ := s.Get("A")
	if got.Position != (grid.Coord{X: 0, Y: 0}) {
		t.Error("mutating a snapshot changed the store")
	}
}

func TestResetToDefaults(t *testing.T) {
	defaults := []item.Item{makeItem("d1", 0, 0, 1, 1), makeItem("d2", 1, 0, 1, 1)}
	s := NewStore(grid.Default(), WithDefaults(func() []item.Item { return defaults }))
	_ = s.Add(makeItem("x", 5, 5, 1, 1))

	s.ResetToDefaults()

	snap := s.Snapshot()
	if len(snap) != 2 || snap[0].ID != "d1" || snap[1].ID != "d2" {
		t.Fatalf("unexpected items after reset: %+v", snap)
	}
}

func TestItemAt(t *testing.T) {
	s := newTestStore(t, makeItem("sword", 1, 2, 1, 3))

	got, ok := s.ItemAt(grid.Coord{X: 1, Y: 4})
	if !ok || got.ID != "sword" {
		t.Fatalf("expected sword at (1,4), got %+v %v", got, ok)
	}
	if _, ok := s.ItemAt(grid.Coord{X: 0, Y: 0}); ok {
		t.Error("expected empty cell at (0,0)")
	}
}
