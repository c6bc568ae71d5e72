package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/satchel/internal/grid"
)

func press(t *testing.T, m Model, p grid.Point) Model {
	t.Helper()
	return sendMsg(t, m, tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(t *testing.T, m Model, p grid.Point) Model {
	t.Helper()
	return sendMsg(t, m, tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(t *testing.T, m Model, p grid.Point) Model {
	t.Helper()
	return sendMsg(t, m, tea.MouseMsg{X: p.X, Y: p.Y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestMouse_DragRepositionsItem(t *testing.T) {
	m, eng := newTestModel(t, potion())

	m = press(t, m, cellPoint(m, grid.Coord{X: 0, Y: 0}))
	if m.mode != ModeDrag {
		t.Fatalf("mode = %v, want drag", m.mode)
	}

	target := cellPoint(m, grid.Coord{X: 3, Y: 4})
	m = motion(t, m, target)
	held, ok := eng.Dragging()
	if !ok || held.Candidate != (grid.Coord{X: 3, Y: 4}) || !held.Valid {
		t.Fatalf("unexpected drag state %+v", held)
	}

	m = release(t, m, target)
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v after release, want normal", m.mode)
	}
	got, _ := eng.Get("potion")
	if got.Position != (grid.Coord{X: 3, Y: 4}) {
		t.Fatalf("position = %+v, want (3,4)", got.Position)
	}
	if m.statusMsg != "Moved Potion of Healing to (3,4)" || m.statusWarn {
		t.Errorf("status = %q warn=%t", m.statusMsg, m.statusWarn)
	}
}

func TestMouse_GrabOffsetKeepsAnchor(t *testing.T) {
	m, eng := newTestModel(t, sword())

	// Grab the sword by its bottom cell and drop the pointer on (5,5): the
	// anchor lands two rows higher.
	m = press(t, m, cellPoint(m, grid.Coord{X: 1, Y: 2}))
	target := cellPoint(m, grid.Coord{X: 5, Y: 5})
	m = motion(t, m, target)
	_ = release(t, m, target)

	got, _ := eng.Get("sword")
	if got.Position != (grid.Coord{X: 5, Y: 3}) {
		t.Fatalf("position = %+v, want (5,3)", got.Position)
	}
}

func TestMouse_DropOutsideContainerDeletes(t *testing.T) {
	m, eng := newTestModel(t, potion(), sword())

	m = press(t, m, cellPoint(m, grid.Coord{X: 0, Y: 0}))
	outside := grid.Point{X: testWidth - 1, Y: 0}
	m = motion(t, m, outside)
	if held, _ := eng.Dragging(); held.OverGrid || held.Valid {
		t.Fatalf("pointer off the surface must not be valid: %+v", held)
	}

	m = release(t, m, outside)
	if _, ok := eng.Get("potion"); ok {
		t.Fatal("expected potion to be deleted")
	}
	if len(eng.Items()) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(eng.Items()))
	}
	if m.statusMsg != "Dropped Potion of Healing" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestMouse_DropOnOccupiedCellReverts(t *testing.T) {
	m, eng := newTestModel(t, potion(), sword())

	m = press(t, m, cellPoint(m, grid.Coord{X: 0, Y: 0}))
	target := cellPoint(m, grid.Coord{X: 1, Y: 1})
	m = motion(t, m, target)
	if held, _ := eng.Dragging(); held.Valid {
		t.Fatal("expected invalid candidate over the sword")
	}

	m = release(t, m, target)
	got, _ := eng.Get("potion")
	if got.Position != (grid.Coord{X: 0, Y: 0}) {
		t.Fatalf("position = %+v, want unchanged", got.Position)
	}
	if !m.statusWarn {
		t.Errorf("expected a warning status, got %q", m.statusMsg)
	}
}

func TestMouse_DropOnMarginReverts(t *testing.T) {
	m, eng := newTestModel(t, potion())

	m = press(t, m, cellPoint(m, grid.Coord{X: 0, Y: 0}))
	// Inside the container, left of the surface.
	margin := grid.Point{X: m.layout.Container.X, Y: m.layout.Surface.Y}
	_ = release(t, m, margin)

	got, ok := eng.Get("potion")
	if !ok || got.Position != (grid.Coord{X: 0, Y: 0}) {
		t.Fatalf("expected potion back at (0,0), got %+v %v", got, ok)
	}
}

func TestMouse_PressOnEmptyCellIsIgnored(t *testing.T) {
	m, eng := newTestModel(t, potion())

	m = press(t, m, cellPoint(m, grid.Coord{X: 5, Y: 5}))
	if m.mode != ModeNormal {
		t.Fatalf("mode = %v, want normal", m.mode)
	}
	if _, ok := eng.Dragging(); ok {
		t.Fatal("no drag expected")
	}
}

func TestMouse_IgnoredWhileModalOpen(t *testing.T) {
	m, eng := newTestModel(t, potion())
	m = sendMsg(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	m = press(t, m, cellPoint(m, grid.Coord{X: 0, Y: 0}))
	if m.mode != ModeModal {
		t.Fatalf("mode = %v, want modal", m.mode)
	}
	if _, ok := eng.Dragging(); ok {
		t.Fatal("no drag expected while the modal is open")
	}
}

func TestMouse_IgnoredWhenTooSmall(t *testing.T) {
	m, eng := newTestModel(t, potion())
	m = sendMsg(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})

	_ = press(t, m, grid.Point{X: 5, Y: 3})
	if _, ok := eng.Dragging(); ok {
		t.Fatal("no drag expected when the board is not shown")
	}
}
