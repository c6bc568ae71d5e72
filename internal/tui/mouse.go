package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/satchel/internal/drag"
	"github.com/javiermolinar/satchel/internal/grid"
)

// handleMouseMsg drives the drag gesture: press on an item picks it up,
// motion tracks it, release resolves it.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	LogMouse(msg)

	m.pointer = grid.Point{X: msg.X, Y: msg.Y}
	m.hasPointer = true

	if m.mode == ModeModal || m.layout.TooSmall {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.mode == ModeNormal {
			return m.pickUp()
		}
	case tea.MouseActionMotion:
		if m.mode == ModeDrag {
			if err := m.engine.Move(m.pointer, m.layout.Frame()); err != nil {
				LogError("drag move", err)
			}
			LogDragState(m.engine.Drag(), "move")
		}
	case tea.MouseActionRelease:
		if m.mode == ModeDrag {
			return m.release()
		}
	}
	return m, nil
}

func (m Model) pickUp() (tea.Model, tea.Cmd) {
	it, ok := m.hovered()
	if !ok {
		return m, nil
	}
	if err := m.engine.PickUp(it.ID, m.pointer, m.layout.Frame()); err != nil {
		LogError("pick up", err)
		return m, nil
	}
	LogModeChange(m.mode, ModeDrag, "pick up "+it.ID)
	m.mode = ModeDrag
	LogDragState(m.engine.Drag(), "pick up")
	return m, nil
}

func (m Model) release() (tea.Model, tea.Cmd) {
	held, _ := m.engine.Dragging()
	res, err := m.engine.Release(m.pointer, m.layout.Frame())
	LogModeChange(m.mode, ModeNormal, "release")
	m.mode = ModeNormal
	if err != nil {
		LogError("release", err)
		return m, nil
	}
	LogResolution(res)

	name := held.Item.Name
	switch res.Outcome {
	case drag.Reposition:
		if res.From == res.To {
			return m, nil
		}
		return m.setStatus("Moved " + name + " to " + cellString(res.To.X, res.To.Y))
	case drag.Delete:
		return m.setStatus("Dropped " + name)
	default:
		return m.setWarning(name + " does not fit there")
	}
}
