package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/satchel/internal/engine"
	"github.com/javiermolinar/satchel/internal/item"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

type keyMap struct {
	Spawn   key.Binding
	Reset   key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Spawn: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy hovered"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Spawn, k.Reset, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Spawn, k.Reset, k.Copy},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeDrag:
		// The pointer owns the board until the button is released.
		return m, nil
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Spawn):
		it, err := m.engine.SpawnRandom()
		if err != nil {
			if errors.Is(err, item.ErrNoSpaceAvailable) {
				return m.setWarning(engine.SpawnFailedMessage)
			}
			LogError("spawn", err)
			return m.setWarning(fmt.Sprintf("Error: %v", err))
		}
		return m.setStatus("Added " + it.Name + " at " + cellString(it.Position.X, it.Position.Y))

	case key.Matches(msg, m.keys.Reset):
		LogModeChange(m.mode, ModeModal, "reset")
		m.mode = ModeModal
		m.modalType = ModalConfirmReset
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		it, ok := m.hovered()
		if !ok {
			return m.setStatus("Hover an item to copy it")
		}
		if err := copyToClipboard(itemSummary(it)); err != nil {
			LogError("clipboard", err)
			return m.setWarning(fmt.Sprintf("Copy failed: %v", err))
		}
		return m.setStatus("Copied " + it.Name)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// handleModalKeys handles keys while a modal is open.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m = m.closeModal("confirmed")
		m.engine.Reset()
		return m.setStatus("Inventory reset to defaults")
	case key.Matches(msg, m.keys.Cancel):
		return m.closeModal("cancelled"), nil
	}
	return m, nil
}

func (m Model) closeModal(reason string) Model {
	LogModeChange(m.mode, ModeNormal, reason)
	m.mode = ModeNormal
	m.modalType = ModalNone
	return m
}

// itemSummary renders an item as plain text for the clipboard.
func itemSummary(it item.Item) string {
	var b strings.Builder
	b.WriteString(it.Name)
	b.WriteString("\n")
	for _, p := range it.Properties {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Value)
	}
	b.WriteString(it.Rarity.Label())
	b.WriteString(" item")
	return b.String()
}
