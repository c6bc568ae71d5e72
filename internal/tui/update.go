package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearStatusMsg expires the status line once its deadline passed.
type clearStatusMsg struct{}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout = m.buildLayout()
		return m, nil

	case clearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusWarn = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) setStatus(text string) (Model, tea.Cmd) {
	m.statusMsg = text
	m.statusWarn = false
	m.statusTime = m.now().Add(statusDuration)
	return m, clearStatusAfter(statusDuration)
}

func (m Model) setWarning(text string) (Model, tea.Cmd) {
	m, cmd := m.setStatus(text)
	m.statusWarn = true
	return m, cmd
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func cellString(x, y int) string {
	return fmt.Sprintf("(%d,%d)", x, y)
}
