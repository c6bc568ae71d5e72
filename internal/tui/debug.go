package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/drag"
	"github.com/javiermolinar/satchel/internal/grid"
)

// debugLog receives TUI events. It discards everything until
// SetDebugLogger is called.
var debugLog logrus.FieldLogger = discardLogger()

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// SetDebugLogger routes TUI events to l. A nil logger disables them.
func SetDebugLogger(l logrus.FieldLogger) {
	if l == nil {
		debugLog = discardLogger()
		return
	}
	debugLog = l.WithField("component", "tui")
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.WithFields(logrus.Fields{
		"event": "KEY_PRESS",
		"key":   msg.String(),
		"type":  fmt.Sprintf("%T", msg.Type),
	}).Debug("key press")
}

// LogMouse logs a mouse event in screen coordinates.
func LogMouse(msg tea.MouseMsg) {
	debugLog.WithFields(logrus.Fields{
		"event":  "MOUSE",
		"action": msg.Action.String(),
		"button": msg.Button.String(),
		"x":      msg.X,
		"y":      msg.Y,
	}).Debug("mouse")
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	debugLog.WithFields(logrus.Fields{
		"event":  "MODE_CHANGE",
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	}).Debug("mode change")
}

// LogDragState logs the drag session after an action.
func LogDragState(state drag.State, action string) {
	fields := logrus.Fields{
		"event":  "DRAG_STATE",
		"action": action,
	}
	switch s := state.(type) {
	case drag.Dragging:
		ghost := s.Ghost()
		fields["state"] = "dragging"
		fields["item_id"] = s.Item.ID
		fields["item_name"] = truncateStr(s.Item.Name, 30)
		fields["grab"] = pointString(s.Grab)
		fields["ghost"] = pointString(ghost)
		fields["candidate"] = fmt.Sprintf("%d,%d", s.Candidate.X, s.Candidate.Y)
		fields["over_grid"] = s.OverGrid
		fields["valid"] = s.Valid
	default:
		fields["state"] = "idle"
	}
	debugLog.WithFields(fields).Debug("drag state")
}

// LogResolution logs how a drag ended.
func LogResolution(res drag.Resolution) {
	debugLog.WithFields(logrus.Fields{
		"event":   "DRAG_RESOLVED",
		"outcome": res.Outcome.String(),
		"item_id": res.ItemID,
		"from":    fmt.Sprintf("%d,%d", res.From.X, res.From.Y),
		"to":      fmt.Sprintf("%d,%d", res.To.X, res.To.Y),
	}).Debug("drag resolved")
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.WithFields(logrus.Fields{
		"event":   "ERROR",
		"context": context,
	}).WithError(err).Debug("error")
}

func pointString(p grid.Point) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// truncateStr truncates a string to max bytes.
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
