package notify

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogSink records each cue as a debug entry.
type LogSink struct {
	Log logrus.FieldLogger
}

// Notify logs ref.
func (s LogSink) Notify(ref string) {
	s.Log.WithField("sound", ref).Debug("Playing sound.")
}

// Bell rings the terminal bell for every cue.
type Bell struct {
	W io.Writer
}

// Notify writes BEL to the terminal. Write errors are ignored.
func (b Bell) Notify(string) {
	_, _ = io.WriteString(b.W, "\a")
}

// Multi fans a cue out to several sinks in order.
type Multi []Sink

// Notify forwards ref to every sink.
func (m Multi) Notify(ref string) {
	for _, s := range m {
		s.Notify(ref)
	}
}
