// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.elastic.co/ecslogrus"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "satchel-debug.log"

// Options controls where and how much is logged.
type Options struct {
	// Debug enables debug-level ECS JSON output to Path.
	Debug bool
	// Path overrides DebugLogPath.
	Path string
	// Service is recorded on every entry.
	Service string
}

// New returns a logger and a function that flushes and closes its output.
// Without Debug the logger discards everything; the TUI owns the terminal.
func New(opts Options) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	l.SetFormatter(&ecslogrus.Formatter{})

	if !opts.Debug {
		l.SetOutput(io.Discard)
		l.SetLevel(logrus.WarnLevel)
		return l, func() error { return nil }, nil
	}

	path := opts.Path
	if path == "" {
		path = DebugLogPath
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	l.SetOutput(f)
	l.SetLevel(logrus.DebugLevel)

	service := opts.Service
	if service == "" {
		service = "satchel"
	}
	l.AddHook(serviceHook(service))
	l.WithField("log_file", path).Info("Debug logging started.")

	return l, f.Close, nil
}

type serviceHook string

func (h serviceHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h serviceHook) Fire(e *logrus.Entry) error {
	if _, ok := e.Data["service.name"]; !ok {
		e.Data["service.name"] = string(h)
	}
	return nil
}
