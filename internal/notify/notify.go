// Package notify delivers best-effort sound cues. Senders never wait and
// never learn whether a cue was played.
package notify

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives sound asset references.
type Sink interface {
	Notify(ref string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ref string)

// Notify calls f(ref).
func (f SinkFunc) Notify(ref string) { f(ref) }

// Discard drops every cue.
var Discard Sink = SinkFunc(func(string) {})

// DefaultBuffer is the queue length of a Port created with a zero size.
const DefaultBuffer = 16

// Port queues cues for a downstream sink on its own goroutine. When the
// queue is full the cue is dropped.
type Port struct {
	ch     chan string
	sink   Sink
	log    logrus.FieldLogger
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

// NewPort starts a port forwarding to sink.
func NewPort(sink Sink, size int, log logrus.FieldLogger) *Port {
	if size <= 0 {
		size = DefaultBuffer
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	p := &Port{
		ch:   make(chan string, size),
		sink: sink,
		log:  log,
		done: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Port) run() {
	defer close(p.done)
	for ref := range p.ch {
		p.deliver(ref)
	}
}

func (p *Port) deliver(ref string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.WithField("sound", ref).Warnf("Sound sink failed: %v", r)
		}
	}()
	p.sink.Notify(ref)
}

// Notify enqueues ref. Empty references are ignored.
func (p *Port) Notify(ref string) {
	if ref == "" {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	select {
	case p.ch <- ref:
	default:
		p.log.WithField("sound", ref).Debug("Sound queue full, dropping cue.")
	}
}

// Close stops accepting cues and waits for queued ones to be delivered.
func (p *Port) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.ch)
		p.mu.Unlock()
	})
	<-p.done
}
