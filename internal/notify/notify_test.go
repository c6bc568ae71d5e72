package notify

import (
	"bytes"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recorder struct {
	mu   sync.Mutex
	refs []string
}

func (r *recorder) Notify(ref string) {
	r.mu.Lock()
	r.refs = append(r.refs, ref)
	r.mu.Unlock()
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.refs...)
}

func TestPort_DeliversInOrder(t *testing.T) {
	rec := &recorder{}
	p := NewPort(rec, 8, nil)

	p.Notify("a.wav")
	p.Notify("")
	p.Notify("b.wav")
	p.Close()

	got := rec.got()
	if len(got) != 2 || got[0] != "a.wav" || got[1] != "b.wav" {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestPort_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	rec := &recorder{}
	blocking := SinkFunc(func(ref string) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		rec.Notify(ref)
	})

	p := NewPort(blocking, 1, nil)
	p.Notify("first")
	<-started
	p.Notify("queued")
	p.Notify("dropped")

	close(release)
	p.Close()

	got := rec.got()
	if len(got) != 2 || got[0] != "first" || got[1] != "queued" {
		t.Fatalf("expected first and queued only, got %v", got)
	}
}

func TestPort_SinkPanicIsContained(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rec := &recorder{}
	calls := 0
	sink := SinkFunc(func(ref string) {
		calls++
		if calls == 1 {
			panic("audio device gone")
		}
		rec.Notify(ref)
	})

	p := NewPort(sink, 4, logger)
	p.Notify("boom")
	p.Notify("ok")
	p.Close()

	if got := rec.got(); len(got) != 1 || got[0] != "ok" {
		t.Fatalf("expected delivery to continue after panic, got %v", got)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("expected a warning to be logged")
	}
}

func TestPort_NotifyAfterCloseIsIgnored(t *testing.T) {
	rec := &recorder{}
	p := NewPort(rec, 1, nil)
	p.Close()
	p.Close()

	p.Notify("late")
	if len(rec.got()) != 0 {
		t.Fatal("expected no deliveries after close")
	}
}

func TestBellAndMulti(t *testing.T) {
	var buf bytes.Buffer
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	Multi{Bell{W: &buf}, LogSink{Log: logger}}.Notify("drop.wav")

	if buf.String() != "\a" {
		t.Errorf("expected bell, got %q", buf.String())
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["sound"] != "drop.wav" {
		t.Errorf("expected logged sound entry")
	}
}
