// Package drag implements the pick-up, move, release gesture over the grid.
package drag

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/satchel/internal/grid"
	"github.com/javiermolinar/satchel/internal/inventory"
	"github.com/javiermolinar/satchel/internal/item"
	"github.com/javiermolinar/satchel/internal/notify"
)

// Gesture errors.
var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("a drag is already in progress")
)

// State is either Idle or Dragging.
type State interface {
	isState()
}

// Idle means no item is held.
type Idle struct{}

// Dragging holds everything known about an in-flight gesture.
type Dragging struct {
	// Item is the held item as it was committed at pick-up.
	Item item.Item
	// Grab is the pointer offset from the item's top-left corner, snapped
	// to cell granularity.
	Grab grid.Point
	// Pointer is the last pointer position seen.
	Pointer grid.Point
	// Candidate is the cell the item would land on, valid only when OverGrid.
	Candidate grid.Coord
	// OverGrid reports whether the pointer is over the grid surface.
	OverGrid bool
	// Valid is the live validity of Candidate. Always false off the grid.
	Valid bool
}

func (Idle) isState()     {}
func (Dragging) isState() {}

// Ghost returns the pointer-space top-left corner where the held item is drawn.
func (d Dragging) Ghost() grid.Point {
	return d.Pointer.Sub(d.Grab)
}

// Frame carries the pointer-space boxes the host laid the grid out in.
type Frame struct {
	Surface   grid.Rect
	Container grid.Rect
}

// Outcome is the terminal decision of a gesture.
type Outcome int

const (
	Reposition Outcome = iota
	Revert
	Delete
)

func (o Outcome) String() string {
	switch o {
	case Reposition:
		return "reposition"
	case Revert:
		return "revert"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Resolution describes how a release was resolved.
type Resolution struct {
	Outcome Outcome
	ItemID  string
	From    grid.Coord
	To      grid.Coord
}

// Session tracks a single drag gesture against a store.
// It is not safe for concurrent use.
type Session struct {
	store  *inventory.Store
	sounds notify.Sink
	log    logrus.FieldLogger
	state  State
}

// Option configures a Session.
type Option func(*Session)

// WithSounds sets the sink that receives pickup and drop cues.
func WithSounds(s notify.Sink) Option {
	return func(sess *Session) {
		sess.sounds = s
	}
}

// WithLogger sets the session logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(sess *Session) {
		sess.log = l
	}
}

// NewSession creates an idle session over store.
func NewSession(store *inventory.Store, opts ...Option) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Session{
		store:  store,
		sounds: notify.Discard,
		log:    discard,
		state:  Idle{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Active returns the in-flight gesture, if any.
func (s *Session) Active() (Dragging, bool) {
	d, ok := s.state.(Dragging)
	return d, ok
}

// PickUp starts dragging the item with the given id.
func (s *Session) PickUp(id string, pointer grid.Point, frame Frame) error {
	if _, ok := s.state.(Dragging); ok {
		return ErrAlreadyDragging
	}

	it, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", item.ErrNotFound, id)
	}

	g := s.store.Geometry()
	topLeft := frame.Surface.Origin().Add(g.CellOrigin(it.Position))

	d := Dragging{
		Item:      it,
		Grab:      g.Snap(pointer.Sub(topLeft)),
		Pointer:   pointer,
		Candidate: it.Position,
	}
	s.state = s.track(d, pointer, frame)

	s.notify(it.PickupSound())
	s.log.WithFields(logrus.Fields{
		"item": id,
		"grab": d.Grab,
	}).Debug("Picked up item.")
	return nil
}

// Move updates the pointer and the live validity preview. It never touches
// the store.
func (s *Session) Move(pointer grid.Point, frame Frame) error {
	d, ok := s.state.(Dragging)
	if !ok {
		return ErrNotDragging
	}
	s.state = s.track(d, pointer, frame)
	return nil
}

func (s *Session) track(d Dragging, pointer grid.Point, frame Frame) Dragging {
	d.Pointer = pointer
	if !frame.Surface.Contains(pointer) {
		d.OverGrid = false
		d.Valid = false
		return d
	}

	d.OverGrid = true
	d.Candidate = s.candidate(d, pointer, frame)
	d.Valid = s.store.IsValid(d.Item, d.Candidate, d.Item.ID)
	return d
}

func (s *Session) candidate(d Dragging, pointer grid.Point, frame Frame) grid.Coord {
	offset := pointer.Sub(frame.Surface.Origin()).Sub(d.Grab)
	return s.store.Geometry().ToCell(offset)
}

// Release ends the gesture. Outside the container the item is deleted;
// inside it is moved when the candidate is valid and reverted otherwise.
// The session is idle afterwards whatever the outcome.
func (s *Session) Release(pointer grid.Point, frame Frame) (Resolution, error) {
	d, ok := s.state.(Dragging)
	if !ok {
		return Resolution{}, ErrNotDragging
	}
	s.state = Idle{}

	res := Resolution{
		ItemID: d.Item.ID,
		From:   d.Item.Position,
		To:     d.Item.Position,
	}
	l := s.log.WithField("item", d.Item.ID)

	if !frame.Container.Contains(pointer) {
		res.Outcome = Delete
		if err := s.store.Remove(d.Item.ID); err != nil {
			l.WithError(err).Warn("Released item vanished before delete.")
		}
	} else {
		target := s.candidate(d, pointer, frame)
		switch err := s.store.Move(d.Item.ID, target); {
		case err == nil:
			res.Outcome = Reposition
			res.To = target
		case errors.Is(err, item.ErrNotFound):
			res.Outcome = Revert
			l.WithError(err).Warn("Released item vanished before move.")
		default:
			res.Outcome = Revert
		}
	}

	s.notify(d.Item.DropSound())
	l.WithFields(logrus.Fields{
		"outcome": res.Outcome.String(),
		"to":      res.To,
	}).Debug("Released item.")
	return res, nil
}

func (s *Session) notify(ref string) {
	if ref != "" {
		s.sounds.Notify(ref)
	}
}
