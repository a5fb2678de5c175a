// Package gesture arbitrates pointer-gesture ownership between node
// dragging, canvas panning, and marquee selection. The host translates its
// input events into PointerEvents and feeds them to a single Arbiter; at
// most one gesture machine owns the pointer session at a time, so the
// three gestures can never act on the same pointer movement.
package gesture

import (
	"errors"

	"github.com/vanderheijden86/graphcanvas/pkg/view"
)

// ErrGestureBusy is returned when a gesture starts while a prior gesture's
// teardown has not completed. Starts are serialized rather than queued.
var ErrGestureBusy = errors.New("prior gesture teardown in progress")

// Kind identifies which machine owns the pointer session.
type Kind int

const (
	KindNone Kind = iota
	KindDrag
	KindPan
	KindMarquee
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindPan:
		return "pan"
	case KindMarquee:
		return "marquee"
	default:
		return "none"
	}
}

// PointerEvent is a host-agnostic pointer sample in screen coordinates.
type PointerEvent struct {
	X, Y             float64
	Shift, Ctrl, Alt bool
}

// Modified reports whether any selection modifier is held.
func (e PointerEvent) Modified() bool { return e.Shift || e.Ctrl || e.Alt }

type state int

const (
	stateIdle state = iota
	stateActive
	stateTeardown
)

// Update describes what the owning gesture did with a pointer move. The
// host applies it: drag moves the named node, pan shifts the transform,
// marquee redraws the overlay rectangle.
type Update struct {
	Kind   Kind
	NodeID string    // drag target, empty otherwise
	DX, DY float64   // screen delta since the previous event (drag, pan)
	Rect   view.Rect // current marquee rectangle in screen space
}

// Result describes a finished gesture for the host's release handling
// (pin policy, reheat, selection application).
type Result struct {
	Kind     Kind
	NodeID   string
	Rect     view.Rect
	Modified bool // a modifier was held at release
	Moved    bool // the pointer moved between start and end
}

// Arbiter owns the current pointer session. Ownership is decided at
// gesture start and never changes mid-session: marquee mode captures every
// gesture, otherwise a start on a node hit-target is a drag and a start on
// empty canvas is a pan.
type Arbiter struct {
	state   state
	kind    Kind
	nodeID  string
	startX  float64
	startY  float64
	lastX   float64
	lastY   float64
	moved   bool
}

// NewArbiter returns an idle arbiter.
func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Active returns the owning gesture kind, or KindNone when idle.
func (a *Arbiter) Active() Kind {
	if a.state != stateActive {
		return KindNone
	}
	return a.kind
}

// Begin starts a pointer session. hitNode is the node under the pointer
// ("" for empty canvas); marqueeMode routes every gesture to the marquee
// layer, disabling node drag entirely. Returns the owning kind, or
// ErrGestureBusy while a prior session is still active or tearing down.
func (a *Arbiter) Begin(ev PointerEvent, hitNode string, marqueeMode bool) (Kind, error) {
	if a.state != stateIdle {
		return KindNone, ErrGestureBusy
	}
	switch {
	case marqueeMode:
		a.kind = KindMarquee
	case hitNode != "":
		a.kind = KindDrag
		a.nodeID = hitNode
	default:
		a.kind = KindPan
	}
	a.state = stateActive
	a.startX, a.startY = ev.X, ev.Y
	a.lastX, a.lastY = ev.X, ev.Y
	a.moved = false
	return a.kind, nil
}

// Move feeds a pointer sample to the owning gesture. Moves while idle are
// ignored and report KindNone.
func (a *Arbiter) Move(ev PointerEvent) Update {
	if a.state != stateActive {
		return Update{}
	}
	u := Update{
		Kind:   a.kind,
		NodeID: a.nodeID,
		DX:     ev.X - a.lastX,
		DY:     ev.Y - a.lastY,
		Rect:   view.NewRect(a.startX, a.startY, ev.X, ev.Y),
	}
	if u.DX != 0 || u.DY != 0 {
		a.moved = true
	}
	a.lastX, a.lastY = ev.X, ev.Y
	return u
}

// End finishes the session and enters teardown. The arbiter stays busy
// until FinishTeardown so a gesture racing the host's release handling is
// rejected instead of acting on stale state.
func (a *Arbiter) End(ev PointerEvent) (Result, error) {
	if a.state != stateActive {
		return Result{}, ErrGestureBusy
	}
	if ev.X != a.lastX || ev.Y != a.lastY {
		a.moved = true
	}
	res := Result{
		Kind:     a.kind,
		NodeID:   a.nodeID,
		Rect:     view.NewRect(a.startX, a.startY, ev.X, ev.Y),
		Modified: ev.Modified(),
		Moved:    a.moved,
	}
	a.state = stateTeardown
	return res, nil
}

// FinishTeardown completes release handling and returns the arbiter to
// idle. Safe to call when already idle.
func (a *Arbiter) FinishTeardown() {
	a.state = stateIdle
	a.kind = KindNone
	a.nodeID = ""
	a.moved = false
}

// Cancel aborts any session immediately, e.g. when the canvas unmounts or
// the visualization type switches mid-gesture.
func (a *Arbiter) Cancel() {
	a.FinishTeardown()
}
