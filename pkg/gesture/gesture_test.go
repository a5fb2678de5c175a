package gesture

import (
	"errors"
	"testing"
)

func TestOwnershipArbitration(t *testing.T) {
	tests := []struct {
		name        string
		hitNode     string
		marqueeMode bool
		want        Kind
	}{
		{"node hit wins drag", "a", false, KindDrag},
		{"empty canvas pans", "", false, KindPan},
		{"marquee mode captures node hit", "a", true, KindMarquee},
		{"marquee mode captures canvas", "", true, KindMarquee},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArbiter()
			kind, err := a.Begin(PointerEvent{X: 5, Y: 5}, tt.hitNode, tt.marqueeMode)
			if err != nil {
				t.Fatal(err)
			}
			if kind != tt.want {
				t.Errorf("Begin() = %v, want %v", kind, tt.want)
			}
			if a.Active() != tt.want {
				t.Errorf("Active() = %v, want %v", a.Active(), tt.want)
			}
		})
	}
}

func TestBeginWhileActiveRejected(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{}, "a", false); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Begin(PointerEvent{}, "b", false); !errors.Is(err, ErrGestureBusy) {
		t.Errorf("second Begin error = %v, want ErrGestureBusy", err)
	}
}

func TestBeginDuringTeardownRejected(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{}, "", false); err != nil {
		t.Fatal(err)
	}
	if _, err := a.End(PointerEvent{X: 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Begin(PointerEvent{}, "", false); !errors.Is(err, ErrGestureBusy) {
		t.Errorf("Begin during teardown error = %v, want ErrGestureBusy", err)
	}
	a.FinishTeardown()
	if _, err := a.Begin(PointerEvent{}, "", false); err != nil {
		t.Errorf("Begin after teardown error = %v", err)
	}
}

func TestDragDeltas(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{X: 10, Y: 10}, "a", false); err != nil {
		t.Fatal(err)
	}
	u := a.Move(PointerEvent{X: 14, Y: 7})
	if u.Kind != KindDrag || u.NodeID != "a" {
		t.Fatalf("Move() = %+v", u)
	}
	if u.DX != 4 || u.DY != -3 {
		t.Errorf("delta = (%f,%f), want (4,-3)", u.DX, u.DY)
	}
	// deltas are relative to the previous sample, not the start
	u = a.Move(PointerEvent{X: 15, Y: 7})
	if u.DX != 1 || u.DY != 0 {
		t.Errorf("second delta = (%f,%f), want (1,0)", u.DX, u.DY)
	}
}

func TestMarqueeRectNormalized(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{X: 50, Y: 50}, "", true); err != nil {
		t.Fatal(err)
	}
	// dragging up-left still yields a normalized rect
	u := a.Move(PointerEvent{X: 20, Y: 10})
	if u.Rect.MinX != 20 || u.Rect.MinY != 10 || u.Rect.MaxX != 50 || u.Rect.MaxY != 50 {
		t.Errorf("rect = %+v", u.Rect)
	}
}

func TestEndResult(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{X: 1, Y: 1}, "a", false); err != nil {
		t.Fatal(err)
	}
	a.Move(PointerEvent{X: 5, Y: 5})
	res, err := a.End(PointerEvent{X: 5, Y: 5, Shift: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Kind != KindDrag || res.NodeID != "a" || !res.Modified || !res.Moved {
		t.Errorf("End() = %+v", res)
	}
}

func TestClickWithoutMovement(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{X: 1, Y: 1}, "a", false); err != nil {
		t.Fatal(err)
	}
	res, err := a.End(PointerEvent{X: 1, Y: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Moved {
		t.Error("stationary press/release reported as moved")
	}
}

func TestMoveWhileIdleIgnored(t *testing.T) {
	a := NewArbiter()
	if u := a.Move(PointerEvent{X: 9, Y: 9}); u.Kind != KindNone {
		t.Errorf("idle Move() = %+v", u)
	}
}

func TestEndWhileIdleRejected(t *testing.T) {
	a := NewArbiter()
	if _, err := a.End(PointerEvent{}); !errors.Is(err, ErrGestureBusy) {
		t.Errorf("idle End error = %v, want ErrGestureBusy", err)
	}
}

func TestCancelReleasesOwnership(t *testing.T) {
	a := NewArbiter()
	if _, err := a.Begin(PointerEvent{}, "a", false); err != nil {
		t.Fatal(err)
	}
	a.Cancel()
	if a.Active() != KindNone {
		t.Error("Cancel left a gesture active")
	}
	if _, err := a.Begin(PointerEvent{}, "b", false); err != nil {
		t.Errorf("Begin after Cancel error = %v", err)
	}
}
