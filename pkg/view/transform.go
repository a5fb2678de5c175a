// Package view holds the translate/scale mapping between screen and world
// coordinate spaces. A single Transform value is shared by selection,
// dragging, and pan/zoom so every pointer consumer agrees on where a pixel
// lands in the world.
package view

import "math"

// Zoom limits. Matching limits are enforced wherever the transform is
// mutated so no caller can zoom the canvas into a degenerate scale.
const (
	MinScale = 0.1
	MaxScale = 8.0
)

// Transform maps world coordinates to screen coordinates:
// screen = world*Scale + Translate.
type Transform struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// ToScreen converts a world-space point to screen space.
func (t Transform) ToScreen(wx, wy float64) (float64, float64) {
	return wx*t.Scale + t.TranslateX, wy*t.Scale + t.TranslateY
}

// ToWorld converts a screen-space point to world space via the inverse
// transform. A zero scale is treated as identity to avoid dividing by zero
// on an uninitialized transform.
func (t Transform) ToWorld(sx, sy float64) (float64, float64) {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return (sx - t.TranslateX) / s, (sy - t.TranslateY) / s
}

// Translated returns the transform shifted by a screen-space delta.
func (t Transform) Translated(dx, dy float64) Transform {
	t.TranslateX += dx
	t.TranslateY += dy
	return t
}

// ZoomedAt scales the transform by factor while keeping the world point
// under the given screen position stationary, so zooming is anchored at
// the cursor.
func (t Transform) ZoomedAt(factor, sx, sy float64) Transform {
	if t.Scale == 0 {
		t.Scale = 1
	}
	next := clampScale(t.Scale * factor)
	applied := next / t.Scale
	t.TranslateX = sx - (sx-t.TranslateX)*applied
	t.TranslateY = sy - (sy-t.TranslateY)*applied
	t.Scale = next
	return t
}

// Rect is an axis-aligned rectangle. Min/Max are normalized so Min is the
// top-left corner regardless of construction order.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewRect builds a normalized rectangle from any two corners.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// Contains reports whether the point lies inside the rectangle (inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// ToWorld converts a screen-space rectangle to world space.
func (r Rect) ToWorld(t Transform) Rect {
	x1, y1 := t.ToWorld(r.MinX, r.MinY)
	x2, y2 := t.ToWorld(r.MaxX, r.MaxY)
	return NewRect(x1, y1, x2, y2)
}

// FitToBounds computes a transform that fits the world rectangle into a
// screen viewport of the given size with uniform padding. Degenerate
// bounds (a single node) get a fixed 1:1 scale centered in the viewport.
func FitToBounds(bounds Rect, viewW, viewH, padding float64) Transform {
	w := bounds.Width()
	h := bounds.Height()
	if viewW <= 0 || viewH <= 0 {
		return Identity()
	}
	if w <= 0 && h <= 0 {
		return Transform{
			TranslateX: viewW/2 - bounds.MinX,
			TranslateY: viewH/2 - bounds.MinY,
			Scale:      1,
		}
	}

	availW := viewW - 2*padding
	availH := viewH - 2*padding
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	scale := math.Inf(1)
	if w > 0 {
		scale = availW / w
	}
	if h > 0 {
		scale = math.Min(scale, availH/h)
	}
	scale = clampScale(scale)

	cx := (bounds.MinX + bounds.MaxX) / 2
	cy := (bounds.MinY + bounds.MaxY) / 2
	return Transform{
		TranslateX: viewW/2 - cx*scale,
		TranslateY: viewH/2 - cy*scale,
		Scale:      scale,
	}
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
