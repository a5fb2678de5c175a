package ui

import (
	"strings"
	"testing"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/selection"
	"github.com/vanderheijden86/graphcanvas/pkg/view"
)

func canvasGraph() *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			{ID: "a", Category: "x", X: 10, Y: 10, Radius: 3},
			{ID: "b", Category: "y", X: 40, Y: 20, Radius: 3},
		},
		Links: []model.Link{{Source: "a", Target: "b"}},
	}
}

func TestNodeAt(t *testing.T) {
	g := canvasGraph()
	id := view.Identity()

	tests := []struct {
		name   string
		sx, sy float64
		want   string
	}{
		{"direct hit", 10, 10, "a"},
		{"within radius", 12, 11, "a"},
		{"second node", 40, 20, "b"},
		{"empty canvas", 25, 50, ""},
		{"just outside", 10, 15, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeAt(g, id, tt.sx, tt.sy); got != tt.want {
				t.Errorf("NodeAt(%v,%v) = %q, want %q", tt.sx, tt.sy, got, tt.want)
			}
		})
	}
}

func TestNodeAtPrefersNearest(t *testing.T) {
	g := &model.Graph{
		Nodes: []model.Node{
			{ID: "far", X: 4, Y: 0, Radius: 5},
			{ID: "near", X: 1, Y: 0, Radius: 5},
		},
	}
	if got := NodeAt(g, view.Identity(), 0, 0); got != "near" {
		t.Errorf("NodeAt = %q, want near", got)
	}
}

func TestNodeAtMinimumHitRadius(t *testing.T) {
	g := &model.Graph{Nodes: []model.Node{{ID: "tiny", X: 100, Y: 100, Radius: 4}}}
	// scale 0.1 shrinks the node's screen radius to 0.4; the hit slack
	// keeps it clickable
	tr := view.Transform{Scale: 0.1}
	sx, sy := tr.ToScreen(100, 100)
	if got := NodeAt(g, tr, sx+1, sy); got != "tiny" {
		t.Errorf("NodeAt = %q, want tiny", got)
	}
}

func TestRenderShowsNodesAndLabels(t *testing.T) {
	c := NewCanvas(60, 20, TestTheme())
	out := c.Render(canvasGraph(), view.Identity(), selection.New(), nil, nil, 0, 0)

	if !strings.Contains(out, string(glyphNode)) {
		t.Error("render missing node glyph")
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Error("render missing node labels")
	}
	if got := strings.Count(out, "\n"); got != 19 {
		t.Errorf("render has %d newlines, want 19", got)
	}
}

func TestRenderSelectedGlyph(t *testing.T) {
	sel := selection.New()
	sel.ToggleID("a")
	c := NewCanvas(60, 20, TestTheme())
	out := c.Render(canvasGraph(), view.Identity(), sel, nil, nil, 0, 0)

	if !strings.Contains(out, string(glyphSelected)) {
		t.Error("selected node not rendered with selection glyph")
	}
}

func TestRenderGroupGlyph(t *testing.T) {
	g := canvasGraph()
	g.Nodes = append(g.Nodes, model.Node{
		ID: "group-1", X: 25, Y: 30, Radius: 5, Group: true, Members: []string{"c", "d"},
	})
	c := NewCanvas(60, 25, TestTheme())
	out := c.Render(g, view.Identity(), selection.New(), nil, nil, 0, 0)

	if !strings.Contains(out, string(glyphGroup)) {
		t.Error("group node not rendered with group glyph")
	}
}

func TestRenderMarquee(t *testing.T) {
	c := NewCanvas(60, 20, TestTheme())
	r := view.NewRect(5, 4, 30, 20)
	out := c.Render(canvasGraph(), view.Identity(), selection.New(), &r, nil, 0, 0)

	for _, corner := range []string{"┌", "┐", "└", "┘"} {
		if !strings.Contains(out, corner) {
			t.Errorf("marquee corner %s missing", corner)
		}
	}
}

func TestRenderOverlay(t *testing.T) {
	c := NewCanvas(60, 20, TestTheme())
	overlay := []string{"╭────╮", "│ hi │", "╰────╯"}
	out := c.Render(canvasGraph(), view.Identity(), selection.New(), nil, overlay, 2, 2)

	if !strings.Contains(out, "hi") {
		t.Error("overlay text missing from render")
	}
}

func TestRenderOffscreenNodesClipped(t *testing.T) {
	g := &model.Graph{Nodes: []model.Node{{ID: "way-out", X: 5000, Y: 5000, Radius: 3}}}
	c := NewCanvas(40, 10, TestTheme())
	out := c.Render(g, view.Identity(), selection.New(), nil, nil, 0, 0)

	if strings.Contains(out, "way-out") {
		t.Error("offscreen node leaked into the frame")
	}
}

func TestCellToScreenRoundTrip(t *testing.T) {
	sx, sy := CellToScreen(10, 5)
	cx, cy := screenToCell(sx, sy)
	if cx != 10 || cy != 5 {
		t.Errorf("round trip = (%d,%d), want (10,5)", cx, cy)
	}
}

func TestGraphBounds(t *testing.T) {
	g := canvasGraph()
	b := GraphBounds(g)
	if b.MinX != 7 || b.MinY != 7 || b.MaxX != 43 || b.MaxY != 23 {
		t.Errorf("bounds = %+v, want radius-padded node extent", b)
	}
	if !(GraphBounds(nil) == view.Rect{}) {
		t.Error("nil graph bounds should be zero")
	}
}
