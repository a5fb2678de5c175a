package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/testutil"
)

func twoNodes(x1, y1, x2, y2 float64) *model.Graph {
	return &model.Graph{
		Nodes: []model.Node{
			{ID: "a", Category: "default", X: x1, Y: y1},
			{ID: "b", Category: "default", X: x2, Y: y2},
		},
	}
}

func dist(a, b *model.Node) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		graph   *model.Graph
		wantErr error
	}{
		{"nil graph", nil, ErrNilGraph},
		{"empty graph", &model.Graph{}, ErrEmptyGraph},
		{
			"dangling link",
			&model.Graph{
				Nodes: []model.Node{{ID: "a"}},
				Links: []model.Link{{Source: "a", Target: "ghost"}},
			},
			ErrBrokenLink,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.graph, DefaultOptions(100, 100))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSpiralSeedingDeterministic(t *testing.T) {
	g1 := testutil.NewDefault().Chain(10)
	g2 := testutil.NewDefault().Chain(10)

	if _, err := New(g1, DefaultOptions(200, 200)); err != nil {
		t.Fatal(err)
	}
	if _, err := New(g2, DefaultOptions(200, 200)); err != nil {
		t.Fatal(err)
	}

	for i := range g1.Nodes {
		if g1.Nodes[i].X != g2.Nodes[i].X || g1.Nodes[i].Y != g2.Nodes[i].Y {
			t.Errorf("node %d seeded differently: (%f,%f) vs (%f,%f)",
				i, g1.Nodes[i].X, g1.Nodes[i].Y, g2.Nodes[i].X, g2.Nodes[i].Y)
		}
	}
}

func TestSpiralSeedingSpreadsNodes(t *testing.T) {
	g := testutil.NewDefault().Clique(8)
	if _, err := New(g, DefaultOptions(200, 200)); err != nil {
		t.Fatal(err)
	}
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			if dist(&g.Nodes[i], &g.Nodes[j]) < 1 {
				t.Errorf("nodes %d and %d seeded on top of each other", i, j)
			}
		}
	}
}

func TestLinkForceContractsLongLink(t *testing.T) {
	g := twoNodes(10, 50, 400, 50)
	g.Links = []model.Link{{Source: "a", Target: "b"}}

	s, err := New(g, DefaultOptions(400, 100))
	if err != nil {
		t.Fatal(err)
	}
	before := dist(&g.Nodes[0], &g.Nodes[1])
	for i := 0; i < 30; i++ {
		s.Step()
	}
	after := dist(&g.Nodes[0], &g.Nodes[1])
	if after >= before {
		t.Errorf("linked nodes did not contract: before=%f after=%f", before, after)
	}
}

func TestChargeForceRepelsUnlinkedNodes(t *testing.T) {
	g := twoNodes(48, 50, 52, 50)

	opts := DefaultOptions(100, 100)
	opts.CenterStrength = 0.0001
	s, err := New(g, opts)
	if err != nil {
		t.Fatal(err)
	}
	before := dist(&g.Nodes[0], &g.Nodes[1])
	for i := 0; i < 30; i++ {
		s.Step()
	}
	after := dist(&g.Nodes[0], &g.Nodes[1])
	if after <= before {
		t.Errorf("unlinked nodes did not repel: before=%f after=%f", before, after)
	}
}

func TestPinnedNodeNeverMoves(t *testing.T) {
	g := testutil.NewDefault().Star(6)
	s, err := New(g, DefaultOptions(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	hub := &g.Nodes[0]
	hub.Pin(100, 100)

	for i := 0; i < 50; i++ {
		s.Step()
	}
	if hub.X != 100 || hub.Y != 100 {
		t.Errorf("pinned node drifted to (%f,%f)", hub.X, hub.Y)
	}
}

func TestConvergence(t *testing.T) {
	g := testutil.NewDefault().Chain(4)
	s, err := New(g, DefaultOptions(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	steps := 0
	for s.Step() {
		steps++
		if steps > 1000 {
			t.Fatal("simulation did not converge within 1000 steps")
		}
	}
	if !s.Converged() {
		t.Error("Step returned false but Converged is false")
	}
	if s.Step() {
		t.Error("Step after convergence should be a no-op")
	}
}

func TestReheatResumesMotion(t *testing.T) {
	g := testutil.NewDefault().Chain(4)
	s, err := New(g, DefaultOptions(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	for s.Step() {
	}
	s.Reheat()
	if s.Converged() {
		t.Fatal("reheated simulation still converged")
	}
	if !s.Step() {
		t.Error("Step after Reheat should advance")
	}
}

func TestStaticModePinsAndHalts(t *testing.T) {
	g := testutil.NewDefault().Chain(5)
	s, err := New(g, DefaultOptions(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	g.Nodes[2].Pin(g.Nodes[2].X, g.Nodes[2].Y)

	s.SetStatic(true)
	if !s.Converged() {
		t.Error("static simulation should report converged")
	}
	if s.Step() {
		t.Error("static simulation should not step")
	}
	for i := range g.Nodes {
		if !g.Nodes[i].Pinned() {
			t.Errorf("node %s not pinned in static mode", g.Nodes[i].ID)
		}
	}

	s.SetStatic(false)
	for i := range g.Nodes {
		pinned := g.Nodes[i].Pinned()
		if i == 2 && !pinned {
			t.Error("pre-existing pin released by static toggle")
		}
		if i != 2 && pinned {
			t.Errorf("node %s still pinned after static toggle off", g.Nodes[i].ID)
		}
	}
	if s.Converged() {
		t.Error("leaving static mode should reheat")
	}
}

func TestStaticToggleIdempotent(t *testing.T) {
	g := testutil.NewDefault().Chain(3)
	s, err := New(g, DefaultOptions(200, 200))
	if err != nil {
		t.Fatal(err)
	}
	s.SetStatic(true)
	s.SetStatic(true)
	s.SetStatic(false)
	s.SetStatic(false)
	for i := range g.Nodes {
		if g.Nodes[i].Pinned() {
			t.Errorf("node %s pinned after paired toggles", g.Nodes[i].ID)
		}
	}
}

func TestDefaultRadiusApplied(t *testing.T) {
	g := twoNodes(10, 10, 20, 20)
	g.Nodes[1].Radius = 3
	if _, err := New(g, DefaultOptions(100, 100)); err != nil {
		t.Fatal(err)
	}
	if g.Nodes[0].Radius != DefaultNodeRadius {
		t.Errorf("default radius not applied: %f", g.Nodes[0].Radius)
	}
	if g.Nodes[1].Radius != 3 {
		t.Errorf("explicit radius overwritten: %f", g.Nodes[1].Radius)
	}
}

func TestCollideSeparatesOverlap(t *testing.T) {
	g := twoNodes(50, 50, 51, 50)
	opts := DefaultOptions(100, 100)
	opts.Charge = 0.000001
	opts.CenterStrength = 0.000001
	s, err := New(g, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60; i++ {
		s.Step()
	}
	if d := dist(&g.Nodes[0], &g.Nodes[1]); d < DefaultNodeRadius {
		t.Errorf("overlapping nodes not separated, dist=%f", d)
	}
}
