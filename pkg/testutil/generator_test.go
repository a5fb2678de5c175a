package testutil

import "testing"

func TestChain(t *testing.T) {
	g := NewDefault().Chain(5)
	AssertNodeCount(t, g, 5)
	AssertLinkCount(t, g, 4)
	AssertLinkExists(t, g, "n0", "n1")
	AssertLinkExists(t, g, "n3", "n4")
	AssertValid(t, g)
}

func TestStar(t *testing.T) {
	g := NewDefault().Star(4)
	AssertNodeCount(t, g, 4)
	AssertLinkCount(t, g, 3)
	AssertLinkExists(t, g, "n0", "n3")
	AssertValid(t, g)
}

func TestClique(t *testing.T) {
	g := NewDefault().Clique(4)
	AssertNodeCount(t, g, 4)
	AssertLinkCount(t, g, 6)
	AssertValid(t, g)
}

func TestRandomDeterministic(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).Random(20, 1.5)
	b := New(GeneratorConfig{Seed: 7}).Random(20, 1.5)
	AssertJSONEqual(t, a.Links, b.Links)
	AssertValid(t, a)
}

func TestCategoriesCycle(t *testing.T) {
	g := New(GeneratorConfig{Categories: []string{"a", "b"}}).Chain(4)
	if g.Nodes[0].Category != "a" || g.Nodes[1].Category != "b" || g.Nodes[2].Category != "a" {
		t.Errorf("categories not distributed round-robin: %+v", g.Nodes)
	}
}
