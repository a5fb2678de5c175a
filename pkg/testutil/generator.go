package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// GeneratorConfig controls graph fixture generation.
type GeneratorConfig struct {
	Seed       int64    // random seed for determinism (0 = 42)
	IDPrefix   string   // prefix for node IDs (default "n")
	Categories []string // category distribution (nil = all default)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "n",
	}
}

// Generator creates deterministic graph fixtures with various topologies.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "n"
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{model.DefaultCategory}
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

func (g *Generator) node(i int) model.Node {
	return model.Node{
		ID:       fmt.Sprintf("%s%d", g.cfg.IDPrefix, i),
		Category: g.cfg.Categories[i%len(g.cfg.Categories)],
	}
}

// Chain creates a linear chain: n0 -> n1 -> ... -> n{size-1}.
func (g *Generator) Chain(size int) *model.Graph {
	graph := &model.Graph{}
	for i := 0; i < size; i++ {
		graph.Nodes = append(graph.Nodes, g.node(i))
		if i > 0 {
			graph.Links = append(graph.Links, model.Link{
				Source: graph.Nodes[i-1].ID,
				Target: graph.Nodes[i].ID,
			})
		}
	}
	return graph
}

// Star creates a hub with size-1 spokes: n0 -> n1, n0 -> n2, ...
func (g *Generator) Star(size int) *model.Graph {
	graph := &model.Graph{}
	for i := 0; i < size; i++ {
		graph.Nodes = append(graph.Nodes, g.node(i))
		if i > 0 {
			graph.Links = append(graph.Links, model.Link{
				Source: graph.Nodes[0].ID,
				Target: graph.Nodes[i].ID,
			})
		}
	}
	return graph
}

// Clique creates a fully connected graph: every ordered pair i<j linked.
func (g *Generator) Clique(size int) *model.Graph {
	graph := &model.Graph{}
	for i := 0; i < size; i++ {
		graph.Nodes = append(graph.Nodes, g.node(i))
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			graph.Links = append(graph.Links, model.Link{
				Source: graph.Nodes[i].ID,
				Target: graph.Nodes[j].ID,
			})
		}
	}
	return graph
}

// Random creates size nodes with roughly density*size random links.
// Output is deterministic for a given seed.
func (g *Generator) Random(size int, density float64) *model.Graph {
	graph := &model.Graph{}
	for i := 0; i < size; i++ {
		graph.Nodes = append(graph.Nodes, g.node(i))
	}
	wanted := int(float64(size) * density)
	seen := make(map[[2]int]bool)
	for len(graph.Links) < wanted {
		a := g.rng.Intn(size)
		b := g.rng.Intn(size)
		if a == b || seen[[2]int{a, b}] {
			continue
		}
		seen[[2]int{a, b}] = true
		graph.Links = append(graph.Links, model.Link{
			Source: graph.Nodes[a].ID,
			Target: graph.Nodes[b].ID,
		})
	}
	return graph
}
