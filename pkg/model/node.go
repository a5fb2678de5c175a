// Package model defines the core node/link data model shared by the
// simulation, grouping, selection, and rendering layers.
package model

import (
	"fmt"
	"strings"
)

// DefaultCategory is assigned when a record carries no recognizable
// category field.
const DefaultCategory = "default"

// Node is a single visualized entity. X/Y hold the current world-space
// position; FX/FY, when non-nil, pin the node so the simulation leaves
// it in place.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Category string   `json:"category" yaml:"category"`
	X        float64  `json:"x,omitempty" yaml:"x,omitempty"`
	Y        float64  `json:"y,omitempty" yaml:"y,omitempty"`
	FX       *float64 `json:"fx,omitempty" yaml:"fx,omitempty"`
	FY       *float64 `json:"fy,omitempty" yaml:"fy,omitempty"`
	Radius   float64  `json:"radius,omitempty" yaml:"radius,omitempty"`

	// Group nodes aggregate a member set; Members is empty for plain nodes.
	Group   bool     `json:"group,omitempty" yaml:"group,omitempty"`
	Members []string `json:"members,omitempty" yaml:"members,omitempty"`

	// Detail is optional markdown shown by the detailed tooltip.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Pinned reports whether the node has a position override.
func (n *Node) Pinned() bool {
	return n.FX != nil && n.FY != nil
}

// Pin fixes the node at the given world position.
func (n *Node) Pin(x, y float64) {
	n.X, n.Y = x, y
	n.FX, n.FY = &x, &y
}

// Unpin releases the position override, leaving the current position intact.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// Validate checks the minimal structural requirements for a node.
func (n *Node) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("node has empty id")
	}
	if n.Group && len(n.Members) < 2 {
		return fmt.Errorf("group node %s has %d members, need at least 2", n.ID, len(n.Members))
	}
	return nil
}

// Link is a directed relation between two node ids. Both endpoints must
// reference nodes in the active set; grouping rewrites or drops links so
// no endpoint is ever left dangling.
type Link struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// Validate checks that both endpoints are present.
func (l Link) Validate() error {
	if l.Source == "" || l.Target == "" {
		return fmt.Errorf("link %q -> %q has empty endpoint", l.Source, l.Target)
	}
	return nil
}

// Graph is the active node/link collection. Nodes and Links are created
// once per data load and mutated in place (positions, pins, group
// membership) until the next full reload replaces the whole Graph.
type Graph struct {
	Nodes []Node
	Links []Link
}

// NodeIndex builds an id -> *Node lookup over the current slice. The map
// is invalidated by any append to g.Nodes.
func (g *Graph) NodeIndex() map[string]*Node {
	idx := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		idx[g.Nodes[i].ID] = &g.Nodes[i]
	}
	return idx
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Categories returns the distinct categories in first-encountered order.
func (g *Graph) Categories() []string {
	seen := make(map[string]bool, len(g.Nodes))
	var out []string
	for i := range g.Nodes {
		c := g.Nodes[i].Category
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Validate checks that every link references existing nodes.
func (g *Graph) Validate() error {
	idx := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if err := n.Validate(); err != nil {
			return err
		}
		if idx[n.ID] {
			return fmt.Errorf("duplicate node id %s", n.ID)
		}
		idx[n.ID] = true
	}
	for _, l := range g.Links {
		if err := l.Validate(); err != nil {
			return err
		}
		if !idx[l.Source] {
			return fmt.Errorf("link source %s not in node set", l.Source)
		}
		if !idx[l.Target] {
			return fmt.Errorf("link target %s not in node set", l.Target)
		}
	}
	return nil
}

// Clone returns a deep copy of the graph. Pin pointers are duplicated so
// mutating the clone never aliases the original.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Links: make([]Link, len(g.Links)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Links, g.Links)
	for i := range out.Nodes {
		n := &out.Nodes[i]
		if n.FX != nil {
			fx := *n.FX
			n.FX = &fx
		}
		if n.FY != nil {
			fy := *n.FY
			n.FY = &fy
		}
		if n.Members != nil {
			n.Members = append([]string(nil), n.Members...)
		}
	}
	return out
}
