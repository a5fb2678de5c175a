// Package selection tracks the selected node set. Marquee selection and
// list-driven toggles both mutate the same Set so the canvas and any panel
// reflecting selection never disagree.
package selection

import (
	"sort"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
	"github.com/vanderheijden86/graphcanvas/pkg/view"
)

// Mode controls how a selection gesture combines with the existing set.
type Mode int

const (
	// Replace discards the prior selection.
	Replace Mode = iota
	// Toggle flips membership of the affected ids, keeping the rest.
	// Active while a modifier key (shift/ctrl/meta) is held.
	Toggle
)

// Set is the selected node id set.
type Set struct {
	ids map[string]bool
}

// New returns an empty selection.
func New() *Set {
	return &Set{ids: make(map[string]bool)}
}

// Has reports whether the id is selected.
func (s *Set) Has(id string) bool { return s.ids[id] }

// Len returns the number of selected ids.
func (s *Set) Len() int { return len(s.ids) }

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = make(map[string]bool)
}

// IDs returns the selected ids in sorted order for stable iteration.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ToggleID flips membership of a single id, as a list panel does.
func (s *Set) ToggleID(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// Click applies a single-node click. Replace mode selects exactly that
// node; Toggle mode flips its membership.
func (s *Set) Click(id string, mode Mode) {
	if mode == Replace {
		s.Clear()
		s.ids[id] = true
		return
	}
	s.ToggleID(id)
}

// ApplyMarquee selects the nodes whose world position falls inside the
// screen-space rectangle, converted through the inverse view transform.
// Replace mode makes the rectangle contents the whole selection; Toggle
// mode flips membership of the contained nodes.
func (s *Set) ApplyMarquee(g *model.Graph, screenRect view.Rect, t view.Transform, mode Mode) {
	world := screenRect.ToWorld(t)
	if mode == Replace {
		s.Clear()
	}
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if !world.Contains(n.X, n.Y) {
			continue
		}
		if mode == Toggle {
			s.ToggleID(n.ID)
			continue
		}
		s.ids[n.ID] = true
	}
}

// Prune drops ids that no longer exist in the graph, e.g. after grouping
// or a data reload.
func (s *Set) Prune(g *model.Graph) {
	idx := g.NodeIndex()
	for id := range s.ids {
		if _, ok := idx[id]; !ok {
			delete(s.ids, id)
		}
	}
}
