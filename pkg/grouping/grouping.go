// Package grouping collapses selected nodes into synthetic aggregate nodes
// and expands them back. Every operation is atomic over the graph: the new
// node and link slices are built completely before being swapped in, so no
// render pass ever observes a half-migrated state.
package grouping

import (
	"errors"
	"fmt"
	"math"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// Operation errors. These are reported as transient notifications; the
// graph is left untouched when any of them is returned.
var (
	ErrTooFewMembers = errors.New("grouping requires at least 2 nodes")
	ErrUnknownMember = errors.New("selection references a node not in the graph")
	ErrNotAGroup     = errors.New("node is not a group")
	ErrUnknownGroup  = errors.New("group not found")
)

// UngroupRadius is the distance from the group centroid at which restored
// members are placed.
const UngroupRadius = 40.0

// Engine performs group/ungroup operations. It stashes the member nodes
// removed by each CreateGroup so Ungroup can restore their categories and
// details; positions are not restored, members radiate from the centroid.
type Engine struct {
	stash map[string][]model.Node
	seq   int
}

// NewEngine returns an empty grouping engine.
func NewEngine() *Engine {
	return &Engine{stash: make(map[string][]model.Node)}
}

// CreateGroup collapses the given member ids into one group node placed at
// the members' centroid. Links between two members are dropped (implicit in
// membership); links with exactly one member endpoint are rewritten onto the
// group id and deduplicated; unrelated links are untouched. Returns the new
// group's id.
func (e *Engine) CreateGroup(g *model.Graph, memberIDs []string) (string, error) {
	members := dedupe(memberIDs)
	if len(members) < 2 {
		return "", ErrTooFewMembers
	}
	idx := g.NodeIndex()
	inGroup := make(map[string]bool, len(members))
	for _, id := range members {
		if _, ok := idx[id]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
		inGroup[id] = true
	}

	groupID := e.nextID(idx)
	group := model.Node{
		ID:       groupID,
		Category: majorityCategory(g, inGroup),
		Group:    true,
		Members:  members,
		Radius:   groupRadius(len(members)),
	}
	group.X, group.Y = centroid(g, inGroup)

	nodes := make([]model.Node, 0, len(g.Nodes)-len(members)+1)
	removed := make([]model.Node, 0, len(members))
	for i := range g.Nodes {
		if inGroup[g.Nodes[i].ID] {
			removed = append(removed, g.Nodes[i])
			continue
		}
		nodes = append(nodes, g.Nodes[i])
	}
	nodes = append(nodes, group)

	// rewritten links collapse: several members linked to the same outside
	// node must yield one group edge, not a stack of parallel springs
	links := make([]model.Link, 0, len(g.Links))
	seenRewrite := make(map[model.Link]bool)
	for _, l := range g.Links {
		srcIn, tgtIn := inGroup[l.Source], inGroup[l.Target]
		switch {
		case srcIn && tgtIn:
			// internal, represented by membership
		case srcIn, tgtIn:
			rw := model.Link{Source: groupID, Target: l.Target}
			if tgtIn {
				rw = model.Link{Source: l.Source, Target: groupID}
			}
			if seenRewrite[rw] {
				continue
			}
			seenRewrite[rw] = true
			links = append(links, rw)
		default:
			links = append(links, l)
		}
	}

	e.stash[groupID] = removed
	g.Nodes = nodes
	g.Links = links
	return groupID, nil
}

// Ungroup dissolves the group and restores its members, evenly spaced on a
// circle around the group's last position and pinned there so the layout
// does not explode on re-simulation. Links pointing at the group id are
// rewritten onto the first member; all pairwise links among members are
// reconstructed (the internal topology discarded at group time is not
// recoverable). Returns the restored member ids.
func (e *Engine) Ungroup(g *model.Graph, groupID string) ([]string, error) {
	group := g.Node(groupID)
	if group == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
	}
	if !group.Group {
		return nil, fmt.Errorf("%w: %s", ErrNotAGroup, groupID)
	}

	members := e.restoredMembers(group)
	cx, cy := group.X, group.Y
	n := float64(len(members))
	for i := range members {
		angle := 2 * math.Pi * float64(i) / n
		members[i].Pin(cx+UngroupRadius*math.Cos(angle), cy+UngroupRadius*math.Sin(angle))
	}

	nodes := make([]model.Node, 0, len(g.Nodes)-1+len(members))
	for i := range g.Nodes {
		if g.Nodes[i].ID == groupID {
			continue
		}
		nodes = append(nodes, g.Nodes[i])
	}
	nodes = append(nodes, members...)

	first := members[0].ID
	links := make([]model.Link, 0, len(g.Links))
	for _, l := range g.Links {
		if l.Source == groupID {
			l.Source = first
		}
		if l.Target == groupID {
			l.Target = first
		}
		links = append(links, l)
	}
	for i := range members {
		for j := i + 1; j < len(members); j++ {
			links = append(links, model.Link{Source: members[i].ID, Target: members[j].ID})
		}
	}

	ids := make([]string, len(members))
	for i := range members {
		ids[i] = members[i].ID
	}
	delete(e.stash, groupID)
	g.Nodes = nodes
	g.Links = links
	return ids, nil
}

// restoredMembers returns the member nodes to reinsert: the stashed
// originals when this engine created the group, otherwise fresh nodes
// synthesized from the membership list (groups loaded from data).
func (e *Engine) restoredMembers(group *model.Node) []model.Node {
	if stashed, ok := e.stash[group.ID]; ok && len(stashed) > 0 {
		out := make([]model.Node, len(stashed))
		copy(out, stashed)
		return out
	}
	out := make([]model.Node, 0, len(group.Members))
	for _, id := range group.Members {
		out = append(out, model.Node{ID: id, Category: group.Category})
	}
	return out
}

// nextID returns a group id that does not collide with any existing node.
func (e *Engine) nextID(idx map[string]*model.Node) string {
	for {
		e.seq++
		id := fmt.Sprintf("group-%d", e.seq)
		if _, taken := idx[id]; !taken {
			return id
		}
	}
}

// majorityCategory picks the most frequent category among members, ties
// broken by first-encountered order over the graph's node slice.
func majorityCategory(g *model.Graph, inGroup map[string]bool) string {
	counts := make(map[string]int)
	var order []string
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if !inGroup[n.ID] {
			continue
		}
		if counts[n.Category] == 0 {
			order = append(order, n.Category)
		}
		counts[n.Category]++
	}
	best := model.DefaultCategory
	bestCount := -1
	for _, c := range order {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

func centroid(g *model.Graph, inGroup map[string]bool) (float64, float64) {
	var sx, sy float64
	var n float64
	for i := range g.Nodes {
		if !inGroup[g.Nodes[i].ID] {
			continue
		}
		sx += g.Nodes[i].X
		sy += g.Nodes[i].Y
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sx / n, sy / n
}

// groupRadius scales the aggregate node's radius gently with member count.
func groupRadius(members int) float64 {
	return 12 + 2*math.Sqrt(float64(members))
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
