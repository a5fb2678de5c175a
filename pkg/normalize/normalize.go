// Package normalize turns loosely-typed input records into the canonical
// Node/Link model. Upstream data is untrusted: field names vary in casing
// and wording, values may be missing. Records that cannot be resolved are
// dropped and counted rather than failing the load.
package normalize

import (
	"strings"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// Record is one loosely-typed input row: arbitrary key names, string values.
type Record map[string]string

// FieldMatcher resolves a value out of a record by trying candidate keys in
// priority order (case-insensitive, surrounding space ignored), then an
// optional positional fallback, then a literal default.
type FieldMatcher struct {
	Keys          []string // candidate key names, highest priority first
	FallbackIndex int      // column index used when no key matches; -1 disables
	Default       string   // used when both key and positional lookup fail
}

// Standard matcher tables. Order within Keys is the match priority.
var (
	NodeIDMatcher = FieldMatcher{
		Keys:          []string{"id", "name", "node", "node id"},
		FallbackIndex: 0,
	}
	NodeCategoryMatcher = FieldMatcher{
		Keys:          []string{"category", "type", "node type", "node category"},
		FallbackIndex: 1,
		Default:       model.DefaultCategory,
	}
	LinkSourceMatcher = FieldMatcher{
		Keys:          []string{"source", "from"},
		FallbackIndex: 0,
	}
	LinkTargetMatcher = FieldMatcher{
		Keys:          []string{"target", "to"},
		FallbackIndex: 1,
	}
)

// Resolve looks the matcher's field up in a record. columns is the source
// format's column order, used for positional fallback; pass nil when the
// format has no stable ordering (JSON/YAML objects).
func (m FieldMatcher) Resolve(rec Record, columns []string) string {
	for _, want := range m.Keys {
		for k, v := range rec {
			if strings.EqualFold(strings.TrimSpace(k), want) {
				if s := strings.TrimSpace(v); s != "" {
					return s
				}
			}
		}
	}
	if m.FallbackIndex >= 0 && m.FallbackIndex < len(columns) {
		if s := strings.TrimSpace(rec[columns[m.FallbackIndex]]); s != "" {
			return s
		}
	}
	return m.Default
}

// Input is a pair of record streams plus their column orders (nil for
// unordered formats).
type Input struct {
	NodeRecords []Record
	LinkRecords []Record
	NodeColumns []string
	LinkColumns []string
}

// Result carries the normalized graph plus drop diagnostics. Dropped counts
// are a signal for the caller's status surface, not an error.
type Result struct {
	Graph        *model.Graph
	DroppedNodes int
	DroppedLinks int
}

// Normalize converts node and link record streams into a Graph.
//
// Node records need an id-like field; duplicate ids keep the first
// occurrence. Link records need resolvable source and target ids that exist
// in the node set; anything else is dropped and counted.
func Normalize(in Input) Result {
	res := Result{Graph: &model.Graph{}}

	seen := make(map[string]bool, len(in.NodeRecords))
	for _, rec := range in.NodeRecords {
		id := NodeIDMatcher.Resolve(rec, in.NodeColumns)
		if id == "" || seen[id] {
			res.DroppedNodes++
			continue
		}
		seen[id] = true
		cat := NodeCategoryMatcher.Resolve(rec, in.NodeColumns)
		if cat == "" {
			cat = model.DefaultCategory
		}
		res.Graph.Nodes = append(res.Graph.Nodes, model.Node{
			ID:       id,
			Category: cat,
			Detail:   strings.TrimSpace(rec["detail"]),
		})
	}

	for _, rec := range in.LinkRecords {
		src := LinkSourceMatcher.Resolve(rec, in.LinkColumns)
		tgt := LinkTargetMatcher.Resolve(rec, in.LinkColumns)
		if src == "" || tgt == "" || !seen[src] || !seen[tgt] {
			res.DroppedLinks++
			continue
		}
		res.Graph.Links = append(res.Graph.Links, model.Link{Source: src, Target: tgt})
	}

	return res
}
