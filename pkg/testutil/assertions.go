// Package testutil provides shared assertions, fixture generators, and
// golden file helpers for tests across the module.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/graphcanvas/pkg/model"
)

// AssertNodeCount verifies the expected number of nodes.
func AssertNodeCount(t *testing.T, g *model.Graph, expected int) {
	t.Helper()
	if len(g.Nodes) != expected {
		t.Errorf("expected %d nodes, got %d", expected, len(g.Nodes))
	}
}

// AssertLinkCount verifies the expected number of links.
func AssertLinkCount(t *testing.T, g *model.Graph, expected int) {
	t.Helper()
	if len(g.Links) != expected {
		t.Errorf("expected %d links, got %d", expected, len(g.Links))
	}
}

// AssertNoDuplicateIDs verifies all node IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, g *model.Graph) {
	t.Helper()
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		if seen[n.ID] {
			t.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
}

// AssertValid verifies the graph passes validation.
func AssertValid(t *testing.T, g *model.Graph) {
	t.Helper()
	if err := g.Validate(); err != nil {
		t.Errorf("graph invalid: %v", err)
	}
}

// AssertNodeExists verifies a node with the given id is present.
func AssertNodeExists(t *testing.T, g *model.Graph, id string) {
	t.Helper()
	if g.Node(id) == nil {
		t.Errorf("expected node %s not found", id)
	}
}

// AssertNodeAbsent verifies no node with the given id is present.
func AssertNodeAbsent(t *testing.T, g *model.Graph, id string) {
	t.Helper()
	if g.Node(id) != nil {
		t.Errorf("node %s should not be present", id)
	}
}

// AssertLinkExists verifies that a specific link exists.
func AssertLinkExists(t *testing.T, g *model.Graph, source, target string) {
	t.Helper()
	for _, l := range g.Links {
		if l.Source == source && l.Target == target {
			return
		}
	}
	t.Errorf("expected link %s -> %s not found", source, target)
}

// AssertLinkAbsent verifies that a specific link does not exist.
func AssertLinkAbsent(t *testing.T, g *model.Graph, source, target string) {
	t.Helper()
	for _, l := range g.Links {
		if l.Source == source && l.Target == target {
			t.Errorf("link %s -> %s should not be present", source, target)
			return
		}
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
// Useful for comparing structs that may have different Go representations
// but equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")

		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s",
					i+1, expLine, actLine)
				return
			}
		}
		g.t.Errorf("golden file mismatch (length differs)")
	}
}

// AssertJSON compares actual value as JSON against the golden file.
func (g *GoldenFile) AssertJSON(actual interface{}) {
	g.t.Helper()

	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		g.t.Fatalf("failed to marshal actual value: %v", err)
	}

	g.Assert(string(data))
}
