package datasource

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
	"github.com/vanderheijden86/graphcanvas/pkg/testutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func normalized(t *testing.T, in normalize.Input) normalize.Result {
	t.Helper()
	return normalize.Normalize(in)
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		want SourceType
	}{
		{"graph.json", SourceTypeJSON},
		{"graph.jsonl", SourceTypeJSONL},
		{"graph.ndjson", SourceTypeJSONL},
		{"graph.csv", SourceTypeCSV},
		{"graph.yaml", SourceTypeYAML},
		{"graph.yml", SourceTypeYAML},
		{"graph.db", SourceTypeSQLite},
		{"graph.sqlite", SourceTypeSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, "x")
			src, err := Detect(path)
			if err != nil {
				t.Fatal(err)
			}
			if src.Type != tt.want {
				t.Errorf("Detect(%s).Type = %s, want %s", tt.name, src.Type, tt.want)
			}
		})
	}
}

func TestDetectUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "graph.xml", "<graph/>")
	if _, err := Detect(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Detect error = %v, want ErrUnknownFormat", err)
	}
}

func TestDetectMissingFile(t *testing.T) {
	if _, err := Detect(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDetectFindsSiblingLinkCSV(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "graph.csv", "id,category\n")
	links := writeFile(t, dir, "graph_links.csv", "source,target\n")

	src, err := Detect(nodes)
	if err != nil {
		t.Fatal(err)
	}
	if src.LinksPath != links {
		t.Errorf("LinksPath = %q, want %q", src.LinksPath, links)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "graph.json", `{
		"nodes": [
			{"id": "a", "category": "x"},
			{"id": "b", "category": "y", "detail": "note"}
		],
		"links": [{"source": "a", "target": "b"}]
	}`)

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertNodeCount(t, res.Graph, 2)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
	if res.Graph.Node("b").Detail != "note" {
		t.Error("detail field lost")
	}
}

func TestLoadJSONEdgesAlias(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "graph.json", `{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"edges": [{"from": "a", "to": "b"}]
	}`)

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "graph.jsonl", `{"id": "a", "category": "x"}

{"id": "b", "type": "y"}
not json at all
{"source": "a", "target": "b"}
`)

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.NodeRecords) != 2 {
		t.Errorf("node records = %d, want 2", len(in.NodeRecords))
	}
	if len(in.LinkRecords) != 1 {
		t.Errorf("link records = %d, want 1", len(in.LinkRecords))
	}
	res := normalized(t, in)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
	if res.Graph.Node("b").Category != "y" {
		t.Error("type alias not matched for category")
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	nodes := writeFile(t, dir, "graph.csv", "id,category\na,x\nb,y\nshort-row\n")
	writeFile(t, dir, "graph_links.csv", "source,target\na,b\n")

	src, err := Detect(nodes)
	if err != nil {
		t.Fatal(err)
	}
	in, err := Load(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if len(in.NodeRecords) != 2 {
		t.Errorf("node records = %d, want 2 (short row dropped)", len(in.NodeRecords))
	}
	res := normalized(t, in)
	testutil.AssertNodeCount(t, res.Graph, 2)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
}

func TestLoadCSVPositionalFallback(t *testing.T) {
	dir := t.TempDir()
	// headers match no candidate keys; first column is the id, second the
	// category, by position
	nodes := writeFile(t, dir, "graph.csv", "label,kind\na,x\nb,y\n")

	src, err := Detect(nodes)
	if err != nil {
		t.Fatal(err)
	}
	in, err := Load(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertNodeExists(t, res.Graph, "a")
	if res.Graph.Node("a").Category != "x" {
		t.Errorf("category = %q, want positional x", res.Graph.Node("a").Category)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "graph.yaml", `
nodes:
  - id: a
    category: x
  - id: b
links:
  - source: a
    target: b
`)

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertNodeCount(t, res.Graph, 2)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
	if res.Graph.Node("b").Category != "default" {
		t.Errorf("missing category = %q, want default", res.Graph.Node("b").Category)
	}
}

func TestLoadSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	stmts := []string{
		`CREATE TABLE nodes (id TEXT, category TEXT)`,
		`CREATE TABLE links (source TEXT, target TEXT)`,
		`INSERT INTO nodes VALUES ('a', 'x'), ('b', 'y')`,
		`INSERT INTO links VALUES ('a', 'b')`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertNodeCount(t, res.Graph, 2)
	testutil.AssertLinkExists(t, res.Graph, "a", "b")
}

func TestLoadSQLiteWithoutLinksTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE nodes (id TEXT, category TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO nodes VALUES ('a', 'x')`); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := LoadPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	res := normalized(t, in)
	testutil.AssertNodeCount(t, res.Graph, 1)
	testutil.AssertLinkCount(t, res.Graph, 0)
}
