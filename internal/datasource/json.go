package datasource

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
)

// jsonDocument is the single-document shape: top-level nodes/links arrays.
// Key casing is tolerated the same way field names are.
type jsonDocument struct {
	Nodes []map[string]any `json:"nodes"`
	Links []map[string]any `json:"links"`
	Edges []map[string]any `json:"edges"` // accepted alias for links
}

// loadJSON reads a single JSON document carrying both streams.
func loadJSON(path string) (normalize.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return normalize.Input{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc jsonDocument
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return normalize.Input{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var in normalize.Input
	for _, obj := range doc.Nodes {
		in.NodeRecords = append(in.NodeRecords, toRecord(obj))
	}
	for _, obj := range doc.Links {
		in.LinkRecords = append(in.LinkRecords, toRecord(obj))
	}
	for _, obj := range doc.Edges {
		in.LinkRecords = append(in.LinkRecords, toRecord(obj))
	}
	return in, nil
}

// loadJSONL reads line-delimited JSON where node and link records share
// one stream. Blank lines are skipped; unparseable lines are dropped
// silently, matching the tolerant-input contract.
func loadJSONL(path string) (normalize.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return normalize.Input{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var in normalize.Input
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var obj map[string]any
		if err := gojson.Unmarshal([]byte(line), &obj); err != nil {
			continue
		}
		rec := toRecord(obj)
		if looksLikeLink(rec) {
			in.LinkRecords = append(in.LinkRecords, rec)
			continue
		}
		in.NodeRecords = append(in.NodeRecords, rec)
	}
	if err := scanner.Err(); err != nil {
		return normalize.Input{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return in, nil
}
