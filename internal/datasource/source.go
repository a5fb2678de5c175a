// Package datasource reads node/link record streams from the supported
// input formats. It detects the format, reads loosely-typed records, and
// hands them to the normalizer; nothing here interprets field meanings.
package datasource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceType identifies the input format.
type SourceType string

const (
	// SourceTypeJSON is a single JSON document with nodes/links arrays.
	SourceTypeJSON SourceType = "json"
	// SourceTypeJSONL is line-delimited JSON, one record per line.
	SourceTypeJSONL SourceType = "jsonl"
	// SourceTypeCSV is a node CSV with an optional sibling link CSV.
	SourceTypeCSV SourceType = "csv"
	// SourceTypeYAML is a single YAML document with nodes/links arrays.
	SourceTypeYAML SourceType = "yaml"
	// SourceTypeSQLite is a SQLite database with nodes/links tables.
	SourceTypeSQLite SourceType = "sqlite"
)

// ErrUnknownFormat is returned when a path matches no supported format.
var ErrUnknownFormat = errors.New("unrecognized input format")

// Source describes a detected input.
type Source struct {
	Type SourceType `json:"type"`
	// Path is the primary input file.
	Path string `json:"path"`
	// LinksPath is the sibling link file for formats that split the two
	// streams (CSV); empty otherwise.
	LinksPath string `json:"links_path,omitempty"`
	// ModTime is the last modification time, used by the watcher.
	ModTime time.Time `json:"mod_time"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// String returns a human-readable description of the source.
func (s Source) String() string {
	if s.LinksPath != "" {
		return fmt.Sprintf("%s (%s, links=%s)", s.Path, s.Type, s.LinksPath)
	}
	return fmt.Sprintf("%s (%s)", s.Path, s.Type)
}

// Detect inspects a path and classifies its format by extension. For CSV
// inputs it also locates the sibling link file: <name>_links.csv next to
// the node file, or links.csv in the same directory.
func Detect(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, fmt.Errorf("stat input: %w", err)
	}

	src := Source{Path: path, ModTime: info.ModTime(), Size: info.Size()}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		src.Type = SourceTypeJSON
	case ".jsonl", ".ndjson":
		src.Type = SourceTypeJSONL
	case ".csv":
		src.Type = SourceTypeCSV
		src.LinksPath = findLinkCSV(path)
	case ".yaml", ".yml":
		src.Type = SourceTypeYAML
	case ".db", ".sqlite", ".sqlite3":
		src.Type = SourceTypeSQLite
	default:
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return src, nil
}

// findLinkCSV returns the link CSV belonging to a node CSV, or "".
func findLinkCSV(nodePath string) string {
	base := strings.TrimSuffix(nodePath, filepath.Ext(nodePath))
	candidates := []string{
		base + "_links.csv",
		filepath.Join(filepath.Dir(nodePath), "links.csv"),
	}
	for _, c := range candidates {
		if c == nodePath {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
