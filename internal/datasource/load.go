package datasource

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
)

// Load reads both record streams from a source, dispatching on its type.
// The returned input is raw; callers run it through normalize.Normalize.
func Load(ctx context.Context, src Source) (normalize.Input, error) {
	switch src.Type {
	case SourceTypeJSON:
		return loadJSON(src.Path)
	case SourceTypeJSONL:
		return loadJSONL(src.Path)
	case SourceTypeCSV:
		return loadCSV(ctx, src.Path, src.LinksPath)
	case SourceTypeYAML:
		return loadYAML(src.Path)
	case SourceTypeSQLite:
		return loadSQLite(ctx, src.Path)
	default:
		return normalize.Input{}, fmt.Errorf("%w: %s", ErrUnknownFormat, src.Type)
	}
}

// LoadPath is the convenience entry: detect then load.
func LoadPath(ctx context.Context, path string) (normalize.Input, error) {
	src, err := Detect(path)
	if err != nil {
		return normalize.Input{}, err
	}
	return Load(ctx, src)
}

// toRecord flattens a decoded object into the normalizer's string-valued
// record shape. Nested values are dropped; the normalizer only matches
// scalar fields.
func toRecord(obj map[string]any) normalize.Record {
	rec := make(normalize.Record, len(obj))
	for k, v := range obj {
		if s, ok := scalarString(v); ok {
			rec[k] = s
		}
	}
	return rec
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// looksLikeLink classifies a mixed-stream record: anything carrying both a
// source-like and a target-like field is a link, everything else a node.
func looksLikeLink(rec normalize.Record) bool {
	src := normalize.LinkSourceMatcher.Resolve(rec, nil)
	tgt := normalize.LinkTargetMatcher.Resolve(rec, nil)
	return src != "" && tgt != ""
}
