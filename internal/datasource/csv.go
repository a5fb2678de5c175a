package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
)

// loadCSV reads the node CSV and, when present, its sibling link CSV. The
// two files are independent, so they are read concurrently. The header row
// supplies both field names and the column order the normalizer uses for
// positional fallback.
func loadCSV(ctx context.Context, nodesPath, linksPath string) (normalize.Input, error) {
	var in normalize.Input

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, columns, err := readCSVFile(nodesPath)
		if err != nil {
			return err
		}
		in.NodeRecords, in.NodeColumns = records, columns
		return nil
	})
	if linksPath != "" {
		g.Go(func() error {
			records, columns, err := readCSVFile(linksPath)
			if err != nil {
				return err
			}
			in.LinkRecords, in.LinkColumns = records, columns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return normalize.Input{}, err
	}
	return in, nil
}

// readCSVFile parses one CSV into records keyed by header name. Rows with
// the wrong field count are dropped, not fatal.
func readCSVFile(path string) ([]normalize.Record, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading %s header: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var records []normalize.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(row) != len(columns) {
			continue
		}
		rec := make(normalize.Record, len(columns))
		for i, v := range row {
			rec[columns[i]] = v
		}
		records = append(records, rec)
	}
	return records, columns, nil
}
