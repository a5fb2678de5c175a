package datasource

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/graphcanvas/pkg/normalize"
)

// SQLiteReader provides read access to a graph SQLite database with
// nodes and links tables.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a SQLite database for reading.
func NewSQLiteReader(path string) (*SQLiteReader, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return &SQLiteReader{db: db, path: path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadNodes returns every row of the nodes table as a record. Column
// names pass through untouched so the normalizer's matchers apply the
// same way they do to file inputs.
func (r *SQLiteReader) ReadNodes(ctx context.Context) ([]normalize.Record, []string, error) {
	return r.readTable(ctx, "nodes")
}

// ReadLinks returns every row of the links table as a record.
func (r *SQLiteReader) ReadLinks(ctx context.Context) ([]normalize.Record, []string, error) {
	return r.readTable(ctx, "links")
}

func (r *SQLiteReader) readTable(ctx context.Context, table string) ([]normalize.Record, []string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s columns: %w", table, err)
	}

	var records []normalize.Record
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scan := make([]any, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			continue
		}
		rec := make(normalize.Record, len(columns))
		for i, col := range columns {
			if values[i].Valid {
				rec[col] = values[i].String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return records, columns, nil
}

// loadSQLite reads both tables concurrently. A database without a links
// table still loads; nodes alone are a valid graph.
func loadSQLite(ctx context.Context, path string) (normalize.Input, error) {
	reader, err := NewSQLiteReader(path)
	if err != nil {
		return normalize.Input{}, err
	}
	defer reader.Close()

	var in normalize.Input
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, columns, err := reader.ReadNodes(gctx)
		if err != nil {
			return err
		}
		in.NodeRecords, in.NodeColumns = records, columns
		return nil
	})
	g.Go(func() error {
		records, columns, err := reader.ReadLinks(gctx)
		if err != nil {
			// missing links table is tolerated
			return nil
		}
		in.LinkRecords, in.LinkColumns = records, columns
		return nil
	})
	if err := g.Wait(); err != nil {
		return normalize.Input{}, err
	}
	return in, nil
}
