package store

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/swift-glide/questdb-go/dynval"
	"github.com/swift-glide/questdb-go/result"
)

// Export creates (or replaces) a snapshot table and inserts one row per
// dataset row, all inside a single transaction. Rows whose length disagrees
// with the column count are skipped, matching the projection contract.
// Returns the number of rows written.
func (s *Store) Export(ctx context.Context, table string, columns []result.Column, dataset [][]dynval.Value) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("export to %q: no columns", table)
	}

	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(table)); err != nil {
		return 0, fmt.Errorf("export to %q: %w", table, err)
	}
	if _, err := s.db.ExecContext(ctx, createTableSQL(table, columns)); err != nil {
		return 0, fmt.Errorf("export to %q: %w", table, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("export to %q: %w", table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(table, columns))
	if err != nil {
		return 0, fmt.Errorf("export to %q: %w", table, err)
	}
	defer stmt.Close()

	written := 0
	for _, cells := range dataset {
		if len(cells) != len(columns) {
			continue
		}
		args := make([]any, len(cells))
		for i, cell := range cells {
			arg, err := bindValue(cell)
			if err != nil {
				return 0, fmt.Errorf("export to %q, column %q: %w", table, columns[i].Name, err)
			}
			args[i] = arg
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("export to %q: %w", table, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("export to %q: %w", table, err)
	}
	return written, nil
}

func createTableSQL(table string, columns []result.Column) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col.Name) + " " + affinity(col.Type)
	}
	return "CREATE TABLE " + quoteIdent(table) + " (" + strings.Join(defs, ", ") + ")"
}

func insertSQL(table string, columns []result.Column) string {
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		names[i] = quoteIdent(col.Name)
		marks[i] = "?"
	}
	return "INSERT INTO " + quoteIdent(table) +
		" (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}

// affinity maps a declared column type label to a SQLite type affinity.
// The label is advisory only; values bind by their decoded tag.
func affinity(label string) string {
	switch strings.ToUpper(label) {
	case "BYTE", "SHORT", "INT", "LONG", "BOOLEAN":
		return "INTEGER"
	case "FLOAT", "DOUBLE":
		return "REAL"
	default:
		return "TEXT"
	}
}

// bindValue converts a decoded cell to a driver bind value. Composite cells
// are stored as their JSON text.
func bindValue(v dynval.Value) (any, error) {
	switch val := v.(type) {
	case dynval.Null, dynval.Empty, nil:
		return nil, nil
	case dynval.Bool:
		return bool(val), nil
	case dynval.Int:
		return int64(val), nil
	case dynval.Uint:
		if uint64(val) > math.MaxInt64 {
			// SQLite integers are signed 64-bit; keep the value readable.
			return fmt.Sprintf("%d", uint64(val)), nil
		}
		return int64(val), nil
	case dynval.Double:
		return float64(val), nil
	case dynval.String:
		return string(val), nil
	case dynval.Array, dynval.Object:
		text, err := dynval.Marshal(val)
		if err != nil {
			return nil, err
		}
		return string(text), nil
	default:
		return nil, fmt.Errorf("unknown value type %T", v)
	}
}
