package logic

import (
	"context"
	"fmt"
	"sort"
)

// numericTypes are the Postgres declared types we treat as aggregatable.
var numericTypes = map[string]bool{
	"smallint":         true,
	"integer":          true,
	"bigint":           true,
	"numeric":          true,
	"real":             true,
	"double precision": true,
}

// Introspector answers schema questions at request time. Installations differ
// in which stat tables exist and which columns they carry, so absence of a
// table or column is ordinary data here, never an error.
type Introspector struct {
	pg PgPool
}

func NewIntrospector(pg PgPool) *Introspector {
	return &Introspector{pg: pg}
}

// TableExists reports whether the table is present in the public schema.
func (in *Introspector) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := in.pg.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("table existence check for %s: %w", table, err)
	}
	return exists, nil
}

// Columns returns column name -> declared type for the table. An empty map
// means the table does not exist.
func (in *Introspector) Columns(ctx context.Context, table string) (map[string]string, error) {
	rows, err := in.pg.Query(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
	`, table)
	if err != nil {
		return nil, fmt.Errorf("column introspection for %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scan column for %s: %w", table, err)
		}
		cols[name] = typ
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("column iteration for %s: %w", table, err)
	}
	return cols, nil
}

// NumericColumns returns the sorted subset of the table's columns with a
// numeric declared type, identity columns excluded.
func (in *Introspector) NumericColumns(ctx context.Context, table string) ([]string, error) {
	cols, err := in.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	return NumericStatColumns(cols), nil
}

// NumericStatColumns filters an introspected column map down to the sorted
// numeric stat columns. Split out of NumericColumns so callers holding a
// column map already don't introspect twice.
func NumericStatColumns(cols map[string]string) []string {
	var numeric []string
	for name, typ := range cols {
		if identityColumns[name] || !numericTypes[typ] {
			continue
		}
		numeric = append(numeric, name)
	}
	sort.Strings(numeric)
	return numeric
}
