package logic

import (
	"context"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// MockPgPool implements PgPool for testing
type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockRow{}
}

// MockRows implements pgx.Rows for testing
type MockRows struct {
	pgx.Rows
	Data  [][]any
	Index int
}

func (m *MockRows) Next() bool {
	m.Index++
	return m.Index <= len(m.Data)
}

func (m *MockRows) Scan(dest ...any) error {
	if m.Index > len(m.Data) {
		return pgx.ErrNoRows
	}
	row := m.Data[m.Index-1]
	for i, val := range row {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

func (m *MockRows) Close() {}

func (m *MockRows) Err() error { return nil }

// MockRow implements pgx.Row for testing
type MockRow struct {
	Data    []any
	ScanErr error
}

func (m *MockRow) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	for i, val := range m.Data {
		if i < len(dest) {
			setDest(dest[i], val)
		}
	}
	return nil
}

// setDest assigns val through a scan destination pointer, allocating through
// pointer targets (e.g. a *float64 slot) and leaving nils as nil.
func setDest(dest any, val any) {
	v := reflect.ValueOf(dest).Elem()
	if val == nil {
		v.Set(reflect.Zero(v.Type()))
		return
	}
	valV := reflect.ValueOf(val)
	if v.Kind() == reflect.Ptr && valV.Type().ConvertibleTo(v.Type().Elem()) {
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(valV.Convert(v.Type().Elem()))
		v.Set(p)
		return
	}
	if valV.Type().ConvertibleTo(v.Type()) {
		v.Set(valV.Convert(v.Type()))
	} else {
		v.Set(valV)
	}
}

// columnRows renders an information_schema column listing for MockRows.
func columnRows(cols map[string]string) [][]any {
	data := make([][]any, 0, len(cols))
	for name, typ := range cols {
		data = append(data, []any{name, typ})
	}
	return data
}
