package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fbsts/stats-api/internal/metrics"
)

// Aggregator builds and runs the dynamic SUM/AVG queries over the discovered
// numeric columns of a stat table. Table names are checked against the fixed
// allow-list and column identifiers only ever come out of introspection, so
// nothing user-controlled is interpolated unvalidated.
type Aggregator struct {
	pg     PgPool
	schema *Introspector
}

func NewAggregator(pg PgPool) *Aggregator {
	return &Aggregator{pg: pg, schema: NewIntrospector(pg)}
}

// Schema exposes the shared introspector.
func (a *Aggregator) Schema() *Introspector {
	return a.schema
}

// EntityTotals holds one aggregated line: the grouped entity, the number of
// underlying match rows and the per-column totals. Columns whose aggregate
// came back NULL (an all-NULL percentage column) are omitted from Totals.
type EntityTotals struct {
	Entity  string
	Matches float64
	Minutes float64
	Totals  map[string]float64
}

// aggExpr renders the aggregate for a single introspected column. Percentage
// columns are averaged, everything else is summed; both invariants come from
// the data model, not the caller.
func aggExpr(col string) string {
	ident := pgx.Identifier{col}.Sanitize()
	if IsPercentLike(col) {
		return fmt.Sprintf("AVG(%s)::double precision", ident)
	}
	return fmt.Sprintf("SUM(COALESCE(%s, 0))::double precision", ident)
}

// minutesExpr returns the aggregate for the table's minutes column, or "" when
// the table has none. Player tables carry fbref's "min"; the normalized
// player_match_stats table carries "minutes".
func minutesExpr(cols map[string]string) string {
	for _, name := range []string{"min", "minutes"} {
		if typ, ok := cols[name]; ok && numericTypes[typ] {
			return fmt.Sprintf("SUM(COALESCE(%s, 0))::double precision", pgx.Identifier{name}.Sanitize())
		}
	}
	return ""
}

// Totals aggregates every numeric column of table for a single entity
// (entityCol = "player" or "team"). A nil result with nil error means no data:
// the table is absent, has no numeric columns, or has no rows for the entity
// even after the fallback retry.
func (a *Aggregator) Totals(ctx context.Context, table, entityCol, entity string, f MatchFilter) (*EntityTotals, error) {
	if !TableAllowed(table) {
		return nil, fmt.Errorf("%w: unknown table %q", ErrBadRequest, table)
	}
	cols, err := a.schema.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := cols[entityCol]; !ok {
		return nil, nil
	}
	numeric := NumericStatColumns(cols)
	if len(numeric) == 0 {
		return nil, nil
	}

	run := func(f MatchFilter) (*EntityTotals, error) {
		pred, args := f.BuildPredicate(cols, 1)
		args = append([]any{entity}, args...)

		selects := []string{"COUNT(*)::double precision"}
		if m := minutesExpr(cols); m != "" {
			selects = append(selects, m)
		} else {
			selects = append(selects, "0::double precision")
		}
		for _, col := range numeric {
			selects = append(selects, aggExpr(col))
		}

		sql := fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s = $1 AND %s",
			strings.Join(selects, ", "),
			pgx.Identifier{table}.Sanitize(),
			pgx.Identifier{entityCol}.Sanitize(),
			pred,
		)

		out := &EntityTotals{Entity: entity, Totals: make(map[string]float64, len(numeric))}
		vals := make([]*float64, len(numeric))
		dest := []any{&out.Matches, &out.Minutes}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := a.pg.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
			return nil, fmt.Errorf("totals query on %s: %w", table, err)
		}
		for i, col := range numeric {
			if vals[i] != nil {
				out.Totals[col] = *vals[i]
			}
		}
		return out, nil
	}

	out, err := run(f)
	if err != nil {
		return nil, err
	}
	if out.Matches == 0 && f.hasCompetitionFilter(cols) && f.Filterable(cols) {
		// Competition labels are inconsistent in parts of the source data;
		// retry on season alone before reporting no rows.
		metrics.FilterFallbacks.Inc()
		if out, err = run(f.WithoutCompetition()); err != nil {
			return nil, err
		}
	}
	if out.Matches == 0 {
		return nil, nil
	}
	return out, nil
}

// GroupedTotals aggregates every numeric column of table grouped by entityCol,
// with the same no-data and fallback semantics as Totals.
func (a *Aggregator) GroupedTotals(ctx context.Context, table, entityCol string, f MatchFilter) ([]EntityTotals, error) {
	if !TableAllowed(table) {
		return nil, fmt.Errorf("%w: unknown table %q", ErrBadRequest, table)
	}
	cols, err := a.schema.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := cols[entityCol]; !ok {
		return nil, nil
	}
	numeric := NumericStatColumns(cols)
	if len(numeric) == 0 {
		return nil, nil
	}

	entIdent := pgx.Identifier{entityCol}.Sanitize()
	run := func(f MatchFilter) ([]EntityTotals, error) {
		pred, args := f.BuildPredicate(cols, 0)

		selects := []string{entIdent, "COUNT(*)::double precision"}
		if m := minutesExpr(cols); m != "" {
			selects = append(selects, m)
		} else {
			selects = append(selects, "0::double precision")
		}
		for _, col := range numeric {
			selects = append(selects, aggExpr(col))
		}

		sql := fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s IS NOT NULL AND %s GROUP BY %s ORDER BY %s",
			strings.Join(selects, ", "),
			pgx.Identifier{table}.Sanitize(),
			entIdent, pred, entIdent, entIdent,
		)

		rows, err := a.pg.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("grouped totals query on %s: %w", table, err)
		}
		defer rows.Close()

		var out []EntityTotals
		for rows.Next() {
			line := EntityTotals{Totals: make(map[string]float64, len(numeric))}
			vals := make([]*float64, len(numeric))
			dest := []any{&line.Entity, &line.Matches, &line.Minutes}
			for i := range vals {
				dest = append(dest, &vals[i])
			}
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("scan grouped totals on %s: %w", table, err)
			}
			for i, col := range numeric {
				if vals[i] != nil {
					line.Totals[col] = *vals[i]
				}
			}
			out = append(out, line)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("grouped totals iteration on %s: %w", table, err)
		}
		return out, nil
	}

	out, err := run(f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && f.hasCompetitionFilter(cols) && f.Filterable(cols) {
		metrics.FilterFallbacks.Inc()
		if out, err = run(f.WithoutCompetition()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TopByColumn returns the highest aggregated values of one column grouped by
// entityCol, together with each entity's match and minute counts so the
// caller can rescale. The column must be one of the table's introspected
// numeric columns.
func (a *Aggregator) TopByColumn(ctx context.Context, table, entityCol, column string, f MatchFilter, limit int) ([]EntityTotals, error) {
	if !TableAllowed(table) {
		return nil, fmt.Errorf("%w: unknown table %q", ErrBadRequest, table)
	}
	cols, err := a.schema.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if _, ok := cols[entityCol]; !ok {
		return nil, nil
	}
	valid := false
	for _, col := range NumericStatColumns(cols) {
		if col == column {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown column %q for table %q", ErrBadRequest, column, table)
	}
	if limit <= 0 {
		limit = 10
	}

	entIdent := pgx.Identifier{entityCol}.Sanitize()
	run := func(f MatchFilter) ([]EntityTotals, error) {
		pred, args := f.BuildPredicate(cols, 0)

		minutes := minutesExpr(cols)
		if minutes == "" {
			minutes = "0::double precision"
		}
		sql := fmt.Sprintf(
			`SELECT %s, COUNT(*)::double precision, %s, %s AS value
			FROM %s
			WHERE %s IS NOT NULL AND %s
			GROUP BY %s
			ORDER BY value DESC NULLS LAST
			LIMIT %d`,
			entIdent, minutes, aggExpr(column),
			pgx.Identifier{table}.Sanitize(),
			entIdent, pred, entIdent, limit,
		)

		rows, err := a.pg.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("leaderboard query on %s: %w", table, err)
		}
		defer rows.Close()

		var out []EntityTotals
		for rows.Next() {
			line := EntityTotals{Totals: make(map[string]float64, 1)}
			var val *float64
			if err := rows.Scan(&line.Entity, &line.Matches, &line.Minutes, &val); err != nil {
				return nil, fmt.Errorf("scan leaderboard row on %s: %w", table, err)
			}
			if val != nil {
				line.Totals[column] = *val
			}
			out = append(out, line)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("leaderboard iteration on %s: %w", table, err)
		}
		return out, nil
	}

	out, err := run(f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 && f.hasCompetitionFilter(cols) && f.Filterable(cols) {
		metrics.FilterFallbacks.Inc()
		if out, err = run(f.WithoutCompetition()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
