package logic

import "fmt"

// MatchFilter carries the requested season/competition pair. Either value may
// be absent from a given table's schema; the predicate only references columns
// the table actually has.
type MatchFilter struct {
	Season      string
	Competition string
}

// WithoutCompetition returns the filter with competition dropped, used by the
// zero-row fallback against inconsistently labeled source data.
func (f MatchFilter) WithoutCompetition() MatchFilter {
	return MatchFilter{Season: f.Season}
}

// BuildPredicate builds a WHERE fragment for the filter against an introspected
// column map. Placeholders start at $argOffset+1. When neither filter column
// exists on the table the predicate is TRUE and no args are added.
func (f MatchFilter) BuildPredicate(cols map[string]string, argOffset int) (string, []any) {
	pred := ""
	var args []any
	n := argOffset

	if _, ok := cols["season"]; ok && f.Season != "" {
		n++
		pred = fmt.Sprintf("season = $%d", n)
		args = append(args, f.Season)
	}
	if _, ok := cols["competition"]; ok && f.Competition != "" {
		n++
		clause := fmt.Sprintf("competition = $%d", n)
		if pred != "" {
			pred += " AND " + clause
		} else {
			pred = clause
		}
		args = append(args, f.Competition)
	}
	if pred == "" {
		return "TRUE", nil
	}
	return pred, args
}

// Filterable reports whether the table can be filtered at all, i.e. whether at
// least one of the filter columns is present and requested. Only then is the
// competition-drop retry meaningful.
func (f MatchFilter) Filterable(cols map[string]string) bool {
	if _, ok := cols["season"]; ok && f.Season != "" {
		return true
	}
	if _, ok := cols["competition"]; ok && f.Competition != "" {
		return true
	}
	return false
}

// hasCompetitionFilter reports whether the predicate would actually constrain
// on competition, i.e. whether dropping it changes the query.
func (f MatchFilter) hasCompetitionFilter(cols map[string]string) bool {
	_, ok := cols["competition"]
	return ok && f.Competition != ""
}
