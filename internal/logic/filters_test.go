package logic

import (
	"reflect"
	"testing"
)

func TestBuildPredicate(t *testing.T) {
	full := map[string]string{"season": "text", "competition": "text", "goals": "bigint"}
	seasonOnly := map[string]string{"season": "text"}
	neither := map[string]string{"goals": "bigint"}

	tests := []struct {
		name      string
		filter    MatchFilter
		cols      map[string]string
		argOffset int
		wantPred  string
		wantArgs  []any
	}{
		{
			name:     "Both columns",
			filter:   MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"},
			cols:     full,
			wantPred: "season = $1 AND competition = $2",
			wantArgs: []any{"2024-2025", "ENG-Premier League"},
		},
		{
			name:      "Offset placeholders",
			filter:    MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"},
			cols:      full,
			argOffset: 2,
			wantPred:  "season = $3 AND competition = $4",
			wantArgs:  []any{"2024-2025", "ENG-Premier League"},
		},
		{
			name:     "Season column only",
			filter:   MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"},
			cols:     seasonOnly,
			wantPred: "season = $1",
			wantArgs: []any{"2024-2025"},
		},
		{
			name:     "Competition value only",
			filter:   MatchFilter{Competition: "ENG-Premier League"},
			cols:     full,
			wantPred: "competition = $1",
			wantArgs: []any{"ENG-Premier League"},
		},
		{
			name:     "No filter columns",
			filter:   MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"},
			cols:     neither,
			wantPred: "TRUE",
		},
		{
			name:     "Empty filter",
			filter:   MatchFilter{},
			cols:     full,
			wantPred: "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, args := tt.filter.BuildPredicate(tt.cols, tt.argOffset)
			if pred != tt.wantPred {
				t.Errorf("predicate = %q, want %q", pred, tt.wantPred)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestFilterable(t *testing.T) {
	f := MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"}

	if !f.Filterable(map[string]string{"season": "text"}) {
		t.Error("season column should make the filter applicable")
	}
	if f.Filterable(map[string]string{"goals": "bigint"}) {
		t.Error("no filter columns should mean not filterable")
	}
	if (MatchFilter{}).Filterable(map[string]string{"season": "text"}) {
		t.Error("empty filter should not be filterable")
	}
}

func TestHasCompetitionFilter(t *testing.T) {
	f := MatchFilter{Season: "2024-2025", Competition: "ENG-Premier League"}
	cols := map[string]string{"season": "text", "competition": "text"}

	if !f.hasCompetitionFilter(cols) {
		t.Error("expected competition filter to apply")
	}
	if f.WithoutCompetition().hasCompetitionFilter(cols) {
		t.Error("WithoutCompetition should drop the competition constraint")
	}
	if f.hasCompetitionFilter(map[string]string{"season": "text"}) {
		t.Error("missing column should disable the competition filter")
	}
}
