package logic

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how raw totals are presented.
type Mode string

const (
	ModeTotal   Mode = "total"
	ModePerGame Mode = "per-game"
	ModePer90   Mode = "per-90"
)

// ParseMode validates a mode query param, defaulting to total.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeTotal):
		return ModeTotal, nil
	case string(ModePerGame):
		return ModePerGame, nil
	case string(ModePer90):
		return ModePer90, nil
	}
	return "", fmt.Errorf("%w: unsupported mode %q", ErrBadRequest, s)
}

// percentNames are columns that are rates by definition even though their
// names don't carry a pct marker.
var percentNames = map[string]bool{
	"poss":             true,
	"performance_save": true,
	"save":             true,
}

// IsPercentLike reports whether a column holds a percentage or rate. The
// ingestion dedups duplicate headers with a _2 suffix, which in the fbref
// exports is always the share/percentage variant of the preceding count.
func IsPercentLike(col string) bool {
	lower := strings.ToLower(col)
	if strings.HasSuffix(lower, "_pct") || strings.HasSuffix(lower, "_2") {
		return true
	}
	if strings.Contains(lower, "percent") {
		return true
	}
	return percentNames[lower]
}

// Scale rescales raw totals into the requested mode. Pure: the input map is
// not modified.
//
//   - total: identity.
//   - per-game: value / perGame when perGame is positive and finite.
//   - per-90: value / base * 90 where base is per90 when positive, otherwise
//     perGame*90; unchanged when no base is available.
//
// Keys in exclude (match counts, minutes) and percentage-like keys pass
// through unchanged in every mode: percentages are already averaged at
// aggregation time and must never be re-divided by games or minutes.
func Scale(totals map[string]float64, mode Mode, perGame, per90 float64, exclude map[string]bool) map[string]float64 {
	if totals == nil {
		return nil
	}
	out := make(map[string]float64, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	if mode == ModeTotal {
		return out
	}

	var divisor float64
	switch mode {
	case ModePerGame:
		divisor = perGame
	case ModePer90:
		if positiveFinite(per90) {
			divisor = per90
		} else if positiveFinite(perGame) {
			divisor = perGame * 90
		}
	}
	if !positiveFinite(divisor) {
		return out
	}

	for k, v := range out {
		if exclude[k] || IsPercentLike(k) {
			continue
		}
		scaled := v / divisor
		if mode == ModePer90 {
			scaled *= 90
		}
		out[k] = scaled
	}
	return out
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// DefaultExclusions are totals keys that count games or time and therefore
// make no sense rescaled by themselves.
func DefaultExclusions() map[string]bool {
	return map[string]bool{
		"matches":     true,
		"appearances": true,
		"minutes":     true,
		"min":         true,
		"games":       true,
	}
}
