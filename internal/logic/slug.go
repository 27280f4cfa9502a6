package logic

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugSQL renders a name column into its slug inside Postgres so lookups stay
// accent- and case-insensitive without an unaccent extension: strip the common
// Latin diacritics via translate, lowercase, then collapse every non
// alphanumeric run into a hyphen.
const slugSQL = `trim(both '-' from regexp_replace(
	lower(translate(%s,
		'áàâäãåçéèêëíìîïñóòôöõúùûüýÿÁÀÂÄÃÅÇÉÈÊËÍÌÎÏÑÓÒÔÖÕÚÙÛÜÝ',
		'aaaaaaceeeeiiiinooooouuuuyyAAAAAACEEEEIIIINOOOOOUUUUY')),
	'[^a-z0-9]+', '-', 'g'))`

var slugStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Slugify derives the URL identifier for a display name: accents stripped,
// lowercased, non-alphanumeric runs collapsed to single hyphens.
func Slugify(name string) string {
	if stripped, _, err := transform.String(slugStripper, name); err == nil {
		name = stripped
	}
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// teamNameVariants maps alternate slugs to the canonical stored name. The
// ingestion normalizer rewrites fbref's short names before loading, but URLs
// built from the raw short names still circulate.
var teamNameVariants = map[string]string{
	"newcastle-utd":   "Newcastle United",
	"nott-ham-forest": "Nottingham Forest",
	"tottenham":       "Tottenham Hotspur",
	"west-ham":        "West Ham United",
	"manchester-utd":  "Manchester United",
}

// CanonicalTeamName resolves a slug through the variant map, returning the
// stored display name and whether a variant matched.
func CanonicalTeamName(slug string) (string, bool) {
	name, ok := teamNameVariants[slug]
	return name, ok
}
