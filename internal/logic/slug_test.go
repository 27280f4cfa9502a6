package logic

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain name", "Arsenal", "arsenal"},
		{"Multi word", "Manchester United", "manchester-united"},
		{"Apostrophe", "Nott'ham Forest", "nott-ham-forest"},
		{"Accents", "Sávio", "savio"},
		{"Mixed accents", "João Pedro", "joao-pedro"},
		{"Leading junk", "  West Ham!", "west-ham"},
		{"Collapsed separators", "AFC -- Bournemouth", "afc-bournemouth"},
		{"Digits kept", "1. FC Köln", "1-fc-koln"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCanonicalTeamName(t *testing.T) {
	tests := []struct {
		slug  string
		want  string
		found bool
	}{
		{"nott-ham-forest", "Nottingham Forest", true},
		{"manchester-utd", "Manchester United", true},
		{"tottenham", "Tottenham Hotspur", true},
		{"arsenal", "", false},
	}

	for _, tt := range tests {
		got, ok := CanonicalTeamName(tt.slug)
		if ok != tt.found || got != tt.want {
			t.Errorf("CanonicalTeamName(%q) = (%q, %v), want (%q, %v)", tt.slug, got, ok, tt.want, tt.found)
		}
	}
}

func TestVariantResolvesToOwnSlug(t *testing.T) {
	// The canonical name's own slug must not shadow a different team.
	for variant, canonical := range teamNameVariants {
		own := Slugify(canonical)
		if own == variant {
			continue
		}
		if _, ok := teamNameVariants[own]; ok {
			t.Errorf("canonical slug %q for %q is itself a variant", own, canonical)
		}
	}
}
