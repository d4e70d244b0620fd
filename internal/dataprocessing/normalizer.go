package dataprocessing

import (
	"regexp"
	"strings"
)

// Canonical key suffixes for the three metric kinds.
const (
	AreaSuffix       = "_area_1000ha"
	ProductionSuffix = "_production_1000tons"
	YieldSuffix      = "_yield_kg_per_ha"
)

// unitMarkers maps raw unit indicators to canonical suffix tokens. Matching
// is case-insensitive and MUST run before punctuation stripping, otherwise
// the parentheses that anchor the markers are gone.
var unitMarkers = []struct {
	pattern *regexp.Regexp
	suffix  string
}{
	{regexp.MustCompile(`(?i)\(1000 ha\)`), AreaSuffix},
	{regexp.MustCompile(`(?i)\(1000 tons\)`), ProductionSuffix},
	{regexp.MustCompile(`(?i)\(kg per ha\)`), YieldSuffix},
}

var (
	punctuationRe = regexp.MustCompile(`[()\.]`)
	separatorRe   = regexp.MustCompile(`[\s_]+`)
	hyphenRunRe   = regexp.MustCompile(`_-_`)
)

// NormalizeHeader maps a raw header string to its canonical snake_case key.
// "Rice Production (1000 tons)" becomes "rice_production_production_1000tons":
// the header's own metric word is kept and the unit suffix appended. The
// function is idempotent on already-canonical keys.
func NormalizeHeader(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, m := range unitMarkers {
		key = m.pattern.ReplaceAllString(key, m.suffix)
	}
	key = punctuationRe.ReplaceAllString(key, "")
	key = separatorRe.ReplaceAllString(key, "_")
	key = hyphenRunRe.ReplaceAllString(key, "_")
	return key
}

// Collision records two distinct raw headers that normalized to the same
// canonical key. The first header keeps the key; the duplicate column is
// dropped rather than silently overwriting the first.
type Collision struct {
	Key       string
	First     string
	Duplicate string
}

// NormalizeColumns normalizes every raw header and detects collisions.
// Returned keys are positional: a key of "" marks a column dropped because an
// earlier header already claimed its canonical key.
func NormalizeColumns(raw []string) ([]string, []Collision) {
	keys := make([]string, len(raw))
	firstByKey := make(map[string]string, len(raw))
	var collisions []Collision

	for i, header := range raw {
		key := NormalizeHeader(header)
		if first, taken := firstByKey[key]; taken {
			collisions = append(collisions, Collision{Key: key, First: first, Duplicate: header})
			keys[i] = ""
			continue
		}
		firstByKey[key] = header
		keys[i] = key
	}
	return keys, collisions
}

// IsAreaColumn reports whether the canonical key is an area metric.
func IsAreaColumn(key string) bool { return strings.Contains(key, AreaSuffix) }

// IsProductionColumn reports whether the canonical key is a production metric.
func IsProductionColumn(key string) bool { return strings.Contains(key, ProductionSuffix) }

// IsYieldColumn reports whether the canonical key is a yield metric.
func IsYieldColumn(key string) bool { return strings.Contains(key, YieldSuffix) }

var tokenRe = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeToken strips everything that is not a lowercase letter or digit.
func normalizeToken(s string) string {
	return tokenRe.ReplaceAllString(strings.ToLower(s), "")
}

// FindColumn returns the first column, in column order, whose normalized
// form contains every token as a substring. Both sides are normalized by
// deleting all non-alphanumeric characters, so "RiceProd" tokens match
// "rice production (1000 tons)". The match is intentionally permissive:
// short tokens can match unintended columns, and callers accept that risk.
func FindColumn(columns []string, tokens ...string) (string, bool) {
	norm := make([]string, len(tokens))
	for i, tok := range tokens {
		norm[i] = normalizeToken(tok)
	}

	for _, col := range columns {
		candidate := normalizeToken(col)
		all := true
		for _, tok := range norm {
			if !strings.Contains(candidate, tok) {
				all = false
				break
			}
		}
		if all {
			return col, true
		}
	}
	return "", false
}
