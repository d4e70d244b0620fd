package dataprocessing

import (
	"log/slog"
	"strings"
)

// MatchStrategy attempts to find a column for the wanted canonical key.
type MatchStrategy func(columns []string, want string) (string, bool)

// ExactMatch matches the wanted key verbatim.
func ExactMatch(columns []string, want string) (string, bool) {
	for _, c := range columns {
		if c == want {
			return c, true
		}
	}
	return "", false
}

// CollapsedMatch compares keys after collapsing repeated metric segments
// ("production_production" -> "production"), so naming variations from
// earlier cleaning runs still resolve.
func CollapsedMatch(columns []string, want string) (string, bool) {
	collapsed := collapseMetricSegments(want)
	for _, c := range columns {
		if collapseMetricSegments(c) == collapsed {
			return c, true
		}
	}
	return "", false
}

// TokenMatch splits the wanted key into underscore tokens and applies the
// permissive substring search of FindColumn.
func TokenMatch(columns []string, want string) (string, bool) {
	tokens := strings.Split(want, "_")
	return FindColumn(columns, tokens...)
}

func collapseMetricSegments(key string) string {
	key = strings.ReplaceAll(key, "production_production", "production")
	key = strings.ReplaceAll(key, "area_area", "area")
	key = strings.ReplaceAll(key, "yield_yield", "yield")
	return key
}

// ColumnResolver resolves wanted canonical keys against an actual column set
// through an ordered list of match strategies. Earlier strategies are
// preferred; every non-exact resolution is logged for auditability.
type ColumnResolver struct {
	Strategies []MatchStrategy

	logger *slog.Logger
}

// NewColumnResolver creates a resolver with the default strategy order:
// exact, collapsed-segment, token substring.
func NewColumnResolver(logger *slog.Logger) *ColumnResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ColumnResolver{
		Strategies: []MatchStrategy{ExactMatch, CollapsedMatch, TokenMatch},
		logger:     logger.With(slog.String("component", "column_resolver")),
	}
}

// Resolve returns the first column any strategy matches, in strategy order.
func (r *ColumnResolver) Resolve(columns []string, want string) (string, bool) {
	for i, strategy := range r.Strategies {
		if found, ok := strategy(columns, want); ok {
			if i > 0 || found != want {
				r.logger.Warn("column resolved by non-exact match",
					slog.String("wanted", want),
					slog.String("resolved", found),
					slog.Int("strategy", i))
			}
			return found, true
		}
	}
	return "", false
}
