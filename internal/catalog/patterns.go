package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/models"
)

var (
	labelSeparators = regexp.MustCompile(`[/,&]`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// FrequencyFor buckets a pattern by how many problems link to it.
func FrequencyFor(n int) models.Frequency {
	switch {
	case n > 20:
		return models.FrequencyHigh
	case n > 5:
		return models.FrequencyMedium
	default:
		return models.FrequencyLow
	}
}

// SplitPatternLabel splits a compound label such as
// "Two Pointers / Sliding Window" into its trimmed, non-empty parts.
func SplitPatternLabel(label string) []string {
	parts := lo.Map(labelSeparators.Split(label, -1), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	parts = lo.Filter(parts, func(s string, _ int) bool { return s != "" })
	return lo.Uniq(parts)
}

// PatternID slugs a pattern name.
func PatternID(name string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
}

// derivePatterns builds the Problem<->Pattern relation once so aggregation
// never parses labels.
func derivePatterns(problems []models.Problem) ([]models.Pattern, map[string][]string) {
	var order []string
	members := map[string][]string{}
	byProblem := map[string][]string{}

	for _, p := range problems {
		if p.Pattern == nil {
			continue
		}
		for _, name := range SplitPatternLabel(*p.Pattern) {
			if _, seen := members[name]; !seen {
				order = append(order, name)
			}
			members[name] = append(members[name], p.ID)
			byProblem[p.ID] = append(byProblem[p.ID], PatternID(name))
		}
	}

	patterns := lo.Map(order, func(name string, _ int) models.Pattern {
		ids := members[name]
		return models.Pattern{
			ID:        PatternID(name),
			Name:      name,
			Problems:  ids,
			Frequency: FrequencyFor(len(ids)),
		}
	})
	sort.SliceStable(patterns, func(i, j int) bool {
		return len(patterns[i].Problems) > len(patterns[j].Problems)
	})
	return patterns, byProblem
}
