// Package analytics derives read-only views of a progress record against the
// catalog. Nothing here mutates state or touches storage; callers pass the
// record, the catalog and, where time matters, the current instant.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/models"
)

const (
	// DefaultHeatmapWeeks is the trailing window shown on the dashboard.
	DefaultHeatmapWeeks = 16
	// DefaultCompanyLimit caps CompanyReadiness when no limit is given.
	DefaultCompanyLimit = 5

	maxCoveragePatterns = 12
	maxSmartActions     = 3
)

// MasteryStatusFor applies the fixed mastery ladder to a percentage.
func MasteryStatusFor(percent int) models.MasteryStatus {
	switch {
	case percent >= 100:
		return models.MasteryComplete
	case percent >= 50:
		return models.MasteryStrong
	case percent > 0:
		return models.MasteryInProgress
	default:
		return models.MasteryNotStarted
	}
}

func HeroStats(rec models.ProgressRecord, cat *catalog.Catalog) models.HeroStats {
	catStats := cat.Stats()
	solvedByDifficulty := models.DifficultyCounts{}
	for _, d := range models.Difficulties {
		solvedByDifficulty[d] = 0
	}

	topicsCovered := 0
	for _, topic := range cat.Topics() {
		tp, ok := rec.Topics[topic.ID]
		if !ok {
			continue
		}
		if tp.CompletedConcepts() > 0 || tp.SolvedProblems() > 0 {
			topicsCovered++
		}
		for _, p := range cat.ProblemsByTopic(topic.ID) {
			if pp, ok := tp.Problems[p.ID]; ok && pp.Status == models.StatusSolved {
				solvedByDifficulty[p.Difficulty]++
			}
		}
	}

	return models.HeroStats{
		Streak:              rec.Stats.CurrentStreak,
		LongestStreak:       rec.Stats.LongestStreak,
		TopicsCovered:       topicsCovered,
		TopicsTotal:         catStats.TopicCount,
		ConceptsDone:        rec.Stats.TotalConceptsCompleted,
		ConceptsTotal:       catStats.ConceptCount,
		ProblemsSolved:      rec.Stats.TotalProblemsSolved,
		ProblemsTotal:       catStats.ProblemCount,
		SolvedByDifficulty:  solvedByDifficulty,
		CatalogByDifficulty: cat.DifficultyDistribution(),
	}
}

// TopicMastery weighs concepts and problems equally, in topic order.
func TopicMastery(rec models.ProgressRecord, cat *catalog.Catalog) []models.TopicMastery {
	return lo.Map(cat.Topics(), func(topic models.Topic, _ int) models.TopicMastery {
		conceptsTotal := len(cat.ConceptsByTopic(topic.ID))
		problemsTotal := len(cat.ProblemsByTopic(topic.ID))
		tp := rec.Topics[topic.ID]
		conceptsDone := tp.CompletedConcepts()
		problemsSolved := tp.SolvedProblems()

		percent := models.Percent(conceptsDone+problemsSolved, conceptsTotal+problemsTotal)
		return models.TopicMastery{
			ID:             topic.ID,
			Title:          topic.Title,
			Order:          topic.Order,
			ConceptsDone:   conceptsDone,
			ConceptsTotal:  conceptsTotal,
			ProblemsSolved: problemsSolved,
			ProblemsTotal:  problemsTotal,
			Percent:        percent,
			Status:         MasteryStatusFor(percent),
		}
	})
}

func countSolved(problemIDs []string, solved map[string]bool) int {
	return lo.CountBy(problemIDs, func(id string) bool { return solved[id] })
}

// PatternCoverage reports the leading high and medium frequency patterns,
// largest first.
func PatternCoverage(rec models.ProgressRecord, cat *catalog.Catalog) []models.PatternCoverage {
	solved := rec.SolvedProblemIDs()

	frequent := lo.Filter(cat.Patterns(), func(p models.Pattern, _ int) bool {
		return p.Frequency == models.FrequencyHigh || p.Frequency == models.FrequencyMedium
	})
	if len(frequent) > maxCoveragePatterns {
		frequent = frequent[:maxCoveragePatterns]
	}

	out := lo.Map(frequent, func(p models.Pattern, _ int) models.PatternCoverage {
		n := countSolved(p.Problems, solved)
		return models.PatternCoverage{
			Name:      p.Name,
			Solved:    n,
			Total:     len(p.Problems),
			Percent:   models.Percent(n, len(p.Problems)),
			Frequency: p.Frequency,
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// Heatmap lays out study days on a Monday-aligned grid covering the trailing
// weeks up to today, padded to the end of the current week.
func Heatmap(rec models.ProgressRecord, now time.Time, weeks int) []models.HeatmapDay {
	if weeks <= 0 {
		weeks = DefaultHeatmapWeeks
	}
	studied := lo.SliceToMap(rec.Stats.StudyDays, func(d string) (string, bool) { return d, true })
	today := clock.Midnight(now)
	todayStr := clock.Day(today)

	start := clock.Monday(today.AddDate(0, 0, -weeks*7+1))
	limit := today.AddDate(0, 0, 7)

	var days []models.HeatmapDay
	for cursor := start; !cursor.After(today) || len(days)%7 != 0; cursor = cursor.AddDate(0, 0, 1) {
		if cursor.After(limit) {
			break
		}
		date := clock.Day(cursor)
		future := cursor.After(today)
		isToday := date == todayStr
		days = append(days, models.HeatmapDay{
			Date:     date,
			Studied:  studied[date],
			IsToday:  isToday,
			IsFuture: future,
			Missed:   !studied[date] && !future && !isToday,
		})
	}
	return days
}

// SolvedProblemTitles returns the lower-cased titles of every solved problem
// the catalog can resolve.
func SolvedProblemTitles(rec models.ProgressRecord, cat *catalog.Catalog) map[string]bool {
	titles := map[string]bool{}
	for _, topic := range cat.Topics() {
		tp, ok := rec.Topics[topic.ID]
		if !ok {
			continue
		}
		for _, p := range cat.ProblemsByTopic(topic.ID) {
			if pp, ok := tp.Problems[p.ID]; ok && pp.Status == models.StatusSolved {
				titles[strings.ToLower(p.Title)] = true
			}
		}
	}
	return titles
}

var tierOrder = map[string]int{"s-tier": 0, "tier-1": 1, "tier-2": 2}

func tierRank(tier string) int {
	if r, ok := tierOrder[tier]; ok {
		return r
	}
	return 9
}

// CompanyReadiness matches solved titles case-insensitively against each
// company's list, ranks by tier then percent, and returns at most limit.
func CompanyReadiness(companies []models.Company, solvedTitles map[string]bool, limit int) []models.CompanyReadiness {
	if limit <= 0 {
		limit = DefaultCompanyLimit
	}
	out := lo.Map(companies, func(c models.Company, _ int) models.CompanyReadiness {
		solved := lo.CountBy(c.Problems, func(p models.CompanyProblem) bool {
			return solvedTitles[strings.ToLower(p.Title)]
		})
		return models.CompanyReadiness{
			ID:      c.ID,
			Name:    c.Name,
			Logo:    c.Logo,
			Tier:    c.Tier,
			Solved:  solved,
			Total:   len(c.Problems),
			Percent: models.Percent(solved, len(c.Problems)),
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := tierRank(out[i].Tier), tierRank(out[j].Tier); ri != rj {
			return ri < rj
		}
		return out[i].Percent > out[j].Percent
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SmartActions suggests up to three next steps, highest priority first.
func SmartActions(rec models.ProgressRecord, cat *catalog.Catalog, now time.Time) []models.SmartAction {
	hero := HeroStats(rec, cat)
	mastery := TopicMastery(rec, cat)

	if hero.ConceptsDone == 0 && hero.ProblemsSolved == 0 {
		start := models.SmartAction{
			Icon:        "🚀",
			Title:       "Start Your Journey",
			Description: "Begin with the first topic to build a solid foundation",
			Href:        "#/topics",
			Priority:    100,
		}
		if len(mastery) > 0 {
			start.Description = fmt.Sprintf("Begin with %s to build a solid foundation", mastery[0].Title)
			start.Href = "#/topics/" + mastery[0].ID
		}
		return []models.SmartAction{
			start,
			{
				Icon:        "📖",
				Title:       "Browse the Roadmap",
				Description: fmt.Sprintf("%d topics from basics to advanced, see the full plan", hero.TopicsTotal),
				Href:        "#/topics",
				Priority:    90,
			},
			{
				Icon:        "🗺️",
				Title:       "Read the Playbook",
				Description: "Study strategies and interview tactics",
				Href:        "#/playbook",
				Priority:    80,
			},
		}
	}

	var actions []models.SmartAction

	if last := rec.Stats.LastStudyDate; last != nil {
		if day, err := clock.ParseDay(*last, now.Location()); err == nil {
			if gap := clock.DaysBetween(day, now); gap >= 3 {
				actions = append(actions, models.SmartAction{
					Icon:        "🔄",
					Title:       "Welcome Back!",
					Description: fmt.Sprintf("It's been %d days, pick up where you left off with a review", gap),
					Href:        "#/progress",
					Priority:    95,
				})
			}
		}
	}

	if weak, ok := lo.Find(mastery, func(t models.TopicMastery) bool {
		return t.Status == models.MasteryInProgress && t.Percent > 0 && t.Percent < 30
	}); ok {
		actions = append(actions, models.SmartAction{
			Icon:        "📚",
			Title:       "Continue: " + weak.Title,
			Description: fmt.Sprintf("%d%% done, keep building this foundation", weak.Percent),
			Href:        "#/topics/" + weak.ID,
			Priority:    85,
		})
	}

	if next, ok := lo.Find(mastery, func(t models.TopicMastery) bool {
		return t.Status == models.MasteryNotStarted
	}); ok {
		actions = append(actions, models.SmartAction{
			Icon:        "🆕",
			Title:       "Start: " + next.Title,
			Description: "Next topic in your learning path, ready when you are",
			Href:        "#/topics/" + next.ID,
			Priority:    70,
		})
	}

	if hero.ProblemsSolved > 5 {
		easyRatio := float64(hero.SolvedByDifficulty[models.DifficultyEasy]) / float64(hero.ProblemsSolved)
		if easyRatio > 0.7 {
			actions = append(actions, models.SmartAction{
				Icon:        "⬆️",
				Title:       "Level Up to Medium",
				Description: fmt.Sprintf("%d%% of your solves are Easy, time to tackle Medium problems", roundPercent(easyRatio)),
				Href:        "#/problems",
				Priority:    80,
			})
		}
	}

	if gap, ok := lo.Find(PatternCoverage(rec, cat), func(p models.PatternCoverage) bool {
		return p.Frequency == models.FrequencyHigh && p.Solved == 0
	}); ok {
		actions = append(actions, models.SmartAction{
			Icon:        "🔷",
			Title:       "Learn: " + gap.Name,
			Description: fmt.Sprintf("High-frequency interview pattern with %d problems you haven't started yet", gap.Total),
			Href:        "#/patterns",
			Priority:    75,
		})
	}

	actions = append(actions, models.SmartAction{
		Icon:        "💻",
		Title:       "Practice Problems",
		Description: fmt.Sprintf("%d/%d solved, keep the momentum going", hero.ProblemsSolved, hero.ProblemsTotal),
		Href:        "#/problems",
		Priority:    50,
	})

	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Priority > actions[j].Priority })
	if len(actions) > maxSmartActions {
		actions = actions[:maxSmartActions]
	}
	return actions
}
