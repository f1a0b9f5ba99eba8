package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/models"
)

const (
	// DefaultWeeklyWeeks is the number of week buckets WeeklyActivity returns.
	DefaultWeeklyWeeks = 8

	staleAfterDays     = 14
	stallingAfterDays  = 7
	stallingBelow      = 30
	calibrationMinimum = 5
	unknownAttemptDays = 999
	weekLabelLayout    = "Jan 2"
)

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// daysSince counts whole elapsed days between t and now.
func daysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// WeeklyActivity buckets solves, concept completions and study days into the
// trailing Monday-based weeks, oldest first.
func WeeklyActivity(rec models.ProgressRecord, now time.Time, weeks int) []models.WeeklyActivity {
	if weeks <= 0 {
		weeks = DefaultWeeklyWeeks
	}
	loc := now.Location()

	solvedOn := map[string]int{}
	learnedOn := map[string]int{}
	for _, tp := range rec.Topics {
		for _, pp := range tp.Problems {
			if pp.Status == models.StatusSolved && pp.SolvedAt != nil {
				solvedOn[clock.Day(pp.SolvedAt.In(loc))]++
			}
		}
		for _, cp := range tp.Concepts {
			if cp.Completed && cp.CompletedAt != nil {
				learnedOn[clock.Day(cp.CompletedAt.In(loc))]++
			}
		}
	}
	studied := lo.SliceToMap(rec.Stats.StudyDays, func(d string) (string, bool) { return d, true })

	thisWeek := clock.Monday(now)
	out := make([]models.WeeklyActivity, 0, weeks)
	for w := weeks - 1; w >= 0; w-- {
		monday := thisWeek.AddDate(0, 0, -7*w)
		bucket := models.WeeklyActivity{
			WeekLabel: monday.Format(weekLabelLayout),
			WeekStart: clock.Day(monday),
		}
		for d := 0; d < 7; d++ {
			day := clock.Day(monday.AddDate(0, 0, d))
			bucket.ProblemsSolved += solvedOn[day]
			bucket.ConceptsLearned += learnedOn[day]
			if studied[day] {
				bucket.DaysActive++
			}
		}
		out = append(out, bucket)
	}
	return out
}

// PatternGaps lists every populated pattern, most frequent first and then by
// how many problems remain unsolved.
func PatternGaps(rec models.ProgressRecord, cat *catalog.Catalog) []models.PatternGap {
	solved := rec.SolvedProblemIDs()

	gaps := lo.FilterMap(cat.Patterns(), func(p models.Pattern, _ int) (models.PatternGap, bool) {
		total := len(p.Problems)
		n := countSolved(p.Problems, solved)
		return models.PatternGap{
			Name:      p.Name,
			Frequency: p.Frequency,
			Total:     total,
			Solved:    n,
			Gap:       total - n,
			Percent:   models.Percent(n, total),
		}, total > 0
	})
	sort.SliceStable(gaps, func(i, j int) bool {
		if ri, rj := gaps[i].Frequency.Rank(), gaps[j].Frequency.Rank(); ri != rj {
			return ri < rj
		}
		return gaps[i].Gap > gaps[j].Gap
	})
	return gaps
}

// ReviewQueue collects problems worth another look: explicitly flagged ones,
// solves at least two weeks old, and unfinished attempts. Entries the catalog
// cannot resolve are skipped.
func ReviewQueue(rec models.ProgressRecord, cat *catalog.Catalog, now time.Time) []models.ReviewItem {
	var items []models.ReviewItem

	for _, topic := range cat.Topics() {
		tp, ok := rec.Topics[topic.ID]
		if !ok {
			continue
		}
		ids := lo.Keys(tp.Problems)
		sort.Strings(ids)

		for _, pid := range ids {
			pp := tp.Problems[pid]
			problem, ok := cat.Problem(pid)
			if !ok {
				continue
			}

			var reason models.ReviewReason
			days := 0
			switch {
			case pp.Status == models.StatusRevisit:
				reason = models.ReviewRevisit
				if pp.SolvedAt != nil {
					days = daysSince(*pp.SolvedAt, now)
				}
			case pp.Status == models.StatusSolved && pp.SolvedAt != nil:
				days = daysSince(*pp.SolvedAt, now)
				if days >= staleAfterDays {
					reason = models.ReviewStale
				}
			case pp.Status == models.StatusAttempted:
				reason = models.ReviewAttempted
				days = unknownAttemptDays
				if pp.SolvedAt != nil {
					days = daysSince(*pp.SolvedAt, now)
				}
			}
			if reason == "" {
				continue
			}

			items = append(items, models.ReviewItem{
				ProblemID:  pid,
				Title:      problem.Title,
				URL:        problem.URL,
				Pattern:    problem.PatternLabel(),
				Difficulty: problem.Difficulty,
				Reason:     reason,
				DaysSince:  days,
				TopicID:    topic.ID,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if ri, rj := items[i].Reason.Rank(), items[j].Reason.Rank(); ri != rj {
			return ri < rj
		}
		return items[i].DaysSince > items[j].DaysSince
	})
	return items
}

// DifficultyCalibration tallies self-rated difficulty and suggests a
// direction once there are enough ratings.
func DifficultyCalibration(rec models.ProgressRecord) models.DifficultyCalibration {
	var c models.DifficultyCalibration
	for _, tp := range rec.Topics {
		for _, pp := range tp.Problems {
			if pp.DifficultyFeedback == nil {
				continue
			}
			switch *pp.DifficultyFeedback {
			case models.FeedbackTooEasy:
				c.TooEasy++
			case models.FeedbackJustRight:
				c.JustRight++
			case models.FeedbackTooHard:
				c.TooHard++
			}
		}
	}
	c.Total = c.TooEasy + c.JustRight + c.TooHard

	switch {
	case c.Total < calibrationMinimum:
		c.Suggestion = models.SuggestNoData
	case float64(c.TooEasy)/float64(c.Total) > 0.5:
		c.Suggestion = models.SuggestLevelUp
	case float64(c.TooHard)/float64(c.Total) > 0.5:
		c.Suggestion = models.SuggestEaseUp
	default:
		c.Suggestion = models.SuggestOnTrack
	}
	return c
}

func roundedAvg(total, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

// SolveTimeStats averages recorded minutes overall and per catalog difficulty.
func SolveTimeStats(rec models.ProgressRecord, cat *catalog.Catalog) models.SolveTimeStats {
	type acc struct{ total, count int }
	byDifficulty := map[models.Difficulty]*acc{}
	for _, d := range models.Difficulties {
		byDifficulty[d] = &acc{}
	}

	var total, count int
	for _, tp := range rec.Topics {
		for pid, pp := range tp.Problems {
			if pp.TimeSpent == nil || *pp.TimeSpent <= 0 {
				continue
			}
			total += *pp.TimeSpent
			count++
			if p, ok := cat.Problem(pid); ok {
				if a, ok := byDifficulty[p.Difficulty]; ok {
					a.total += *pp.TimeSpent
					a.count++
				}
			}
		}
	}

	stats := models.SolveTimeStats{
		AvgMinutes:   roundedAvg(total, count),
		TotalMinutes: total,
		Count:        count,
		ByDifficulty: map[models.Difficulty]models.DifficultyTime{},
	}
	for d, a := range byDifficulty {
		stats.ByDifficulty[d] = models.DifficultyTime{Avg: roundedAvg(a.total, a.count), Count: a.count}
	}
	return stats
}

// TopicDeepDive breaks each topic down by concept and problem state and flags
// topics that were started but have gone quiet.
func TopicDeepDive(rec models.ProgressRecord, cat *catalog.Catalog, now time.Time) []models.TopicDeepDive {
	return lo.Map(cat.Topics(), func(topic models.Topic, _ int) models.TopicDeepDive {
		conceptsTotal := len(cat.ConceptsByTopic(topic.ID))
		problemsTotal := len(cat.ProblemsByTopic(topic.ID))
		tp := rec.Topics[topic.ID]

		var pb models.ProblemBreakdown
		var latest *time.Time
		touch := func(t *time.Time) {
			if t != nil && (latest == nil || t.After(*latest)) {
				latest = t
			}
		}

		conceptsDone := 0
		if tp != nil {
			for _, pp := range tp.Problems {
				switch pp.Status {
				case models.StatusSolved:
					pb.Solved++
					touch(pp.SolvedAt)
				case models.StatusRevisit:
					pb.Revisit++
				case models.StatusAttempted:
					pb.Attempted++
				default:
					pb.NotStarted++
				}
			}
			for _, cp := range tp.Concepts {
				if cp.Completed {
					conceptsDone++
				}
				touch(cp.CompletedAt)
			}
		}

		tracked := pb.Solved + pb.Attempted + pb.Revisit + pb.NotStarted
		pb.NotStarted += max(0, problemsTotal-tracked)
		pb.Total = problemsTotal
		pb.Percent = models.Percent(pb.Solved, problemsTotal)

		overall := models.Percent(conceptsDone+pb.Solved, conceptsTotal+problemsTotal)
		quiet := latest == nil || daysSince(*latest, now) >= stallingAfterDays

		return models.TopicDeepDive{
			ID:    topic.ID,
			Title: topic.Title,
			Order: topic.Order,
			Concepts: models.ConceptBreakdown{
				Total:   conceptsTotal,
				Done:    conceptsDone,
				Percent: models.Percent(conceptsDone, conceptsTotal),
			},
			Problems:       pb,
			OverallPercent: overall,
			Status:         MasteryStatusFor(overall),
			IsStalling:     overall > 0 && overall < stallingBelow && quiet,
		}
	})
}

func milestone(id, icon, title, desc string, current, target int, partial bool) models.Milestone {
	m := models.Milestone{
		ID:          id,
		Icon:        icon,
		Title:       title,
		Description: desc,
		Achieved:    current >= target,
		Current:     min(current, target),
		Target:      target,
	}
	if partial {
		p := models.Percent(current, target)
		m.Progress = &p
	}
	return m
}

// Milestones evaluates the fixed achievement list against the record.
func Milestones(rec models.ProgressRecord, cat *catalog.Catalog) []models.Milestone {
	stats := rec.Stats
	solved := stats.TotalProblemsSolved
	concepts := stats.TotalConceptsCompleted
	streakBest := max(stats.CurrentStreak, stats.LongestStreak)

	completedTopics := 0
	for _, topic := range cat.Topics() {
		tp, ok := rec.Topics[topic.ID]
		if !ok {
			continue
		}
		nc := len(cat.ConceptsByTopic(topic.ID))
		np := len(cat.ProblemsByTopic(topic.ID))
		if nc+np > 0 && tp.CompletedConcepts() == nc && tp.SolvedProblems() == np {
			completedTopics++
		}
	}

	solvedIDs := rec.SolvedProblemIDs()
	mastered := lo.CountBy(cat.Patterns(), func(p models.Pattern) bool {
		return len(p.Problems) > 0 && lo.EveryBy(p.Problems, func(id string) bool { return solvedIDs[id] })
	})

	seen := map[models.Difficulty]bool{}
	for id := range solvedIDs {
		if p, ok := cat.Problem(id); ok {
			seen[p.Difficulty] = true
		}
	}
	balance := lo.CountBy(models.Difficulties, func(d models.Difficulty) bool { return seen[d] })

	topicComplete := milestone("topic-complete", "✅", "Topic Master", "Complete an entire topic", completedTopics, 1, false)
	topicComplete.Current = completedTopics
	patternPro := milestone("pattern-mastered", "🎯", "Pattern Pro", "Master all problems in a pattern", mastered, 1, false)
	patternPro.Current = mastered

	return []models.Milestone{
		milestone("first-problem", "🎉", "First Blood", "Solved your first problem", solved, 1, false),
		milestone("10-problems", "🔟", "Getting Started", "Solve 10 problems", solved, 10, true),
		milestone("50-problems", "🏅", "Problem Crusher", "Solve 50 problems", solved, 50, true),
		milestone("100-problems", "💯", "Centurion", "Solve 100 problems", solved, 100, true),
		milestone("first-concept", "📖", "Curious Mind", "Learn your first concept", concepts, 1, false),
		milestone("50-concepts", "📚", "Knowledge Seeker", "Learn 50 concepts", concepts, 50, true),
		milestone("7-streak", "🔥", "Week Warrior", "Achieve a 7-day streak", streakBest, 7, true),
		milestone("30-streak", "⚡", "Unstoppable", "Achieve a 30-day streak", streakBest, 30, true),
		topicComplete,
		patternPro,
		milestone("balanced", "⚖️", "Balanced Diet", "Solve Easy, Medium, and Hard problems", balance, 3, true),
		milestone("study-days-30", "📅", "Consistent", "Study on 30 different days", len(stats.StudyDays), 30, true),
	}
}
