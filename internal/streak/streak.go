// Package streak maintains study-day streaks on ProgressStats.
package streak

import (
	"time"

	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/models"
)

// Record registers a study event at now. Day boundaries follow now's location.
//
// A last study date of yesterday extends the streak, one of today leaves it
// alone, and anything else (including none) restarts it at 1.
func Record(stats *models.ProgressStats, now time.Time) {
	today := clock.Day(now)
	yesterday := clock.Day(clock.Midnight(now).AddDate(0, 0, -1))

	if !containsDay(stats.StudyDays, today) {
		stats.StudyDays = append(stats.StudyDays, today)
	}

	switch {
	case stats.LastStudyDate != nil && *stats.LastStudyDate == yesterday:
		stats.CurrentStreak++
	case stats.LastStudyDate != nil && *stats.LastStudyDate == today:
		// already counted today
	default:
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastStudyDate = &today
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
