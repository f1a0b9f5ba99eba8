// Package clock supplies the notion of "now" and calendar-day arithmetic used
// for streaks, staleness and heatmaps.
package clock

import "time"

// DayLayout is the ISO date format used for study days.
const DayLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// System reads the host clock, converted into Location when set.
type System struct {
	Location *time.Location
}

func (s System) Now() time.Time {
	now := time.Now()
	if s.Location != nil {
		return now.In(s.Location)
	}
	return now
}

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}

// Day formats t as an ISO day in t's own location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses an ISO day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, loc)
}

// DaysBetween counts whole calendar days from a to b (b after a is positive),
// independent of DST-length days.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Monday returns midnight of the Monday starting t's week.
func Monday(t time.Time) time.Time {
	m := Midnight(t)
	offset := (int(m.Weekday()) + 6) % 7
	return m.AddDate(0, 0, -offset)
}
