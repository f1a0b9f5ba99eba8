package models

import "math"

// Percent is round(100*done/total), 0 when total is 0, clamped to [0,100].
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// MasteryStatus classifies a completion percentage.
type MasteryStatus string

const (
	MasteryNotStarted MasteryStatus = "not-started"
	MasteryInProgress MasteryStatus = "in-progress"
	MasteryStrong     MasteryStatus = "strong"
	MasteryComplete   MasteryStatus = "complete"
)

func (m MasteryStatus) Valid() bool {
	switch m {
	case MasteryNotStarted, MasteryInProgress, MasteryStrong, MasteryComplete:
		return true
	}
	return false
}

// DifficultyCounts is keyed by catalog difficulty.
type DifficultyCounts map[Difficulty]int

type HeroStats struct {
	Streak              int              `json:"streak"`
	LongestStreak       int              `json:"longestStreak"`
	TopicsCovered       int              `json:"topicsCovered"`
	TopicsTotal         int              `json:"topicsTotal"`
	ConceptsDone        int              `json:"conceptsDone"`
	ConceptsTotal       int              `json:"conceptsTotal"`
	ProblemsSolved      int              `json:"problemsSolved"`
	ProblemsTotal       int              `json:"problemsTotal"`
	SolvedByDifficulty  DifficultyCounts `json:"solvedByDifficulty"`
	CatalogByDifficulty DifficultyCounts `json:"catalogByDifficulty"`
}

type TopicMastery struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Order          int           `json:"order"`
	ConceptsDone   int           `json:"conceptsDone"`
	ConceptsTotal  int           `json:"conceptsTotal"`
	ProblemsSolved int           `json:"problemsSolved"`
	ProblemsTotal  int           `json:"problemsTotal"`
	Percent        int           `json:"percent"`
	Status         MasteryStatus `json:"status"`
}

type PatternCoverage struct {
	Name      string    `json:"name"`
	Solved    int       `json:"solved"`
	Total     int       `json:"total"`
	Percent   int       `json:"percent"`
	Frequency Frequency `json:"frequency"`
}

type PatternGap struct {
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	Total     int       `json:"total"`
	Solved    int       `json:"solved"`
	Gap       int       `json:"gap"`
	Percent   int       `json:"percent"`
}

type ReviewReason string

const (
	ReviewRevisit   ReviewReason = "revisit"
	ReviewStale     ReviewReason = "stale"
	ReviewAttempted ReviewReason = "attempted"
)

// Rank orders reasons revisit first.
func (r ReviewReason) Rank() int {
	switch r {
	case ReviewRevisit:
		return 0
	case ReviewStale:
		return 1
	default:
		return 2
	}
}

type ReviewItem struct {
	ProblemID  string       `json:"problemId"`
	Title      string       `json:"title"`
	URL        string       `json:"url"`
	Pattern    string       `json:"pattern"`
	Difficulty Difficulty   `json:"difficulty"`
	Reason     ReviewReason `json:"reason"`
	DaysSince  int          `json:"daysSince"`
	TopicID    string       `json:"topicId"`
}

type CalibrationSuggestion string

const (
	SuggestLevelUp CalibrationSuggestion = "level-up"
	SuggestOnTrack CalibrationSuggestion = "on-track"
	SuggestEaseUp  CalibrationSuggestion = "ease-up"
	SuggestNoData  CalibrationSuggestion = "no-data"
)

type DifficultyCalibration struct {
	TooEasy    int                   `json:"tooEasy"`
	JustRight  int                   `json:"justRight"`
	TooHard    int                   `json:"tooHard"`
	Total      int                   `json:"total"`
	Suggestion CalibrationSuggestion `json:"suggestion"`
}

type DifficultyTime struct {
	Avg   int `json:"avg"`
	Count int `json:"count"`
}

type SolveTimeStats struct {
	AvgMinutes   int                           `json:"avgMinutes"`
	TotalMinutes int                           `json:"totalMinutes"`
	Count        int                           `json:"count"`
	ByDifficulty map[Difficulty]DifficultyTime `json:"byDifficulty"`
}

type ConceptBreakdown struct {
	Total   int `json:"total"`
	Done    int `json:"done"`
	Percent int `json:"percent"`
}

type ProblemBreakdown struct {
	Total      int `json:"total"`
	Solved     int `json:"solved"`
	Attempted  int `json:"attempted"`
	Revisit    int `json:"revisit"`
	NotStarted int `json:"notStarted"`
	Percent    int `json:"percent"`
}

type TopicDeepDive struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Order          int              `json:"order"`
	Concepts       ConceptBreakdown `json:"concepts"`
	Problems       ProblemBreakdown `json:"problems"`
	OverallPercent int              `json:"overallPercent"`
	Status         MasteryStatus    `json:"status"`
	IsStalling     bool             `json:"isStalling"`
}

type Milestone struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
	Progress    *int   `json:"progress,omitempty"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
}

type HeatmapDay struct {
	Date     string `json:"date"`
	Studied  bool   `json:"studied"`
	IsToday  bool   `json:"isToday"`
	IsFuture bool   `json:"isFuture"`
	Missed   bool   `json:"missed"`
}

type WeeklyActivity struct {
	WeekLabel       string `json:"weekLabel"`
	WeekStart       string `json:"weekStart"`
	ProblemsSolved  int    `json:"problemsSolved"`
	ConceptsLearned int    `json:"conceptsLearned"`
	DaysActive      int    `json:"daysActive"`
}

type SmartAction struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Priority    int    `json:"priority"`
}

type CompanyReadiness struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Tier    string `json:"tier"`
	Solved  int    `json:"solved"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
}
