package models

import "time"

// ProgressVersion is the schema tag stamped on every progress record.
const ProgressVersion = "1.0.0"

type ProblemStatus string

const (
	StatusNotStarted ProblemStatus = "not-started"
	StatusAttempted  ProblemStatus = "attempted"
	StatusSolved     ProblemStatus = "solved"
	StatusRevisit    ProblemStatus = "revisit"
)

func (s ProblemStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusAttempted, StatusSolved, StatusRevisit:
		return true
	}
	return false
}

// DifficultyFeedback is the learner's own rating of a problem.
type DifficultyFeedback string

const (
	FeedbackTooEasy   DifficultyFeedback = "too-easy"
	FeedbackJustRight DifficultyFeedback = "just-right"
	FeedbackTooHard   DifficultyFeedback = "too-hard"
)

func (f DifficultyFeedback) Valid() bool {
	switch f {
	case FeedbackTooEasy, FeedbackJustRight, FeedbackTooHard:
		return true
	}
	return false
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// ProgressRecord is the whole persisted learner state.
type ProgressRecord struct {
	Version     string                    `json:"version"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	Topics      map[string]*TopicProgress `json:"topics"`
	Stats       ProgressStats             `json:"stats"`
	Preferences UserPreferences           `json:"preferences"`
}

type TopicProgress struct {
	TopicID     string                      `json:"topicId"`
	StartedAt   *time.Time                  `json:"startedAt"`
	CompletedAt *time.Time                  `json:"completedAt"`
	Concepts    map[string]*ConceptProgress `json:"concepts"`
	Problems    map[string]*ProblemProgress `json:"problems"`
}

// ConceptProgress invariant: Completed == false implies CompletedAt == nil.
type ConceptProgress struct {
	ConceptID   string     `json:"conceptId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes"`
}

type ProblemProgress struct {
	ProblemID          string              `json:"problemId"`
	Status             ProblemStatus       `json:"status"`
	SolvedAt           *time.Time          `json:"solvedAt"`
	TimeSpent          *int                `json:"timeSpent"`
	Notes              string              `json:"notes"`
	DifficultyFeedback *DifficultyFeedback `json:"difficulty"`
}

type ProgressStats struct {
	TotalConceptsCompleted int      `json:"totalConceptsCompleted"`
	TotalProblemsSolved    int      `json:"totalProblemsSolved"`
	CurrentStreak          int      `json:"currentStreak"`
	LongestStreak          int      `json:"longestStreak"`
	LastStudyDate          *string  `json:"lastStudyDate"`
	StudyDays              []string `json:"studyDays"`
}

type UserPreferences struct {
	Theme                Theme `json:"theme"`
	TargetProblemsPerDay int   `json:"targetProblemsPerDay"`
	TargetMinutesPerDay  int   `json:"targetMinutesPerDay"`
	ShowDifficulty       bool  `json:"showDifficulty"`
	ShowPatterns         bool  `json:"showPatterns"`
}

// DefaultPreferences are applied to every freshly created record.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Theme:                ThemeDark,
		TargetProblemsPerDay: 3,
		TargetMinutesPerDay:  60,
		ShowDifficulty:       true,
		ShowPatterns:         true,
	}
}

// NewProgressRecord returns an empty record stamped at now.
func NewProgressRecord(now time.Time) ProgressRecord {
	return ProgressRecord{
		Version:     ProgressVersion,
		UpdatedAt:   now,
		Topics:      map[string]*TopicProgress{},
		Stats:       ProgressStats{StudyDays: []string{}},
		Preferences: DefaultPreferences(),
	}
}

// NewTopicProgress returns an empty topic entry started at now.
func NewTopicProgress(topicID string, now time.Time) *TopicProgress {
	started := now
	return &TopicProgress{
		TopicID:   topicID,
		StartedAt: &started,
		Concepts:  map[string]*ConceptProgress{},
		Problems:  map[string]*ProblemProgress{},
	}
}

// NewProblemProgress returns the default entry for a problem never touched.
func NewProblemProgress(problemID string) *ProblemProgress {
	return &ProblemProgress{
		ProblemID: problemID,
		Status:    StatusNotStarted,
	}
}

// Normalize repairs nil collections left by hand-edited or foreign blobs so
// readers can range without nil checks.
func (r *ProgressRecord) Normalize() {
	if r.Version == "" {
		r.Version = ProgressVersion
	}
	if r.Topics == nil {
		r.Topics = map[string]*TopicProgress{}
	}
	for id, tp := range r.Topics {
		if tp == nil {
			delete(r.Topics, id)
			continue
		}
		if tp.TopicID == "" {
			tp.TopicID = id
		}
		if tp.Concepts == nil {
			tp.Concepts = map[string]*ConceptProgress{}
		}
		if tp.Problems == nil {
			tp.Problems = map[string]*ProblemProgress{}
		}
		for cid, c := range tp.Concepts {
			if c == nil {
				delete(tp.Concepts, cid)
			}
		}
		for pid, p := range tp.Problems {
			if p == nil {
				delete(tp.Problems, pid)
				continue
			}
			if p.Status == "" {
				p.Status = StatusNotStarted
			}
		}
	}
	if r.Stats.StudyDays == nil {
		r.Stats.StudyDays = []string{}
	}
}

// SolvedProblemIDs is the union of solved problems across all topics.
func (r ProgressRecord) SolvedProblemIDs() map[string]bool {
	solved := map[string]bool{}
	for _, tp := range r.Topics {
		for pid, pp := range tp.Problems {
			if pp.Status == StatusSolved {
				solved[pid] = true
			}
		}
	}
	return solved
}

// CompletedConcepts counts completed concepts in the topic.
func (tp *TopicProgress) CompletedConcepts() int {
	if tp == nil {
		return 0
	}
	n := 0
	for _, c := range tp.Concepts {
		if c.Completed {
			n++
		}
	}
	return n
}

// SolvedProblems counts solved problems in the topic.
func (tp *TopicProgress) SolvedProblems() int {
	if tp == nil {
		return 0
	}
	n := 0
	for _, p := range tp.Problems {
		if p.Status == StatusSolved {
			n++
		}
	}
	return n
}
