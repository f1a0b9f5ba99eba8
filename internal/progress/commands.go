package progress

import (
	"fmt"
	"time"

	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/models"
)

// Command is one explicit change to a problem's progress. Commands validate
// themselves before anything is written.
type Command interface {
	Validate() error
	// apply mutates p and reports whether it assigned a status.
	apply(p *models.ProblemProgress, now time.Time) bool
}

// SetStatus moves the problem to Status. Solved and attempted stamp solvedAt
// with the current time; other statuses keep the existing stamp.
type SetStatus struct {
	Status models.ProblemStatus
}

func (c SetStatus) Validate() error {
	if !c.Status.Valid() {
		return errors.NewValidationError("status", fmt.Sprintf("unknown status %q", c.Status))
	}
	return nil
}

func (c SetStatus) apply(p *models.ProblemProgress, now time.Time) bool {
	p.Status = c.Status
	if c.Status == models.StatusSolved || c.Status == models.StatusAttempted {
		stamp := now
		p.SolvedAt = &stamp
	}
	return true
}

// MarkSolved sets status solved, stamps solvedAt and replaces time and notes.
// A nil or zero TimeSpent clears the recorded time.
type MarkSolved struct {
	TimeSpent *int
	Notes     string
}

func (c MarkSolved) Validate() error {
	if c.TimeSpent != nil && *c.TimeSpent < 0 {
		return errors.NewValidationError("timeSpent", "must not be negative")
	}
	return nil
}

func (c MarkSolved) apply(p *models.ProblemProgress, now time.Time) bool {
	stamp := now
	p.Status = models.StatusSolved
	p.SolvedAt = &stamp
	p.TimeSpent = positiveOrNil(c.TimeSpent)
	p.Notes = c.Notes
	return true
}

type UpdateNotes struct {
	Text string
}

func (c UpdateNotes) Validate() error { return nil }

func (c UpdateNotes) apply(p *models.ProblemProgress, _ time.Time) bool {
	p.Notes = c.Text
	return false
}

// RecordTime sets the minutes spent; zero clears it.
type RecordTime struct {
	Minutes int
}

func (c RecordTime) Validate() error {
	if c.Minutes < 0 {
		return errors.NewValidationError("timeSpent", "must not be negative")
	}
	return nil
}

func (c RecordTime) apply(p *models.ProblemProgress, _ time.Time) bool {
	p.TimeSpent = positiveOrNil(&c.Minutes)
	return false
}

// RateDifficulty records the learner's feedback; nil clears it.
type RateDifficulty struct {
	Feedback *models.DifficultyFeedback
}

func (c RateDifficulty) Validate() error {
	if c.Feedback != nil && !c.Feedback.Valid() {
		return errors.NewValidationError("difficulty", fmt.Sprintf("unknown feedback %q", *c.Feedback))
	}
	return nil
}

func (c RateDifficulty) apply(p *models.ProblemProgress, _ time.Time) bool {
	if c.Feedback == nil {
		p.DifficultyFeedback = nil
		return false
	}
	f := *c.Feedback
	p.DifficultyFeedback = &f
	return false
}

func positiveOrNil(v *int) *int {
	if v == nil || *v <= 0 {
		return nil
	}
	n := *v
	return &n
}
