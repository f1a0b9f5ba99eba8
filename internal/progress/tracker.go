// Package progress owns the persisted learner record and every mutation of it.
// Each mutation is a whole-record read-modify-write under one mutex, so
// concurrent callers in this process never lose each other's updates.
package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/storage"
	"github.com/vytor/dsamastery/internal/streak"
)

type Tracker struct {
	store *storage.Store
	clock clock.Clock
	mu    sync.Mutex
}

func NewTracker(store *storage.Store, clk clock.Clock) *Tracker {
	return &Tracker{store: store, clock: clk}
}

// Progress returns the stored record, or a fresh empty one when nothing
// usable is stored. It never fails.
func (t *Tracker) Progress(ctx context.Context) models.ProgressRecord {
	rec := storage.Get[*models.ProgressRecord](ctx, t.store, storage.ProgressKey, nil)
	if rec == nil {
		return models.NewProgressRecord(t.clock.Now())
	}
	rec.Normalize()
	return *rec
}

// Save stamps updatedAt and writes rec. Write failures are logged by the store.
func (t *Tracker) Save(ctx context.Context, rec models.ProgressRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.save(ctx, &rec)
}

func (t *Tracker) save(ctx context.Context, rec *models.ProgressRecord) {
	rec.UpdatedAt = t.clock.Now()
	t.store.Set(ctx, storage.ProgressKey, rec)
}

// mutate runs fn against the current record and saves it when fn reports a
// change and returns no error.
func (t *Tracker) mutate(ctx context.Context, fn func(rec *models.ProgressRecord, now time.Time) (bool, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.Progress(ctx)
	changed, err := fn(&rec, t.clock.Now())
	if err != nil {
		return err
	}
	if changed {
		t.save(ctx, &rec)
	}
	return nil
}

func ensureTopic(rec *models.ProgressRecord, topicID string, now time.Time) (*models.TopicProgress, bool) {
	if tp, ok := rec.Topics[topicID]; ok {
		return tp, false
	}
	tp := models.NewTopicProgress(topicID, now)
	rec.Topics[topicID] = tp
	return tp, true
}

// TopicProgress returns the topic entry, if the learner has touched it.
func (t *Tracker) TopicProgress(ctx context.Context, topicID string) (*models.TopicProgress, bool) {
	rec := t.Progress(ctx)
	tp, ok := rec.Topics[topicID]
	return tp, ok
}

// InitTopicProgress creates the topic entry when absent and returns it.
func (t *Tracker) InitTopicProgress(ctx context.Context, topicID string) *models.TopicProgress {
	var out *models.TopicProgress
	_ = t.mutate(ctx, func(rec *models.ProgressRecord, now time.Time) (bool, error) {
		tp, created := ensureTopic(rec, topicID, now)
		out = tp
		return created, nil
	})
	return out
}

// MarkConceptComplete marks the concept done and stamps completedAt. The
// counter and streak move only when the concept was not already complete.
func (t *Tracker) MarkConceptComplete(ctx context.Context, topicID, conceptID, notes string) models.ConceptProgress {
	log := logger.FromContext(ctx).WithPrefix("progress")
	var out models.ConceptProgress

	_ = t.mutate(ctx, func(rec *models.ProgressRecord, now time.Time) (bool, error) {
		out = completeConcept(log, rec, topicID, conceptID, notes, now)
		return true, nil
	})
	return out
}

// MarkConceptIncomplete clears a completed concept. Anything else is a no-op.
func (t *Tracker) MarkConceptIncomplete(ctx context.Context, topicID, conceptID string) {
	_ = t.mutate(ctx, func(rec *models.ProgressRecord, _ time.Time) (bool, error) {
		return uncompleteConcept(rec, topicID, conceptID), nil
	})
}

// ToggleConceptComplete flips the concept and returns its new state. The read
// and the flip happen under the same lock.
func (t *Tracker) ToggleConceptComplete(ctx context.Context, topicID, conceptID string) bool {
	log := logger.FromContext(ctx).WithPrefix("progress")
	var completed bool

	_ = t.mutate(ctx, func(rec *models.ProgressRecord, now time.Time) (bool, error) {
		if conceptCompleted(rec, topicID, conceptID) {
			completed = false
			return uncompleteConcept(rec, topicID, conceptID), nil
		}
		completeConcept(log, rec, topicID, conceptID, "", now)
		completed = true
		return true, nil
	})
	return completed
}

func conceptCompleted(rec *models.ProgressRecord, topicID, conceptID string) bool {
	tp, ok := rec.Topics[topicID]
	if !ok {
		return false
	}
	cp, ok := tp.Concepts[conceptID]
	return ok && cp.Completed
}

func completeConcept(log *logger.Logger, rec *models.ProgressRecord, topicID, conceptID, notes string, now time.Time) models.ConceptProgress {
	tp, _ := ensureTopic(rec, topicID, now)
	wasCompleted := conceptCompleted(rec, topicID, conceptID)

	stamp := now
	cp := &models.ConceptProgress{
		ConceptID:   conceptID,
		Completed:   true,
		CompletedAt: &stamp,
		Notes:       notes,
	}
	tp.Concepts[conceptID] = cp

	if !wasCompleted {
		rec.Stats.TotalConceptsCompleted++
		streak.Record(&rec.Stats, now)
		log.Debug("concept %s/%s completed, total=%d streak=%d", topicID, conceptID, rec.Stats.TotalConceptsCompleted, rec.Stats.CurrentStreak)
	}
	return *cp
}

func uncompleteConcept(rec *models.ProgressRecord, topicID, conceptID string) bool {
	if !conceptCompleted(rec, topicID, conceptID) {
		return false
	}
	cp := rec.Topics[topicID].Concepts[conceptID]
	cp.Completed = false
	cp.CompletedAt = nil
	rec.Stats.TotalConceptsCompleted = max(0, rec.Stats.TotalConceptsCompleted-1)
	return true
}

// UpdateProblemProgress applies cmds in order to the problem's entry, creating
// a not-started entry first when needed. The solved counter rises on a move
// into solved and falls (never below 0) when a solved problem is explicitly
// given another status.
func (t *Tracker) UpdateProblemProgress(ctx context.Context, topicID, problemID string, cmds ...Command) (models.ProblemProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress")

	for _, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return models.ProblemProgress{}, err
		}
	}

	var out models.ProblemProgress
	err := t.mutate(ctx, func(rec *models.ProgressRecord, now time.Time) (bool, error) {
		tp, _ := ensureTopic(rec, topicID, now)
		pp, ok := tp.Problems[problemID]
		if !ok {
			pp = models.NewProblemProgress(problemID)
			tp.Problems[problemID] = pp
		}

		wasSolved := pp.Status == models.StatusSolved
		statusSet := false
		for _, cmd := range cmds {
			if cmd.apply(pp, now) {
				statusSet = true
			}
		}
		willBeSolved := statusSet && pp.Status == models.StatusSolved

		switch {
		case !wasSolved && willBeSolved:
			rec.Stats.TotalProblemsSolved++
			streak.Record(&rec.Stats, now)
			log.Debug("problem %s/%s solved, total=%d streak=%d", topicID, problemID, rec.Stats.TotalProblemsSolved, rec.Stats.CurrentStreak)
		case wasSolved && !willBeSolved && statusSet:
			rec.Stats.TotalProblemsSolved = max(0, rec.Stats.TotalProblemsSolved-1)
			log.Debug("problem %s/%s left solved (%s), total=%d", topicID, problemID, pp.Status, rec.Stats.TotalProblemsSolved)
		}
		out = *pp
		return true, nil
	})
	return out, err
}

// MarkProblemSolved is UpdateProblemProgress with a single MarkSolved.
func (t *Tracker) MarkProblemSolved(ctx context.Context, topicID, problemID string, timeSpent *int, notes string) (models.ProblemProgress, error) {
	return t.UpdateProblemProgress(ctx, topicID, problemID, MarkSolved{TimeSpent: timeSpent, Notes: notes})
}

func (t *Tracker) IsConceptCompleted(ctx context.Context, topicID, conceptID string) bool {
	rec := t.Progress(ctx)
	return conceptCompleted(&rec, topicID, conceptID)
}

// ProblemStatus reports not-started for anything never touched.
func (t *Tracker) ProblemStatus(ctx context.Context, topicID, problemID string) models.ProblemStatus {
	tp, ok := t.TopicProgress(ctx, topicID)
	if !ok {
		return models.StatusNotStarted
	}
	pp, ok := tp.Problems[problemID]
	if !ok {
		return models.StatusNotStarted
	}
	return pp.Status
}

// TopicCompletionPercent is the share of totalConcepts completed, 0..100.
func (t *Tracker) TopicCompletionPercent(ctx context.Context, topicID string, totalConcepts int) int {
	tp, ok := t.TopicProgress(ctx, topicID)
	if !ok || totalConcepts == 0 {
		return 0
	}
	return models.Percent(tp.CompletedConcepts(), totalConcepts)
}

func (t *Tracker) Stats(ctx context.Context) models.ProgressStats {
	return t.Progress(ctx).Stats
}

func (t *Tracker) Preferences(ctx context.Context) models.UserPreferences {
	return t.Progress(ctx).Preferences
}

// PreferencesUpdate carries only the fields to change.
type PreferencesUpdate struct {
	Theme                *models.Theme `json:"theme,omitempty"`
	TargetProblemsPerDay *int          `json:"targetProblemsPerDay,omitempty"`
	TargetMinutesPerDay  *int          `json:"targetMinutesPerDay,omitempty"`
	ShowDifficulty       *bool         `json:"showDifficulty,omitempty"`
	ShowPatterns         *bool         `json:"showPatterns,omitempty"`
}

// Goal bounds accepted by UpdatePreferences.
const (
	MinProblemsPerDay = 1
	MaxProblemsPerDay = 20
	MinMinutesPerDay  = 15
	MaxMinutesPerDay  = 480
)

func (u PreferencesUpdate) Validate() error {
	if u.Theme != nil && !u.Theme.Valid() {
		return errors.NewValidationError("theme", fmt.Sprintf("must be %q or %q", models.ThemeLight, models.ThemeDark))
	}
	if u.TargetProblemsPerDay != nil && (*u.TargetProblemsPerDay < MinProblemsPerDay || *u.TargetProblemsPerDay > MaxProblemsPerDay) {
		return errors.NewValidationError("targetProblemsPerDay", fmt.Sprintf("must be between %d and %d", MinProblemsPerDay, MaxProblemsPerDay))
	}
	if u.TargetMinutesPerDay != nil && (*u.TargetMinutesPerDay < MinMinutesPerDay || *u.TargetMinutesPerDay > MaxMinutesPerDay) {
		return errors.NewValidationError("targetMinutesPerDay", fmt.Sprintf("must be between %d and %d", MinMinutesPerDay, MaxMinutesPerDay))
	}
	return nil
}

// UpdatePreferences merges u into the stored preferences.
func (t *Tracker) UpdatePreferences(ctx context.Context, u PreferencesUpdate) (models.UserPreferences, error) {
	if err := u.Validate(); err != nil {
		return models.UserPreferences{}, err
	}
	var out models.UserPreferences
	err := t.mutate(ctx, func(rec *models.ProgressRecord, _ time.Time) (bool, error) {
		p := &rec.Preferences
		if u.Theme != nil {
			p.Theme = *u.Theme
		}
		if u.TargetProblemsPerDay != nil {
			p.TargetProblemsPerDay = *u.TargetProblemsPerDay
		}
		if u.TargetMinutesPerDay != nil {
			p.TargetMinutesPerDay = *u.TargetMinutesPerDay
		}
		if u.ShowDifficulty != nil {
			p.ShowDifficulty = *u.ShowDifficulty
		}
		if u.ShowPatterns != nil {
			p.ShowPatterns = *u.ShowPatterns
		}
		out = *p
		return true, nil
	})
	return out, err
}

// Reset discards the stored record; the next read starts empty.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Remove(ctx, storage.ProgressKey)
	logger.FromContext(ctx).WithPrefix("progress").Info("progress reset")
}

// Export renders the current record as indented JSON.
func (t *Tracker) Export(ctx context.Context) ([]byte, error) {
	rec := t.Progress(ctx)
	return json.MarshalIndent(rec, "", "  ")
}

// Import replaces the stored record with an exported one after checking it.
// Counters are taken as given.
func (t *Tracker) Import(ctx context.Context, data []byte) (models.ProgressRecord, error) {
	var rec models.ProgressRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&rec); err != nil {
		return models.ProgressRecord{}, errors.NewBadRequestError(fmt.Sprintf("progress blob is not valid JSON: %v", err))
	}
	if err := validateRecord(rec); err != nil {
		return models.ProgressRecord{}, err
	}
	rec.Normalize()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.save(ctx, &rec)
	logger.FromContext(ctx).WithPrefix("progress").Info("imported progress: %d topics, %d concepts, %d problems solved",
		len(rec.Topics), rec.Stats.TotalConceptsCompleted, rec.Stats.TotalProblemsSolved)
	return rec, nil
}

func validateRecord(rec models.ProgressRecord) error {
	if rec.Version == "" {
		return errors.NewValidationError("version", "missing version stamp")
	}
	if rec.Stats.TotalConceptsCompleted < 0 || rec.Stats.TotalProblemsSolved < 0 ||
		rec.Stats.CurrentStreak < 0 || rec.Stats.LongestStreak < 0 {
		return errors.NewValidationError("stats", "counters must not be negative")
	}
	if rec.Preferences.Theme != "" && !rec.Preferences.Theme.Valid() {
		return errors.NewValidationError("preferences.theme", fmt.Sprintf("unknown theme %q", rec.Preferences.Theme))
	}
	for tid, tp := range rec.Topics {
		if tp == nil {
			continue
		}
		for pid, pp := range tp.Problems {
			if pp == nil {
				continue
			}
			if pp.Status != "" && !pp.Status.Valid() {
				return errors.NewValidationError(fmt.Sprintf("topics.%s.problems.%s.status", tid, pid), fmt.Sprintf("unknown status %q", pp.Status))
			}
			if pp.DifficultyFeedback != nil && !pp.DifficultyFeedback.Valid() {
				return errors.NewValidationError(fmt.Sprintf("topics.%s.problems.%s.difficulty", tid, pid), fmt.Sprintf("unknown feedback %q", *pp.DifficultyFeedback))
			}
		}
	}
	return nil
}
