package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/progress"
	"github.com/vytor/dsamastery/internal/uistate"
)

// ProgressService handles learner progress mutations and queries
type ProgressService interface {
	Progress(ctx context.Context) models.ProgressRecord
	Stats(ctx context.Context) models.ProgressStats
	Preferences(ctx context.Context) models.UserPreferences
	UpdatePreferences(ctx context.Context, update progress.PreferencesUpdate) (models.UserPreferences, error)
	TopicProgress(ctx context.Context, topicID string) (*TopicProgressSummary, error)
	CompleteConcept(ctx context.Context, topicID, conceptID, notes string) (models.ConceptProgress, error)
	UncompleteConcept(ctx context.Context, topicID, conceptID string) error
	ToggleConcept(ctx context.Context, topicID, conceptID string) (bool, error)
	UpdateProblem(ctx context.Context, topicID, problemID string, patch ProblemPatch) (models.ProblemProgress, error)
	SolveProblem(ctx context.Context, topicID, problemID string, timeSpent *int, notes string) (models.ProblemProgress, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (models.ProgressRecord, error)
	Reset(ctx context.Context)
}

// TopicProgressSummary is a topic's stored progress with its catalog totals.
type TopicProgressSummary struct {
	TopicID        string                `json:"topicId"`
	Progress       *models.TopicProgress `json:"progress"`
	ConceptsDone   int                   `json:"conceptsDone"`
	ConceptsTotal  int                   `json:"conceptsTotal"`
	ConceptPercent int                   `json:"conceptPercent"`
	ProblemsSolved int                   `json:"problemsSolved"`
	ProblemsTotal  int                   `json:"problemsTotal"`
}

// ProblemPatch is a partial update of a problem's progress. Absent fields are
// left alone. An empty Difficulty clears the learner's rating.
type ProblemPatch struct {
	Status     *models.ProblemStatus `json:"status,omitempty"`
	Notes      *string               `json:"notes,omitempty"`
	TimeSpent  *int                  `json:"timeSpent,omitempty"`
	Difficulty *string               `json:"difficulty,omitempty"`
}

// Commands converts the patch into tracker commands, status first.
func (p ProblemPatch) Commands() ([]progress.Command, error) {
	var cmds []progress.Command
	if p.Status != nil {
		cmds = append(cmds, progress.SetStatus{Status: *p.Status})
	}
	if p.Notes != nil {
		cmds = append(cmds, progress.UpdateNotes{Text: *p.Notes})
	}
	if p.TimeSpent != nil {
		cmds = append(cmds, progress.RecordTime{Minutes: *p.TimeSpent})
	}
	if p.Difficulty != nil {
		var feedback *models.DifficultyFeedback
		if *p.Difficulty != "" {
			f := models.DifficultyFeedback(*p.Difficulty)
			feedback = &f
		}
		cmds = append(cmds, progress.RateDifficulty{Feedback: feedback})
	}
	if len(cmds) == 0 {
		return nil, errors.NewValidationError("patch", "at least one of status, notes, timeSpent or difficulty is required")
	}
	return cmds, nil
}

type progressService struct {
	tracker *progress.Tracker
	ui      *uistate.Store
	catalog *catalog.Catalog
}

// NewProgressService creates a new ProgressService
func NewProgressService(tracker *progress.Tracker, ui *uistate.Store, cat *catalog.Catalog) ProgressService {
	return &progressService{tracker: tracker, ui: ui, catalog: cat}
}

func requireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field, "cannot be empty")
	}
	return nil
}

// checkTopicItem validates the IDs and warns about ones the catalog does not
// know. Unknown IDs are still accepted so progress survives catalog edits.
func (s *progressService) checkTopicItem(ctx context.Context, kind, topicID, itemID string) error {
	if err := requireID("topicId", topicID); err != nil {
		return err
	}
	if err := requireID(kind+"Id", itemID); err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	if _, ok := s.catalog.Topic(topicID); !ok {
		log.Warn("topic %s is not in the catalog", topicID)
	}
	switch kind {
	case "concept":
		if _, ok := s.catalog.Concept(itemID); !ok {
			log.Warn("concept %s is not in the catalog", itemID)
		}
	case "problem":
		if _, ok := s.catalog.Problem(itemID); !ok {
			log.Warn("problem %s is not in the catalog", itemID)
		}
	}
	return nil
}

func (s *progressService) Progress(ctx context.Context) models.ProgressRecord {
	logger.FromContext(ctx).Debug("getting progress record")
	return s.tracker.Progress(ctx)
}

func (s *progressService) Stats(ctx context.Context) models.ProgressStats {
	return s.tracker.Stats(ctx)
}

func (s *progressService) Preferences(ctx context.Context) models.UserPreferences {
	return s.tracker.Preferences(ctx)
}

func (s *progressService) UpdatePreferences(ctx context.Context, update progress.PreferencesUpdate) (models.UserPreferences, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating preferences")

	prefs, err := s.tracker.UpdatePreferences(ctx, update)
	if err != nil {
		return models.UserPreferences{}, err
	}
	if update.Theme != nil {
		if err := s.ui.SetTheme(ctx, *update.Theme); err != nil {
			log.Warn("failed to sync theme: %v", err)
		}
	}
	return prefs, nil
}

func (s *progressService) TopicProgress(ctx context.Context, topicID string) (*TopicProgressSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting topic progress: topic=%s", topicID)

	if err := requireID("topicId", topicID); err != nil {
		return nil, err
	}
	if _, ok := s.catalog.Topic(topicID); !ok {
		return nil, errors.NewNotFoundError("topic", topicID)
	}

	summary := &TopicProgressSummary{
		TopicID:       topicID,
		ConceptsTotal: len(s.catalog.ConceptsByTopic(topicID)),
		ProblemsTotal: len(s.catalog.ProblemsByTopic(topicID)),
	}
	if tp, ok := s.tracker.TopicProgress(ctx, topicID); ok {
		summary.Progress = tp
		summary.ConceptsDone = tp.CompletedConcepts()
		summary.ProblemsSolved = tp.SolvedProblems()
	}
	summary.ConceptPercent = models.Percent(summary.ConceptsDone, summary.ConceptsTotal)
	return summary, nil
}

func (s *progressService) CompleteConcept(ctx context.Context, topicID, conceptID, notes string) (models.ConceptProgress, error) {
	logger.FromContext(ctx).Debug("completing concept: topic=%s concept=%s", topicID, conceptID)
	if err := s.checkTopicItem(ctx, "concept", topicID, conceptID); err != nil {
		return models.ConceptProgress{}, err
	}
	return s.tracker.MarkConceptComplete(ctx, topicID, conceptID, notes), nil
}

func (s *progressService) UncompleteConcept(ctx context.Context, topicID, conceptID string) error {
	logger.FromContext(ctx).Debug("uncompleting concept: topic=%s concept=%s", topicID, conceptID)
	if err := s.checkTopicItem(ctx, "concept", topicID, conceptID); err != nil {
		return err
	}
	s.tracker.MarkConceptIncomplete(ctx, topicID, conceptID)
	return nil
}

func (s *progressService) ToggleConcept(ctx context.Context, topicID, conceptID string) (bool, error) {
	logger.FromContext(ctx).Debug("toggling concept: topic=%s concept=%s", topicID, conceptID)
	if err := s.checkTopicItem(ctx, "concept", topicID, conceptID); err != nil {
		return false, err
	}
	return s.tracker.ToggleConceptComplete(ctx, topicID, conceptID), nil
}

func (s *progressService) UpdateProblem(ctx context.Context, topicID, problemID string, patch ProblemPatch) (models.ProblemProgress, error) {
	logger.FromContext(ctx).Debug("updating problem: topic=%s problem=%s", topicID, problemID)
	if err := s.checkTopicItem(ctx, "problem", topicID, problemID); err != nil {
		return models.ProblemProgress{}, err
	}
	cmds, err := patch.Commands()
	if err != nil {
		return models.ProblemProgress{}, err
	}
	return s.tracker.UpdateProblemProgress(ctx, topicID, problemID, cmds...)
}

func (s *progressService) SolveProblem(ctx context.Context, topicID, problemID string, timeSpent *int, notes string) (models.ProblemProgress, error) {
	logger.FromContext(ctx).Debug("solving problem: topic=%s problem=%s", topicID, problemID)
	if err := s.checkTopicItem(ctx, "problem", topicID, problemID); err != nil {
		return models.ProblemProgress{}, err
	}
	return s.tracker.MarkProblemSolved(ctx, topicID, problemID, timeSpent, notes)
}

func (s *progressService) Export(ctx context.Context) ([]byte, error) {
	log := logger.FromContext(ctx)
	log.Debug("exporting progress")

	data, err := s.tracker.Export(ctx)
	if err != nil {
		log.Error("failed to export progress: %v", err)
		return nil, errors.NewInternalError(fmt.Errorf("export progress: %w", err))
	}
	return data, nil
}

func (s *progressService) Import(ctx context.Context, data []byte) (models.ProgressRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing progress: bytes=%d", len(data))

	if len(data) == 0 {
		return models.ProgressRecord{}, errors.NewBadRequestError("import body is empty")
	}
	rec, err := s.tracker.Import(ctx, data)
	if err != nil {
		return models.ProgressRecord{}, err
	}
	if rec.Preferences.Theme.Valid() {
		if err := s.ui.SetTheme(ctx, rec.Preferences.Theme); err != nil {
			log.Warn("failed to sync theme: %v", err)
		}
	}
	return rec, nil
}

func (s *progressService) Reset(ctx context.Context) {
	logger.FromContext(ctx).Info("resetting progress")
	s.tracker.Reset(ctx)
}
