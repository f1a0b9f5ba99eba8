package progress_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/progress"
	"github.com/vytor/dsamastery/internal/repository"
	"github.com/vytor/dsamastery/internal/repository/memory"
	"github.com/vytor/dsamastery/internal/storage"
	"github.com/vytor/dsamastery/internal/testutil"
)

// manualClock is a clock tests can move forward.
type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type TrackerSuite struct {
	suite.Suite
	ctx     context.Context
	store   *storage.Store
	clock   *manualClock
	tracker *progress.Tracker
}

func (s *TrackerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testutil.NewMemoryStore(s.T())
	s.clock = &manualClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	s.tracker = progress.NewTracker(s.store, s.clock)
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerSuite))
}

func (s *TrackerSuite) TestFreshRecord() {
	rec := s.tracker.Progress(s.ctx)

	s.Equal(models.ProgressVersion, rec.Version)
	s.Empty(rec.Topics)
	s.NotNil(rec.Topics)
	s.Equal(models.DefaultPreferences(), rec.Preferences)
	s.Equal(0, rec.Stats.CurrentStreak)
	s.Nil(rec.Stats.LastStudyDate)
	s.False(s.store.Has(s.ctx, storage.ProgressKey))
}

func (s *TrackerSuite) TestCorruptBlobFallsBackToEmptyRecord() {
	s.store.Set(s.ctx, storage.ProgressKey, "definitely not a record")

	rec := s.tracker.Progress(s.ctx)
	s.Equal(models.ProgressVersion, rec.Version)
	s.NotNil(rec.Topics)
	s.NotNil(rec.Stats.StudyDays)
}

func (s *TrackerSuite) TestCorruptBytesFallBackToEmptyRecord() {
	repo := memory.NewKVRepository()
	s.Require().NoError(repo.Put(s.ctx, storage.ProgressKey, []byte(`{"topics": {"a": [`)))
	tracker := progress.NewTracker(storage.New(repo), s.clock)

	rec := tracker.Progress(s.ctx)
	s.Equal(models.ProgressVersion, rec.Version)
	s.Empty(rec.Topics)
	s.False(tracker.IsConceptCompleted(s.ctx, "a", "b"))
	s.Equal(models.StatusNotStarted, tracker.ProblemStatus(s.ctx, "a", "b"))
}

func (s *TrackerSuite) TestMarkConceptComplete_Scenario() {
	s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "arrays-001", "")

	s.True(s.tracker.IsConceptCompleted(s.ctx, "arrays-strings", "arrays-001"))
	stats := s.tracker.Stats(s.ctx)
	s.Equal(1, stats.TotalConceptsCompleted)
	s.Equal(1, stats.CurrentStreak)
	s.Equal(1, stats.LongestStreak)
	s.Equal([]string{"2026-10-15"}, stats.StudyDays)

	tp, ok := s.tracker.TopicProgress(s.ctx, "arrays-strings")
	s.Require().True(ok)
	s.Require().NotNil(tp.StartedAt)
	s.Nil(tp.CompletedAt)
}

func (s *TrackerSuite) TestMarkConceptComplete_IdempotentCounterButRestamps() {
	first := s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "arrays-001", "first")
	s.clock.Advance(2 * time.Hour)
	second := s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "arrays-001", "second")

	s.Equal(1, s.tracker.Stats(s.ctx).TotalConceptsCompleted)
	s.True(second.CompletedAt.After(*first.CompletedAt))
	s.Equal("second", second.Notes)
}

func (s *TrackerSuite) TestMarkConceptIncomplete_FloorsAtZero() {
	s.tracker.MarkConceptIncomplete(s.ctx, "arrays-strings", "arrays-001")
	s.Equal(0, s.tracker.Stats(s.ctx).TotalConceptsCompleted)

	// drifted record: completed concept but counter already 0
	rec := s.tracker.Progress(s.ctx)
	tp := models.NewTopicProgress("arrays-strings", s.clock.Now())
	stamp := s.clock.Now()
	tp.Concepts["arrays-001"] = &models.ConceptProgress{ConceptID: "arrays-001", Completed: true, CompletedAt: &stamp}
	rec.Topics["arrays-strings"] = tp
	s.tracker.Save(s.ctx, rec)

	s.tracker.MarkConceptIncomplete(s.ctx, "arrays-strings", "arrays-001")
	s.Equal(0, s.tracker.Stats(s.ctx).TotalConceptsCompleted)

	tp, _ = s.tracker.TopicProgress(s.ctx, "arrays-strings")
	s.False(tp.Concepts["arrays-001"].Completed)
	s.Nil(tp.Concepts["arrays-001"].CompletedAt)
}

func (s *TrackerSuite) TestToggleConceptComplete() {
	s.True(s.tracker.ToggleConceptComplete(s.ctx, "graphs", "graphs-001"))
	s.Equal(1, s.tracker.Stats(s.ctx).TotalConceptsCompleted)

	s.False(s.tracker.ToggleConceptComplete(s.ctx, "graphs", "graphs-001"))
	s.Equal(0, s.tracker.Stats(s.ctx).TotalConceptsCompleted)
	s.False(s.tracker.IsConceptCompleted(s.ctx, "graphs", "graphs-001"))
}

func (s *TrackerSuite) TestMarkProblemSolved_Scenario() {
	pp, err := s.tracker.MarkProblemSolved(s.ctx, "arrays-strings", "two-sum", testutil.Ptr(15), "hash map")
	s.Require().NoError(err)

	s.Equal(models.StatusSolved, s.tracker.ProblemStatus(s.ctx, "arrays-strings", "two-sum"))
	s.Equal(1, s.tracker.Stats(s.ctx).TotalProblemsSolved)
	s.Equal(1, s.tracker.Stats(s.ctx).CurrentStreak)
	s.Equal(testutil.Ptr(15), pp.TimeSpent)
	s.Equal("hash map", pp.Notes)
	s.Require().NotNil(pp.SolvedAt)
	s.True(pp.SolvedAt.Equal(s.clock.Now()))
}

func (s *TrackerSuite) TestMarkProblemSolved_ZeroTimeIsNull() {
	pp, err := s.tracker.MarkProblemSolved(s.ctx, "arrays-strings", "two-sum", testutil.Ptr(0), "")
	s.Require().NoError(err)
	s.Nil(pp.TimeSpent)
}

func (s *TrackerSuite) TestUpdateProblemProgress_CounterEdges() {
	_, err := s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusSolved})
	s.Require().NoError(err)
	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusSolved})
	s.Require().NoError(err)
	s.Equal(1, s.tracker.Stats(s.ctx).TotalProblemsSolved)

	// no status supplied: counter untouched
	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.UpdateNotes{Text: "tricky"})
	s.Require().NoError(err)
	s.Equal(1, s.tracker.Stats(s.ctx).TotalProblemsSolved)
	s.Equal(models.StatusSolved, s.tracker.ProblemStatus(s.ctx, "t", "p"))

	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusRevisit})
	s.Require().NoError(err)
	s.Equal(0, s.tracker.Stats(s.ctx).TotalProblemsSolved)

	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusNotStarted})
	s.Require().NoError(err)
	s.Equal(0, s.tracker.Stats(s.ctx).TotalProblemsSolved)
}

func (s *TrackerSuite) TestSetStatus_Stamps() {
	pp, err := s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusAttempted})
	s.Require().NoError(err)
	s.Require().NotNil(pp.SolvedAt)
	attemptedAt := *pp.SolvedAt

	s.clock.Advance(24 * time.Hour)
	pp, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: models.StatusRevisit})
	s.Require().NoError(err)
	s.Require().NotNil(pp.SolvedAt)
	s.True(pp.SolvedAt.Equal(attemptedAt))
}

func (s *TrackerSuite) TestUpdateProblemProgress_CombinedCommands() {
	feedback := models.FeedbackTooHard
	pp, err := s.tracker.UpdateProblemProgress(s.ctx, "t", "p",
		progress.RecordTime{Minutes: 40},
		progress.RateDifficulty{Feedback: &feedback},
		progress.UpdateNotes{Text: "needs review"},
	)
	s.Require().NoError(err)

	s.Equal(models.StatusNotStarted, pp.Status)
	s.Equal(testutil.Ptr(40), pp.TimeSpent)
	s.Equal(&feedback, pp.DifficultyFeedback)
	s.Equal("needs review", pp.Notes)
	s.Equal(0, s.tracker.Stats(s.ctx).TotalProblemsSolved)
	s.Nil(s.tracker.Stats(s.ctx).LastStudyDate)
}

func (s *TrackerSuite) TestUpdateProblemProgress_InvalidCommandWritesNothing() {
	bad := models.DifficultyFeedback("meh")
	_, err := s.tracker.UpdateProblemProgress(s.ctx, "t", "p",
		progress.SetStatus{Status: models.StatusSolved},
		progress.RateDifficulty{Feedback: &bad},
	)
	s.Require().Error(err)
	s.Equal(apperrors.ErrCodeValidation, apperrors.As(err).Code)

	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.SetStatus{Status: "done"})
	s.Require().Error(err)
	_, err = s.tracker.UpdateProblemProgress(s.ctx, "t", "p", progress.RecordTime{Minutes: -1})
	s.Require().Error(err)

	s.False(s.store.Has(s.ctx, storage.ProgressKey))
}

func (s *TrackerSuite) TestStreakAcrossDays() {
	s.tracker.MarkConceptComplete(s.ctx, "t", "c1", "")
	s.clock.Advance(24 * time.Hour)
	_, err := s.tracker.MarkProblemSolved(s.ctx, "t", "p1", nil, "")
	s.Require().NoError(err)
	s.clock.Advance(24 * time.Hour)
	s.tracker.MarkConceptComplete(s.ctx, "t", "c2", "")

	stats := s.tracker.Stats(s.ctx)
	s.Equal(3, stats.CurrentStreak)
	s.Equal(3, stats.LongestStreak)

	s.clock.Advance(4 * 24 * time.Hour)
	s.tracker.MarkConceptComplete(s.ctx, "t", "c3", "")
	stats = s.tracker.Stats(s.ctx)
	s.Equal(1, stats.CurrentStreak)
	s.Equal(3, stats.LongestStreak)
	s.Len(stats.StudyDays, 4)
}

func (s *TrackerSuite) TestRoundTrip() {
	s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "arrays-001", "n")
	_, err := s.tracker.MarkProblemSolved(s.ctx, "arrays-strings", "two-sum", testutil.Ptr(12), "")
	s.Require().NoError(err)

	p := s.tracker.Progress(s.ctx)
	s.clock.Advance(time.Minute)
	s.tracker.Save(s.ctx, p)

	got := s.tracker.Progress(s.ctx)
	s.True(got.UpdatedAt.Equal(s.clock.Now()))
	got.UpdatedAt = p.UpdatedAt
	s.Equal(p, got)
}

func (s *TrackerSuite) TestInitTopicProgress_Idempotent() {
	first := s.tracker.InitTopicProgress(s.ctx, "graphs")
	s.clock.Advance(time.Hour)
	second := s.tracker.InitTopicProgress(s.ctx, "graphs")

	s.Require().NotNil(first.StartedAt)
	s.True(first.StartedAt.Equal(*second.StartedAt))
}

func (s *TrackerSuite) TestTopicCompletionPercent() {
	s.Equal(0, s.tracker.TopicCompletionPercent(s.ctx, "arrays-strings", 3))

	s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "a", "")
	s.Equal(33, s.tracker.TopicCompletionPercent(s.ctx, "arrays-strings", 3))
	s.Equal(0, s.tracker.TopicCompletionPercent(s.ctx, "arrays-strings", 0))

	s.tracker.MarkConceptComplete(s.ctx, "arrays-strings", "b", "")
	s.Equal(67, s.tracker.TopicCompletionPercent(s.ctx, "arrays-strings", 3))
	// more completions than the catalog knows about stays within bounds
	s.Equal(100, s.tracker.TopicCompletionPercent(s.ctx, "arrays-strings", 1))
}

func (s *TrackerSuite) TestUpdatePreferences() {
	prefs, err := s.tracker.UpdatePreferences(s.ctx, progress.PreferencesUpdate{
		Theme:                testutil.Ptr(models.ThemeLight),
		TargetProblemsPerDay: testutil.Ptr(5),
		ShowPatterns:         testutil.Ptr(false),
	})
	s.Require().NoError(err)

	s.Equal(models.ThemeLight, prefs.Theme)
	s.Equal(5, prefs.TargetProblemsPerDay)
	s.Equal(60, prefs.TargetMinutesPerDay)
	s.False(prefs.ShowPatterns)
	s.True(prefs.ShowDifficulty)
	s.Equal(prefs, s.tracker.Preferences(s.ctx))
}

func (s *TrackerSuite) TestUpdatePreferences_Validation() {
	tests := []struct {
		name  string
		u     progress.PreferencesUpdate
		field string
	}{
		{"theme", progress.PreferencesUpdate{Theme: testutil.Ptr(models.Theme("blue"))}, "theme"},
		{"problems low", progress.PreferencesUpdate{TargetProblemsPerDay: testutil.Ptr(0)}, "targetProblemsPerDay"},
		{"problems high", progress.PreferencesUpdate{TargetProblemsPerDay: testutil.Ptr(21)}, "targetProblemsPerDay"},
		{"minutes low", progress.PreferencesUpdate{TargetMinutesPerDay: testutil.Ptr(14)}, "targetMinutesPerDay"},
		{"minutes high", progress.PreferencesUpdate{TargetMinutesPerDay: testutil.Ptr(481)}, "targetMinutesPerDay"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.tracker.UpdatePreferences(s.ctx, tt.u)
			s.Require().Error(err)
			s.Contains(err.Error(), tt.field)
		})
	}
	s.Equal(models.DefaultPreferences(), s.tracker.Preferences(s.ctx))
}

func (s *TrackerSuite) TestResetDiscardsEverything() {
	s.tracker.MarkConceptComplete(s.ctx, "t", "c", "")
	s.tracker.Reset(s.ctx)

	rec := s.tracker.Progress(s.ctx)
	s.Empty(rec.Topics)
	s.Equal(0, rec.Stats.TotalConceptsCompleted)
}

func (s *TrackerSuite) TestExportImport() {
	s.tracker.MarkConceptComplete(s.ctx, "t", "c", "")
	_, err := s.tracker.MarkProblemSolved(s.ctx, "t", "p", testutil.Ptr(9), "")
	s.Require().NoError(err)

	data, err := s.tracker.Export(s.ctx)
	s.Require().NoError(err)
	s.Contains(string(data), "\n  \"version\": \"1.0.0\"")

	s.tracker.Reset(s.ctx)
	rec, err := s.tracker.Import(s.ctx, data)
	s.Require().NoError(err)

	s.Equal(1, rec.Stats.TotalConceptsCompleted)
	s.Equal(1, rec.Stats.TotalProblemsSolved)
	s.True(s.tracker.IsConceptCompleted(s.ctx, "t", "c"))
	s.Equal(models.StatusSolved, s.tracker.ProblemStatus(s.ctx, "t", "p"))
}

func (s *TrackerSuite) TestImport_Rejects() {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"not json", `{"version":`, apperrors.ErrCodeBadRequest},
		{"no version", `{"topics":{}}`, apperrors.ErrCodeValidation},
		{"bad status", `{"version":"1.0.0","topics":{"t":{"problems":{"p":{"status":"done"}}}}}`, apperrors.ErrCodeValidation},
		{"bad feedback", `{"version":"1.0.0","topics":{"t":{"problems":{"p":{"status":"solved","difficulty":"meh"}}}}}`, apperrors.ErrCodeValidation},
		{"negative counter", `{"version":"1.0.0","stats":{"totalProblemsSolved":-1}}`, apperrors.ErrCodeValidation},
		{"bad theme", `{"version":"1.0.0","preferences":{"theme":"blue"}}`, apperrors.ErrCodeValidation},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.tracker.Import(s.ctx, []byte(tt.data))
			s.Require().Error(err)
			s.Equal(tt.code, apperrors.As(err).Code)
		})
	}
	s.False(s.store.Has(s.ctx, storage.ProgressKey))
}

func (s *TrackerSuite) TestImport_NormalizesMissingCollections() {
	rec, err := s.tracker.Import(s.ctx, []byte(`{"version":"1.0.0","topics":{"t":{"topicId":"t"}}}`))
	s.Require().NoError(err)
	s.NotNil(rec.Topics["t"].Concepts)
	s.NotNil(rec.Topics["t"].Problems)
	s.NotNil(rec.Stats.StudyDays)
}

func TestTracker_ConcurrentMutationsAreSerialised(t *testing.T) {
	ctx := context.Background()
	clk := &manualClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	tracker := progress.NewTracker(testutil.NewMemoryStore(t), clk)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.MarkConceptComplete(ctx, "t", fmt.Sprintf("c%d", i), "")
		}(i)
	}
	wg.Wait()

	stats := tracker.Stats(ctx)
	assert.Equal(t, 25, stats.TotalConceptsCompleted)
	tp, ok := tracker.TopicProgress(ctx, "t")
	require.True(t, ok)
	assert.Len(t, tp.Concepts, 25)
}

// slowRepository widens the gap between reading and writing the record.
type slowRepository struct {
	repository.KVRepository
}

func (r slowRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(5 * time.Millisecond)
	return r.KVRepository.Get(ctx, key)
}

func TestTracker_ConcurrentTogglesAlternate(t *testing.T) {
	ctx := context.Background()
	clk := &manualClock{t: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	repo := slowRepository{KVRepository: memory.NewKVRepository()}
	tracker := progress.NewTracker(storage.New(repo), clk)

	const toggles = 10
	results := make(chan bool, toggles)
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- tracker.ToggleConceptComplete(ctx, "arrays", "c1")
		}()
	}
	wg.Wait()
	close(results)

	completed := 0
	for r := range results {
		if r {
			completed++
		}
	}
	assert.Equal(t, toggles/2, completed)
	assert.False(t, tracker.IsConceptCompleted(ctx, "arrays", "c1"))
	assert.Equal(t, 0, tracker.Stats(ctx).TotalConceptsCompleted)
}
