package services

import (
	"context"
	"fmt"

	"github.com/vytor/dsamastery/internal/analytics"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/progress"
)

// MaxWeeks bounds the heatmap and weekly activity windows.
const MaxWeeks = 52

// DashboardService derives dashboard and analytics views from the current
// progress record. Each call reads the record once.
type DashboardService interface {
	Hero(ctx context.Context) models.HeroStats
	Mastery(ctx context.Context) []models.TopicMastery
	PatternCoverage(ctx context.Context) []models.PatternCoverage
	Heatmap(ctx context.Context, weeks int) ([]models.HeatmapDay, error)
	SmartActions(ctx context.Context) []models.SmartAction
	CompanyReadiness(ctx context.Context, limit int) ([]models.CompanyReadiness, error)
	WeeklyActivity(ctx context.Context, weeks int) ([]models.WeeklyActivity, error)
	PatternGaps(ctx context.Context) []models.PatternGap
	ReviewQueue(ctx context.Context) []models.ReviewItem
	Calibration(ctx context.Context) models.DifficultyCalibration
	SolveTimes(ctx context.Context) models.SolveTimeStats
	DeepDive(ctx context.Context) []models.TopicDeepDive
	Milestones(ctx context.Context) []models.Milestone
}

type dashboardService struct {
	tracker *progress.Tracker
	catalog *catalog.Catalog
	clock   clock.Clock
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(tracker *progress.Tracker, cat *catalog.Catalog, clk clock.Clock) DashboardService {
	return &dashboardService{tracker: tracker, catalog: cat, clock: clk}
}

func validateWeeks(weeks int) error {
	if weeks < 0 || weeks > MaxWeeks {
		return errors.NewValidationError("weeks", fmt.Sprintf("must be between 1 and %d", MaxWeeks))
	}
	return nil
}

func (s *dashboardService) Hero(ctx context.Context) models.HeroStats {
	logger.FromContext(ctx).Debug("getting hero stats")
	return analytics.HeroStats(s.tracker.Progress(ctx), s.catalog)
}

func (s *dashboardService) Mastery(ctx context.Context) []models.TopicMastery {
	logger.FromContext(ctx).Debug("getting topic mastery")
	return analytics.TopicMastery(s.tracker.Progress(ctx), s.catalog)
}

func (s *dashboardService) PatternCoverage(ctx context.Context) []models.PatternCoverage {
	logger.FromContext(ctx).Debug("getting pattern coverage")
	return analytics.PatternCoverage(s.tracker.Progress(ctx), s.catalog)
}

// Heatmap uses the default window when weeks is 0.
func (s *dashboardService) Heatmap(ctx context.Context, weeks int) ([]models.HeatmapDay, error) {
	logger.FromContext(ctx).Debug("getting heatmap: weeks=%d", weeks)
	if err := validateWeeks(weeks); err != nil {
		return nil, err
	}
	return analytics.Heatmap(s.tracker.Progress(ctx), s.clock.Now(), weeks), nil
}

func (s *dashboardService) SmartActions(ctx context.Context) []models.SmartAction {
	logger.FromContext(ctx).Debug("getting smart actions")
	return analytics.SmartActions(s.tracker.Progress(ctx), s.catalog, s.clock.Now())
}

// CompanyReadiness uses the default limit when limit is 0.
func (s *dashboardService) CompanyReadiness(ctx context.Context, limit int) ([]models.CompanyReadiness, error) {
	logger.FromContext(ctx).Debug("getting company readiness: limit=%d", limit)
	if limit < 0 {
		return nil, errors.NewValidationError("limit", "must not be negative")
	}
	titles := analytics.SolvedProblemTitles(s.tracker.Progress(ctx), s.catalog)
	return analytics.CompanyReadiness(s.catalog.Companies(), titles, limit), nil
}

// WeeklyActivity uses the default window when weeks is 0.
func (s *dashboardService) WeeklyActivity(ctx context.Context, weeks int) ([]models.WeeklyActivity, error) {
	logger.FromContext(ctx).Debug("getting weekly activity: weeks=%d", weeks)
	if err := validateWeeks(weeks); err != nil {
		return nil, err
	}
	return analytics.WeeklyActivity(s.tracker.Progress(ctx), s.clock.Now(), weeks), nil
}

func (s *dashboardService) PatternGaps(ctx context.Context) []models.PatternGap {
	logger.FromContext(ctx).Debug("getting pattern gaps")
	return analytics.PatternGaps(s.tracker.Progress(ctx), s.catalog)
}

func (s *dashboardService) ReviewQueue(ctx context.Context) []models.ReviewItem {
	logger.FromContext(ctx).Debug("getting review queue")
	return analytics.ReviewQueue(s.tracker.Progress(ctx), s.catalog, s.clock.Now())
}

func (s *dashboardService) Calibration(ctx context.Context) models.DifficultyCalibration {
	logger.FromContext(ctx).Debug("getting difficulty calibration")
	return analytics.DifficultyCalibration(s.tracker.Progress(ctx))
}

func (s *dashboardService) SolveTimes(ctx context.Context) models.SolveTimeStats {
	logger.FromContext(ctx).Debug("getting solve time stats")
	return analytics.SolveTimeStats(s.tracker.Progress(ctx), s.catalog)
}

func (s *dashboardService) DeepDive(ctx context.Context) []models.TopicDeepDive {
	logger.FromContext(ctx).Debug("getting topic deep dive")
	return analytics.TopicDeepDive(s.tracker.Progress(ctx), s.catalog, s.clock.Now())
}

func (s *dashboardService) Milestones(ctx context.Context) []models.Milestone {
	logger.FromContext(ctx).Debug("getting milestones")
	return analytics.Milestones(s.tracker.Progress(ctx), s.catalog)
}
