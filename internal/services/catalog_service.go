package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/vytor/dsamastery/internal/catalog"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/progress"
)

// ProblemSort names a problem list ordering. The zero value keeps catalog order.
type ProblemSort string

const (
	SortDefault    ProblemSort = ""
	SortTitle      ProblemSort = "title"
	SortDifficulty ProblemSort = "difficulty"
)

func (s ProblemSort) Valid() bool {
	return s == SortDefault || s == SortTitle || s == SortDifficulty
}

// ProblemFilter narrows ListProblems. Zero fields match everything.
type ProblemFilter struct {
	Difficulty models.Difficulty
	Pattern    string
	TopicID    string
	Status     models.ProblemStatus
	Query      string
	Sort       ProblemSort
}

func (f ProblemFilter) Validate() error {
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return errors.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", f.Difficulty))
	}
	if f.Status != "" && !f.Status.Valid() {
		return errors.NewValidationError("status", fmt.Sprintf("unknown status %q", f.Status))
	}
	if !f.Sort.Valid() {
		return errors.NewValidationError("sort", fmt.Sprintf("unknown sort %q", f.Sort))
	}
	return nil
}

// ProblemView is a catalog problem with the learner's status for it.
type ProblemView struct {
	models.Problem
	Status models.ProblemStatus `json:"status"`
}

// TopicDetail is everything the topic page shows.
type TopicDetail struct {
	Topic     models.Topic          `json:"topic"`
	Concepts  []models.Concept      `json:"concepts"`
	Problems  []ProblemView         `json:"problems"`
	Resources []models.Resource     `json:"resources"`
	Progress  *TopicProgressSummary `json:"progress"`
}

// CatalogService serves curriculum lookups annotated with learner status
type CatalogService interface {
	Topics(ctx context.Context) []models.Topic
	Topic(ctx context.Context, idOrSlug string) (*TopicDetail, error)
	ListProblems(ctx context.Context, filter ProblemFilter) ([]ProblemView, error)
	Problem(ctx context.Context, id string) (*ProblemView, error)
	Patterns(ctx context.Context) []models.Pattern
	Concepts(ctx context.Context, topicID string) []models.Concept
	Resources(ctx context.Context, topicID, typ string) []models.Resource
	Companies(ctx context.Context) []models.Company
	Stats(ctx context.Context) models.CatalogStats
}

type catalogService struct {
	catalog  *catalog.Catalog
	tracker  *progress.Tracker
	progress ProgressService
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(cat *catalog.Catalog, tracker *progress.Tracker, progressService ProgressService) CatalogService {
	return &catalogService{catalog: cat, tracker: tracker, progress: progressService}
}

var statusRank = map[models.ProblemStatus]int{
	models.StatusNotStarted: 0,
	models.StatusAttempted:  1,
	models.StatusRevisit:    2,
	models.StatusSolved:     3,
}

// problemStatuses returns each tracked problem's best status across topics.
func problemStatuses(rec models.ProgressRecord) map[string]models.ProblemStatus {
	out := map[string]models.ProblemStatus{}
	for _, tp := range rec.Topics {
		for pid, pp := range tp.Problems {
			if cur, ok := out[pid]; !ok || statusRank[pp.Status] > statusRank[cur] {
				out[pid] = pp.Status
			}
		}
	}
	return out
}

func viewOf(p models.Problem, statuses map[string]models.ProblemStatus) ProblemView {
	status, ok := statuses[p.ID]
	if !ok {
		status = models.StatusNotStarted
	}
	return ProblemView{Problem: p, Status: status}
}

func (s *catalogService) Topics(ctx context.Context) []models.Topic {
	logger.FromContext(ctx).Debug("listing topics")
	return s.catalog.Topics()
}

// Topic resolves an ID first and then a slug.
func (s *catalogService) Topic(ctx context.Context, idOrSlug string) (*TopicDetail, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting topic: %s", idOrSlug)

	topic, ok := s.catalog.Topic(idOrSlug)
	if !ok {
		topic, ok = s.catalog.TopicBySlug(idOrSlug)
	}
	if !ok {
		return nil, errors.NewNotFoundError("topic", idOrSlug)
	}

	summary, err := s.progress.TopicProgress(ctx, topic.ID)
	if err != nil {
		return nil, err
	}
	statuses := problemStatuses(s.tracker.Progress(ctx))
	return &TopicDetail{
		Topic:     topic,
		Concepts:  s.catalog.ConceptsByTopic(topic.ID),
		Problems:  lo.Map(s.catalog.ProblemsByTopic(topic.ID), func(p models.Problem, _ int) ProblemView { return viewOf(p, statuses) }),
		Resources: s.catalog.ResourcesByTopic(topic.ID),
		Progress:  summary,
	}, nil
}

func (s *catalogService) ListProblems(ctx context.Context, filter ProblemFilter) ([]ProblemView, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing problems: %+v", filter)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	statuses := problemStatuses(s.tracker.Progress(ctx))
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	pattern := strings.ToLower(strings.TrimSpace(filter.Pattern))

	out := lo.FilterMap(s.catalog.Problems(), func(p models.Problem, _ int) (ProblemView, bool) {
		label := strings.ToLower(p.PatternLabel())
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) && !strings.Contains(label, query) {
			return ProblemView{}, false
		}
		if filter.Difficulty != "" && p.Difficulty != filter.Difficulty {
			return ProblemView{}, false
		}
		if pattern != "" && !strings.Contains(label, pattern) {
			return ProblemView{}, false
		}
		if filter.TopicID != "" && !lo.Contains(p.TopicIDs, filter.TopicID) {
			return ProblemView{}, false
		}
		v := viewOf(p, statuses)
		if filter.Status != "" && v.Status != filter.Status {
			return ProblemView{}, false
		}
		return v, true
	})

	switch filter.Sort {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	case SortDifficulty:
		rank := lo.SliceToMap(models.Difficulties, func(d models.Difficulty) (models.Difficulty, int) {
			return d, lo.IndexOf(models.Difficulties, d)
		})
		sort.SliceStable(out, func(i, j int) bool { return rank[out[i].Difficulty] < rank[out[j].Difficulty] })
	}
	return out, nil
}

func (s *catalogService) Problem(ctx context.Context, id string) (*ProblemView, error) {
	logger.FromContext(ctx).Debug("getting problem: %s", id)

	p, ok := s.catalog.Problem(id)
	if !ok {
		return nil, errors.NewNotFoundError("problem", id)
	}
	v := viewOf(p, problemStatuses(s.tracker.Progress(ctx)))
	return &v, nil
}

func (s *catalogService) Patterns(ctx context.Context) []models.Pattern {
	logger.FromContext(ctx).Debug("listing patterns")
	return s.catalog.Patterns()
}

// Concepts lists every concept, or only the topic's when topicID is set.
func (s *catalogService) Concepts(ctx context.Context, topicID string) []models.Concept {
	logger.FromContext(ctx).Debug("listing concepts: topic=%s", topicID)
	if topicID == "" {
		return s.catalog.Concepts()
	}
	return s.catalog.ConceptsByTopic(topicID)
}

func (s *catalogService) Resources(ctx context.Context, topicID, typ string) []models.Resource {
	logger.FromContext(ctx).Debug("listing resources: topic=%s type=%s", topicID, typ)
	return lo.Filter(s.catalog.Resources(), func(r models.Resource, _ int) bool {
		if topicID != "" && !lo.Contains(r.TopicIDs, topicID) {
			return false
		}
		return typ == "" || r.Type == typ
	})
}

func (s *catalogService) Companies(ctx context.Context) []models.Company {
	logger.FromContext(ctx).Debug("listing companies")
	return s.catalog.Companies()
}

func (s *catalogService) Stats(ctx context.Context) models.CatalogStats {
	return s.catalog.Stats()
}
