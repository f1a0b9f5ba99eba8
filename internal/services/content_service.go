package services

import (
	"context"

	"github.com/vytor/dsamastery/internal/content"
	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/reading"
	"github.com/vytor/dsamastery/internal/worker"
)

// TopicContentView is a topic's chapter tree with reading progress.
type TopicContentView struct {
	models.TopicContent
	ChaptersRead int `json:"chaptersRead"`
	ReadPercent  int `json:"readPercent"`
}

// ChapterView is one chapter's markdown and its neighbours.
type ChapterView struct {
	TopicID  string              `json:"topicId"`
	Path     string              `json:"path"`
	Title    string              `json:"title"`
	Markdown string              `json:"markdown"`
	Prev     *models.ContentItem `json:"prev"`
	Next     *models.ContentItem `json:"next"`
	Read     bool                `json:"read"`
}

// ContentService serves chapter content and tracks what has been read.
// Content calls fail with NotFound when no content source is configured.
type ContentService interface {
	Manifest(ctx context.Context) (models.ContentManifest, error)
	Topic(ctx context.Context, topicID string) (*TopicContentView, error)
	Chapter(ctx context.Context, topicID, chapterPath string) (*ChapterView, error)
	ClearCache(ctx context.Context)
	Prefetch(ctx context.Context, pool *worker.Pool, topicIDs []string) int
	Reading(ctx context.Context) models.ReadingProgress
	MarkRead(ctx context.Context, topicID, chapterPath string) (models.ChapterRead, error)
	ResetReading(ctx context.Context)
}

type contentService struct {
	fetcher content.Fetcher
	reading *reading.Tracker
}

// NewContentService creates a new ContentService. fetcher may be nil.
func NewContentService(fetcher content.Fetcher, readingTracker *reading.Tracker) ContentService {
	return &contentService{fetcher: fetcher, reading: readingTracker}
}

func (s *contentService) requireFetcher() error {
	if s.fetcher == nil {
		return errors.NewNotFoundError("content source", "CONTENT_BASE_URL")
	}
	return nil
}

// wrapFetchError keeps AppErrors from the client and wraps anything else.
func wrapFetchError(err error) error {
	return errors.As(err)
}

func (s *contentService) Manifest(ctx context.Context) (models.ContentManifest, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting content manifest")

	if err := s.requireFetcher(); err != nil {
		return models.ContentManifest{}, err
	}
	m, err := s.fetcher.Manifest(ctx)
	if err != nil {
		log.Error("failed to load manifest: %v", err)
		return models.ContentManifest{}, wrapFetchError(err)
	}
	return m, nil
}

func (s *contentService) topicContent(ctx context.Context, topicID string) (models.TopicContent, error) {
	if err := requireID("topicId", topicID); err != nil {
		return models.TopicContent{}, err
	}
	if err := s.requireFetcher(); err != nil {
		return models.TopicContent{}, err
	}
	tc, ok, err := s.fetcher.TopicContent(ctx, topicID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load topic content: %v", err)
		return models.TopicContent{}, wrapFetchError(err)
	}
	if !ok {
		return models.TopicContent{}, errors.NewNotFoundError("topic content", topicID)
	}
	return tc, nil
}

func (s *contentService) Topic(ctx context.Context, topicID string) (*TopicContentView, error) {
	logger.FromContext(ctx).Debug("getting topic content: %s", topicID)

	tc, err := s.topicContent(ctx, topicID)
	if err != nil {
		return nil, err
	}
	total := len(content.FlattenChapters(tc.Chapters))
	return &TopicContentView{
		TopicContent: tc,
		ChaptersRead: s.reading.ChaptersRead(ctx, topicID),
		ReadPercent:  s.reading.TopicPercent(ctx, topicID, total),
	}, nil
}

func (s *contentService) Chapter(ctx context.Context, topicID, chapterPath string) (*ChapterView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting chapter: topic=%s path=%s", topicID, chapterPath)

	if err := requireID("path", chapterPath); err != nil {
		return nil, err
	}
	tc, err := s.topicContent(ctx, topicID)
	if err != nil {
		return nil, err
	}
	item, ok := content.FindChapter(tc.Chapters, chapterPath)
	if !ok {
		return nil, errors.NewNotFoundError("chapter", topicID+"/"+chapterPath)
	}

	body, err := s.fetcher.Chapter(ctx, topicID, chapterPath)
	if err != nil {
		log.Error("failed to load chapter: %v", err)
		return nil, wrapFetchError(err)
	}

	adj := content.AdjacentChapters(tc.Chapters, chapterPath)
	return &ChapterView{
		TopicID:  topicID,
		Path:     chapterPath,
		Title:    item.Title,
		Markdown: body,
		Prev:     adj.Prev,
		Next:     adj.Next,
		Read:     s.reading.IsChapterRead(ctx, topicID, chapterPath),
	}, nil
}

func (s *contentService) ClearCache(ctx context.Context) {
	if s.fetcher == nil {
		return
	}
	logger.FromContext(ctx).Info("clearing content cache")
	s.fetcher.ClearCache()
}

// Prefetch queues a warm-up job per topic without blocking and returns how
// many were accepted.
func (s *contentService) Prefetch(ctx context.Context, pool *worker.Pool, topicIDs []string) int {
	log := logger.FromContext(ctx)
	if s.fetcher == nil || pool == nil {
		log.Debug("prefetch skipped: no content source")
		return 0
	}
	queued := 0
	for _, id := range topicIDs {
		if pool.TrySubmit(&content.PrefetchJob{Fetcher: s.fetcher, TopicID: id}) {
			queued++
			continue
		}
		log.Warn("prefetch queue full, skipping topic %s", id)
	}
	log.Info("queued %d of %d prefetch jobs", queued, len(topicIDs))
	return queued
}

func (s *contentService) Reading(ctx context.Context) models.ReadingProgress {
	return s.reading.Progress(ctx)
}

func (s *contentService) MarkRead(ctx context.Context, topicID, chapterPath string) (models.ChapterRead, error) {
	logger.FromContext(ctx).Debug("marking chapter read: topic=%s path=%s", topicID, chapterPath)

	if err := requireID("topicId", topicID); err != nil {
		return models.ChapterRead{}, err
	}
	if err := requireID("path", chapterPath); err != nil {
		return models.ChapterRead{}, err
	}
	return s.reading.MarkChapterRead(ctx, topicID, chapterPath), nil
}

func (s *contentService) ResetReading(ctx context.Context) {
	logger.FromContext(ctx).Info("resetting reading progress")
	s.reading.Reset(ctx)
}
