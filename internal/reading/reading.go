// Package reading tracks which content chapters the learner has read. It is
// stored apart from the progress record and never touches its counters.
package reading

import (
	"context"
	"sync"

	"github.com/vytor/dsamastery/internal/clock"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"github.com/vytor/dsamastery/internal/storage"
)

type Tracker struct {
	store *storage.Store
	clock clock.Clock
	mu    sync.Mutex
}

func NewTracker(store *storage.Store, clk clock.Clock) *Tracker {
	return &Tracker{store: store, clock: clk}
}

// Progress returns the stored reading state, empty when nothing usable is stored.
func (t *Tracker) Progress(ctx context.Context) models.ReadingProgress {
	p := storage.Get(ctx, t.store, storage.ReadingProgressKey, models.ReadingProgress{})
	if p == nil {
		return models.ReadingProgress{}
	}
	return p
}

// MarkChapterRead records the chapter as completed and read now.
func (t *Tracker) MarkChapterRead(ctx context.Context, topicID, chapterPath string) models.ChapterRead {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.Progress(ctx)
	if p[topicID] == nil {
		p[topicID] = map[string]models.ChapterRead{}
	}
	entry := models.ChapterRead{Completed: true, LastRead: t.clock.Now()}
	p[topicID][chapterPath] = entry
	t.store.Set(ctx, storage.ReadingProgressKey, p)

	logger.FromContext(ctx).WithPrefix("reading").Debug("chapter read: %s/%s", topicID, chapterPath)
	return entry
}

func (t *Tracker) IsChapterRead(ctx context.Context, topicID, chapterPath string) bool {
	return t.Progress(ctx)[topicID][chapterPath].Completed
}

// ChaptersRead counts completed chapters in the topic.
func (t *Tracker) ChaptersRead(ctx context.Context, topicID string) int {
	n := 0
	for _, c := range t.Progress(ctx)[topicID] {
		if c.Completed {
			n++
		}
	}
	return n
}

// TopicPercent is the rounded share of totalChapters read, 0 when the topic
// has no chapters.
func (t *Tracker) TopicPercent(ctx context.Context, topicID string, totalChapters int) int {
	return models.Percent(t.ChaptersRead(ctx, topicID), totalChapters)
}

// Reset forgets all reading state.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Remove(ctx, storage.ReadingProgressKey)
}
