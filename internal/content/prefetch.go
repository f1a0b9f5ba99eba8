package content

import (
	"context"
	"fmt"

	"github.com/vytor/dsamastery/internal/logger"
)

// PrefetchJob warms the chapter cache for one topic. It runs on the worker
// pool and keeps going past individual chapter failures.
type PrefetchJob struct {
	Fetcher Fetcher
	TopicID string
}

func (j *PrefetchJob) Name() string { return "prefetch_content:" + j.TopicID }

func (j *PrefetchJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("topic", j.TopicID)

	tc, ok, err := j.Fetcher.TopicContent(ctx, j.TopicID)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if !ok {
		log.Warn("topic has no content entry, nothing to prefetch")
		return nil
	}

	chapters := FlattenChapters(tc.Chapters)
	failed := 0
	for _, ch := range chapters {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := j.Fetcher.Chapter(ctx, j.TopicID, ch.Path); err != nil {
			failed++
			log.Warn("prefetch %s failed: %v", ch.Path, err)
		}
	}

	log.Info("prefetched %d/%d chapters", len(chapters)-failed, len(chapters))
	if failed > 0 {
		return fmt.Errorf("%d of %d chapters failed", failed, len(chapters))
	}
	return nil
}
