package content

import (
	"context"

	"github.com/vytor/dsamastery/internal/models"
)

// Fetcher is the content access the services depend on.
type Fetcher interface {
	Manifest(ctx context.Context) (models.ContentManifest, error)
	TopicContent(ctx context.Context, topicID string) (models.TopicContent, bool, error)
	Chapter(ctx context.Context, topicID, chapterPath string) (string, error)
	ClearCache()
}

var _ Fetcher = (*Client)(nil)
