package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/dsamastery/internal/models"
)

// MockContentFetcher is a mock implementation of content.Fetcher
type MockContentFetcher struct {
	mock.Mock
}

func (m *MockContentFetcher) Manifest(ctx context.Context) (models.ContentManifest, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ContentManifest), args.Error(1)
}

func (m *MockContentFetcher) TopicContent(ctx context.Context, topicID string) (models.TopicContent, bool, error) {
	args := m.Called(ctx, topicID)
	return args.Get(0).(models.TopicContent), args.Bool(1), args.Error(2)
}

func (m *MockContentFetcher) Chapter(ctx context.Context, topicID, chapterPath string) (string, error) {
	args := m.Called(ctx, topicID, chapterPath)
	return args.String(0), args.Error(1)
}

func (m *MockContentFetcher) ClearCache() {
	m.Called()
}
