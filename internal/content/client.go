package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/vytor/dsamastery/internal/errors"
	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	ManifestFile = "content-manifest.json"

	// MaxChapterBytes caps a chapter body; larger chapters are rejected.
	MaxChapterBytes = 4 << 20
)

// Client fetches the content manifest and chapter markdown from a static
// content tree and memoises both. Concurrent requests for the same resource
// share one fetch.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	group      singleflight.Group

	mu       sync.RWMutex
	manifest *models.ContentManifest
	chapters map[string]string
}

// New returns a client rooted at baseURL, which must be absolute.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("content base URL %q must be absolute", baseURL)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		chapters:   map[string]string{},
	}, nil
}

func chapterKey(topicID, chapterPath string) string {
	return topicID + "/" + chapterPath
}

// Manifest returns the content manifest, fetching it on first use.
func (c *Client) Manifest(ctx context.Context) (models.ContentManifest, error) {
	c.mu.RLock()
	cached := c.manifest
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	v, err, _ := c.group.Do(ManifestFile, func() (any, error) {
		var m models.ContentManifest
		body, err := c.get(ctx, "manifest", c.baseURL.JoinPath(ManifestFile))
		if err != nil {
			return nil, err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(&m); err != nil {
			return nil, fmt.Errorf("decode content manifest: %w", err)
		}
		c.mu.Lock()
		c.manifest = &m
		c.mu.Unlock()
		return m, nil
	})
	if err != nil {
		return models.ContentManifest{}, err
	}
	return v.(models.ContentManifest), nil
}

// TopicContent returns the manifest entry for topicID.
func (c *Client) TopicContent(ctx context.Context, topicID string) (models.TopicContent, bool, error) {
	m, err := c.Manifest(ctx)
	if err != nil {
		return models.TopicContent{}, false, err
	}
	tc, ok := m.Topics[topicID]
	return tc, ok, nil
}

// Chapter returns the raw markdown of one chapter, fetching it on first use.
func (c *Client) Chapter(ctx context.Context, topicID, chapterPath string) (string, error) {
	if err := validateChapterRef(topicID, chapterPath); err != nil {
		return "", err
	}
	key := chapterKey(topicID, chapterPath)

	c.mu.RLock()
	text, ok := c.chapters[key]
	c.mu.RUnlock()
	if ok {
		return text, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		body, err := c.get(ctx, "chapter "+key, c.baseURL.JoinPath("content", topicID, chapterPath))
		if err != nil {
			return nil, err
		}
		defer body.Close()
		raw, err := io.ReadAll(io.LimitReader(body, MaxChapterBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read chapter %s: %w", key, err)
		}
		if len(raw) > MaxChapterBytes {
			return nil, errors.NewInternalError(fmt.Errorf("chapter %s exceeds %d bytes", key, MaxChapterBytes))
		}
		text := string(raw)
		c.mu.Lock()
		c.chapters[key] = text
		c.mu.Unlock()
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// IsCached reports whether the chapter is already memoised.
func (c *Client) IsCached(topicID, chapterPath string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.chapters[chapterKey(topicID, chapterPath)]
	return ok
}

// ClearCache drops the memoised manifest and chapters.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manifest = nil
	c.chapters = map[string]string{}
}

func validateChapterRef(topicID, chapterPath string) error {
	if topicID == "" || strings.Contains(topicID, "/") || topicID == "." || topicID == ".." {
		return errors.NewValidationError("topicId", fmt.Sprintf("invalid topic %q", topicID))
	}
	if chapterPath == "" || strings.HasPrefix(chapterPath, "/") {
		return errors.NewValidationError("path", fmt.Sprintf("invalid chapter path %q", chapterPath))
	}
	for _, seg := range strings.Split(chapterPath, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return errors.NewValidationError("path", fmt.Sprintf("invalid chapter path %q", chapterPath))
		}
	}
	return nil
}

// get issues a GET and returns the body of a 200 response. A 404 maps to a
// NotFound AppError.
func (c *Client) get(ctx context.Context, what string, u *url.URL) (io.ReadCloser, error) {
	log := logger.FromContext(ctx).WithPrefix("content").WithField("url", u.String())
	log.Debug("fetching %s", what)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch %s: %v", what, err)
		return nil, err
	}

	log.Debug("%s response received in %v, status=%d", what, time.Since(start), resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.NewNotFoundError("content", what)
	default:
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("%s request failed: status=%d, body=%s", what, resp.StatusCode, string(body))
		return nil, fmt.Errorf("%s status %d: %s", what, resp.StatusCode, string(body))
	}
}
