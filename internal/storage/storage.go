// Package storage is a best-effort JSON blob store over a key/value backend.
// Reads never fail: missing or unreadable values fall back to the caller's
// default. Writes never fail either; errors are logged and dropped.
package storage

import (
	"context"
	"encoding/json"

	"github.com/vytor/dsamastery/internal/logger"
	"github.com/vytor/dsamastery/internal/repository"
)

// Well-known keys.
const (
	KeyPrefix          = "dsa-mastery"
	ProgressKey        = "dsa-mastery-progress"
	ReadingProgressKey = "dsa-reading-progress"
	ThemeKey           = "dsa-mastery-theme"
	SidebarKey         = "dsa-sidebar-collapsed"
)

type Store struct {
	repo repository.KVRepository
}

func New(repo repository.KVRepository) *Store {
	return &Store{repo: repo}
}

// Get decodes the value under key into a T, returning def when the key is
// absent, the backend fails, or the stored bytes do not decode.
func Get[T any](ctx context.Context, s *Store, key string, def T) T {
	log := logger.FromContext(ctx).WithPrefix("storage")

	raw, found, err := s.repo.Get(ctx, key)
	if err != nil {
		log.Warn("read %s failed, using default: %v", key, err)
		return def
	}
	if !found {
		return def
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("corrupt value under %s, using default: %v", key, err)
		return def
	}
	return v
}

// Set encodes v and writes it under key. Failures are logged only.
func (s *Store) Set(ctx context.Context, key string, v any) {
	log := logger.FromContext(ctx).WithPrefix("storage")

	raw, err := json.Marshal(v)
	if err != nil {
		log.Error("encode %s failed: %v", key, err)
		return
	}
	if err := s.repo.Put(ctx, key, raw); err != nil {
		log.Error("write %s failed: %v", key, err)
	}
}

// Remove deletes key. Failures are logged only.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).WithPrefix("storage").Error("remove %s failed: %v", key, err)
	}
}

// Has reports whether key holds a value. Backend errors read as absent.
func (s *Store) Has(ctx context.Context, key string) bool {
	_, found, err := s.repo.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("storage").Warn("read %s failed: %v", key, err)
		return false
	}
	return found
}

// ClearAll removes every key starting with prefix, or KeyPrefix when empty.
func (s *Store) ClearAll(ctx context.Context, prefix string) {
	log := logger.FromContext(ctx).WithPrefix("storage")
	if prefix == "" {
		prefix = KeyPrefix
	}
	n, err := s.repo.DeletePrefix(ctx, prefix)
	if err != nil {
		log.Error("clear %s* failed: %v", prefix, err)
		return
	}
	log.Info("cleared %d keys with prefix %s", n, prefix)
}

// Keys lists stored keys under prefix; errors yield an empty list.
func (s *Store) Keys(ctx context.Context, prefix string) []string {
	keys, err := s.repo.Keys(ctx, prefix)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("storage").Warn("list %s* failed: %v", prefix, err)
		return []string{}
	}
	return keys
}
