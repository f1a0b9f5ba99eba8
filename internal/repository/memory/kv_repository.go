// Package memory holds in-process repository implementations used by tests
// and by the --memory server flag.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vytor/dsamastery/internal/repository"
)

type kvRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVRepository returns an empty map-backed KVRepository.
func NewKVRepository() repository.KVRepository {
	return &kvRepository{values: map[string][]byte{}}
}

func (r *kvRepository) Get(_ context.Context, key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (r *kvRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = append([]byte(nil), value...)
	return nil
}

func (r *kvRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *kvRepository) Keys(_ context.Context, prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := []string{}
	for k := range r.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *kvRepository) DeletePrefix(_ context.Context, prefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.values {
		if strings.HasPrefix(k, prefix) {
			delete(r.values, k)
			n++
		}
	}
	return n, nil
}
