package blob

import (
	"context"
	"sync"

	"photovault/internal/metrics"
)

// MemoryStore keeps blobs in process memory. Contents are lost on restart;
// pair it with an S3 backing via Tiered when durability matters.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]Object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Object)}
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = Object{ContentType: contentType, Data: data}
	metrics.BlobCacheEntries.Set(float64(len(m.blobs)))
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &obj, nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	metrics.BlobCacheEntries.Set(float64(len(m.blobs)))
	return nil
}

// Len reports the number of cached blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
