package repository

import (
	"context"
	"sync"
)

type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{records: make(map[string][]byte)}
}

func (r *MemoryRecordRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.records[key]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *MemoryRecordRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[key] = append([]byte(nil), value...)
	return nil
}

func (r *MemoryRecordRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, key)
	return nil
}
