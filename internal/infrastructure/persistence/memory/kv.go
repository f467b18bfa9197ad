package memory

import (
	"context"
	"sync"

	"github.com/zenvory/storefront-service/internal/application/ports"
)

// KVStore is an in-process key-value store. It backs the cart when no redis
// is configured and doubles as the storage fake in tests.
type KVStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewKVStore() *KVStore {
	return &KVStore{
		data: make(map[string][]byte),
	}
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
