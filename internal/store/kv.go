// Package store provee el almacen clave-valor durable donde vive el
// documento de asociaciones contacto-pokemon.
package store

import (
	"context"
	"sync"
)

// KVStore es un blob store por clave de texto. El segundo retorno de Get
// distingue clave ausente de valor vacio.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type memoryKVStore struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKVStore crea un KVStore en memoria, util para desarrollo y tests.
func NewMemoryKVStore() KVStore {
	return &memoryKVStore{items: make(map[string]string)}
}

func (s *memoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *memoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}
