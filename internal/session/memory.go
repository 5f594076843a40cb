package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// memoryStore keeps sessions in process memory; they are lost on restart.
type memoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates an in-memory store. Expired entries are evicted by the cache janitor.
func NewMemoryStore(ttl time.Duration) Store {
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &memoryStore{
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

func (s *memoryStore) Create(_ context.Context, creds Credentials) (string, error) {
	id := newID()
	s.cache.Set(id, creds, s.ttl)
	return id, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (Credentials, error) {
	v, found := s.cache.Get(id)
	if !found {
		return Credentials{}, ErrNotFound
	}
	return v.(Credentials), nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
