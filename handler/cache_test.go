// file: handler/cache_test.go

package handler

import (
	"context"
	"sync"
	"time"
)

// fakeCache is an in-memory cache.Provider so handler tests can run a
// real token provider without Redis. Keys never expire on their own.
type fakeCache struct {
	mu      sync.Mutex
	strings map[string]string
	bytes   map[string][]byte
	sets    map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		strings: make(map[string]string),
		bytes:   make(map[string][]byte),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strings[key], nil
}

func (f *fakeCache) SetString(ctx context.Context, key, value string, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings[key] = value
	return nil
}

func (f *fakeCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bytes[key], nil
}

func (f *fakeCache) SetBytes(ctx context.Context, key string, value []byte, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bytes[key] = value
	return nil
}

func (f *fakeCache) AddToSet(ctx context.Context, setKey, value string, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[setKey] == nil {
		f.sets[setKey] = make(map[string]struct{})
	}
	f.sets[setKey][value] = struct{}{}
	return nil
}

func (f *fakeCache) GetSet(ctx context.Context, setKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.sets[setKey]))
	for member := range f.sets[setKey] {
		members = append(members, member)
	}
	return members, nil
}

func (f *fakeCache) RemoveFromSet(ctx context.Context, setKey, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sets[setKey], value)
	return nil
}

func (f *fakeCache) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, key)
	delete(f.bytes, key)
	delete(f.sets, key)
	return nil
}
