// file: cache/provider.go

// Package cache defines the narrow key-value contract the session registry
// and the catalog caching paths run on, and its Redis implementation.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is wrapped by every provider error that stems from the
// backing store rather than from the caller. Callers match it with
// errors.Is; the provider never retries internally.
var ErrUnavailable = errors.New("cache storage unavailable")

// Provider is a strongly-typed facade over the shared key-value store.
//
// A zero expiry means "no TTL". A missing key is not an error: string
// reads return "", byte reads return nil, set reads return an empty
// slice. Deleting an absent key succeeds. Any infrastructure fault
// surfaces as an error wrapping ErrUnavailable.
type Provider interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string, expiry time.Duration) error

	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, expiry time.Duration) error

	// AddToSet inserts value into the set at setKey. A non-zero expiry
	// refreshes the TTL of the whole set key.
	AddToSet(ctx context.Context, setKey, value string, expiry time.Duration) error
	GetSet(ctx context.Context, setKey string) ([]string, error)
	RemoveFromSet(ctx context.Context, setKey, value string) error

	Remove(ctx context.Context, key string) error
}
