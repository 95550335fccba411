// Package kv is the key-value storage layer behind every client namespace.
//
// A Store is a string-keyed, string-valued map with Get, Set and Remove. The
// drivers (memory, redis, database, mongo, s3) all satisfy it; wrappers add
// key namespacing (Namespace), change notification (Observe) and metrics
// (Instrument). Callers hold the Store interface only:
//
//	base, err := kv.Open(ctx)
//	store := kv.Observe(kv.Namespace(base, "revoshop:"+clientID), notifier)
//	raw, err := store.Get(ctx, "revoshop_cart")
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was removed.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal persistent key-value contract.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close() error
}

// Ping checks s when it is a Pinger. Local stores are always reachable.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases s when it is a Closer.
func Close(s Store) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
