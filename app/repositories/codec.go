package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

// ParseError reports a persisted value that exists but cannot be decoded.
// The public read paths recover from it by substituting the empty value.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("repositories: malformed %s: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// load decodes the JSON value under key into dst. A missing or empty value
// leaves dst untouched and is not an error.
func load(ctx context.Context, s kv.Store, key string, dst interface{}) error {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("repositories: read %s: %w", key, err)
	}
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &ParseError{Key: key, Err: err}
	}
	return nil
}

func save(ctx context.Context, s kv.Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repositories: encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("repositories: write %s: %w", key, err)
	}
	return nil
}
