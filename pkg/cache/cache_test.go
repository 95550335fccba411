package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

func TestSetGetExpires(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	c := New(store, "cache:")

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "greeting", []string{"hi"}, time.Minute))

	_, err := store.Get(ctx, "cache:greeting")
	require.NoError(t, err, "stored under the prefix")

	var got []string
	assert.True(t, c.Get(ctx, "greeting", &got))
	assert.Equal(t, []string{"hi"}, got)

	now = now.Add(time.Minute)
	assert.False(t, c.Get(ctx, "greeting", &got))
}

func TestGetIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, "cache:x", "not json"))

	var v int
	assert.False(t, New(store, "cache:").Get(ctx, "x", &v))
	assert.False(t, New(store, "cache:").Get(ctx, "missing", &v))
}

func TestForget(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), "")
	require.NoError(t, c.Set(ctx, "k", 1, time.Hour))
	require.NoError(t, c.Forget(ctx, "k"))

	var v int
	assert.False(t, c.Get(ctx, "k", &v))
}

func TestSetRejectsNonPositiveTTL(t *testing.T) {
	assert.Error(t, New(kv.NewMemory(), "").Set(context.Background(), "k", 1, 0))
}

func TestRememberCallsOnceAndNeverCachesErrors(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemory(), "")

	_, _, err := Remember(ctx, c, "n", time.Hour, func() (int, error) { return 0, errors.New("down") })
	require.Error(t, err)

	calls := 0
	fetch := func() (int, error) { calls++; return 42, nil }

	v, hit, err := Remember(ctx, c, "n", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.False(t, hit)

	v, hit, err = Remember(ctx, c, "n", time.Hour, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
}
