package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
)

func TestAuthFlagRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAuthRepository(kv.NewMemory())

	_, ok := repo.Get(ctx)
	assert.False(t, ok)

	state := models.AuthState{Email: "ops@revoshop.test", Role: models.RoleAdmin}
	require.NoError(t, repo.Set(ctx, state))

	got, ok := repo.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, state, got)
	assert.True(t, got.IsAdmin())

	require.NoError(t, repo.Logout(ctx))
	_, ok = repo.Get(ctx)
	assert.False(t, ok)
}

func TestAuthFlagUnreadableMeansSignedOut(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	repo := repositories.NewAuthRepository(store)

	require.NoError(t, store.Set(ctx, repositories.AuthKey, "not json"))
	_, ok := repo.Get(ctx)
	assert.False(t, ok)

	_, _, err := repo.State(ctx)
	assert.Error(t, err)

	require.NoError(t, store.Set(ctx, repositories.AuthKey, "null"))
	_, ok = repo.Get(ctx)
	assert.False(t, ok)
}
