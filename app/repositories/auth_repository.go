package repositories

import (
	"context"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
)

// AuthKey holds the JSON {email, role} flag.
const AuthKey = "revoshop_auth"

// AuthRepository stores the demo sign-in flag. There is no password and no
// expiry: the flag lives until Logout.
type AuthRepository struct {
	store kv.Store
}

func NewAuthRepository(store kv.Store) *AuthRepository {
	return &AuthRepository{store: store}
}

// Set persists state verbatim.
func (r *AuthRepository) Set(ctx context.Context, state models.AuthState) error {
	return save(ctx, r.store, AuthKey, state)
}

// State is the strict read. ok is false when nobody is signed in.
func (r *AuthRepository) State(ctx context.Context) (state models.AuthState, ok bool, err error) {
	var s *models.AuthState
	if err := load(ctx, r.store, AuthKey, &s); err != nil {
		return models.AuthState{}, false, err
	}
	if s == nil {
		return models.AuthState{}, false, nil
	}
	return *s, true, nil
}

// Get returns the flag, treating unreadable data as signed out.
func (r *AuthRepository) Get(ctx context.Context) (models.AuthState, bool) {
	state, ok, err := r.State(ctx)
	if err != nil {
		logger.WithCtx(ctx).Warn("auth flag unreadable, treating as signed out", "error", err)
		return models.AuthState{}, false
	}
	return state, ok
}

// Logout removes the flag.
func (r *AuthRepository) Logout(ctx context.Context) error {
	return r.store.Remove(ctx, AuthKey)
}
