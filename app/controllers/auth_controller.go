package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/revoshop/app/models"
	"github.com/shashiranjanraj/revoshop/app/repositories"
	"github.com/shashiranjanraj/revoshop/pkg/middleware"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

// AuthController manages the demo role flag. There are no passwords; the
// flag only decides which screens the client may use.
type AuthController struct{}

func NewAuthController() *AuthController {
	return &AuthController{}
}

// signInInput keeps the email as sent; only presence and length are checked.
type signInInput struct {
	Email string `json:"email" validate:"required,max=254"`
	Role  string `json:"role"  validate:"required,in=admin|user"`
}

func authFlags(r *http.Request) *repositories.AuthRepository {
	return repositories.NewAuthRepository(middleware.ClientStore(r.Context()))
}

func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var in signInInput
	if !decode(w, r, &in) {
		return
	}

	state := models.AuthState{Email: in.Email, Role: models.Role(in.Role)}
	if err := authFlags(r).Set(r.Context(), state); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, state)
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := authFlags(r).Logout(r.Context()); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"signed_in": false})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	state, ok := authFlags(r).Get(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	response.Success(w, state)
}

// RequireAdmin lets the request through only when the client's flag carries
// the admin role: 401 when signed out, 403 for any other role.
func (c *AuthController) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := authFlags(r).Get(r.Context())
		switch {
		case !ok:
			response.Unauthorized(w)
		case !state.IsAdmin():
			response.Forbidden(w)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
