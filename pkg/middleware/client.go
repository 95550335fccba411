package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/pkg/auth"
	"github.com/shashiranjanraj/revoshop/pkg/kv"
	"github.com/shashiranjanraj/revoshop/pkg/logger"
	"github.com/shashiranjanraj/revoshop/pkg/response"
)

type clientKey struct{}

type client struct {
	id    string
	store kv.Store
}

// NamespaceFor is the storage namespace owned by clientID.
func NamespaceFor(clientID string) string {
	return "revoshop:" + clientID
}

// ClientScope resolves the signed client cookie, issuing a new client id when
// it is missing or invalid, and puts that client's namespaced store in the
// request context. Writes through the store are published to notifier.
func ClientScope(base kv.Store, notifier *kv.Notifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := clientFromCookie(r)
			if !ok {
				id = auth.NewClientID()
				token, err := auth.IssueClientToken(id)
				if err != nil {
					logger.WithCtx(r.Context()).Error("issue client token", "error", err)
					response.ServerError(w)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     config.ClientCookie(),
					Value:    token,
					Path:     "/",
					MaxAge:   int(auth.ClientTTL.Seconds()),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			store := kv.Observe(kv.Namespace(base, NamespaceFor(id)), notifier)
			ctx := context.WithValue(r.Context(), clientKey{}, client{id: id, store: store})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(config.ClientCookie())
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := auth.ParseClientToken(c.Value)
	if err != nil {
		logger.WithCtx(r.Context()).Debug("client cookie rejected", "error", err)
		return "", false
	}
	return id, true
}

// ClientID returns the client id set by ClientScope, or "".
func ClientID(ctx context.Context) string {
	c, _ := ctx.Value(clientKey{}).(client)
	return c.id
}

// ClientStore returns the store set by ClientScope. It panics when the
// middleware is not installed on the route.
func ClientStore(ctx context.Context) kv.Store {
	c, ok := ctx.Value(clientKey{}).(client)
	if !ok {
		panic("middleware: ClientScope is not installed")
	}
	return c.store
}
