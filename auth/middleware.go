package auth

import (
	"context"
	"net/http"
)

type ctxKey string

const sessionCtxKey = ctxKey("session")

// Middleware resolves or starts the request's session and attaches it
// to the context. Every route, public or not, runs behind it.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := m.Load(r)
		if !ok {
			s = m.Start(w)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext extracts the request's session. Returns nil outside the
// session middleware.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionCtxKey).(*Session)
	return s
}

// RequireSession redirects unauthenticated requests to /login after
// recording the originally requested path for the post-login redirect.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		if s == nil || !s.Authenticated() {
			if s != nil && r.Method == http.MethodGet {
				s.SaveRedirect(r.URL.RequestURI())
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole layers a role check on top of RequireSession. A session
// with the wrong role is silently sent to the home page, not shown an
// error.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if FromContext(r.Context()).Role() != role {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
