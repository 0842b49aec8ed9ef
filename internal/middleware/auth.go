// Package middleware holds the route gates. RequireAuth and RequireAdmin
// are independent predicates: RequireAuth redirects to the login page when
// no session is attached, while RequireAdmin answers 403 Forbidden even for
// a missing session. Routes that want the redirect behaviour compose
// RequireAuth before RequireAdmin.
package middleware

import (
	"log"
	"net/http"

	"github.com/mvaldes/memberhub/internal/auth"
	"github.com/mvaldes/memberhub/internal/models"
)

// LoadSession attaches the current session to the request context if a
// valid cookie is present. It never rejects the request; pages with
// optional identity use it.
func LoadSession(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := lookup(sessions, r); sess != nil {
				r = r.WithContext(auth.WithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects to the login page unless a session is attached.
// The redirect is navigational, not an error response.
func RequireAuth(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFor(sessions, r)
			if sess == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			r = r.WithContext(auth.WithSession(r.Context(), sess))
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin answers 403 unless the attached session's role snapshot is
// admin. A missing session also yields 403, not a redirect.
func RequireAdmin(sessions auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFor(sessions, r)
			if sess == nil {
				http.Error(w, "403 Forbidden", http.StatusForbidden)
				return
			}
			switch sess.Role {
			case models.RoleAdmin:
				r = r.WithContext(auth.WithSession(r.Context(), sess))
				next.ServeHTTP(w, r)
			case models.RoleUser:
				http.Error(w, "403 Forbidden", http.StatusForbidden)
			default:
				http.Error(w, "403 Forbidden", http.StatusForbidden)
			}
		})
	}
}

// sessionFor prefers a session already attached by an earlier gate and
// falls back to a cookie lookup, so each gate also works standalone.
func sessionFor(sessions auth.SessionStore, r *http.Request) *auth.Session {
	if sess := auth.SessionFromContext(r.Context()); sess != nil {
		return sess
	}
	return lookup(sessions, r)
}

func lookup(sessions auth.SessionStore, r *http.Request) *auth.Session {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		return nil
	}
	sess, err := sessions.Get(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("session lookup: %v", err)
		return nil
	}
	return sess
}
