package handler

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SessionCookie carries the session id for browser clients. API clients
// send it as "Authorization: Bearer <id>" instead.
const SessionCookie = "ujjiboni_session"

// SessionSource is the part of the session store the auth gate reads.
type SessionSource interface {
	Refresh(ctx context.Context) error
	Authorize(sessionID string) bool
}

type authorizedKey struct{}

// RequestIDMiddleware propagates or assigns X-Request-ID and hands it to
// the backend client through the request context.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(response.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(response.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(backend.WithRequestID(r.Context(), id)))
	})
}

// IdentifySession records whether the caller holds the signed-in session.
// The store is reloaded first so a logout by another process is seen
// immediately.
func IdentifySession(sessions SessionSource) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := sessions.Refresh(r.Context()); err != nil {
				log.Printf("Error refreshing session state: %v", err)
			}
			ok := sessions.Authorize(sessionID(r))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authorizedKey{}, ok)))
		})
	}
}

// RequireSession rejects callers IdentifySession did not recognise.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r.Context()) {
			response.Unauthorized(w, "Please log in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func authorized(ctx context.Context) bool {
	ok, _ := ctx.Value(authorizedKey{}).(bool)
	return ok
}

func sessionID(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if id, found := strings.CutPrefix(header, "Bearer "); found {
			return strings.TrimSpace(id)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
