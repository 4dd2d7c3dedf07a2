package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const usernameKey contextKey = "username"

// TokenVerifier checks a bearer token and returns the username it asserts.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// Auth wraps a handler with a bearer-token gate. On success the verified
// username is threaded through the request context; the request itself is
// never mutated.
func Auth(logger *slog.Logger, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				logger.Warn("missing authorization header", "path", r.URL.Path)
				unauthorized(w, "Missing token")
				return
			}

			username, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Warn("token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext reports the authenticated username, if any. When the
// auth gate is off the value is absent and ok is false.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// bearerToken extracts the token from the Authorization header. The
// "Bearer <token>" scheme is expected, but a bare token is accepted too.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return header
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
