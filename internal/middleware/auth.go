package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/pokevault/pokevault/internal/auth"
	"github.com/pokevault/pokevault/internal/metrics"
	"github.com/pokevault/pokevault/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger  *slog.Logger
	Tokens  *auth.TokenIssuer
	Metrics metrics.Recorder
}

// Auth returns a middleware that authenticates requests with bearer
// tokens. It extracts the token from the Authorization header, verifies
// it, and injects the verified subject into the request context. Any
// failure short-circuits with the same 401 body; the downstream handler
// is never invoked.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected()
				writeAuthError(w)
				return
			}

			subjectID, err := cfg.Tokens.Verify(token)
			if err != nil {
				// Reason is logged, never surfaced: the response body is
				// identical for malformed, forged, and expired tokens.
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				recorder.IncAuthRejected()
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{UserID: subjectID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing token","code":"UNAUTHORIZED"}`))
}
