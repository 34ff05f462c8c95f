package middleware

import (
	"net/http"
	"strings"
)

// CORS header values. This API is public and browser-facing: any origin
// may call it, so the allowed origin is reflected back rather than
// checked against a whitelist. Credentials are never allowed under this
// policy.
var (
	corsAllowedMethods = strings.Join([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}, ", ")
	corsAllowedHeaders = strings.Join([]string{"Content-Type", "Authorization", "Accept", RequestIDHeader}, ", ")
)

// corsMaxAge is the preflight cache duration in seconds (24 hours).
const corsMaxAge = "86400"

// CORS returns a middleware that permits cross-origin requests from any
// origin and answers preflight OPTIONS requests.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// No Origin header = same-origin request, skip CORS
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

			// Handle preflight request
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
