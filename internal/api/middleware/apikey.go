package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/listkeep/listkeep-api/internal/api/shared"
)

// APIKeyHeader is the request header carrying the deployment API key.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey gates all requests behind a shared deployment key. An empty
// configured key disables the check, which is the default for local
// development.
func RequireAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid API key",
					shared.WithElevatedLogLevel())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
