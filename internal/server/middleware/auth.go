package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/giantswarm/mcp-eks/internal/broker"
)

// APIKeyHeader is the header carrying the static API key.
const APIKeyHeader = "X-API-Key"

// APIKey creates middleware that requires the given static key in the
// X-API-Key header. An empty key disables the check and the middleware
// passes every request through.
//
// Rejected requests get a 401 with the standard error envelope so clients
// of the query endpoint always see the same response shape.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(broker.Failure(broker.CodeAuthError, "invalid or missing API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
