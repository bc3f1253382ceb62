package middleware

import "net/http"

// DefaultMaxRequestBytes is the default request body limit for the MCP and
// query endpoints.
const DefaultMaxRequestBytes int64 = 10 << 20

// MaxRequestSize creates middleware that limits the request body to maxBytes.
// Reads past the limit fail with an error from http.MaxBytesReader, which
// also closes the connection. A zero or negative limit disables the check.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
