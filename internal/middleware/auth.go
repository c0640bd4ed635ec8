package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/onnwee/quickcache/internal/apierr"
)

// AdminTokenHeader is the header clients present the admin token in.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdminToken builds middleware that rejects requests unless they
// present token in the AdminTokenHeader. If token is empty the middleware
// is a no-op, passing every request through unauthenticated — that's the
// default for local/dev deployments that never set ADMIN_API_TOKEN.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				apierr.WriteErrorWithContext(w, r, apierr.AuthUnauthorized())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
