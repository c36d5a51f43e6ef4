package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/taskboard/pkg/jwtx"
	"github.com/aussiebroadwan/taskboard/pkg/slogx"
)

// Messages returned by AuthnMiddleware.
const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
)

// AuthnMiddleware requires a bearer token. A request with no credential is
// answered 401; any other credential that does not verify as a bearer token
// (including one presented under another scheme) is answered 403. On success
// the caller identity is put on the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			scheme, raw, ok := credential(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, MsgTokenRequired)
				return
			}
			if !strings.EqualFold(scheme, "Bearer") {
				log.Warn("unsupported authorization scheme", "scheme", scheme)
				WriteError(w, http.StatusForbidden, MsgTokenInvalid)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "error", err)
				WriteError(w, http.StatusForbidden, MsgTokenInvalid)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithContext(ctx, log.With("user_id", claims.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// credential splits "Authorization: <scheme> <token>". ok is false when the
// header is absent or carries no token part.
func credential(r *http.Request) (scheme, token string, ok bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, _ = strings.Cut(authz, " ")
	token = strings.TrimSpace(token)
	return scheme, token, token != ""
}
