package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

const msgAuthenticationRequired = "Autenticação necessária para acessar este recurso"

// AuthnMiddleware verifies the bearer access token and places its claims on
// the request context. No session is created or consulted.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, describeVerifyError(err))
				return
			}

			// Refresh tokens share the signing secret, keep them off resources
			if !claims.IsAccess() {
				writeBearerError(w, "token is not an access token")
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyAuthorities, c.Authorities)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func describeVerifyError(err error) string {
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return "token expired"
	case errors.Is(err, jwtx.ErrInvalidSig):
		return "token signature invalid"
	case errors.Is(err, jwtx.ErrMalformed):
		return "token malformed"
	default:
		return "token verification failed"
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc, msgAuthenticationRequired)
}
