package httpx

import (
	"net/http"
	"slices"
	"strings"
)

const msgAccessDenied = "Acesso negado"

// Rule is an authorization predicate evaluated against the verified token.
type Rule struct {
	Authorities []string
	Scopes      []string
}

// HasAuthority requires the user authority to be present in the token.
func HasAuthority(authority string) Rule { return Rule{Authorities: []string{authority}} }

// HasScope requires the client scope to be present in the token.
func HasScope(scope string) Rule { return Rule{Scopes: []string{scope}} }

// All combines rules into their conjunction.
func All(rules ...Rule) Rule {
	var out Rule
	for _, r := range rules {
		out.Authorities = append(out.Authorities, r.Authorities...)
		out.Scopes = append(out.Scopes, r.Scopes...)
	}
	return out
}

// Authorize must run after AuthnMiddleware. A missing authority is reported
// as access_denied, a missing scope as insufficient_scope; both are 403.
func Authorize(rule Rule) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// 1. Authorities granted to the user
			have := authoritiesFromCtx(ctx)
			for _, a := range rule.Authorities {
				if !slices.Contains(have, a) {
					WriteError(w, http.StatusForbidden, "access_denied",
						"missing authority "+a, msgAccessDenied)
					return
				}
			}

			// 2. Scopes granted to the client
			if !containsAll(scopesFromCtx(ctx), rule.Scopes) {
				writeBearerScopeError(w, http.StatusForbidden, rule.Scopes...)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsAll(have, want []string) bool {
	for _, s := range want {
		if !slices.Contains(have, s) {
			return false
		}
	}
	return true
}

// RFC 6750-compliant error response for bearer insufficient_scope.
func writeBearerScopeError(w http.ResponseWriter, code int, required ...string) {
	scope := strings.Join(required, " ")
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+scope+`"`)
	WriteError(w, code, "insufficient_scope", "required scope: "+scope, msgAccessDenied)
}
