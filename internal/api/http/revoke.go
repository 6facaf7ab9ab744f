package http

import (
	"net/http"

	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// RevokeHandler serves DELETE /tokens/revoke. It only clears the refresh
// cookie; issued tokens stay valid until they expire.
type RevokeHandler struct {
	Bridge *RefreshCookieBridge
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Clears the refreshToken cookie. Access tokens already issued remain valid until they expire.
//	@Tags			OAuth2
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	authsdk.ErrorResponse	"error, error_description, user_message"
//	@Header			204	{string}	Set-Cookie				"refreshToken=; Path=/oauth/token; Max-Age=0; HttpOnly"
//	@Router			/tokens/revoke [delete]
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if claims, ok := httpx.ClaimsFromContext(r.Context()); ok {
		slogx.FromContext(r.Context()).Info("refresh cookie cleared", "user_id", claims.Subject)
	}

	h.Bridge.ClearCookie(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
