package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/rutsatz/algamoney-api/pkg/authsdk"
	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// TokenHandler serves POST /oauth/token.
// Accepts application/x-www-form-urlencoded per RFC 6749.
type TokenHandler struct {
	TokenService *service.TokenService
	Metrics      *Metrics
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Issues an access token and a refresh token for the password and refresh_token grants.
//	@Description	The client authenticates with HTTP Basic. The refresh token is returned in the refreshToken cookie (HttpOnly, Path=/oauth/token) and removed from the body.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Grant type"	Enums(password, refresh_token)
//	@Param			username		formData	string					false	"Resource owner username (password grant)"
//	@Param			password		formData	string					false	"Resource owner password (password grant)"
//	@Param			scope			formData	string					false	"Space-delimited list of scopes"
//	@Param			client_id		formData	string					false	"Client id when HTTP Basic is not used"
//	@Param			client_secret	formData	string					false	"Client secret when HTTP Basic is not used"
//	@Success		200				{object}	authsdk.TokenResponse	"access_token, token_type, expires_in, scope, jti"
//	@Failure		400				{object}	authsdk.ErrorResponse	"error, error_description, user_message"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description, user_message"
//	@Failure		429				{object}	authsdk.ErrorResponse	"error, error_description, user_message"
//	@Failure		500				{object}	authsdk.ErrorResponse	"error, error_description, user_message"
//	@Header			200				{string}	Set-Cookie				"refreshToken=...; Path=/oauth/token; HttpOnly"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Router			/oauth/token [post]
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// 1. Ensure the right content-type
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		h.fail(w, authsdk.ErrInvalidContentType)
		return
	}

	// 2. Use the bridged request, or parse it here when no bridge ran
	tr, ok := TokenRequestFrom(ctx)
	if !ok {
		var err error
		if tr, err = ParseTokenRequest(r); err != nil {
			h.fail(w, authsdk.ErrInvalidFormBody)
			return
		}
	}

	if tr.ClientID == "" {
		h.fail(w, authsdk.ErrInvalidClient.WithDescription("client authentication required"))
		return
	}

	// 3. Handle the grant type
	var (
		pair *domain.TokenPair
		err  error
	)
	switch tr.GrantType {
	case domain.GrantPassword:
		if tr.Username == "" || tr.Password == "" {
			h.fail(w, authsdk.ErrInvalidRequest.WithDescription("username and password are required"))
			return
		}
		pair, err = h.TokenService.IssueFromPassword(ctx, tr.ClientID, tr.ClientSecret, tr.Username, tr.Password, tr.Scopes)
	case domain.GrantRefreshToken:
		pair, err = h.TokenService.IssueFromRefresh(ctx, tr.ClientID, tr.ClientSecret, tr.RefreshToken, tr.Scopes)
	default:
		h.fail(w, authsdk.ErrUnsupportedGrantType)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			h.fail(w, authsdk.ErrInvalidClient)
		case errors.Is(err, service.ErrUnauthorizedClient):
			h.fail(w, authsdk.ErrUnauthorizedClient)
		case errors.Is(err, service.ErrInvalidScope):
			h.fail(w, authsdk.ErrInvalidScope.WithDescription(err.Error()))
		case errors.Is(err, service.ErrInvalidGrant):
			oe := authsdk.ErrInvalidGrant.WithDescription(err.Error())
			if tr.GrantType == domain.GrantRefreshToken {
				oe.UserMessage = "Sessão expirada, faça login novamente"
			}
			h.fail(w, oe)
		default:
			log.Error("token grant failed", "grant_type", tr.GrantType, "err", err)
			h.fail(w, authsdk.ErrServerError)
		}
		return
	}

	h.Metrics.tokenIssued(tr.GrantType)

	response := authsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
		Scope:        strings.TrimSpace(pair.Scope),
		JTI:          pair.AccessTokenID,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

func (h *TokenHandler) fail(w http.ResponseWriter, e *authsdk.OAuth2Error) {
	h.Metrics.tokenFailed(e.Code)
	if e.Code == authsdk.ErrorCodeInvalidClient {
		w.Header().Set("WWW-Authenticate", `Basic realm="oauth2/client"`)
	}
	e.WriteError(w)
}
