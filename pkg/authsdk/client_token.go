package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	// TokenPath is the token endpoint, also the refresh cookie's path.
	TokenPath = "/oauth/token"

	// RevokePath clears the refresh cookie.
	RevokePath = "/tokens/revoke"

	// RefreshCookieName is the HttpOnly cookie carrying the refresh token.
	RefreshCookieName = "refreshToken"
)

// PasswordGrant requests tokens with the resource owner's credentials.
func (c *SDKClient) PasswordGrant(
	ctx context.Context,
	username, password string,
	scopes []string,
) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}
	if len(scopes) > 0 {
		data.Set("scope", strings.Join(scopes, " "))
	}

	return c.requestToken(ctx, data)
}

// RefreshGrant requests new tokens. An empty refreshToken relies on the
// refreshToken cookie held in the jar.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"refresh_token"},
	}
	if refreshToken != "" {
		data.Set("refresh_token", refreshToken)
	}

	return c.requestToken(ctx, data)
}

func (c *SDKClient) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(TokenPath), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.ClientID, c.ClientSecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, &tokenResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &tokenResp, nil
}
