package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to the algamoney API the way the browser client does:
// HTTP Basic client authentication and a cookie jar that carries the
// refresh token between calls.
type SDKClient struct {
	BaseURL      string
	HTTPClient   *http.Client
	ClientID     string
	ClientSecret string

	// CheckScopes makes Sessions refuse calls whose scopes were not granted
	// before hitting the network. Disable it to exercise server-side checks.
	// Default: true
	CheckScopes bool
}

// NewSDKClient creates a client with its own cookie jar.
func NewSDKClient(baseURL, clientID, clientSecret string) *SDKClient {
	jar, _ := cookiejar.New(nil) // only fails with a bad PublicSuffixList

	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
		ClientID:     clientID,
		ClientSecret: clientSecret,
		CheckScopes:  true,
	}
}

// AuthenticateWithPassword runs the password grant and wraps the result in
// a Session.
func (c *SDKClient) AuthenticateWithPassword(
	ctx context.Context,
	username, password string,
	scopes []string,
) (*Session, error) {
	tokenResp, err := c.PasswordGrant(ctx, username, password, scopes)
	if err != nil {
		return nil, err
	}

	return newSession(c, tokenResp), nil
}

// RefreshCookie returns the refresh token currently held in the jar, or ""
// when there is none.
func (c *SDKClient) RefreshCookie() string {
	if c.HTTPClient.Jar == nil {
		return ""
	}

	u, err := url.Parse(c.url(TokenPath))
	if err != nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(u) {
		if ck.Name == RefreshCookieName {
			return ck.Value
		}
	}
	return ""
}
