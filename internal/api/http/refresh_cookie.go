package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/pkg/authsdk"
	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// OpIssueToken tags the token endpoint. The bridge only touches requests and
// responses carrying this tag.
const OpIssueToken httpx.Operation = "issue_token"

// TokenRequest is the token endpoint input after the bridge has merged the
// Basic credentials, the form body and the refresh cookie. It is never
// modified once placed on the context.
type TokenRequest struct {
	GrantType    string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	RefreshToken string
	Scopes       []string
}

type tokenRequestKey struct{}

// TokenRequestFrom returns the request built by the inbound bridge.
func TokenRequestFrom(ctx context.Context) (TokenRequest, bool) {
	tr, ok := ctx.Value(tokenRequestKey{}).(TokenRequest)
	return tr, ok
}

// ParseTokenRequest reads the form body and client credentials. HTTP Basic
// takes precedence over client_id/client_secret form fields.
func ParseTokenRequest(r *http.Request) (TokenRequest, error) {
	if err := r.ParseForm(); err != nil {
		return TokenRequest{}, err
	}

	tr := TokenRequest{
		GrantType:    strings.TrimSpace(r.PostForm.Get("grant_type")),
		ClientID:     strings.TrimSpace(r.PostForm.Get("client_id")),
		ClientSecret: r.PostForm.Get("client_secret"),
		Username:     strings.TrimSpace(r.PostForm.Get("username")),
		Password:     r.PostForm.Get("password"),
		RefreshToken: r.PostForm.Get("refresh_token"),
		Scopes:       httpx.ParseSpaceDelimitedFields(r.PostForm.Get("scope")),
	}
	if id, secret, ok := r.BasicAuth(); ok {
		tr.ClientID, tr.ClientSecret = id, secret
	}
	return tr, nil
}

// RefreshCookieBridge keeps the refresh token out of script reach. Inbound,
// it promotes the refreshToken cookie into the refresh grant's input.
// Outbound, it moves refresh_token from the JSON body into that cookie.
type RefreshCookieBridge struct {
	// Enabled turns the cookie contract on. When off, the refresh token stays
	// in the body and cookies are ignored.
	Enabled bool

	Secure   bool
	SameSite http.SameSite

	// Lifetime returns the refresh token lifetime for a client, used as the
	// cookie Max-Age.
	Lifetime func(clientID string) time.Duration
}

// Middleware applies both halves. It must run inside httpx.Tag(OpIssueToken).
func (b *RefreshCookieBridge) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if op, _ := httpx.OperationFrom(r.Context()); op != OpIssueToken {
			next.ServeHTTP(w, r)
			return
		}

		r = b.inbound(r)

		if !b.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		buf := &bufferedWriter{header: w.Header()}
		next.ServeHTTP(buf, r)
		b.outbound(w, r, buf)
	})
}

func (b *RefreshCookieBridge) inbound(r *http.Request) *http.Request {
	// Content-type errors are reported by the handler
	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		return r
	}

	tr, err := ParseTokenRequest(r)
	if err != nil {
		return r
	}

	if b.Enabled && tr.GrantType == domain.GrantRefreshToken {
		if c, err := r.Cookie(authsdk.RefreshCookieName); err == nil && c.Value != "" {
			tr.RefreshToken = c.Value
		}
	}

	return r.WithContext(context.WithValue(r.Context(), tokenRequestKey{}, tr))
}

func (b *RefreshCookieBridge) outbound(w http.ResponseWriter, r *http.Request, buf *bufferedWriter) {
	status := buf.status
	if status == 0 {
		status = http.StatusOK
	}
	body := buf.body.Bytes()

	if status == http.StatusOK {
		if rewritten, refresh, ok := stripRefreshToken(body); ok {
			clientID := ""
			if tr, ok := TokenRequestFrom(r.Context()); ok {
				clientID = tr.ClientID
			}
			http.SetCookie(w, b.cookie(refresh, b.lifetime(clientID)))
			w.Header().Set("Content-Length", strconv.Itoa(len(rewritten)))
			w.WriteHeader(status)
			_, _ = w.Write(rewritten)
			return
		}
	}

	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slogx.FromContext(r.Context()).Debug("failed to write token response", "error", err)
	}
}

// ClearCookie expires the refresh cookie in the browser.
func (b *RefreshCookieBridge) ClearCookie(w http.ResponseWriter) {
	c := b.cookie("", 0)
	c.MaxAge = -1 // emitted as Max-Age=0
	http.SetCookie(w, c)
}

func (b *RefreshCookieBridge) cookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     authsdk.RefreshCookieName,
		Value:    value,
		Path:     authsdk.TokenPath,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   b.Secure,
		SameSite: b.SameSite,
	}
}

func (b *RefreshCookieBridge) lifetime(clientID string) time.Duration {
	if b.Lifetime != nil {
		if d := b.Lifetime(clientID); d > 0 {
			return d
		}
	}
	return jwtx.DefaultRefreshTokenTTL
}

// stripRefreshToken removes refresh_token from a JSON object body. ok is
// false when the body is not an object or carries no refresh token.
func stripRefreshToken(body []byte) (out []byte, refresh string, ok bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, "", false
	}

	raw, present := fields["refresh_token"]
	if !present {
		return nil, "", false
	}
	if err := json.Unmarshal(raw, &refresh); err != nil || refresh == "" {
		return nil, "", false
	}
	delete(fields, "refresh_token")

	out, err := json.Marshal(fields)
	if err != nil {
		return nil, "", false
	}
	return append(out, '\n'), refresh, true
}

// bufferedWriter holds the handler's response so the bridge can rewrite it.
// Headers go straight to the real writer's map.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}
