package jwtx_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	exampleIssuer = "algamoney-api"
	exampleSecret = "0123456789abcdef0123456789abcdef"
)

func newTestHS256(t *testing.T, now time.Time) *jwtx.HS256 {
	t.Helper()

	s, err := jwtx.NewHS256([]byte(exampleSecret), jwtx.HS256Options{
		Issuer: exampleIssuer,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)
	return s
}

func exampleClaims(now time.Time, ttl time.Duration) jwtx.Claims {
	return jwtx.NewClaims(
		jwtx.UseAccess,
		"user-123",
		"admin",
		"angular",
		exampleIssuer,
		[]string{"ROLE_PESQUISAR_CATEGORIA"},
		[]string{"read", "write"},
		ttl,
		now,
	)
}

func TestHS256SignAndVerify(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	s := newTestHS256(t, now)

	token, err := s.Sign(exampleClaims(now, 30*time.Minute))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "admin", claims.Username)
	require.Equal(t, []string{"ROLE_PESQUISAR_CATEGORIA"}, claims.Authorities)
	require.Equal(t, []string{"read", "write"}, claims.Scopes)
	require.Equal(t, "angular", claims.ClientID)
	require.True(t, claims.IsAccess())
	require.Equal(t, now.Add(30*time.Minute), claims.ExpiresAt.Time)
}

func TestNewHS256RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewHS256(nil, jwtx.HS256Options{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewHS256([]byte("short"), jwtx.HS256Options{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestSignRejectsNonPositiveLifetime(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	s := newTestHS256(t, now)

	_, err := s.Sign(exampleClaims(now, 0))
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)

	_, err = s.Sign(exampleClaims(now, -time.Minute))
	require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Unix(1700000000, 0).UTC()
	token, err := newTestHS256(t, issued).Sign(exampleClaims(issued, 20*time.Second))
	require.NoError(t, err)

	// Same secret, clock moved past expiry
	later := newTestHS256(t, issued.Add(21*time.Second))
	_, err = later.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyTamperedClaims(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	s := newTestHS256(t, now)

	token, err := s.Sign(exampleClaims(now, time.Minute))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	raw["authorities"] = []string{"ROLE_PESQUISAR_CATEGORIA", "ROLE_REMOVER_CATEGORIA"}

	altered, err := json.Marshal(raw)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(altered)

	_, err = s.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()

	other, err := jwtx.NewHS256([]byte(strings.Repeat("x", 32)), jwtx.HS256Options{
		Issuer: exampleIssuer,
		Now:    func() time.Time { return now },
	})
	require.NoError(t, err)

	token, err := other.Sign(exampleClaims(now, time.Minute))
	require.NoError(t, err)

	_, err = newTestHS256(t, now).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyMalformed(t *testing.T) {
	s := newTestHS256(t, time.Now())

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := s.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "token %q", token)
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	s := newTestHS256(t, now)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, exampleClaims(now, time.Minute))
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	s := newTestHS256(t, now)

	c := exampleClaims(now, time.Minute)
	c.Issuer = "someone-else"
	token, err := s.Sign(c)
	require.NoError(t, err)

	_, err = s.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}
