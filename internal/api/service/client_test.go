package service

import (
	"testing"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestClientRegistry(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cr3t"), bcrypt.MinCost)
	require.NoError(t, err)

	r, err := NewClientRegistry(
		DefaultClient("angular", "@ngul@r0", 0, 0),
		domain.Client{ID: "backoffice", Secret: string(hashed), GrantTypes: []string{domain.GrantPassword}},
	)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	t.Run("zero lifetimes fall back to defaults", func(t *testing.T) {
		c, ok := r.Get("angular")
		require.True(t, ok)
		require.Equal(t, jwtx.DefaultAccessTokenTTL, c.AccessTokenTTL)
		require.Equal(t, jwtx.DefaultRefreshTokenTTL, c.RefreshTokenTTL)
		require.True(t, c.AllowsGrant(domain.GrantRefreshToken))
	})

	t.Run("plain secret", func(t *testing.T) {
		_, err := r.Authenticate("angular", "@ngul@r0")
		require.NoError(t, err)
		_, err = r.Authenticate("angular", "@ngul@r")
		require.ErrorIs(t, err, ErrInvalidClient)
	})

	t.Run("hashed secret", func(t *testing.T) {
		c, err := r.Authenticate("backoffice", "s3cr3t")
		require.NoError(t, err)
		require.False(t, c.AllowsGrant(domain.GrantRefreshToken))
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := r.Authenticate("ghost", "")
		require.ErrorIs(t, err, ErrInvalidClient)
	})
}

func TestClientRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewClientRegistry(
		DefaultClient("angular", "a", time.Minute, time.Hour),
		DefaultClient("angular", "b", time.Minute, time.Hour),
	)
	require.ErrorIs(t, err, ErrDuplicateClient)

	_, err = NewClientRegistry(domain.Client{})
	require.Error(t, err)
}
