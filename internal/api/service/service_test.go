package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store/drivers/sqlite"
	"github.com/rutsatz/algamoney-api/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret       = "0123456789abcdef0123456789abcdef"
	testIssuer       = "algamoney-test"
	testClientSecret = "@ngul@r0"
)

type fixture struct {
	now    time.Time
	store  *sqlite.Store
	hs     *jwtx.HS256
	users  *UserService
	tokens *TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{now: time.Now().Truncate(time.Second)}
	clock := func() time.Time { return f.now }

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "service.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	f.store = s

	hs, err := jwtx.NewHS256([]byte(testSecret), jwtx.HS256Options{Issuer: testIssuer, Now: clock})
	require.NoError(t, err)
	f.hs = hs

	clients, err := NewClientRegistry(
		DefaultClient("angular", testClientSecret, 30*time.Minute, 24*time.Hour),
		domain.Client{
			ID:         "mobile",
			Secret:     "m0b1l3",
			GrantTypes: []string{domain.GrantPassword},
			Scopes:     []string{"read"},
		},
	)
	require.NoError(t, err)

	f.users = &UserService{Store: s}
	_, err = f.users.SeedAdmin(context.Background(), "admin", "admin")
	require.NoError(t, err)

	f.tokens = &TokenService{
		Signer:   hs,
		Verifier: hs,
		Clients:  clients,
		Users:    f.users,
		Consumed: s.ConsumedTokens(),
		Issuer:   testIssuer,
		Now:      clock,
	}
	return f
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
