package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store"
	"github.com/rutsatz/algamoney-api/internal/api/store/drivers/sqlite"
	"github.com/rutsatz/algamoney-api/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	user := domain.User{
		ID:           idx.New().String(),
		Username:     "admin",
		Name:         "Administrador",
		PasswordHash: "hash",
		Active:       true,
		Authorities:  []string{"ROLE_PESQUISAR_CATEGORIA", "ROLE_CADASTRAR_CATEGORIA", "ROLE_AUDITAR"},
	}
	require.NoError(t, s.Users().CreateUser(ctx, user))

	t.Run("lookup by username includes authorities", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "admin")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.True(t, got.Active)
		require.ElementsMatch(t, user.Authorities, got.Authorities)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("lookup by id", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, "admin", got.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := user
		dup.ID = idx.New().String()
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seeded, err := s.Categories().ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 5)
	require.Equal(t, "Lazer", seeded[0].Name)

	created, err := s.Categories().CreateCategory(ctx, "Educação")
	require.NoError(t, err)
	require.Greater(t, created.Code, seeded[len(seeded)-1].Code)

	got, err := s.Categories().GetCategory(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, created, got)

	require.NoError(t, s.Categories().DeleteCategory(ctx, created.Code))
	require.ErrorIs(t, s.Categories().DeleteCategory(ctx, created.Code), store.ErrNotFound)

	_, err = s.Categories().GetCategory(ctx, created.Code)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestConsumedTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now()

	t.Run("second mark reports replay", func(t *testing.T) {
		jti := idx.New().String()

		fresh, err := s.ConsumedTokens().MarkConsumed(ctx, jti, now.Add(time.Hour))
		require.NoError(t, err)
		require.True(t, fresh)

		fresh, err = s.ConsumedTokens().MarkConsumed(ctx, jti, now.Add(time.Hour))
		require.NoError(t, err)
		require.False(t, fresh)
	})

	t.Run("concurrent marks admit exactly one", func(t *testing.T) {
		jti := idx.New().String()

		var wins atomic.Int32
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fresh, err := s.ConsumedTokens().MarkConsumed(ctx, jti, now.Add(time.Hour))
				if err == nil && fresh {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), wins.Load())
	})

	t.Run("expired markers are purged", func(t *testing.T) {
		old := idx.New().String()
		_, err := s.ConsumedTokens().MarkConsumed(ctx, old, now.Add(-time.Minute))
		require.NoError(t, err)

		n, err := s.ConsumedTokens().DeleteExpired(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		// Purged markers no longer count as consumed
		fresh, err := s.ConsumedTokens().MarkConsumed(ctx, old, now.Add(-time.Minute))
		require.NoError(t, err)
		require.True(t, fresh)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("error rolls back", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if _, err := tx.Categories().CreateCategory(ctx, "Rascunho"); err != nil {
				return err
			}
			return store.ErrAlreadyExists
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		list, err := s.Categories().ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 5)
	})

	t.Run("nil commits", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Categories().CreateCategory(ctx, "Viagem")
			return err
		})
		require.NoError(t, err)

		list, err := s.Categories().ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 6)
	})
}
