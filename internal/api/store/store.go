package store

import (
	"context"
	"errors"
	"time"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories so transactions stay explicit.
type Store interface {
	Users() Users
	Categories() Categories
	ConsumedTokens() ConsumedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. An error from fn rolls back,
	// nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id, authorities included.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during the password grant.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a user and grants its authorities. Unknown
	// authorities are created on the fly.
	CreateUser(ctx context.Context, u domain.User) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Categories interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, code int64) (domain.Category, error)

	// CreateCategory inserts and returns the category with its assigned code.
	CreateCategory(ctx context.Context, name string) (domain.Category, error)

	DeleteCategory(ctx context.Context, code int64) error
}

// ConsumedTokens records refresh token ids that have already been exchanged.
// Implementations must make MarkConsumed atomic: for any jti exactly one
// caller ever sees true.
type ConsumedTokens interface {
	// MarkConsumed records jti until expiresAt. It returns false when the
	// jti was already recorded.
	MarkConsumed(ctx context.Context, jti string, expiresAt time.Time) (bool, error)

	// DeleteExpired drops markers whose token has expired anyway.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
