package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store"
	"github.com/rutsatz/algamoney-api/pkg/cryptox"
	"github.com/rutsatz/algamoney-api/pkg/idx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidUsername    = errors.New("username is required")
)

// CategoryAuthorities are granted to the seeded administrator.
var CategoryAuthorities = []string{
	domain.AuthorityCreateCategory,
	domain.AuthoritySearchCategory,
	domain.AuthorityRemoveCategory,
}

type UserService struct {
	Store store.Store
}

// CreateUser hashes the password and stores the user with its authorities.
func (s *UserService) CreateUser(
	ctx context.Context,
	username, name, password string,
	authorities []string,
) (domain.User, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrInvalidUsername
	}
	if name == "" {
		name = username
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Active:       true,
		Authorities:  authorities,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		l.Error("failed to create user", "error", err, "username", username)
		return domain.User{}, err
	}

	l.Info("user created", "user_id", u.ID, "username", username, "authorities", authorities)
	return u, nil
}

// Authenticate checks the resource owner's password. Unknown users, wrong
// passwords and inactive accounts all yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if !u.Active {
		return domain.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// SeedAdmin creates the administrator when the user table is empty. It
// returns false when users already exist.
func (s *UserService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}

	if _, err := s.CreateUser(ctx, username, "Administrador", password, CategoryAuthorities); err != nil {
		return false, err
	}
	return true, nil
}
