package sqlite

import (
	"context"
	"fmt"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
)

type usersRepo struct {
	q queryer
}

const userColumns = `id, username, name, password_hash, active, created_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanWithAuthorities(ctx, row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanWithAuthorities(ctx, row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, name, password_hash, active) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Name, u.PasswordHash, u.Active,
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, authority := range u.Authorities {
		if _, err := r.q.ExecContext(ctx,
			`INSERT OR IGNORE INTO permissions (description) VALUES (?)`, authority,
		); err != nil {
			return fmt.Errorf("create permission %q: %w", authority, err)
		}

		if _, err := r.q.ExecContext(ctx,
			`INSERT OR IGNORE INTO user_permissions (user_id, permission_id)
			 SELECT ?, id FROM permissions WHERE description = ?`,
			u.ID, authority,
		); err != nil {
			return fmt.Errorf("grant permission %q: %w", authority, err)
		}
	}

	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *usersRepo) scanWithAuthorities(ctx context.Context, row rowScanner) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Active, &u.CreatedAt); err != nil {
		return domain.User{}, mapNotFound(err)
	}

	authorities, err := r.authorities(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.Authorities = authorities

	return u, nil
}

func (r *usersRepo) authorities(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT p.description
		   FROM permissions p
		   JOIN user_permissions up ON up.permission_id = p.id
		  WHERE up.user_id = ?
		  ORDER BY p.description`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
