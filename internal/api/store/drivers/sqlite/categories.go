package sqlite

import (
	"context"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store"
)

type categoriesRepo struct {
	q queryer
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT code, name FROM categories ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetCategory(ctx context.Context, code int64) (domain.Category, error) {
	var c domain.Category
	err := r.q.QueryRowContext(ctx, `SELECT code, name FROM categories WHERE code = ?`, code).
		Scan(&c.Code, &c.Name)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name)
	if err != nil {
		return domain.Category{}, err
	}
	code, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}
	return domain.Category{Code: code, Name: name}, nil
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, code int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE code = ?`, code)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
