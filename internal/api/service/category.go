package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rutsatz/algamoney-api/internal/api/domain"
	"github.com/rutsatz/algamoney-api/internal/api/store"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

const maxCategoryName = 50

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategoryName = errors.New("category name must have between 3 and 50 characters")
)

type CategoryService struct {
	Store store.Store
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, code int64) (domain.Category, error) {
	c, err := s.Store.Categories().GetCategory(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Category{}, ErrCategoryNotFound
	}
	return c, err
}

func (s *CategoryService) Create(ctx context.Context, name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < 3 || n > maxCategoryName {
		return domain.Category{}, ErrInvalidCategoryName
	}

	c, err := s.Store.Categories().CreateCategory(ctx, name)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to create category", "error", err)
		return domain.Category{}, err
	}

	slogx.FromContext(ctx).Info("category created", "codigo", c.Code)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, code int64) error {
	err := s.Store.Categories().DeleteCategory(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
