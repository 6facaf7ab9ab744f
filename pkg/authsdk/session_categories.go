package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// ListCategories requires ROLE_PESQUISAR_CATEGORIA and the read scope.
func (s *Session) ListCategories(ctx context.Context) ([]Category, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/categorias", nil, nil, "read")
	if err != nil {
		return nil, err
	}

	var out []Category
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory requires ROLE_PESQUISAR_CATEGORIA and the read scope.
func (s *Session) GetCategory(ctx context.Context, code int64) (*Category, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/categorias/"+strconv.FormatInt(code, 10), nil, nil, "read")
	if err != nil {
		return nil, err
	}

	var c Category
	if err := decodeJSON(resp, &c, http.StatusOK); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCategory requires ROLE_CADASTRAR_CATEGORIA and the write scope.
func (s *Session) CreateCategory(ctx context.Context, name string) (*Category, error) {
	body, err := json.Marshal(CreateCategoryRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/categorias", bytes.NewReader(body),
		map[string]string{"Content-Type": "application/json"}, "write")
	if err != nil {
		return nil, err
	}

	var c Category
	if err := decodeJSON(resp, &c, http.StatusCreated); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCategory requires ROLE_REMOVER_CATEGORIA and the write scope.
func (s *Session) DeleteCategory(ctx context.Context, code int64) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/categorias/"+strconv.FormatInt(code, 10), nil, nil, "write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
