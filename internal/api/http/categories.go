package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rutsatz/algamoney-api/internal/api/service"
	"github.com/rutsatz/algamoney-api/pkg/authsdk"
	"github.com/rutsatz/algamoney-api/pkg/httpx"
	"github.com/rutsatz/algamoney-api/pkg/slogx"
)

// CategoriesHandler serves the /categorias resource.
type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// HandleList godoc
//
//	@Summary		List categories
//	@Description	Requires ROLE_PESQUISAR_CATEGORIA and the read scope.
//	@Tags			Categorias
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		authsdk.Category
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Router			/categorias [get]
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.CategoryService.List(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list categories", "error", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// HandleGet godoc
//
//	@Summary		Get a category
//	@Description	Requires ROLE_PESQUISAR_CATEGORIA and the read scope.
//	@Tags			Categorias
//	@Produce		json
//	@Security		BearerAuth
//	@Param			codigo	path		int	true	"Category code"
//	@Success		200		{object}	authsdk.Category
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse
//	@Failure		404		{object}	authsdk.ErrorResponse
//	@Router			/categorias/{codigo} [get]
func (h *CategoriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	code, ok := pathCode(w, r)
	if !ok {
		return
	}

	c, err := h.CategoryService.Get(r.Context(), code)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

// HandleCreate godoc
//
//	@Summary		Create a category
//	@Description	Requires ROLE_CADASTRAR_CATEGORIA and the write scope.
//	@Tags			Categorias
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		authsdk.CreateCategoryRequest	true	"Category"
//	@Success		201		{object}	authsdk.Category
//	@Header			201		{string}	Location	"/categorias/{codigo}"
//	@Failure		400		{object}	authsdk.ErrorResponse
//	@Failure		401		{object}	authsdk.ErrorResponse
//	@Failure		403		{object}	authsdk.ErrorResponse
//	@Router			/categorias [post]
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		authsdk.ErrInvalidJSONBody.WithDescription(err.Error()).WriteError(w)
		return
	}

	c, err := h.CategoryService.Create(r.Context(), req.Name)
	if err != nil {
		writeCategoryError(w, r, err)
		return
	}

	w.Header().Set("Location", "/categorias/"+strconv.FormatInt(c.Code, 10))
	httpx.WriteJSON(w, http.StatusCreated, c)
}

// HandleDelete godoc
//
//	@Summary		Delete a category
//	@Description	Requires ROLE_REMOVER_CATEGORIA and the write scope.
//	@Tags			Categorias
//	@Security		BearerAuth
//	@Param			codigo	path	int	true	"Category code"
//	@Success		204
//	@Failure		401	{object}	authsdk.ErrorResponse
//	@Failure		403	{object}	authsdk.ErrorResponse
//	@Failure		404	{object}	authsdk.ErrorResponse
//	@Router			/categorias/{codigo} [delete]
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	code, ok := pathCode(w, r)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(r.Context(), code); err != nil {
		writeCategoryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathCode(w http.ResponseWriter, r *http.Request) (int64, bool) {
	code, err := strconv.ParseInt(r.PathValue("codigo"), 10, 64)
	if err != nil {
		authsdk.ErrInvalidRequest.WithDescription("codigo must be an integer").WriteError(w)
		return 0, false
	}
	return code, true
}

func writeCategoryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		authsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidCategoryName):
		authsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("category operation failed", "error", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

// NotFoundHandler answers authenticated requests for unknown paths.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	authsdk.ErrNotFound.WithDescription("no route for " + r.Method + " " + r.URL.Path).WriteError(w)
}
