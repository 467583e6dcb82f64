package internal

import (
	"errors"
	"net/http"

	"asset-management-api/internal/models"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.ListCategories(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve categories: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCategory(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	c, err := models.NewCategoryFromPayload(p)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.CreateCategory(ctx, c)
	})
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Int64("category_id", c.ID).Str("name", c.Name).Msg("category created")
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Category added successfully", ID: c.ID})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCategory(w, r)
	if !ok {
		return
	}
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := c.ApplyPayload(p); err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.SaveCategory(ctx, c)
	})
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("category updated")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Category updated successfully"})
}

// deleteCategory refuses while any asset still belongs to the category.
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadCategory(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.DeleteCategory(ctx, c.ID)
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("category deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}

// loadCategory fetches the category named by the route and writes the 404 or
// 500 itself when it cannot.
func (s *Server) loadCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	annotate(r, "category_id", id)

	c, err := s.Store.GetCategory(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve category: "+err.Error(), err)
		return nil, false
	}
	return c, true
}
