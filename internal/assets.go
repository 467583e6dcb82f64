package internal

import (
	"context"
	"errors"
	"net/http"

	"asset-management-api/internal/models"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.Store.ListAssets(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve assets: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, assetViews(assets))
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	annotate(r, "asset_id", id)

	a, err := s.Store.GetAsset(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve asset: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewAssetView(*a))
}

// createAsset validates the whole payload, dates included, before resolving
// category and location so a rejected request creates nothing.
func (s *Server) createAsset(w http.ResponseWriter, r *http.Request) {
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, "Failed to add asset: "+err.Error(), err)
		return
	}
	a, refs, err := models.NewAssetFromPayload(p)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	if a.CategoryID, a.LocationID, err = s.resolveRefs(ctx, refs); err != nil {
		fail(w, r, http.StatusBadRequest, "Failed to add asset: "+err.Error(), err)
		return
	}

	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.CreateAsset(ctx, a)
	})
	if err != nil {
		fail(w, r, http.StatusBadRequest, "Failed to add asset: "+err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Int64("asset_id", a.ID).Str("asset_code", a.AssetCode).Msg("asset created")
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Asset added successfully", ID: a.ID})
}

func (s *Server) updateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	annotate(r, "asset_id", id)

	ctx := r.Context()
	a, err := s.Store.GetAsset(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "An unexpected error occurred during asset update: "+err.Error(), err)
		return
	}

	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	refs, err := a.ApplyPayload(p)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	if a.CategoryID, a.LocationID, err = s.resolveRefs(ctx, refs); err == nil {
		err = s.Store.WithTx(ctx, func(tx *store.Store) error {
			return tx.SaveAsset(ctx, a)
		})
	}
	switch {
	case err == nil:
	case errors.Is(err, store.ErrConstraint):
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	default:
		fail(w, r, http.StatusInternalServerError, "An unexpected error occurred during asset update: "+err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("asset updated")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Asset updated successfully"})
}

func (s *Server) deleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	annotate(r, "asset_id", id)

	ctx := r.Context()
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.DeleteAsset(ctx, id)
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Asset not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("asset deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Asset deleted successfully"})
}

// resolveRefs looks up or creates the category and location an asset payload
// names. Rows it creates are committed even if the asset write then fails.
func (s *Server) resolveRefs(ctx context.Context, refs models.AssetRefs) (categoryID, locationID int64, err error) {
	l := zerolog.Ctx(ctx)

	cat, created, err := s.Store.ResolveCategory(ctx, refs.CategoryName, nil)
	if err != nil {
		return 0, 0, err
	}
	if created {
		l.Info().Int64("category_id", cat.ID).Str("name", cat.Name).Msg("auto-created category")
		s.Metrics.AutoCreated("category")
	}

	loc, created, err := s.Store.ResolveLocation(ctx, refs.LocationName, nil)
	if err != nil {
		return 0, 0, err
	}
	if created {
		l.Info().Int64("location_id", loc.ID).Str("name", loc.Name).Msg("auto-created location")
		s.Metrics.AutoCreated("location")
	}

	return cat.ID, loc.ID, nil
}

func assetViews(assets []models.Asset) []models.AssetView {
	out := make([]models.AssetView, len(assets))
	for i, a := range assets {
		out[i] = models.NewAssetView(a)
	}
	return out
}
