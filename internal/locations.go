package internal

import (
	"errors"
	"net/http"

	"asset-management-api/internal/models"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.Store.ListLocations(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve locations: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

func (s *Server) getLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.loadLocation(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

func (s *Server) createLocation(w http.ResponseWriter, r *http.Request) {
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	loc, err := models.NewLocationFromPayload(p)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	if err := s.Store.WithTx(ctx, func(tx *store.Store) error { return tx.CreateLocation(ctx, loc) }); err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Int64("location_id", loc.ID).Str("name", loc.Name).Msg("location created")
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Location added successfully", ID: loc.ID})
}

func (s *Server) updateLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.loadLocation(w, r)
	if !ok {
		return
	}
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := loc.ApplyPayload(p); err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	if err := s.Store.WithTx(ctx, func(tx *store.Store) error { return tx.SaveLocation(ctx, loc) }); err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("location updated")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Location updated successfully"})
}

func (s *Server) deleteLocation(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.loadLocation(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.Store.WithTx(ctx, func(tx *store.Store) error { return tx.DeleteLocation(ctx, loc.ID) })
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Location not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("location deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "Location deleted successfully"})
}

func (s *Server) loadLocation(w http.ResponseWriter, r *http.Request) (*models.Location, bool) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Location not found")
		return nil, false
	}
	annotate(r, "location_id", id)

	loc, err := s.Store.GetLocation(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Location not found")
		return nil, false
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve location: "+err.Error(), err)
		return nil, false
	}
	return loc, true
}
