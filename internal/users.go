package internal

import (
	"errors"
	"net/http"

	"asset-management-api/internal/models"
	"asset-management-api/internal/store"

	"github.com/rs/zerolog"
)

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Store.ListUsers(r.Context())
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve users: "+err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, "Failed to add user: "+err.Error(), err)
		return
	}
	u, err := models.NewUserFromPayload(p)
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.CreateUser(ctx, u)
	})
	if err != nil {
		fail(w, r, http.StatusBadRequest, "Failed to add user: "+err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Int64("user_id", u.ID).Str("emp_id", u.EmpID).Msg("user created")
	writeJSON(w, http.StatusCreated, messageResponse{Message: "User added successfully", ID: u.ID})
}

// updateUser merges the payload into the stored user. Unique key clashes are
// the client's fault and answer 400; anything else is a 500.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUser(w, r)
	if !ok {
		return
	}
	p, err := models.ParsePayload(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}
	if err := u.ApplyPayload(p); err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	ctx := r.Context()
	err = s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.SaveUser(ctx, u)
	})
	switch {
	case err == nil:
	case errors.Is(err, store.ErrConstraint):
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	default:
		fail(w, r, http.StatusInternalServerError, "An unexpected error occurred during user update: "+err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("user updated")
	writeJSON(w, http.StatusOK, messageResponse{Message: "User updated successfully"})
}

// deleteUser leaves the user's assets in place, unassigned.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUser(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	err := s.Store.WithTx(ctx, func(tx *store.Store) error {
		return tx.DeleteUser(ctx, u.ID)
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		fail(w, r, http.StatusBadRequest, err.Error(), err)
		return
	}

	zerolog.Ctx(ctx).Info().Msg("user deleted")
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

func (s *Server) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	annotate(r, "user_id", id)

	u, err := s.Store.GetUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		fail(w, r, http.StatusInternalServerError, "Failed to retrieve user: "+err.Error(), err)
		return nil, false
	}
	return u, true
}
