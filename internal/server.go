package internal

import (
	"context"
	"net/http"
	"time"

	"asset-management-api/internal/config"
	"asset-management-api/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const welcomeMessage = "Welcome to Asset Management System"

type Server struct {
	Store   *store.Store
	Router  *chi.Mux
	Metrics *Metrics
	Log     zerolog.Logger

	warrantyAlertDays int
	now               func() time.Time
}

func NewServer(cfg *config.Config, st *store.Store, log zerolog.Logger) *Server {
	s := &Server{
		Store:             st,
		Router:            chi.NewRouter(),
		Metrics:           NewMetrics(),
		Log:               log,
		warrantyAlertDays: cfg.WarrantyAlertDays,
		now:               time.Now,
	}

	s.Router.Use(requestID, middleware.RequestLogger(requestLogFormatter{log: log}), contextLogger)
	if cfg.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
	}
	s.Router.Use(recoverer, allowAnyOrigin())
	s.Router.NotFound(notFound)
	s.Router.MethodNotAllowed(methodNotAllowed)

	s.Router.Get("/health", s.health)
	if cfg.EnableMetrics {
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}
	s.Router.Route("/api", s.mountRoutes)

	return s
}

// Close releases the store.
func (s *Server) Close() error {
	return s.Store.Close()
}

func (s *Server) mountRoutes(r chi.Router) {
	r.Get("/test", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, messageResponse{Message: welcomeMessage})
	})

	r.Route("/assets", func(r chi.Router) {
		r.Get("/", s.listAssets)
		r.Post("/", s.createAsset)
		r.Get("/warranty-alerts", s.warrantyAlerts)
		r.Get("/{id:[0-9]+}", s.getAsset)
		r.Put("/{id:[0-9]+}", s.updateAsset)
		r.Delete("/{id:[0-9]+}", s.deleteAsset)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", s.listCategories)
		r.Post("/", s.createCategory)
		r.Get("/{id:[0-9]+}", s.getCategory)
		r.Put("/{id:[0-9]+}", s.updateCategory)
		r.Delete("/{id:[0-9]+}", s.deleteCategory)
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.listLocations)
		r.Post("/", s.createLocation)
		r.Get("/{id:[0-9]+}", s.getLocation)
		r.Put("/{id:[0-9]+}", s.updateLocation)
		r.Delete("/{id:[0-9]+}", s.deleteLocation)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/{id:[0-9]+}", s.getUser)
		r.Put("/{id:[0-9]+}", s.updateUser)
		r.Delete("/{id:[0-9]+}", s.deleteUser)
	})

	r.Get("/reports/assets.xlsx", s.exportAssets)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.Store.Ping(ctx); err != nil {
		fail(w, r, http.StatusServiceUnavailable, "database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
