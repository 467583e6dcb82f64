package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// requestID behaves like middleware.RequestID, storing the id under
// middleware.RequestIDKey, but generates UUIDs and echoes the id on the
// response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogFormatter plugs zerolog into middleware.RequestLogger.
type requestLogFormatter struct {
	log zerolog.Logger
}

func (f requestLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	l := f.log.With().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Logger()
	return &requestLogEntry{log: &l}
}

type requestLogEntry struct {
	log      *zerolog.Logger
	panicked bool
}

func (e *requestLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.log.Info().
		Int("status", status).
		Int("bytes", bytes).
		Dur("duration", elapsed).
		Msg("request completed")
}

func (e *requestLogEntry) Panic(v interface{}, stack []byte) {
	e.panicked = true
	e.log.Error().
		Interface("panic", v).
		Bytes("stack", stack).
		Msg("panic recovered")
}

// contextLogger exposes the request's log entry through zerolog.Ctx. Fields
// handlers add with annotate also land on the completion line.
func contextLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e, ok := middleware.GetLogEntry(r).(*requestLogEntry); ok {
			ctx := e.log.WithContext(r.Context())
			e.log = zerolog.Ctx(ctx)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverer is middleware.Recoverer answering with the JSON error body
// instead of a bare 500.
func recoverer(next http.Handler) http.Handler {
	recovered := middleware.Recoverer(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recovered.ServeHTTP(&recoverWriter{ResponseWriter: w, r: r}, r)
	})
}

type recoverWriter struct {
	http.ResponseWriter
	r           *http.Request
	wroteHeader bool
}

func (rw *recoverWriter) WriteHeader(code int) {
	if e, ok := middleware.GetLogEntry(rw.r).(*requestLogEntry); ok && e.panicked {
		if !rw.wroteHeader {
			rw.wroteHeader = true
			writeError(rw.ResponseWriter, code, "Internal server error")
		}
		return
	}
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recoverWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// allowAnyOrigin answers preflight requests itself; they never reach the router.
func allowAnyOrigin() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:         86400,
	})
}

// annotate adds an entity id to the request logger.
func annotate(r *http.Request, key string, id int64) {
	zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Int64(key, id)
	})
}
