package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kasuboski/renamez/pkg/cache"
	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/storage"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const (
	shutdownTimeout = 3 * time.Second
	parseCacheSize  = 4096
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server exposes the name parser and the rename history over http
type Server struct {
	baseLogger *zap.SugaredLogger
	history    storage.RenameStorage
	limiter    *rate.Limiter
	parsed     *cache.Cache[string, ParsedName]
}

type Option func(*Server)

// WithRateLimit limits requests to r per second with the given burst. r <= 0 disables the limit.
func WithRateLimit(r float64, burst int) Option {
	return func(s *Server) {
		if r <= 0 {
			s.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

// New creates a new server. history may be nil, in which case the history endpoint reports it is unavailable.
func New(logger *zap.SugaredLogger, history storage.RenameStorage, opts ...Option) Server {
	s := Server{
		baseLogger: logger,
		history:    history,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		parsed:     cache.New[string, ParsedName](parseCacheSize),
	}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// Handler builds the routed handler with all middleware applied
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()
	api.Use(s.RateLimitMiddleware())

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/parse", s.ParseName()).Methods(http.MethodGet)
	v1.HandleFunc("/parse", s.ParseNames()).Methods(http.MethodPost)
	v1.HandleFunc("/history", s.ListHistory()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is done
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		if err := writeResponse(w, http.StatusOK, response); err != nil {
			logger.FromCtx(r.Context()).Errorw("failed to write response", "error", err)
		}
	}
}
