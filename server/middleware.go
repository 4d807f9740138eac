package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/kasuboski/renamez/pkg/logger"
	"go.uber.org/zap"
)

var errRateLimited = errors.New("rate limit exceeded")

func (s Server) LogMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := s.baseLogger.With(zap.String("request_path", r.URL.Path)).With(zap.String("id", uuid.New().String()))

			start := time.Now()
			h.ServeHTTP(w, r.WithContext(logger.WithCtx(r.Context(), log)))
			log.Debugw("handled request", "method", r.Method, "duration", time.Since(start))
		})
	}
}

// RateLimitMiddleware rejects requests over the configured rate with 429
func (s Server) RateLimitMiddleware() mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.limiter.Allow() {
				logger.FromCtx(r.Context()).Warn("rate limited")
				w.Header().Set("Retry-After", "1")
				writeErrorResponse(w, http.StatusTooManyRequests, errRateLimited)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
