package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-l10n/pkg/middleware"
)

// NewRouter builds the operational HTTP router.
func NewRouter(health *HealthHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger.Named("http")))

	health.RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		_ = ErrorResponse(w, http.StatusNotFound, "not_found", "no such endpoint")
	})
	return r
}
