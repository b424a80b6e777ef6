package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spacely/spacely-api/internal/middleware"
)

// Routes returns wizard router. Every route requires a host.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)
	r.Use(middleware.RequireHost())

	r.Get("/state", h.State)
	r.Get("/steps/{n}", h.Step)
	r.Put("/steps/{n}", h.SubmitStep)
	r.Post("/publish", h.Publish)
	r.Post("/reset", h.Reset)

	return r
}
