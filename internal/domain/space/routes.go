package space

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spacely/spacely-api/internal/middleware"
)

// Routes returns space router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireHost())

			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Archive)
			r.Post("/{id}/activate", h.Activate)

			r.Get("/{id}/blocked-hours", h.ListBlockedHours)
			r.Post("/{id}/blocked-hours", h.BlockHour)
			r.Delete("/{id}/blocked-hours/{blockedID}", h.UnblockHour)
		})
	})

	return r
}
