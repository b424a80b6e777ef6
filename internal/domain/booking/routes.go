package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/quote", h.Quote)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.Submit)
		r.Get("/", h.ListMine)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/cancel", h.Cancel)
		r.Post("/{id}/payment", h.RetryPayment)
	})

	return r
}
