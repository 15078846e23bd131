package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterRoutes(r chi.Router, rateLimiter *RateLimiter) {
	r.Use(newCORS().Handler)
	r.Use(rateLimiter.RateLimit)

	r.Get("/health", h.Health)
	r.Get("/api/v1/info", h.Info)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}
