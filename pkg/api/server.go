package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// 5 requests per second, burst of 10
	defaultRateLimit = rate.Limit(5)
	defaultBurst     = 10
)

type Server struct {
	handler     *Handler
	rateLimiter *RateLimiter
	server      *http.Server
}

func NewServer(handler *Handler, host string, port int) *Server {
	rateLimiter := NewRateLimiter(defaultRateLimit, defaultBurst)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, rateLimiter)

	return &Server{
		handler:     handler,
		rateLimiter: rateLimiter,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("Starting API server")
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
