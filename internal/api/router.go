package api

import (
	"net/http"

	"transport-catalogue-service/internal/api/handlers"
	"transport-catalogue-service/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the TransportQueries port.
func NewRouter(q ports.TransportQueries, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}))

	transport := &handlers.TransportHandler{Queries: q}

	r.Get("/health", handlers.Health)
	r.Get("/buses/{name}", transport.Bus)
	r.Get("/stops/{name}", transport.Stop)
	r.Get("/routes", transport.Route)
	r.Post("/requests", transport.Requests)

	return r
}
