package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Health           HealthService
	API              *APIHandlers
	Metrics          http.Handler
	AllowedOrigins   []string
	AllowCredentials bool
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(loggingMiddleware(logger))
	if len(deps.AllowedOrigins) > 0 {
		router.Use(corsMiddleware(deps.AllowedOrigins, deps.AllowCredentials))
	}

	router.Get("/healthz", healthHandler(logger, deps.Health))
	if deps.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	if deps.API != nil {
		router.Route("/api/v1", func(r chi.Router) {
			r.Get("/graph", deps.API.getGraph)
			r.Get("/graph.dot", deps.API.getGraphDOT)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", deps.API.listUsers)
				r.Post("/", deps.API.createUser)
				r.Delete("/{id}", deps.API.deleteUser)
				r.Get("/{id}/neighbors", deps.API.getNeighbors)
				r.Get("/{id}/suggestions", deps.API.getSuggestions)
			})

			r.Post("/connections", deps.API.createConnection)
			r.Delete("/connections/{source}/{target}", deps.API.deleteConnection)

			r.Get("/paths", deps.API.getShortestPath)
			r.Post("/paths/batch", deps.API.batchShortestPaths)

			r.Get("/communities", deps.API.getCommunities)
			r.Get("/centrality", deps.API.getCentrality)
			r.Post("/snapshot", deps.API.saveSnapshot)
		})
	}

	return router
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func corsMiddleware(allowedOrigins []string, allowCredentials bool) func(http.Handler) http.Handler {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || (!containsOrigin(normalized, origin) && !containsOrigin(normalized, "*")) {
				if r.Method == http.MethodOptions {
					// Reject bare pre-flight if origin is not whitelisted.
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func containsOrigin(set map[string]struct{}, origin string) bool {
	_, ok := set[origin]
	return ok
}
