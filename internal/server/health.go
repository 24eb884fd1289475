package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vanshika/socialgraph/internal/domain"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
	StoreName() string
	Stats(ctx context.Context) (domain.GraphStats, error)
}

func healthHandler(logger *slog.Logger, health HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		payload := map[string]any{
			"status": "ok",
		}
		if health == nil {
			respondJSON(w, status, payload)
			return
		}

		payload["store"] = health.StoreName()
		if err := health.Probe(ctx); err != nil {
			logger.Error("health probe failed", "store", health.StoreName(), "error", err)
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
			payload["error"] = err.Error()
		}
		if stats, err := health.Stats(ctx); err == nil {
			payload["users"] = stats.Users
			payload["connections"] = stats.Connections
		}

		respondJSON(w, status, payload)
	}
}
