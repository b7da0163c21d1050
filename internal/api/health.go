package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	componentOK       = "ok"
	componentError    = "error"
	componentDisabled = "disabled"
)

// HealthHandlerFunc returns an http.HandlerFunc that checks db and cache
// connectivity. A nil pinger reports "disabled" and never degrades health.
func HealthHandlerFunc(db, cache Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		dbStatus := probe(ctx, db, "db", log)
		redisStatus := probe(ctx, cache, "redis", log)

		status, overall := http.StatusOK, "ok"
		if dbStatus == componentError || redisStatus == componentError {
			status, overall = http.StatusServiceUnavailable, "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}

func probe(ctx context.Context, p Pinger, name string, log *slog.Logger) string {
	if p == nil {
		return componentDisabled
	}
	if err := p.Ping(ctx); err != nil {
		log.Error("health check: ping failed", "component", name, "err", err)
		return componentError
	}
	return componentOK
}
