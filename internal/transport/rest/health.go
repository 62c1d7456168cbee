package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness plus database reachability.
func Health(db pinger, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		overall, dbStatus := "ok", "ok"
		if err := db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			overall, dbStatus = "degraded", "unreachable"
		}

		render.Status(r, status)
		render.JSON(w, r, map[string]string{
			"status":   overall,
			"version":  version,
			"database": dbStatus,
		})
	}
}
