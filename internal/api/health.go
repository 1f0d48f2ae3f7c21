// Package api provides HTTP handlers for the kit tracker.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kitworks/kittrack/internal/dbpool"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	pool          *dbpool.Pool
	log           *logrus.Logger
	version       string
	schemaVersion int
	startTime     time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(pool *dbpool.Pool, log *logrus.Logger, version string, schemaVersion int) *HealthHandler {
	return &HealthHandler{
		pool:          pool,
		log:           log,
		version:       version,
		schemaVersion: schemaVersion,
		startTime:     time.Now(),
	}
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	SchemaVersion int     `json:"schema_version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health — returns status with db and uptime info.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		SchemaVersion: h.schemaVersion,
		Database:      "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready — fails when the database is unreachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"database": "ok"}
	status := http.StatusOK

	if h.pool == nil {
		checks["database"] = "not_configured"
		status = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			h.log.WithError(err).Warn("readiness database check failed")
			checks["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}

	c.JSON(status, gin.H{"status": state, "checks": checks})
}
