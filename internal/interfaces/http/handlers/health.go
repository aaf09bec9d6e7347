package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health and readiness probes
type HealthHandler struct {
	service   string
	version   string
	env       string
	db        HealthChecker
	redis     HealthChecker
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service, version, env string, db, redis HealthChecker) *HealthHandler {
	return &HealthHandler{
		service:   service,
		version:   version,
		env:       env,
		db:        db,
		redis:     redis,
		startedAt: time.Now(),
	}
}

// Health handles GET /health. It pings the database and Redis.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx := c.Request.Context()

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
			return
		}
	}
	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     h.version,
		"environment": h.env,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// APIHealth handles GET /api/v1/health
func (h *HealthHandler) APIHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   h.service,
	})
}
