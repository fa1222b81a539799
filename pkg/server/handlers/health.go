// Package handlers implements the gin handlers of the API.
package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	daleel "github.com/HOUSSAM16ai/my-ai-project-sub004"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	engine daleel.Daleel
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(engine daleel.Daleel) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "daleel",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// ReadinessCheck handles GET /ready - verifies the storage backends answer
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.engine != nil {
		start := time.Now()
		if err := h.engine.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "not_ready",
				"service":   "daleel",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"service":     "daleel",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"service":   "daleel",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
