package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/utils"
)

var startTime = time.Now()

// Pinger is anything whose connectivity the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	driver string
	deps   map[string]Pinger
}

// NewHealthHandler creates a new HealthHandler. deps may be empty.
func NewHealthHandler(driver string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{driver: driver, deps: deps}
}

// GetHealth responds with service and backing store status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	deps := gin.H{}
	for name, p := range h.deps {
		if err := p.Ping(ctx); err != nil {
			deps[name] = "disconnected"
			status = "degraded"
			continue
		}
		deps[name] = "connected"
	}

	utils.Success(c, http.StatusOK, "Service is "+status, gin.H{
		"status":       status,
		"version":      "1.0.0",
		"uptime":       int(time.Since(startTime).Seconds()),
		"store":        h.driver,
		"dependencies": deps,
	})
}
