package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is the service version reported by GET /health.
const Version = "1.0.0"

// Health handles GET /health. Healthy only when every declared dependency
// probe passes; otherwise the failing dependencies are named.
func (h *Handler) Health(c *gin.Context) {
	snapshot := h.checker.Snapshot()

	body := gin.H{
		"timestamp":    time.Now().Format(time.RFC3339),
		"version":      Version,
		"dependencies": snapshot.Dependencies,
	}

	if snapshot.Healthy() {
		body["status"] = "healthy"
		c.JSON(http.StatusOK, body)
		return
	}

	body["status"] = "unhealthy"
	body["failing"] = snapshot.Failing()
	c.JSON(http.StatusServiceUnavailable, body)
}
