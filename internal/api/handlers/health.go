package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and whether recommendations can be served
type HealthHandler struct {
	model      string
	configured bool
}

func NewHealthHandler(model string, configured bool) *HealthHandler {
	return &HealthHandler{model: model, configured: configured}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "configured"
	if !h.configured {
		status = "unavailable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"recommendations": gin.H{
			"status": status,
			"model":  h.model,
		},
	})
}
