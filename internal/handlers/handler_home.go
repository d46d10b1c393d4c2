package handlers

import (
	"net/http"

	"github.com/SscSPs/opahours_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
