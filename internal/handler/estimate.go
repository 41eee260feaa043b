package handler

import (
	"net/http"

	"buildmyhome/internal/model"
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// EstimateHandler handles cost calculation requests
type EstimateHandler struct {
	estimates *service.EstimateService
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimates *service.EstimateService) *EstimateHandler {
	registerValidator()
	return &EstimateHandler{estimates: estimates}
}

// Calculate handles POST /api/v1/calculate-cost
func (h *EstimateHandler) Calculate(c *gin.Context) {
	var cfg model.HomeConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.estimates.Calculate(cfg))
}
