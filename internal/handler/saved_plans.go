package handler

import (
	"errors"
	"net/http"

	"buildmyhome/internal/model"
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// SavedPlanHandler handles server-side saved plans
type SavedPlanHandler struct {
	plans *service.SavedPlanService
}

// NewSavedPlanHandler creates a new saved plan handler
func NewSavedPlanHandler(plans *service.SavedPlanService) *SavedPlanHandler {
	registerValidator()
	return &SavedPlanHandler{plans: plans}
}

// List handles GET /api/v1/saved-plans/:sessionId
func (h *SavedPlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved plans: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Create handles POST /api/v1/saved-plans
func (h *SavedPlanHandler) Create(c *gin.Context) {
	var req model.SavedPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), req)
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + fe.Error(), Field: fe.Field})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// Delete handles DELETE /api/v1/saved-plans/:id
func (h *SavedPlanHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid saved plan ID"})
		return
	}

	found, err := h.plans.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saved plan: " + err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved plan not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
