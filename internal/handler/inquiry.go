package handler

import (
	"net/http"

	"buildmyhome/internal/model"
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// InquiryHandler handles lead submissions
type InquiryHandler struct {
	inquiries *service.InquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiries *service.InquiryService) *InquiryHandler {
	registerValidator()
	return &InquiryHandler{inquiries: inquiries}
}

// Submit handles POST /api/v1/inquiries
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req model.InquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inquiry, err := h.inquiries.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit inquiry: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, inquiry)
}
