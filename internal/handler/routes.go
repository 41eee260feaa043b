package handler

import (
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// Handlers bundles the API handlers
type Handlers struct {
	Catalog    *CatalogHandler
	Estimate   *EstimateHandler
	Inquiry    *InquiryHandler
	SavedPlans *SavedPlanHandler
}

// NewHandlers wires handlers to their services
func NewHandlers(
	catalog *service.CatalogService,
	estimates *service.EstimateService,
	inquiries *service.InquiryService,
	plans *service.SavedPlanService,
) Handlers {
	return Handlers{
		Catalog:    NewCatalogHandler(catalog),
		Estimate:   NewEstimateHandler(estimates),
		Inquiry:    NewInquiryHandler(inquiries),
		SavedPlans: NewSavedPlanHandler(plans),
	}
}

// Register mounts the API routes on the /api/v1 group
func (h Handlers) Register(apiV1 *gin.RouterGroup) {
	// Catalog endpoints
	apiV1.GET("/packages", h.Catalog.ListPackages)
	apiV1.GET("/packages/:id", h.Catalog.GetPackage)
	apiV1.POST("/packages/similar", h.Catalog.SimilarPackages)
	apiV1.GET("/materials", h.Catalog.ListMaterials)
	apiV1.GET("/materials/:id", h.Catalog.GetMaterial)
	apiV1.GET("/projects", h.Catalog.ListProjects)
	apiV1.GET("/projects/:id", h.Catalog.GetProject)

	// Estimation endpoint
	apiV1.POST("/calculate-cost", h.Estimate.Calculate)

	// Lead endpoints
	apiV1.POST("/inquiries", h.Inquiry.Submit)

	// Saved plan endpoints
	apiV1.GET("/saved-plans/:sessionId", h.SavedPlans.List)
	apiV1.POST("/saved-plans", h.SavedPlans.Create)
	apiV1.DELETE("/saved-plans/:id", h.SavedPlans.Delete)
}
