package handler

import (
	"net/http"
	"strconv"

	"buildmyhome/internal/model"
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles package, material and project requests
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	registerValidator()
	return &CatalogHandler{catalog: catalog}
}

// ListPackages handles GET /api/v1/packages
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	var filters model.PackageFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	packages, err := h.catalog.ListPackages(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list packages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackage handles GET /api/v1/packages/:id
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid package ID"})
		return
	}

	pkg, err := h.catalog.GetPackage(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get package: " + err.Error()})
		return
	}
	if pkg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// SimilarPackages handles POST /api/v1/packages/similar
func (h *CatalogHandler) SimilarPackages(c *gin.Context) {
	var cfg model.HomeConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		badRequest(c, err)
		return
	}

	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid limit", Field: "limit"})
			return
		}
		limit = n
	}

	packages, err := h.catalog.SimilarPackages(c.Request.Context(), cfg, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find similar packages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// ListMaterials handles GET /api/v1/materials
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	var filters model.MaterialFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, err)
		return
	}

	materials, err := h.catalog.ListMaterials(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list materials: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, materials)
}

// GetMaterial handles GET /api/v1/materials/:id
func (h *CatalogHandler) GetMaterial(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid material ID"})
		return
	}

	m, err := h.catalog.GetMaterial(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get material: " + err.Error()})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Material not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// ListProjects handles GET /api/v1/projects
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	projects, err := h.catalog.ListProjects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject handles GET /api/v1/projects/:id
func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	p, err := h.catalog.GetProject(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project: " + err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}
