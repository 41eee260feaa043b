package service

import (
	"context"

	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"
	"buildmyhome/internal/repository"
)

// CatalogService serves packages, materials and projects
type CatalogService struct {
	repo                repository.Repository
	similarDefaultLimit int
	similarMaxLimit     int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(repo repository.Repository, similarDefaultLimit, similarMaxLimit int) *CatalogService {
	return &CatalogService{
		repo:                repo,
		similarDefaultLimit: similarDefaultLimit,
		similarMaxLimit:     similarMaxLimit,
	}
}

// ListPackages returns packages matching the filters
func (s *CatalogService) ListPackages(ctx context.Context, filters model.PackageFilters) ([]model.Package, error) {
	return s.repo.ListPackages(ctx, filters)
}

// GetPackage returns a package, or nil if it does not exist
func (s *CatalogService) GetPackage(ctx context.Context, id int64) (*model.Package, error) {
	return s.repo.GetPackage(ctx, id)
}

// SimilarPackages returns the stock packages closest to a custom configuration.
// A non-positive limit uses the default; limits above the maximum are capped.
func (s *CatalogService) SimilarPackages(ctx context.Context, cfg model.HomeConfiguration, limit int) ([]model.Package, error) {
	if limit <= 0 {
		limit = s.similarDefaultLimit
	}
	if limit > s.similarMaxLimit {
		limit = s.similarMaxLimit
	}
	return s.repo.SimilarPackages(ctx, estimate.Profile(cfg), limit)
}

// ListMaterials returns materials matching the filters
func (s *CatalogService) ListMaterials(ctx context.Context, filters model.MaterialFilters) ([]model.Material, error) {
	return s.repo.ListMaterials(ctx, filters)
}

// GetMaterial returns a material, or nil if it does not exist
func (s *CatalogService) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	return s.repo.GetMaterial(ctx, id)
}

// ListProjects returns the portfolio
func (s *CatalogService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.repo.ListProjects(ctx)
}

// GetProject returns a project, or nil if it does not exist
func (s *CatalogService) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	return s.repo.GetProject(ctx, id)
}
