package repository

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"

	"github.com/pgvector/pgvector-go"
	"gopkg.in/yaml.v3"
)

// Repository is the document store behind the catalog, inquiry and saved-plan APIs.
// Get methods return (nil, nil) when the record does not exist.
type Repository interface {
	ListPackages(ctx context.Context, filters model.PackageFilters) ([]model.Package, error)
	GetPackage(ctx context.Context, id int64) (*model.Package, error)
	SimilarPackages(ctx context.Context, profile []float32, limit int) ([]model.Package, error)

	ListMaterials(ctx context.Context, filters model.MaterialFilters) ([]model.Material, error)
	GetMaterial(ctx context.Context, id int64) (*model.Material, error)

	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id int64) (*model.Project, error)

	CreateInquiry(ctx context.Context, inquiry *model.Inquiry) error
	ListInquiries(ctx context.Context) ([]model.Inquiry, error)

	ListSavedPlans(ctx context.Context, sessionID string) ([]model.SavedPlan, error)
	CreateSavedPlan(ctx context.Context, plan *model.SavedPlan) error
	DeleteSavedPlan(ctx context.Context, id int64) (bool, error)

	Close() error
}

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the initial catalog content
type Seed struct {
	Packages  []model.Package  `yaml:"packages"`
	Materials []model.Material `yaml:"materials"`
	Projects  []model.Project  `yaml:"projects"`
}

// LoadSeed parses the catalog seed from path, or the embedded default when path is empty
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	for i := range seed.Packages {
		seed.Packages[i].Profile = pgvector.NewVector(estimate.PackageProfile(seed.Packages[i]))
	}
	return &seed, nil
}

// MatchesPackage applies the package filters to a single package.
// Size buckets are in sq ft, budget buckets in lakhs.
func MatchesPackage(pkg model.Package, f model.PackageFilters) bool {
	switch f.Size {
	case "small":
		if pkg.SizeSqFt > 1000 {
			return false
		}
	case "medium":
		if pkg.SizeSqFt <= 1000 || pkg.SizeSqFt > 2000 {
			return false
		}
	case "large":
		if pkg.SizeSqFt <= 2000 {
			return false
		}
	}

	if f.BHK != "" && f.BHK != "all" {
		if f.BHK == "4+" {
			if pkg.Bedrooms < 4 {
				return false
			}
		} else if fmt.Sprint(pkg.Bedrooms) != f.BHK {
			return false
		}
	}

	if f.Style != "" && f.Style != "all" && !strings.EqualFold(string(pkg.Style), f.Style) {
		return false
	}

	lakhs := float64(pkg.PriceRupees) / 100000
	switch f.Budget {
	case "15-20":
		return lakhs >= 15 && lakhs <= 20
	case "20-30":
		return lakhs > 20 && lakhs <= 30
	case "30-50":
		return lakhs > 30 && lakhs <= 50
	case "50+":
		return lakhs > 50
	}
	return true
}
