package repository

import (
	"context"
	"testing"

	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"
)

func newSeededMemory(t *testing.T) *MemoryRepository {
	t.Helper()
	seed, err := LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	return NewMemoryRepository(seed)
}

func TestMemoryRepository_ListPackages(t *testing.T) {
	repo := newSeededMemory(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters model.PackageFilters
		want    []string
	}{
		{"all", model.PackageFilters{}, []string{"Modern 2BHK Villa", "Luxury 3BHK Villa", "Compact 1BHK Home", "Traditional 4BHK Family House"}},
		{"small", model.PackageFilters{Size: "small"}, []string{"Compact 1BHK Home"}},
		{"medium", model.PackageFilters{Size: "medium"}, []string{"Modern 2BHK Villa", "Luxury 3BHK Villa"}},
		{"4+", model.PackageFilters{BHK: "4+"}, []string{"Traditional 4BHK Family House"}},
		{"budget 15-20", model.PackageFilters{Budget: "15-20"}, []string{"Compact 1BHK Home"}},
		{"contemporary", model.PackageFilters{Style: "contemporary"}, []string{"Luxury 3BHK Villa"}},
		{"nothing", model.PackageFilters{Size: "small", BHK: "3"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListPackages(ctx, tt.filters)
			if err != nil {
				t.Fatalf("ListPackages: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d packages, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("package %d = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestMemoryRepository_GetPackage(t *testing.T) {
	repo := newSeededMemory(t)
	ctx := context.Background()

	pkg, err := repo.GetPackage(ctx, 2)
	if err != nil {
		t.Fatalf("GetPackage: %v", err)
	}
	if pkg == nil || pkg.Name != "Luxury 3BHK Villa" {
		t.Fatalf("GetPackage(2) = %+v", pkg)
	}

	missing, err := repo.GetPackage(ctx, 99)
	if err != nil || missing != nil {
		t.Errorf("GetPackage(99) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestMemoryRepository_SimilarPackages(t *testing.T) {
	repo := newSeededMemory(t)
	ctx := context.Background()

	cfg := model.HomeConfiguration{LandAreaSqFt: 1200, Bedrooms: 2, Bathrooms: 2, HouseType: model.HouseModern}
	got, err := repo.SimilarPackages(ctx, estimate.Profile(cfg), 2)
	if err != nil {
		t.Fatalf("SimilarPackages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d packages, want 2", len(got))
	}
	if got[0].Name != "Modern 2BHK Villa" {
		t.Errorf("closest package = %q, want Modern 2BHK Villa", got[0].Name)
	}

	all, _ := repo.SimilarPackages(ctx, estimate.Profile(cfg), 100)
	if len(all) != 4 {
		t.Errorf("limit above catalog size returned %d packages, want 4", len(all))
	}
}

func TestMemoryRepository_ListMaterials(t *testing.T) {
	repo := newSeededMemory(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		filters model.MaterialFilters
		want    int
	}{
		{"all", model.MaterialFilters{}, 7},
		{"flooring", model.MaterialFilters{Category: "flooring"}, 2},
		{"category all", model.MaterialFilters{Category: "all"}, 7},
		{"marble query", model.MaterialFilters{Query: "marble"}, 1},
		{"wood query", model.MaterialFilters{Query: "wood"}, 2},
		{"wood in flooring", model.MaterialFilters{Category: "flooring", Query: "wood"}, 1},
		{"no match", model.MaterialFilters{Query: "bamboo"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListMaterials(ctx, tt.filters)
			if err != nil {
				t.Fatalf("ListMaterials: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d materials, want %d", len(got), tt.want)
			}
		})
	}
}

func TestMemoryRepository_Projects(t *testing.T) {
	repo := newSeededMemory(t)
	ctx := context.Background()

	projects, err := repo.ListProjects(ctx)
	if err != nil || len(projects) != 3 {
		t.Fatalf("ListProjects = %d, %v; want 3", len(projects), err)
	}
	p, err := repo.GetProject(ctx, 1)
	if err != nil || p == nil || p.Location != "Delhi" {
		t.Fatalf("GetProject(1) = %+v, %v", p, err)
	}
	if p, _ := repo.GetProject(ctx, 42); p != nil {
		t.Errorf("GetProject(42) = %+v, want nil", p)
	}
}

func TestMemoryRepository_Inquiries(t *testing.T) {
	repo := NewMemoryRepository(nil)
	ctx := context.Background()

	cfg := model.HomeConfiguration{LandAreaSqFt: 1500, Floors: 2, HouseType: model.HouseMinimalist, EstimatedCostRupees: 123000}
	first := &model.Inquiry{FullName: "Asha", PhoneNumber: "9876543210", CustomPackage: &cfg}
	if err := repo.CreateInquiry(ctx, first); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if first.ID != 1 || first.CreatedAt.IsZero() {
		t.Errorf("inquiry not stamped: %+v", first)
	}

	// Later edits to the caller's configuration must not reach the stored copy
	cfg.LandAreaSqFt = 9999

	second := &model.Inquiry{FullName: "Ravi", PhoneNumber: "9123456780"}
	if err := repo.CreateInquiry(ctx, second); err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	list, err := repo.ListInquiries(ctx)
	if err != nil {
		t.Fatalf("ListInquiries: %v", err)
	}
	if len(list) != 2 || list[0].FullName != "Ravi" {
		t.Fatalf("ListInquiries = %+v, want newest first", list)
	}
	stored := list[1].CustomPackage
	if stored == nil || stored.LandAreaSqFt != 1500 || stored.EstimatedCostRupees != 123000 {
		t.Errorf("stored configuration = %+v, want verbatim copy", stored)
	}
}

func TestMemoryRepository_SavedPlans(t *testing.T) {
	repo := NewMemoryRepository(nil)
	ctx := context.Background()

	pkgID := int64(3)
	a := &model.SavedPlan{SessionID: "s1", PackageID: &pkgID}
	b := &model.SavedPlan{SessionID: "s1", CustomPackage: &model.HomeConfiguration{LandAreaSqFt: 1000, Floors: 1, HouseType: model.HouseModern}}
	c := &model.SavedPlan{SessionID: "s2", PackageID: &pkgID}
	for _, p := range []*model.SavedPlan{a, b, c} {
		if err := repo.CreateSavedPlan(ctx, p); err != nil {
			t.Fatalf("CreateSavedPlan: %v", err)
		}
	}

	plans, err := repo.ListSavedPlans(ctx, "s1")
	if err != nil {
		t.Fatalf("ListSavedPlans: %v", err)
	}
	if len(plans) != 2 || plans[0].ID != a.ID || plans[1].ID != b.ID {
		t.Fatalf("ListSavedPlans(s1) = %+v", plans)
	}

	ok, err := repo.DeleteSavedPlan(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteSavedPlan = %v, %v; want true", ok, err)
	}
	ok, _ = repo.DeleteSavedPlan(ctx, a.ID)
	if ok {
		t.Error("second delete reported the plan as existing")
	}

	plans, _ = repo.ListSavedPlans(ctx, "s1")
	if len(plans) != 1 || plans[0].ID != b.ID {
		t.Errorf("after delete ListSavedPlans(s1) = %+v", plans)
	}
}
