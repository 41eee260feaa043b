package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"buildmyhome/internal/model"
	"buildmyhome/internal/repository"
)

func newTestRepo(t *testing.T) repository.Repository {
	t.Helper()
	seed, err := repository.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	return repository.NewMemoryRepository(seed)
}

func TestEstimateService_Calculate(t *testing.T) {
	svc := NewEstimateService(false)
	cfg := model.HomeConfiguration{
		LandAreaSqFt:        1200,
		Floors:              2,
		Bedrooms:            2,
		Bathrooms:           2,
		HouseType:           model.HouseModern,
		InteriorType:        model.InteriorPremium,
		Materials:           model.Materials{model.CategoryFlooring: "1"},
		EstimatedCostRupees: 1,
	}

	resp := svc.Calculate(cfg)
	// 2,400,000 * 1.2 * 1.10 * 1.20 * 1.05 = 3,991,680, rounded to 3,992,000
	if resp.EstimatedCostRupees != 3992000 {
		t.Errorf("EstimatedCostRupees = %d, want 3992000", resp.EstimatedCostRupees)
	}
	if resp.Breakdown == nil || resp.Breakdown.Rounded != resp.EstimatedCostRupees {
		t.Errorf("Breakdown = %+v, want rounded value to match", resp.Breakdown)
	}
	if math.Abs(resp.Breakdown.MaterialsFactor-1.05) > 1e-12 {
		t.Errorf("MaterialsFactor = %f, want 1.05", resp.Breakdown.MaterialsFactor)
	}
}

func TestCatalogService_SimilarPackagesLimit(t *testing.T) {
	svc := NewCatalogService(newTestRepo(t), 3, 10)
	ctx := context.Background()
	cfg := model.HomeConfiguration{LandAreaSqFt: 600, Bedrooms: 1, Bathrooms: 1, HouseType: model.HouseMinimalist}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, 3},
		{"explicit", 1, 1},
		{"capped by catalog", 50, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.SimilarPackages(ctx, cfg, tt.limit)
			if err != nil {
				t.Fatalf("SimilarPackages: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d packages, want %d", len(got), tt.want)
			}
			if got[0].Name != "Compact 1BHK Home" {
				t.Errorf("closest = %q, want Compact 1BHK Home", got[0].Name)
			}
		})
	}
}

func TestInquiryService_Submit(t *testing.T) {
	repo := newTestRepo(t)
	svc := NewInquiryService(repo)
	ctx := context.Background()

	cfg := &model.HomeConfiguration{LandAreaSqFt: 1000, Floors: 1, HouseType: model.HouseModern, EstimatedCostRupees: 777000}
	inquiry, err := svc.Submit(ctx, model.InquiryRequest{
		FullName:      " Priya Sharma ",
		PhoneNumber:   "9876543210",
		Location:      "Pune",
		CustomPackage: cfg,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if inquiry.ID == 0 || inquiry.FullName != "Priya Sharma" {
		t.Errorf("inquiry = %+v", inquiry)
	}
	if inquiry.Email != nil || inquiry.Requirements != nil {
		t.Errorf("blank optional fields should be nil: %+v", inquiry)
	}
	if inquiry.Location == nil || *inquiry.Location != "Pune" {
		t.Errorf("Location = %v, want Pune", inquiry.Location)
	}
	// The attached estimate is kept as sent, not recomputed
	if inquiry.CustomPackage == nil || inquiry.CustomPackage.EstimatedCostRupees != 777000 {
		t.Errorf("CustomPackage = %+v, want verbatim", inquiry.CustomPackage)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d, %v", len(list), err)
	}
}

func TestSavedPlanService_Create(t *testing.T) {
	svc := NewSavedPlanService(newTestRepo(t))
	ctx := context.Background()

	pkgID := int64(1)
	unknownID := int64(404)
	custom := &model.HomeConfiguration{LandAreaSqFt: 1000, Floors: 1, HouseType: model.HouseModern}

	tests := []struct {
		name      string
		entry     model.SavedPlanEntry
		wantField string
	}{
		{"package", model.SavedPlanEntry{PackageID: &pkgID}, ""},
		{"custom", model.SavedPlanEntry{CustomPackage: custom}, ""},
		{"both", model.SavedPlanEntry{PackageID: &pkgID, CustomPackage: custom}, "packageId"},
		{"neither", model.SavedPlanEntry{}, "packageId"},
		{"unknown package", model.SavedPlanEntry{PackageID: &unknownID}, "packageId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := svc.Create(ctx, model.SavedPlanRequest{SessionID: "sess", SavedPlanEntry: tt.entry})
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Create: %v", err)
				}
				if plan.ID == 0 || plan.SessionID != "sess" {
					t.Errorf("plan = %+v", plan)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Errorf("err = %v, want FieldError on %s", err, tt.wantField)
			}
		})
	}
}

func TestSavedPlanService_ListAndDelete(t *testing.T) {
	svc := NewSavedPlanService(newTestRepo(t))
	ctx := context.Background()

	pkgID := int64(2)
	plan, err := svc.Create(ctx, model.SavedPlanRequest{SessionID: "abc", SavedPlanEntry: model.SavedPlanEntry{PackageID: &pkgID}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	plans, err := svc.List(ctx, "abc")
	if err != nil || len(plans) != 1 {
		t.Fatalf("List = %v, %v", plans, err)
	}
	if others, _ := svc.List(ctx, "other"); len(others) != 0 {
		t.Errorf("List(other) = %v, want empty", others)
	}

	ok, err := svc.Delete(ctx, plan.ID)
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	if ok, _ := svc.Delete(ctx, plan.ID); ok {
		t.Error("second Delete reported success")
	}
}
