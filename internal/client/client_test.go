package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"buildmyhome/internal/handler"
	"buildmyhome/internal/model"
	"buildmyhome/internal/repository"
	"buildmyhome/internal/service"

	"github.com/gin-gonic/gin"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seed, err := repository.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	repo := repository.NewMemoryRepository(seed)
	h := handler.NewHandlers(
		service.NewCatalogService(repo, 3, 10),
		service.NewEstimateService(false),
		service.NewInquiryService(repo),
		service.NewSavedPlanService(repo),
	)
	router := gin.New()
	h.Register(router.Group("/api/v1"))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func validConfig() model.HomeConfiguration {
	return model.HomeConfiguration{
		LandAreaSqFt: 1200,
		Floors:       2,
		Bedrooms:     3,
		Bathrooms:    2,
		HouseType:    model.HouseModern,
		InteriorType: model.InteriorPremium,
		Materials:    model.Materials{model.CategoryFlooring: "1"},
	}
}

func TestAPIClient_Estimate(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1/", 5*time.Second)

	got, err := c.Estimate(context.Background(), validConfig())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	// 2,400,000 * 1.2 * 1.10 * 1.20 * 1.05 = 3,991,680, rounded to 3,992,000
	if got != 3992000 {
		t.Errorf("Estimate = %d, want 3992000", got)
	}
}

func TestAPIClient_EstimateValidationError(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1", 5*time.Second)

	cfg := validConfig()
	cfg.Floors = 12
	_, err := c.Estimate(context.Background(), cfg)
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("err = %v, want ErrStatus", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest || apiErr.Field != "floors" {
		t.Errorf("err = %#v, want 400 on floors", err)
	}
}

func TestAPIClient_EstimateFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantStatus: true,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "missing estimate",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"breakdown":{}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Estimate(context.Background(), validConfig())
			if err == nil {
				t.Fatal("expected an error")
			}
			if errors.Is(err, ErrStatus) != tt.wantStatus {
				t.Errorf("errors.Is(err, ErrStatus) = %v, want %v (err %v)", !tt.wantStatus, tt.wantStatus, err)
			}
		})
	}
}

func TestAPIClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	if _, err := New(base, time.Second).Estimate(context.Background(), validConfig()); err == nil {
		t.Fatal("expected an error from a closed server")
	}
}

func TestAPIClient_SavedPlans(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1", 5*time.Second)
	ctx := context.Background()

	cfg := validConfig()
	plan, err := c.CreateSavedPlan(ctx, model.SavedPlanRequest{
		SessionID:      "sess-1",
		SavedPlanEntry: model.SavedPlanEntry{CustomPackage: &cfg},
	})
	if err != nil {
		t.Fatalf("CreateSavedPlan: %v", err)
	}

	plans, err := c.ListSavedPlans(ctx, "sess-1")
	if err != nil || len(plans) != 1 || plans[0].ID != plan.ID {
		t.Fatalf("ListSavedPlans = %+v, %v", plans, err)
	}

	if err := c.DeleteSavedPlan(ctx, plan.ID); err != nil {
		t.Fatalf("DeleteSavedPlan: %v", err)
	}
	err = c.DeleteSavedPlan(ctx, plan.ID)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("second delete err = %v, want 404", err)
	}
}

func TestAPIClient_SubmitInquiry(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1", 5*time.Second)
	ctx := context.Background()

	cfg := validConfig()
	cfg.EstimatedCostRupees = 3993000
	inquiry, err := c.SubmitInquiry(ctx, model.InquiryRequest{
		FullName:      "Meera Iyer",
		PhoneNumber:   "9988776655",
		Location:      "Chennai",
		CustomPackage: &cfg,
	})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}
	if inquiry.ID == 0 || inquiry.CustomPackage == nil || inquiry.CustomPackage.EstimatedCostRupees != 3993000 {
		t.Errorf("inquiry = %+v", inquiry)
	}

	_, err = c.SubmitInquiry(ctx, model.InquiryRequest{FullName: "M", PhoneNumber: "9988776655", Location: "Chennai"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Field != "fullName" {
		t.Errorf("err = %v, want field fullName", err)
	}
}

func TestAPIClient_Catalog(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api/v1", 5*time.Second)
	ctx := context.Background()

	packages, err := c.ListPackages(ctx, model.PackageFilters{Size: "medium", Style: "modern"})
	if err != nil || len(packages) != 1 || packages[0].Name != "Modern 2BHK Villa" {
		t.Fatalf("ListPackages = %+v, %v", packages, err)
	}

	similar, err := c.SimilarPackages(ctx, validConfig(), 2)
	if err != nil || len(similar) != 2 {
		t.Fatalf("SimilarPackages = %+v, %v", similar, err)
	}

	materials, err := c.ListMaterials(ctx, model.MaterialFilters{Category: "doors"})
	if err != nil || len(materials) != 1 || materials[0].Name != "Hardwood Doors" {
		t.Fatalf("ListMaterials = %+v, %v", materials, err)
	}
}
