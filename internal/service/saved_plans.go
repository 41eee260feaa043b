package service

import (
	"context"
	"fmt"

	"buildmyhome/internal/model"
	"buildmyhome/internal/repository"
)

// FieldError reports a request that is well-formed JSON but semantically invalid
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// SavedPlanService manages server-side saved plans keyed by session id
type SavedPlanService struct {
	repo repository.Repository
}

// NewSavedPlanService creates a new saved plan service
func NewSavedPlanService(repo repository.Repository) *SavedPlanService {
	return &SavedPlanService{repo: repo}
}

// Create stores a saved plan. Exactly one of packageId and customPackage must be set,
// and a packageId must reference an existing package.
func (s *SavedPlanService) Create(ctx context.Context, req model.SavedPlanRequest) (*model.SavedPlan, error) {
	switch {
	case req.PackageID != nil && req.CustomPackage != nil:
		return nil, &FieldError{Field: "packageId", Message: "cannot be combined with customPackage"}
	case req.PackageID == nil && req.CustomPackage == nil:
		return nil, &FieldError{Field: "packageId", Message: "or customPackage is required"}
	}

	plan := &model.SavedPlan{SessionID: req.SessionID}

	if req.PackageID != nil {
		pkg, err := s.repo.GetPackage(ctx, *req.PackageID)
		if err != nil {
			return nil, err
		}
		if pkg == nil {
			return nil, &FieldError{Field: "packageId", Message: "does not reference a package"}
		}
		id := *req.PackageID
		plan.PackageID = &id
	} else {
		cfg := req.CustomPackage.Clone()
		plan.CustomPackage = &cfg
	}

	if err := s.repo.CreateSavedPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// List returns a session's saved plans
func (s *SavedPlanService) List(ctx context.Context, sessionID string) ([]model.SavedPlan, error) {
	return s.repo.ListSavedPlans(ctx, sessionID)
}

// Delete removes a saved plan and reports whether it existed
func (s *SavedPlanService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteSavedPlan(ctx, id)
}
