package service

import (
	"context"
	"log"
	"strings"

	"buildmyhome/internal/model"
	"buildmyhome/internal/repository"
)

// InquiryService stores leads from the contact form and the builder
type InquiryService struct {
	repo repository.Repository
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(repo repository.Repository) *InquiryService {
	return &InquiryService{repo: repo}
}

// Submit stores an inquiry. The attached configuration is stored as sent,
// including its estimate; it is not priced again.
func (s *InquiryService) Submit(ctx context.Context, req model.InquiryRequest) (*model.Inquiry, error) {
	inquiry := &model.Inquiry{
		FullName:     strings.TrimSpace(req.FullName),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Email:        optional(req.Email),
		Location:     optional(req.Location),
		Requirements: optional(req.Requirements),
	}
	if req.CustomPackage != nil {
		cfg := req.CustomPackage.Clone()
		inquiry.CustomPackage = &cfg
	}

	if err := s.repo.CreateInquiry(ctx, inquiry); err != nil {
		return nil, err
	}

	if inquiry.CustomPackage != nil {
		log.Printf("📨 Inquiry %d from %s with custom plan (₹%d)", inquiry.ID, inquiry.FullName, inquiry.CustomPackage.EstimatedCostRupees)
	} else {
		log.Printf("📨 Inquiry %d from %s", inquiry.ID, inquiry.FullName)
	}
	return inquiry, nil
}

// List returns all inquiries newest first
func (s *InquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.repo.ListInquiries(ctx)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
