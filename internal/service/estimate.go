package service

import (
	"log"

	"buildmyhome/internal/estimate"
	"buildmyhome/internal/model"
)

// EstimateService is the authoritative copy of the cost estimate
type EstimateService struct {
	debug bool
}

// NewEstimateService creates a new estimate service
func NewEstimateService(debug bool) *EstimateService {
	return &EstimateService{debug: debug}
}

// Calculate prices a validated configuration. Any estimate already carried by
// the request is ignored.
func (s *EstimateService) Calculate(cfg model.HomeConfiguration) *model.EstimateResponse {
	b := estimate.Explain(cfg)
	if s.debug {
		log.Printf("[DEBUG] 🧮 Estimate land=%d floors=%d type=%s interior=%s materials=%d -> %d",
			cfg.LandAreaSqFt, cfg.Floors, cfg.HouseType, cfg.InteriorType, cfg.Materials.Selected(), b.Rounded)
	}
	return &model.EstimateResponse{
		EstimatedCostRupees: b.Rounded,
		Breakdown:           &b,
	}
}
