package repository

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"buildmyhome/internal/model"
	"buildmyhome/internal/utils"
)

// MemoryRepository keeps everything in process memory. It backs local
// development and tests; data is lost on restart.
type MemoryRepository struct {
	mu sync.RWMutex

	packages  []model.Package
	materials []model.Material
	projects  []model.Project

	inquiries  []model.Inquiry
	savedPlans map[int64]model.SavedPlan

	nextInquiryID int64
	nextPlanID    int64

	now func() time.Time
}

// NewMemoryRepository creates a repository seeded with the given catalog
func NewMemoryRepository(seed *Seed) *MemoryRepository {
	r := &MemoryRepository{
		savedPlans: make(map[int64]model.SavedPlan),
		now:        time.Now,
	}
	if seed == nil {
		return r
	}

	for i, p := range seed.Packages {
		p.ID = int64(i + 1)
		r.packages = append(r.packages, p)
	}
	for i, m := range seed.Materials {
		m.ID = int64(i + 1)
		r.materials = append(r.materials, m)
	}
	for i, p := range seed.Projects {
		p.ID = int64(i + 1)
		r.projects = append(r.projects, p)
	}
	return r
}

// Close is a no-op
func (r *MemoryRepository) Close() error {
	return nil
}

// ListPackages returns packages matching the filters in id order
func (r *MemoryRepository) ListPackages(ctx context.Context, filters model.PackageFilters) ([]model.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Package{}
	for _, p := range r.packages {
		if MatchesPackage(p, filters) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetPackage returns a package by id, or nil if it does not exist
func (r *MemoryRepository) GetPackage(ctx context.Context, id int64) (*model.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.packages {
		if p.ID == id {
			pkg := p
			return &pkg, nil
		}
	}
	return nil, nil
}

// SimilarPackages returns up to limit packages ordered by L2 distance to profile
func (r *MemoryRepository) SimilarPackages(ctx context.Context, profile []float32, limit int) ([]model.Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		pkg  model.Package
		dist float64
	}
	ranked := make([]scored, 0, len(r.packages))
	for _, p := range r.packages {
		ranked = append(ranked, scored{pkg: p, dist: l2(profile, p.Profile.Slice())})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].dist < ranked[j].dist
	})

	if limit > len(ranked) || limit <= 0 {
		limit = len(ranked)
	}
	out := make([]model.Package, 0, limit)
	for _, s := range ranked[:limit] {
		out = append(out, s.pkg)
	}
	return out, nil
}

// ListMaterials returns materials in a category and/or matching a fuzzy query
func (r *MemoryRepository) ListMaterials(ctx context.Context, filters model.MaterialFilters) ([]model.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	terms := utils.SplitTerms(filters.Query)
	out := []model.Material{}
	for _, m := range r.materials {
		if filters.Category != "" && filters.Category != "all" &&
			!strings.EqualFold(string(m.Category), filters.Category) {
			continue
		}
		if !matchesAllTerms(m, terms) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func matchesAllTerms(m model.Material, terms []string) bool {
	for _, term := range terms {
		if !utils.FuzzyMatchMaterial(term, m.Name) && !utils.FuzzyMatchMaterial(term, m.Description) {
			return false
		}
	}
	return true
}

// GetMaterial returns a material by id, or nil if it does not exist
func (r *MemoryRepository) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.materials {
		if m.ID == id {
			mat := m
			return &mat, nil
		}
	}
	return nil, nil
}

// ListProjects returns all portfolio projects
func (r *MemoryRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Project{}, r.projects...), nil
}

// GetProject returns a project by id, or nil if it does not exist
func (r *MemoryRepository) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			proj := p
			return &proj, nil
		}
	}
	return nil, nil
}

// CreateInquiry stores the inquiry and fills in its id and creation time
func (r *MemoryRepository) CreateInquiry(ctx context.Context, inquiry *model.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextInquiryID++
	inquiry.ID = r.nextInquiryID
	inquiry.CreatedAt = r.now()

	stored := *inquiry
	if inquiry.CustomPackage != nil {
		cfg := inquiry.CustomPackage.Clone()
		stored.CustomPackage = &cfg
	}
	r.inquiries = append(r.inquiries, stored)
	return nil
}

// ListInquiries returns inquiries newest first
func (r *MemoryRepository) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Inquiry, 0, len(r.inquiries))
	for i := len(r.inquiries) - 1; i >= 0; i-- {
		out = append(out, r.inquiries[i])
	}
	return out, nil
}

// ListSavedPlans returns a session's saved plans in creation order
func (r *MemoryRepository) ListSavedPlans(ctx context.Context, sessionID string) ([]model.SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.SavedPlan{}
	for _, p := range r.savedPlans {
		if p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateSavedPlan stores the plan and fills in its id and creation time
func (r *MemoryRepository) CreateSavedPlan(ctx context.Context, plan *model.SavedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextPlanID++
	plan.ID = r.nextPlanID
	plan.CreatedAt = r.now()

	stored := *plan
	if plan.CustomPackage != nil {
		cfg := plan.CustomPackage.Clone()
		stored.CustomPackage = &cfg
	}
	r.savedPlans[plan.ID] = stored
	return nil
}

// DeleteSavedPlan removes a saved plan and reports whether it existed
func (r *MemoryRepository) DeleteSavedPlan(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.savedPlans[id]; !ok {
		return false, nil
	}
	delete(r.savedPlans, id)
	return true, nil
}

func l2(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
