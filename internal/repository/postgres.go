package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"buildmyhome/internal/model"
	"buildmyhome/internal/utils"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS packages (
	id                BIGSERIAL PRIMARY KEY,
	name              TEXT NOT NULL,
	name_hindi        TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	description_hindi TEXT NOT NULL DEFAULT '',
	size_sqft         INTEGER NOT NULL,
	bedrooms          INTEGER NOT NULL,
	bathrooms         INTEGER NOT NULL,
	price             BIGINT NOT NULL,
	style             TEXT NOT NULL,
	popular           BOOLEAN NOT NULL DEFAULT FALSE,
	premium           BOOLEAN NOT NULL DEFAULT FALSE,
	budget            BOOLEAN NOT NULL DEFAULT FALSE,
	image_url         TEXT NOT NULL DEFAULT '',
	profile           vector(4)
);

CREATE TABLE IF NOT EXISTS materials (
	id                BIGSERIAL PRIMARY KEY,
	name              TEXT NOT NULL,
	name_hindi        TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	description_hindi TEXT NOT NULL DEFAULT '',
	premium           BOOLEAN NOT NULL DEFAULT FALSE,
	image_url         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS projects (
	id                BIGSERIAL PRIMARY KEY,
	title             TEXT NOT NULL,
	title_hindi       TEXT NOT NULL DEFAULT '',
	subtitle          TEXT NOT NULL DEFAULT '',
	subtitle_hindi    TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	description_hindi TEXT NOT NULL DEFAULT '',
	completed         BOOLEAN NOT NULL DEFAULT TRUE,
	location          TEXT NOT NULL DEFAULT '',
	image_url         TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS inquiries (
	id             BIGSERIAL PRIMARY KEY,
	full_name      TEXT NOT NULL,
	phone_number   TEXT NOT NULL,
	email          TEXT,
	location       TEXT,
	requirements   TEXT,
	custom_package JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS saved_plans (
	id             BIGSERIAL PRIMARY KEY,
	session_id     TEXT NOT NULL,
	package_id     BIGINT REFERENCES packages(id) ON DELETE CASCADE,
	custom_package JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_saved_plans_session ON saved_plans (session_id);
`

// EnsureSchema creates the tables and the vector extension if missing
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the seed catalog when the packages table is empty
func (r *PostgresRepository) SeedIfEmpty(ctx context.Context, seed *Seed) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM packages`); err != nil {
		return false, fmt.Errorf("failed to count packages: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range seed.Packages {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO packages (name, name_hindi, description, description_hindi, size_sqft,
				bedrooms, bathrooms, price, style, popular, premium, budget, image_url, profile)
			VALUES (:name, :name_hindi, :description, :description_hindi, :size_sqft,
				:bedrooms, :bathrooms, :price, :style, :popular, :premium, :budget, :image_url, :profile)
		`, p)
		if err != nil {
			return false, fmt.Errorf("failed to insert package %q: %w", p.Name, err)
		}
	}
	for _, m := range seed.Materials {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO materials (name, name_hindi, category, description, description_hindi, premium, image_url)
			VALUES (:name, :name_hindi, :category, :description, :description_hindi, :premium, :image_url)
		`, m)
		if err != nil {
			return false, fmt.Errorf("failed to insert material %q: %w", m.Name, err)
		}
	}
	for _, p := range seed.Projects {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO projects (title, title_hindi, subtitle, subtitle_hindi, description,
				description_hindi, completed, location, image_url)
			VALUES (:title, :title_hindi, :subtitle, :subtitle_hindi, :description,
				:description_hindi, :completed, :location, :image_url)
		`, p)
		if err != nil {
			return false, fmt.Errorf("failed to insert project %q: %w", p.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

const packageColumns = `
	id, name, name_hindi, description, description_hindi, size_sqft, bedrooms,
	bathrooms, price, style, popular, premium, budget, image_url, profile`

// packageWhere translates the package filters into SQL conditions
func packageWhere(f model.PackageFilters) (string, []interface{}) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	switch f.Size {
	case "small":
		whereClauses = append(whereClauses, "size_sqft <= 1000")
	case "medium":
		whereClauses = append(whereClauses, "size_sqft > 1000 AND size_sqft <= 2000")
	case "large":
		whereClauses = append(whereClauses, "size_sqft > 2000")
	}

	if f.BHK != "" && f.BHK != "all" {
		if f.BHK == "4+" {
			whereClauses = append(whereClauses, "bedrooms >= 4")
		} else {
			whereClauses = append(whereClauses, fmt.Sprintf("bedrooms::text = $%d", argIndex))
			args = append(args, f.BHK)
			argIndex++
		}
	}

	if f.Style != "" && f.Style != "all" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(style) = LOWER($%d)", argIndex))
		args = append(args, f.Style)
		argIndex++
	}

	// Budget buckets are in lakhs (1 lakh = 100000 rupees)
	switch f.Budget {
	case "15-20":
		whereClauses = append(whereClauses, "price >= 1500000 AND price <= 2000000")
	case "20-30":
		whereClauses = append(whereClauses, "price > 2000000 AND price <= 3000000")
	case "30-50":
		whereClauses = append(whereClauses, "price > 3000000 AND price <= 5000000")
	case "50+":
		whereClauses = append(whereClauses, "price > 5000000")
	}

	return strings.Join(whereClauses, " AND "), args
}

// ListPackages returns packages matching the filters
func (r *PostgresRepository) ListPackages(ctx context.Context, filters model.PackageFilters) ([]model.Package, error) {
	where, args := packageWhere(filters)
	query := fmt.Sprintf(`SELECT %s FROM packages WHERE %s ORDER BY id`, packageColumns, where)

	packages := []model.Package{}
	if err := r.db.SelectContext(ctx, &packages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch packages: %w", err)
	}
	return packages, nil
}

// GetPackage retrieves a single package by its ID
func (r *PostgresRepository) GetPackage(ctx context.Context, id int64) (*model.Package, error) {
	var pkg model.Package
	query := fmt.Sprintf(`SELECT %s FROM packages WHERE id = $1`, packageColumns)
	err := r.db.GetContext(ctx, &pkg, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

// SimilarPackages returns the packages nearest to profile by L2 distance
func (r *PostgresRepository) SimilarPackages(ctx context.Context, profile []float32, limit int) ([]model.Package, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM packages
		WHERE profile IS NOT NULL
		ORDER BY profile <-> $1
		LIMIT $2
	`, packageColumns)

	packages := []model.Package{}
	if err := r.db.SelectContext(ctx, &packages, query, pgvector.NewVector(profile), limit); err != nil {
		return nil, fmt.Errorf("failed to fetch similar packages: %w", err)
	}
	return packages, nil
}

const materialColumns = `
	id, name, name_hindi, category, description, description_hindi, premium, image_url`

// ListMaterials returns materials filtered by category and fuzzy query
func (r *PostgresRepository) ListMaterials(ctx context.Context, filters model.MaterialFilters) ([]model.Material, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filters.Category != "" && filters.Category != "all" {
		whereClauses = append(whereClauses, fmt.Sprintf("LOWER(category) = LOWER($%d)", argIndex))
		args = append(args, filters.Category)
		argIndex++
	}
	if terms := utils.SplitTerms(filters.Query); len(terms) > 0 {
		conds, params, _ := utils.BuildFuzzyMaterialQuery(terms, argIndex)
		whereClauses = append(whereClauses, conds...)
		args = append(args, params...)
	}

	query := fmt.Sprintf(`SELECT %s FROM materials WHERE %s ORDER BY id`,
		materialColumns, strings.Join(whereClauses, " AND "))

	materials := []model.Material{}
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch materials: %w", err)
	}
	return materials, nil
}

// GetMaterial retrieves a single material by its ID
func (r *PostgresRepository) GetMaterial(ctx context.Context, id int64) (*model.Material, error) {
	var m model.Material
	query := fmt.Sprintf(`SELECT %s FROM materials WHERE id = $1`, materialColumns)
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

const projectColumns = `
	id, title, title_hindi, subtitle, subtitle_hindi, description,
	description_hindi, completed, location, image_url`

// ListProjects returns all portfolio projects
func (r *PostgresRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	query := fmt.Sprintf(`SELECT %s FROM projects ORDER BY id`, projectColumns)
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a single project by its ID
func (r *PostgresRepository) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE id = $1`, projectColumns)
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// CreateInquiry stores an inquiry; the configuration goes into a jsonb column verbatim
func (r *PostgresRepository) CreateInquiry(ctx context.Context, inquiry *model.Inquiry) error {
	query := `
		INSERT INTO inquiries (full_name, phone_number, email, location, requirements, custom_package)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	var pkg interface{}
	if inquiry.CustomPackage != nil {
		pkg = *inquiry.CustomPackage
	}
	row := r.db.QueryRowxContext(ctx, query,
		inquiry.FullName, inquiry.PhoneNumber, inquiry.Email,
		inquiry.Location, inquiry.Requirements, pkg)
	if err := row.Scan(&inquiry.ID, &inquiry.CreatedAt); err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

// ListInquiries returns inquiries newest first
func (r *PostgresRepository) ListInquiries(ctx context.Context) ([]model.Inquiry, error) {
	inquiries := []model.Inquiry{}
	query := `
		SELECT id, full_name, phone_number, email, location, requirements, custom_package, created_at
		FROM inquiries
		ORDER BY created_at DESC, id DESC
	`
	if err := r.db.SelectContext(ctx, &inquiries, query); err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return inquiries, nil
}

// ListSavedPlans returns a session's saved plans in creation order
func (r *PostgresRepository) ListSavedPlans(ctx context.Context, sessionID string) ([]model.SavedPlan, error) {
	plans := []model.SavedPlan{}
	query := `
		SELECT id, session_id, package_id, custom_package, created_at
		FROM saved_plans
		WHERE session_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &plans, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to fetch saved plans: %w", err)
	}
	return plans, nil
}

// CreateSavedPlan stores a saved plan and fills in its id and creation time
func (r *PostgresRepository) CreateSavedPlan(ctx context.Context, plan *model.SavedPlan) error {
	query := `
		INSERT INTO saved_plans (session_id, package_id, custom_package)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	var pkg interface{}
	if plan.CustomPackage != nil {
		pkg = *plan.CustomPackage
	}
	row := r.db.QueryRowxContext(ctx, query, plan.SessionID, plan.PackageID, pkg)
	if err := row.Scan(&plan.ID, &plan.CreatedAt); err != nil {
		return fmt.Errorf("failed to create saved plan: %w", err)
	}
	return nil
}

// DeleteSavedPlan removes a saved plan and reports whether it existed
func (r *PostgresRepository) DeleteSavedPlan(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_plans WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete saved plan: %w", err)
	}
	return n > 0, nil
}
