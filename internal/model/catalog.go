package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Package represents a prefabricated house package
type Package struct {
	ID               int64           `json:"id" db:"id" yaml:"-"`
	Name             string          `json:"name" db:"name" yaml:"name"`
	NameHindi        string          `json:"nameHindi" db:"name_hindi" yaml:"name_hindi"`
	Description      string          `json:"description" db:"description" yaml:"description"`
	DescriptionHindi string          `json:"descriptionHindi" db:"description_hindi" yaml:"description_hindi"`
	SizeSqFt         int             `json:"size" db:"size_sqft" yaml:"size"`
	Bedrooms         int             `json:"bedrooms" db:"bedrooms" yaml:"bedrooms"`
	Bathrooms        int             `json:"bathrooms" db:"bathrooms" yaml:"bathrooms"`
	PriceRupees      int64           `json:"price" db:"price" yaml:"price"`
	Style            HouseType       `json:"style" db:"style" yaml:"style"`
	Popular          bool            `json:"popular" db:"popular" yaml:"popular"`
	Premium          bool            `json:"premium" db:"premium" yaml:"premium"`
	Budget           bool            `json:"budget" db:"budget" yaml:"budget"`
	ImageURL         string          `json:"imageUrl" db:"image_url" yaml:"image_url"`
	Profile          pgvector.Vector `json:"-" db:"profile" yaml:"-"`
}

// Material represents a building material option
type Material struct {
	ID               int64            `json:"id" db:"id" yaml:"-"`
	Name             string           `json:"name" db:"name" yaml:"name"`
	NameHindi        string           `json:"nameHindi" db:"name_hindi" yaml:"name_hindi"`
	Category         MaterialCategory `json:"category" db:"category" yaml:"category"`
	Description      string           `json:"description" db:"description" yaml:"description"`
	DescriptionHindi string           `json:"descriptionHindi" db:"description_hindi" yaml:"description_hindi"`
	Premium          bool             `json:"premium" db:"premium" yaml:"premium"`
	ImageURL         string           `json:"imageUrl" db:"image_url" yaml:"image_url"`
}

// Project represents a completed portfolio project
type Project struct {
	ID               int64  `json:"id" db:"id" yaml:"-"`
	Title            string `json:"title" db:"title" yaml:"title"`
	TitleHindi       string `json:"titleHindi" db:"title_hindi" yaml:"title_hindi"`
	Subtitle         string `json:"subtitle" db:"subtitle" yaml:"subtitle"`
	SubtitleHindi    string `json:"subtitleHindi" db:"subtitle_hindi" yaml:"subtitle_hindi"`
	Description      string `json:"description" db:"description" yaml:"description"`
	DescriptionHindi string `json:"descriptionHindi" db:"description_hindi" yaml:"description_hindi"`
	Completed        bool   `json:"completed" db:"completed" yaml:"completed"`
	Location         string `json:"location" db:"location" yaml:"location"`
	ImageURL         string `json:"imageUrl" db:"image_url" yaml:"image_url"`
}

// PackageFilters represents the package list query.
// Empty or "all" disables a filter.
type PackageFilters struct {
	Size   string `form:"size" json:"size,omitempty"`     // small, medium, large
	BHK    string `form:"bhk" json:"bhk,omitempty"`       // 1, 2, 3, 4+
	Style  string `form:"style" json:"style,omitempty"`   // house type
	Budget string `form:"budget" json:"budget,omitempty"` // 15-20, 20-30, 30-50, 50+ (lakhs)
}

// MaterialFilters represents the material list query
type MaterialFilters struct {
	Category string `form:"category" json:"category,omitempty"`
	Query    string `form:"q" json:"q,omitempty"`
}

// InquiryRequest is the contact form plus the optional builder configuration
type InquiryRequest struct {
	FullName      string             `json:"fullName" binding:"required,min=2"`
	PhoneNumber   string             `json:"phoneNumber" binding:"required,min=10"`
	Email         string             `json:"email,omitempty" binding:"omitempty,email"`
	Location      string             `json:"location" binding:"required,min=2"`
	Requirements  string             `json:"requirements,omitempty"`
	CustomPackage *HomeConfiguration `json:"customPackage,omitempty" binding:"-"`
}

// Inquiry is a stored lead
type Inquiry struct {
	ID            int64              `json:"id" db:"id"`
	FullName      string             `json:"fullName" db:"full_name"`
	PhoneNumber   string             `json:"phoneNumber" db:"phone_number"`
	Email         *string            `json:"email,omitempty" db:"email"`
	Location      *string            `json:"location,omitempty" db:"location"`
	Requirements  *string            `json:"requirements,omitempty" db:"requirements"`
	CustomPackage *HomeConfiguration `json:"customPackage,omitempty" db:"custom_package"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
}

// SavedPlanEntry references either a stock package or a custom configuration
type SavedPlanEntry struct {
	PackageID     *int64             `json:"packageId,omitempty"`
	CustomPackage *HomeConfiguration `json:"customPackage,omitempty"`
}

// IsPackage reports whether the entry references a stock package
func (e SavedPlanEntry) IsPackage() bool {
	return e.PackageID != nil && e.CustomPackage == nil
}

// IsCustom reports whether the entry holds a wizard result
func (e SavedPlanEntry) IsCustom() bool {
	return e.CustomPackage != nil && e.PackageID == nil
}

// SameAs reports whether two entries refer to the same plan.
// Packages match on id; custom plans match on land area, floors and house type.
func (e SavedPlanEntry) SameAs(other SavedPlanEntry) bool {
	if e.PackageID != nil && other.PackageID != nil {
		return *e.PackageID == *other.PackageID
	}
	if e.CustomPackage != nil && other.CustomPackage != nil {
		a, b := e.CustomPackage, other.CustomPackage
		return a.LandAreaSqFt == b.LandAreaSqFt &&
			a.Floors == b.Floors &&
			a.HouseType == b.HouseType
	}
	return false
}

// SavedPlanRequest is the body of POST /saved-plans
type SavedPlanRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	SavedPlanEntry
}

// SavedPlan is a server-side saved plan record
type SavedPlan struct {
	ID            int64              `json:"id" db:"id"`
	SessionID     string             `json:"sessionId" db:"session_id"`
	PackageID     *int64             `json:"packageId,omitempty" db:"package_id"`
	CustomPackage *HomeConfiguration `json:"customPackage,omitempty" db:"custom_package"`
	CreatedAt     time.Time          `json:"createdAt" db:"created_at"`
}
