// Package estimate holds the home cost formula shared by the API and the
// builder's offline fallback. Both paths call the same functions, so the two
// estimates cannot drift.
package estimate

import (
	"math"

	"buildmyhome/internal/model"
)

const (
	// RatePerSqFt is the base construction rate in rupees
	RatePerSqFt = 2000
	// FloorStep is the added fraction per floor above the first
	FloorStep = 0.2
	// MaterialStep is the added fraction per selected material category
	MaterialStep = 0.05
	// RoundTo is the granularity of the final figure
	RoundTo = 1000
)

// TypeMultipliers prices each house style
var TypeMultipliers = map[model.HouseType]float64{
	model.HouseModern:       1.10,
	model.HouseTraditional:  1.00,
	model.HouseContemporary: 1.15,
	model.HouseMinimalist:   0.95,
}

// InteriorMultipliers prices each interior tier. An absent tier costs 1.0.
var InteriorMultipliers = map[model.InteriorType]float64{
	model.InteriorBasic:   1.00,
	model.InteriorPremium: 1.20,
	model.InteriorLuxury:  1.40,
}

// Ready reports whether cfg carries the fields the formula needs.
// Callers skip estimation entirely when it returns false.
func Ready(cfg model.HomeConfiguration) bool {
	return cfg.LandAreaSqFt > 0 && cfg.Floors > 0 && cfg.HouseType != ""
}

// Estimate returns the rounded cost in rupees
func Estimate(cfg model.HomeConfiguration) int64 {
	return Explain(cfg).Rounded
}

// Explain returns every factor that went into the estimate
func Explain(cfg model.HomeConfiguration) model.Breakdown {
	b := model.Breakdown{
		Base:               float64(cfg.LandAreaSqFt) * RatePerSqFt,
		FloorMultiplier:    1 + float64(cfg.Floors-1)*FloorStep,
		TypeMultiplier:     lookup(TypeMultipliers, cfg.HouseType),
		InteriorMultiplier: lookup(InteriorMultipliers, cfg.InteriorType),
		MaterialsFactor:    1 + MaterialStep*float64(cfg.Materials.Selected()),
	}
	// Keep this multiplication order; it fixes the floating point result.
	b.Raw = b.Base * b.FloorMultiplier * b.TypeMultiplier * b.InteriorMultiplier * b.MaterialsFactor
	b.Rounded = Round(b.Raw)
	return b
}

// Round rounds half up to the nearest RoundTo rupees
func Round(raw float64) int64 {
	return int64(math.Floor(raw/RoundTo+0.5)) * RoundTo
}

func lookup[K comparable](table map[K]float64, key K) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1.0
}

// Profile maps a configuration onto the vector space used for package similarity:
// size in thousands of sq ft, bedrooms, bathrooms, style multiplier.
func Profile(cfg model.HomeConfiguration) []float32 {
	return profile(cfg.LandAreaSqFt, cfg.Bedrooms, cfg.Bathrooms, cfg.HouseType)
}

// PackageProfile maps a stock package onto the same space as Profile
func PackageProfile(pkg model.Package) []float32 {
	return profile(pkg.SizeSqFt, pkg.Bedrooms, pkg.Bathrooms, pkg.Style)
}

// ProfileDimensions is the length of a profile vector
const ProfileDimensions = 4

func profile(sizeSqFt, bedrooms, bathrooms int, style model.HouseType) []float32 {
	return []float32{
		float32(sizeSqFt) / 1000,
		float32(bedrooms),
		float32(bathrooms),
		float32(lookup(TypeMultipliers, style)),
	}
}
