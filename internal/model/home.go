package model

// HouseType is the architectural style chosen in the basics step
type HouseType string

const (
	HouseModern       HouseType = "modern"
	HouseTraditional  HouseType = "traditional"
	HouseContemporary HouseType = "contemporary"
	HouseMinimalist   HouseType = "minimalist"
)

// BudgetRange is the advisory budget bracket in lakhs. It does not feed the estimate.
type BudgetRange string

const (
	Budget15To20   BudgetRange = "15-20"
	Budget20To30   BudgetRange = "20-30"
	Budget30To50   BudgetRange = "30-50"
	Budget50To75   BudgetRange = "50-75"
	Budget75To100  BudgetRange = "75-100"
	Budget100Above BudgetRange = "100+"
)

// InteriorType is the interior finish tier
type InteriorType string

const (
	InteriorBasic   InteriorType = "basic"
	InteriorPremium InteriorType = "premium"
	InteriorLuxury  InteriorType = "luxury"
)

// FloorPlan, CeilingHeight and WindowStyle are the design step choices
type (
	FloorPlan     string
	CeilingHeight string
	WindowStyle   string
)

const (
	FloorPlanOpen        FloorPlan = "open"
	FloorPlanTraditional FloorPlan = "traditional"
	FloorPlanHybrid      FloorPlan = "hybrid"

	CeilingStandard CeilingHeight = "standard"
	CeilingHigh     CeilingHeight = "high"
	CeilingVaulted  CeilingHeight = "vaulted"

	WindowStandard  WindowStyle = "standard"
	WindowLarge     WindowStyle = "large"
	WindowPanoramic WindowStyle = "panoramic"
)

// MaterialCategory names a slot in the materials selection
type MaterialCategory string

const (
	CategoryFlooring MaterialCategory = "flooring"
	CategoryWalls    MaterialCategory = "walls"
	CategoryKitchen  MaterialCategory = "kitchen"
	CategoryBathroom MaterialCategory = "bathroom"
	CategoryDoors    MaterialCategory = "doors"
	CategoryWindows  MaterialCategory = "windows"
)

// RequiredCategories must all have a selection before leaving the materials step.
// Windows is optional.
var RequiredCategories = []MaterialCategory{
	CategoryFlooring,
	CategoryWalls,
	CategoryKitchen,
	CategoryBathroom,
	CategoryDoors,
}

// Design holds the design step selections
type Design struct {
	FloorPlan     FloorPlan     `json:"floorPlan" binding:"required,oneof=open traditional hybrid"`
	CeilingHeight CeilingHeight `json:"ceilingHeight" binding:"required,oneof=standard high vaulted"`
	WindowStyle   WindowStyle   `json:"windowStyle" binding:"required,oneof=standard large panoramic"`
}

// Complete reports whether all three design choices are made
func (d *Design) Complete() bool {
	return d != nil && d.FloorPlan != "" && d.CeilingHeight != "" && d.WindowStyle != ""
}

// Interiors holds the interiors step selections other than the tier
type Interiors struct {
	LightingQuality int      `json:"lightingQuality" binding:"omitempty,min=1,max=3"`
	Appliances      []string `json:"appliances"`
}

// HasAppliance reports whether id is in the appliance set
func (i *Interiors) HasAppliance(id string) bool {
	if i == nil {
		return false
	}
	for _, a := range i.Appliances {
		if a == id {
			return true
		}
	}
	return false
}

// Materials maps a category to the selected material identifier
type Materials map[MaterialCategory]string

// Selected counts categories with a non-empty selection
func (m Materials) Selected() int {
	n := 0
	for _, id := range m {
		if id != "" {
			n++
		}
	}
	return n
}

// HasAll reports whether every category in cats has a selection
func (m Materials) HasAll(cats []MaterialCategory) bool {
	for _, c := range cats {
		if m[c] == "" {
			return false
		}
	}
	return true
}

// HomeConfiguration is the record the builder wizard fills in
type HomeConfiguration struct {
	LandAreaSqFt int          `json:"landAreaSqFt" binding:"required,min=100"`
	Floors       int          `json:"floors" binding:"required,min=1,max=10"`
	Bedrooms     int          `json:"bedrooms" binding:"required,min=1"`
	Bathrooms    int          `json:"bathrooms" binding:"required,min=1"`
	HouseType    HouseType    `json:"houseType" binding:"required,oneof=modern traditional contemporary minimalist"`
	BudgetRange  BudgetRange  `json:"budgetRange,omitempty" binding:"omitempty,oneof=15-20 20-30 30-50 50-75 75-100 100+"`
	Design       *Design      `json:"design,omitempty"`
	Materials    Materials    `json:"materials,omitempty" binding:"omitempty,dive,keys,oneof=flooring walls kitchen bathroom doors windows,endkeys,max=64"`
	InteriorType InteriorType `json:"interiorType,omitempty" binding:"omitempty,oneof=basic premium luxury"`
	Interiors    *Interiors   `json:"interiors,omitempty"`

	// EstimatedCostRupees is derived; it always holds the last estimate for this record.
	EstimatedCostRupees int64 `json:"estimatedCostRupees,omitempty"`
}

// Clone returns a deep copy
func (c HomeConfiguration) Clone() HomeConfiguration {
	out := c
	if c.Design != nil {
		d := *c.Design
		out.Design = &d
	}
	if c.Materials != nil {
		out.Materials = make(Materials, len(c.Materials))
		for k, v := range c.Materials {
			out.Materials[k] = v
		}
	}
	if c.Interiors != nil {
		in := *c.Interiors
		if c.Interiors.Appliances != nil {
			in.Appliances = append([]string{}, c.Interiors.Appliances...)
		}
		out.Interiors = &in
	}
	return out
}

// EstimateResponse is the estimation endpoint's success payload
type EstimateResponse struct {
	EstimatedCostRupees int64      `json:"estimatedCostRupees"`
	Breakdown           *Breakdown `json:"breakdown,omitempty"`
}

// Breakdown exposes every factor of an estimate
type Breakdown struct {
	Base               float64 `json:"base"`
	FloorMultiplier    float64 `json:"floorMultiplier"`
	TypeMultiplier     float64 `json:"typeMultiplier"`
	InteriorMultiplier float64 `json:"interiorMultiplier"`
	MaterialsFactor    float64 `json:"materialsFactor"`
	Raw                float64 `json:"raw"`
	Rounded            int64   `json:"rounded"`
}

// ErrorResponse is the JSON body of every non-2xx API response
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
