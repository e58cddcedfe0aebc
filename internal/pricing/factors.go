package pricing

import "github.com/Simplici0/reno.works/internal/catalog"

// CategoryFactors is the per-category location adjustment for one location.
type CategoryFactors struct {
	Labor    float64 `json:"labor" yaml:"labor"`
	Material float64 `json:"material" yaml:"material"`
	Other    float64 `json:"other" yaml:"other"`
}

// NeutralFactors applies to every location without an override.
var NeutralFactors = CategoryFactors{Labor: 1, Material: 1, Other: 1}

// For returns the factor applying to a cost category. Equipment and
// subcontract share Other.
func (f CategoryFactors) For(category catalog.CostCategory) float64 {
	switch category {
	case catalog.CategoryLabor:
		return f.Labor
	case catalog.CategoryMaterial:
		return f.Material
	default:
		return f.Other
	}
}

// LocationFactor returns the unit-cost adjustment for category at location.
func (m *Multipliers) LocationFactor(location string, category catalog.CostCategory) float64 {
	f, ok := m.LocationOverrides[location]
	if !ok {
		f = NeutralFactors
	}
	return f.For(category)
}

// AgeFactor returns the unit-cost adjustment for category in a property of
// the given age band. Only labor is affected.
func (m *Multipliers) AgeFactor(age string, category catalog.CostCategory) float64 {
	if category != catalog.CategoryLabor {
		return 1
	}
	if v, ok := m.PropertyAge[age]; ok {
		return v
	}
	return 1
}
