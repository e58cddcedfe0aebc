package pricing

import (
	"maps"
	"slices"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// LocationOption is one country and the cities it prices separately.
type LocationOption struct {
	Country string   `json:"country"`
	Cities  []string `json:"cities"`
}

// OptionSet lists every enumerated choice an input form offers, in display
// order.
type OptionSet struct {
	Locations         []LocationOption `json:"locations"`
	PropertyAge       []string         `json:"propertyAge"`
	PropertyType      []string         `json:"propertyType"`
	PropertyCondition []string         `json:"propertyCondition"`
	AccessDifficulty  []string         `json:"accessDifficulty"`
	Urgency           []string         `json:"urgency"`
	CeilingHeight     []string         `json:"ceilingHeight"`
	FloorFinish       []string         `json:"floorFinish"`
	WallFinish        []string         `json:"wallFinish"`
	BuiltInFurniture  []string         `json:"builtInFurniture"`
}

// Options derives the option set from the engine's tables. Finish choices
// come from the assembly registry; "None" always leads the built-ins.
func (e *Engine) Options() OptionSet {
	m := e.multipliers.Clone()

	locations := make([]LocationOption, 0, len(m.CountryOrder))
	for _, name := range m.CountryOrder {
		country, ok := m.Countries[name]
		if !ok {
			continue
		}
		locations = append(locations, LocationOption{Country: name, Cities: slices.Sorted(maps.Keys(country.Cities))})
	}

	return OptionSet{
		Locations:         locations,
		PropertyAge:       m.AgeBands,
		PropertyType:      m.TypeOptions,
		PropertyCondition: m.ConditionOpts,
		AccessDifficulty:  m.AccessOptions,
		Urgency:           m.UrgencyOptions,
		CeilingHeight:     CeilingBands(),
		FloorFinish:       e.assemblies.Values(catalog.SelectionFloorFinish),
		WallFinish:        e.assemblies.Values(catalog.SelectionWallFinish),
		BuiltInFurniture:  append([]string{catalog.BuiltInNone}, e.assemblies.Values(catalog.SelectionBuiltInFurniture)...),
	}
}
