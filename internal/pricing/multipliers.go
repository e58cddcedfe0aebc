package pricing

import "maps"

// DefaultLabel marks a multiplier resolved from a key the tables do not know.
const DefaultLabel = "Default"

// Country holds a country's base multiplier and its city adjustments.
type Country struct {
	Factor float64            `json:"factor" yaml:"factor"`
	Cities map[string]float64 `json:"cities" yaml:"cities"`
}

// Multipliers holds every enumerated lookup table used by the engine.
// Tables are read-only once handed to an Engine.
type Multipliers struct {
	LocationOverrides map[string]CategoryFactors `json:"locationOverrides" yaml:"locationOverrides"`
	PropertyAge       map[string]float64         `json:"propertyAge" yaml:"propertyAge"`
	PropertyType      map[string]float64         `json:"propertyType" yaml:"propertyType"`
	PropertyCondition map[string]float64         `json:"propertyCondition" yaml:"propertyCondition"`
	AccessDifficulty  map[string]float64         `json:"accessDifficulty" yaml:"accessDifficulty"`
	Urgency           map[string]float64         `json:"urgency" yaml:"urgency"`
	Countries         map[string]Country         `json:"countries" yaml:"countries"`

	// Display order of the enumerated options; map iteration order is random.
	AgeBands       []string `json:"ageBands" yaml:"ageBands"`
	TypeOptions    []string `json:"typeOptions" yaml:"typeOptions"`
	ConditionOpts  []string `json:"conditionOptions" yaml:"conditionOptions"`
	AccessOptions  []string `json:"accessOptions" yaml:"accessOptions"`
	UrgencyOptions []string `json:"urgencyOptions" yaml:"urgencyOptions"`
	CountryOrder   []string `json:"countryOrder" yaml:"countryOrder"`
}

// DefaultMultipliers returns the built-in multiplier tables.
func DefaultMultipliers() Multipliers {
	m := Multipliers{
		LocationOverrides: map[string]CategoryFactors{
			"United Kingdom": {Labor: 1.4, Material: 1.1, Other: 1.2},
			"Portugal":       {Labor: 0.7, Material: 0.95, Other: 0.85},
		},
		PropertyAge: map[string]float64{
			"0 - 5 Years":   1.00,
			"6 - 10 Years":  1.05,
			"11 - 20 Years": 1.10,
			"21 - 40 Years": 1.20,
			"40+ Years":     1.30,
		},
		PropertyType: map[string]float64{
			"Apartment":  1.00,
			"House":      1.05,
			"Villa":      1.10,
			"Commercial": 1.15,
			"Studio":     0.95,
		},
		PropertyCondition: map[string]float64{
			"Good (minor updates)":     0.95,
			"Average (needs updating)": 1.00,
			"Poor (major renovation)":  1.20,
		},
		AccessDifficulty: map[string]float64{
			"Easy (ground floor / elevator)":            1.00,
			"Moderate (stairs, 1-3 floors)":             1.05,
			"Difficult (stairs 4+ floors / restricted)": 1.12,
		},
		Urgency: map[string]float64{
			"Flexible (3+ months)":  0.95,
			"Standard (1-3 months)": 1.00,
			"Urgent (< 1 month)":    1.15,
		},
		Countries: map[string]Country{
			"Spain": {Factor: 1.00, Cities: map[string]float64{
				"Madrid": 1.10, "Barcelona": 1.12, "Valencia": 1.00, "Other city": 1.00,
			}},
			"Portugal": {Factor: 0.85, Cities: map[string]float64{
				"Lisbon": 1.10, "Porto": 1.05, "Other city": 1.00,
			}},
			"United Kingdom": {Factor: 1.35, Cities: map[string]float64{
				"London": 1.30, "Other city": 1.00,
			}},
			"France":        {Factor: 1.15, Cities: map[string]float64{"Paris": 1.25, "Other city": 1.00}},
			"Germany":       {Factor: 1.20, Cities: map[string]float64{"Berlin": 1.05, "Munich": 1.15, "Other city": 1.00}},
			"Italy":         {Factor: 1.05, Cities: map[string]float64{"Milan": 1.15, "Rome": 1.10, "Other city": 1.00}},
			"Netherlands":   {Factor: 1.20, Cities: map[string]float64{"Amsterdam": 1.15, "Other city": 1.00}},
			"United States": {Factor: 1.30, Cities: map[string]float64{"New York": 1.30, "Other city": 1.00}},
		},
		AgeBands:       []string{"0 - 5 Years", "6 - 10 Years", "11 - 20 Years", "21 - 40 Years", "40+ Years"},
		TypeOptions:    []string{"Apartment", "House", "Villa", "Commercial", "Studio"},
		ConditionOpts:  []string{"Good (minor updates)", "Average (needs updating)", "Poor (major renovation)"},
		AccessOptions:  []string{"Easy (ground floor / elevator)", "Moderate (stairs, 1-3 floors)", "Difficult (stairs 4+ floors / restricted)"},
		UrgencyOptions: []string{"Flexible (3+ months)", "Standard (1-3 months)", "Urgent (< 1 month)"},
		CountryOrder:   []string{"Spain", "Portugal", "United Kingdom", "France", "Germany", "Italy", "Netherlands", "United States"},
	}
	return m
}

// Clone deep-copies the tables so an Engine never shares maps with its caller.
func (m Multipliers) Clone() Multipliers {
	out := m
	out.LocationOverrides = maps.Clone(m.LocationOverrides)
	out.PropertyAge = maps.Clone(m.PropertyAge)
	out.PropertyType = maps.Clone(m.PropertyType)
	out.PropertyCondition = maps.Clone(m.PropertyCondition)
	out.AccessDifficulty = maps.Clone(m.AccessDifficulty)
	out.Urgency = maps.Clone(m.Urgency)
	if m.Countries != nil {
		out.Countries = make(map[string]Country, len(m.Countries))
		for name, c := range m.Countries {
			c.Cities = maps.Clone(c.Cities)
			out.Countries[name] = c
		}
	}
	out.AgeBands = append([]string(nil), m.AgeBands...)
	out.TypeOptions = append([]string(nil), m.TypeOptions...)
	out.ConditionOpts = append([]string(nil), m.ConditionOpts...)
	out.AccessOptions = append([]string(nil), m.AccessOptions...)
	out.UrgencyOptions = append([]string(nil), m.UrgencyOptions...)
	out.CountryOrder = append([]string(nil), m.CountryOrder...)
	return out
}

func lookup(table map[string]float64, key string) ResolvedMultiplier {
	if v, ok := table[key]; ok {
		return ResolvedMultiplier{Value: v, Label: key}
	}
	return ResolvedMultiplier{Value: 1, Label: DefaultLabel}
}

// Location resolves the project-level country × city multiplier. An unknown
// country yields 1.0; an unknown city keeps the country factor.
func (m *Multipliers) Location(country, city string) ResolvedMultiplier {
	c, ok := m.Countries[country]
	if !ok {
		return ResolvedMultiplier{Value: 1, Label: DefaultLabel}
	}
	cityFactor, ok := c.Cities[city]
	if !ok {
		return ResolvedMultiplier{Value: c.Factor, Label: country + " / " + DefaultLabel}
	}
	return ResolvedMultiplier{Value: c.Factor * cityFactor, Label: country + " / " + city}
}

// Resolve looks up every project multiplier for in.
func (m *Multipliers) Resolve(in ProjectInput) ResolvedMultipliers {
	r := ResolvedMultipliers{
		Location:          m.Location(in.PropertyLocation, in.PropertyCity),
		PropertyAge:       lookup(m.PropertyAge, in.PropertyAge),
		PropertyType:      lookup(m.PropertyType, in.PropertyType),
		PropertyCondition: lookup(m.PropertyCondition, in.PropertyCondition),
		AccessDifficulty:  lookup(m.AccessDifficulty, in.AccessDifficulty),
		Urgency:           lookup(m.Urgency, in.Urgency),
	}
	r.Combined = r.PropertyType.Value * r.PropertyCondition.Value * r.AccessDifficulty.Value * r.Urgency.Value
	return r
}
