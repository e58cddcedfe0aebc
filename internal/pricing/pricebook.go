package pricing

import (
	"fmt"
	"maps"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// PriceBook is a catalog price book plus optional multiplier and rate
// overrides. Override tables are merged over the built-in ones key by key.
type PriceBook struct {
	catalog.PriceBook `yaml:",inline"`

	Multipliers *Multipliers   `json:"multipliers,omitempty" yaml:"multipliers,omitempty"`
	Rates       *RateOverrides `json:"rates,omitempty" yaml:"rates,omitempty"`
}

// RateOverrides replaces individual project rates. Nil fields keep the
// default.
type RateOverrides struct {
	TaxRate         *float64 `json:"taxRate,omitempty" yaml:"taxRate,omitempty"`
	OverheadRate    *float64 `json:"overheadRate,omitempty" yaml:"overheadRate,omitempty"`
	ContingencyRate *float64 `json:"contingencyRate,omitempty" yaml:"contingencyRate,omitempty"`
}

// Validate keeps every set rate in [0, 1).
func (r RateOverrides) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TaxRate, validation.Min(0.0), validation.Max(1.0).Exclusive()),
		validation.Field(&r.OverheadRate, validation.Min(0.0), validation.Max(1.0).Exclusive()),
		validation.Field(&r.ContingencyRate, validation.Min(0.0), validation.Max(1.0).Exclusive()),
	)
}

// Book is a validated price book ready to hand to an Engine.
type Book struct {
	Tables      *catalog.Tables
	Multipliers Multipliers
	Assumptions Assumptions
}

// LoadBook reads a JSON or YAML price book with its override sections.
func LoadBook(path string) (*Book, error) {
	var pb PriceBook
	if err := catalog.ReadPriceBook(path, &pb); err != nil {
		return nil, err
	}
	return pb.Book()
}

// ParseBook decodes a price book. format is "json" or "yaml".
func ParseBook(data []byte, format string) (*Book, error) {
	var pb PriceBook
	if err := catalog.DecodePriceBook(data, format, &pb); err != nil {
		return nil, err
	}
	return pb.Book()
}

// Book validates the price book and resolves its overrides against the
// built-in multipliers and assumptions.
func (pb PriceBook) Book() (*Book, error) {
	tables, err := pb.PriceBook.Tables()
	if err != nil {
		return nil, err
	}

	mult := DefaultMultipliers()
	if pb.Multipliers != nil {
		if err := pb.Multipliers.validate(); err != nil {
			return nil, fmt.Errorf("price book multipliers: %w", err)
		}
		mult = mult.Merge(*pb.Multipliers)
	}

	assumptions := DefaultAssumptions()
	if pb.Rates != nil {
		if err := pb.Rates.Validate(); err != nil {
			return nil, fmt.Errorf("price book rates: %w", err)
		}
		if pb.Rates.TaxRate != nil {
			assumptions.TaxRate = *pb.Rates.TaxRate
		}
		if pb.Rates.OverheadRate != nil {
			assumptions.OverheadRate = *pb.Rates.OverheadRate
		}
		if pb.Rates.ContingencyRate != nil {
			assumptions.ContingencyRate = *pb.Rates.ContingencyRate
		}
	}

	return &Book{Tables: tables, Multipliers: mult, Assumptions: assumptions}, nil
}

// WithBook prices from a loaded price book: its catalog, assemblies,
// multipliers and rates.
func WithBook(b *Book) Option {
	return func(e *Engine) {
		WithTables(b.Tables)(e)
		WithMultipliers(b.Multipliers)(e)
		WithAssumptions(b.Assumptions)(e)
	}
}

// Merge returns m with every entry of o laid over it. A country in o keeps
// the cities of m it does not mention; a zero country factor keeps m's.
// Display orders in o replace m's, and keys missing from an order are
// appended sorted.
func (m Multipliers) Merge(o Multipliers) Multipliers {
	out := m.Clone()
	if out.LocationOverrides == nil {
		out.LocationOverrides = map[string]CategoryFactors{}
	}
	maps.Copy(out.LocationOverrides, o.LocationOverrides)
	out.PropertyAge = mergeTable(out.PropertyAge, o.PropertyAge)
	out.PropertyType = mergeTable(out.PropertyType, o.PropertyType)
	out.PropertyCondition = mergeTable(out.PropertyCondition, o.PropertyCondition)
	out.AccessDifficulty = mergeTable(out.AccessDifficulty, o.AccessDifficulty)
	out.Urgency = mergeTable(out.Urgency, o.Urgency)

	if out.Countries == nil {
		out.Countries = map[string]Country{}
	}
	for name, oc := range o.Countries {
		c := out.Countries[name]
		if oc.Factor != 0 {
			c.Factor = oc.Factor
		}
		c.Cities = mergeTable(maps.Clone(c.Cities), oc.Cities)
		out.Countries[name] = c
	}

	out.AgeBands = mergeOrder(out.AgeBands, o.AgeBands, out.PropertyAge)
	out.TypeOptions = mergeOrder(out.TypeOptions, o.TypeOptions, out.PropertyType)
	out.ConditionOpts = mergeOrder(out.ConditionOpts, o.ConditionOpts, out.PropertyCondition)
	out.AccessOptions = mergeOrder(out.AccessOptions, o.AccessOptions, out.AccessDifficulty)
	out.UrgencyOptions = mergeOrder(out.UrgencyOptions, o.UrgencyOptions, out.Urgency)
	out.CountryOrder = mergeOrder(out.CountryOrder, o.CountryOrder, out.Countries)
	return out
}

func mergeTable(dst, src map[string]float64) map[string]float64 {
	if dst == nil {
		dst = make(map[string]float64, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

func mergeOrder[V any](base, override []string, table map[string]V) []string {
	order := base
	if len(override) > 0 {
		order = append([]string(nil), override...)
	}
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		seen[k] = true
	}
	for _, k := range slices.Sorted(maps.Keys(table)) {
		if !seen[k] {
			order = append(order, k)
		}
	}
	return order
}

// validate rejects factors that would zero out or corrupt a price.
func (m Multipliers) validate() error {
	tables := map[string]map[string]float64{
		"propertyAge":       m.PropertyAge,
		"propertyType":      m.PropertyType,
		"propertyCondition": m.PropertyCondition,
		"accessDifficulty":  m.AccessDifficulty,
		"urgency":           m.Urgency,
	}
	for name, table := range tables {
		for key, v := range table {
			if !positive(v) {
				return fmt.Errorf("%s %q: factor must be a positive number, got %v", name, key, v)
			}
		}
	}
	for loc, f := range m.LocationOverrides {
		if !positive(f.Labor) || !positive(f.Material) || !positive(f.Other) {
			return fmt.Errorf("locationOverrides %q: factors must be positive numbers, got %+v", loc, f)
		}
	}
	for name, c := range m.Countries {
		if c.Factor != 0 && !positive(c.Factor) {
			return fmt.Errorf("countries %q: factor must be a positive number, got %v", name, c.Factor)
		}
		for city, v := range c.Cities {
			if !positive(v) {
				return fmt.Errorf("countries %q city %q: factor must be a positive number, got %v", name, city, v)
			}
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && finite64(v)
}
