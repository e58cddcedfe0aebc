package pricing

import (
	"errors"
	"fmt"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// Version and currency reported by an engine over the built-in tables.
const (
	DefaultVersion  = "2025.1"
	DefaultCurrency = "EUR"
)

// DefaultAssumptions returns the fixed rates of the single supported tax regime.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		TaxRate:              0.21,
		OverheadRate:         0.15,
		ContingencyRate:      0.08,
		OpeningsFraction:     OpeningsFraction,
		DefaultCeilingHeight: FallbackCeilingHeight,
	}
}

// ErrMissingProjectItem is returned by NewEngine when the catalog lacks a
// project-level item code.
var ErrMissingProjectItem = errors.New("project item missing from catalog")

// Engine turns a ProjectInput into a priced bill of quantities. Its tables
// are never mutated, so one Engine may serve concurrent callers.
type Engine struct {
	version     string
	currency    string
	catalog     *catalog.Catalog
	assemblies  *catalog.Registry
	multipliers Multipliers
	assumptions Assumptions
}

// Option configures an Engine in NewEngine.
type Option func(*Engine)

// WithTables prices from a loaded price book instead of the built-in tables.
func WithTables(t *catalog.Tables) Option {
	return func(e *Engine) {
		e.catalog = t.Catalog
		e.assemblies = t.Assemblies
		if t.Version != "" {
			e.version = t.Version
		}
		if t.Currency != "" {
			e.currency = t.Currency
		}
	}
}

// WithCatalog prices from an in-memory catalog and assembly registry.
func WithCatalog(c *catalog.Catalog, r *catalog.Registry) Option {
	return func(e *Engine) {
		e.catalog = c
		e.assemblies = r
	}
}

// WithMultipliers replaces the multiplier tables.
func WithMultipliers(m Multipliers) Option {
	return func(e *Engine) { e.multipliers = m.Clone() }
}

// WithAssumptions replaces the project rates.
func WithAssumptions(a Assumptions) Option {
	return func(e *Engine) { e.assumptions = a }
}

// NewEngine builds an engine over the built-in tables unless options replace
// them. The project-level catalog codes must be present.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		version:     DefaultVersion,
		currency:    DefaultCurrency,
		multipliers: DefaultMultipliers(),
		assumptions: DefaultAssumptions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		e.catalog = catalog.DefaultCatalog()
	}
	if e.assemblies == nil {
		e.assemblies = catalog.DefaultAssemblies()
	}

	for _, code := range []string{catalog.CodeSiteSetup, catalog.CodeSurfaceProtection, catalog.CodeFinalCleanup} {
		if _, ok := e.catalog.Lookup(code); !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingProjectItem, code)
		}
	}
	return e, nil
}

// Version identifies the price book the engine prices from.
func (e *Engine) Version() string { return e.version }

// Currency is the ISO code every amount is expressed in.
func (e *Engine) Currency() string { return e.currency }

// Assumptions returns the project rates.
func (e *Engine) Assumptions() Assumptions { return e.assumptions }

// Catalog returns the priced items.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Assemblies returns the selection-to-items registry.
func (e *Engine) Assemblies() *catalog.Registry { return e.assemblies }

// Multipliers returns a copy of the engine's lookup tables.
func (e *Engine) Multipliers() Multipliers { return e.multipliers.Clone() }

// Estimate prices every room and the project-level items and aggregates the
// result. It performs no I/O and never fails: table gaps surface as
// diagnostics. Inputs are expected to have passed ValidateInput.
func (e *Engine) Estimate(in ProjectInput) ItemizedEstimateResult {
	rooms := make([]RoomBreakdown, 0, len(in.Rooms))
	all := make([]LineItem, 0)
	var diags []Diagnostic

	var floorAreas []float64
	for i, room := range in.Rooms {
		rb, d := e.EstimateRoom(i, room, in.PropertyLocation, in.PropertyAge)
		rooms = append(rooms, rb)
		all = append(all, rb.LineItems...)
		diags = append(diags, d...)
		floorAreas = append(floorAreas, rb.FloorArea)
	}
	totalFloorArea := sum2(floorAreas...)

	project, d := e.projectItems(totalFloorArea)
	diags = append(diags, d...)
	all = append(all, project...)

	multipliers := e.multipliers.Resolve(in)

	return ItemizedEstimateResult{
		PricingVersion: e.version,
		Currency:       e.currency,
		Assumptions:    e.assumptions,
		Summary:        e.summarize(all, multipliers.Combined),
		Rooms:          rooms,
		ProjectItems:   project,
		LineItems:      all,
		Multipliers:    multipliers,
		Input: InputSummary{
			PropertyLocation:  in.PropertyLocation,
			PropertyCity:      in.PropertyCity,
			PropertyAge:       in.PropertyAge,
			PropertyType:      in.PropertyType,
			PropertyCondition: in.PropertyCondition,
			AccessDifficulty:  in.AccessDifficulty,
			Urgency:           in.Urgency,
			RoomCount:         len(in.Rooms),
			TotalFloorArea:    totalFloorArea,
			Rooms:             append([]RoomInput(nil), in.Rooms...),
		},
		Diagnostics: diags,
	}
}
