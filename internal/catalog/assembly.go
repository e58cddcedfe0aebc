package catalog

import (
	"errors"
	"fmt"
)

// Formula selects which room measure drives an assembly item's quantity.
type Formula string

const (
	FormulaArea        Formula = "area"
	FormulaPerimeter   Formula = "perimeter"
	FormulaWallArea    Formula = "wall_area"
	FormulaCeilingArea Formula = "ceiling_area"
	FormulaFixed       Formula = "fixed"
	FormulaCount       Formula = "count"
)

// Selection categories a room input can carry.
const (
	SelectionFloorFinish      = "floorFinish"
	SelectionWallFinish       = "wallFinish"
	SelectionBuiltInFurniture = "builtInFurniture"
)

// BuiltInNone is the explicit "no built-ins" selection.
const BuiltInNone = "None"

var ErrDuplicateAssembly = errors.New("duplicate assembly")

// AssemblyItem references a catalog item and says how much of it one
// application of the assembly consumes.
type AssemblyItem struct {
	CatalogCode  string  `json:"catalogCode" yaml:"catalogCode"`
	Formula      Formula `json:"formula" yaml:"formula"`
	Multiplier   float64 `json:"multiplier" yaml:"multiplier"`
	IncludeWaste bool    `json:"includeWaste" yaml:"includeWaste"`
}

// SelectionKey is the (category, value) pair an assembly answers to.
type SelectionKey struct {
	Category string
	Value    string
}

func (k SelectionKey) String() string {
	return k.Category + "=" + k.Value
}

// Assembly is the ordered recipe of catalog items invoked when a finish or
// furniture option is selected.
type Assembly struct {
	Code     string         `json:"code" yaml:"code"`
	Name     string         `json:"name" yaml:"name"`
	Category string         `json:"category" yaml:"category"`
	Value    string         `json:"value" yaml:"value"`
	Items    []AssemblyItem `json:"items" yaml:"items"`
}

func (a Assembly) Key() SelectionKey {
	return SelectionKey{Category: a.Category, Value: a.Value}
}

// Registry maps selection keys to assemblies. Keys are unique.
type Registry struct {
	order []SelectionKey
	byKey map[SelectionKey]Assembly
}

// NewRegistry builds a registry, rejecting repeated selection keys and
// repeated assembly codes.
func NewRegistry(assemblies ...Assembly) (*Registry, error) {
	r := &Registry{
		order: make([]SelectionKey, 0, len(assemblies)),
		byKey: make(map[SelectionKey]Assembly, len(assemblies)),
	}
	codes := make(map[string]struct{}, len(assemblies))
	for _, a := range assemblies {
		if a.Code == "" || a.Category == "" {
			return nil, fmt.Errorf("assembly %q: code and category are required", a.Code)
		}
		key := a.Key()
		if _, exists := r.byKey[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAssembly, key)
		}
		if _, exists := codes[a.Code]; exists {
			return nil, fmt.Errorf("%w: code %s", ErrDuplicateAssembly, a.Code)
		}
		codes[a.Code] = struct{}{}

		items := make([]AssemblyItem, len(a.Items))
		copy(items, a.Items)
		a.Items = items

		r.byKey[key] = a
		r.order = append(r.order, key)
	}
	return r, nil
}

// Resolve returns the assembly registered for (category, value).
func (r *Registry) Resolve(category, value string) (Assembly, bool) {
	a, ok := r.byKey[SelectionKey{Category: category, Value: value}]
	if !ok {
		return Assembly{}, false
	}
	return a.clone(), true
}

// Assemblies returns every assembly in registration order.
func (r *Registry) Assemblies() []Assembly {
	out := make([]Assembly, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key].clone())
	}
	return out
}

// Values lists the selectable values of a category in registration order.
func (r *Registry) Values(category string) []string {
	var out []string
	for _, key := range r.order {
		if key.Category == category {
			out = append(out, key.Value)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

// CheckReferences returns the codes referenced by assemblies that the
// catalog does not contain, in registry order.
func (r *Registry) CheckReferences(c *Catalog) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, key := range r.order {
		for _, it := range r.byKey[key].Items {
			if _, ok := c.Lookup(it.CatalogCode); ok {
				continue
			}
			if _, dup := seen[it.CatalogCode]; dup {
				continue
			}
			seen[it.CatalogCode] = struct{}{}
			missing = append(missing, it.CatalogCode)
		}
	}
	return missing
}

func (a Assembly) clone() Assembly {
	items := make([]AssemblyItem, len(a.Items))
	copy(items, a.Items)
	a.Items = items
	return a
}
