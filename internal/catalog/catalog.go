// Package catalog holds the static price tables used by the estimator: the
// priceable work items and the assemblies that expand a finish selection into
// catalog references.
package catalog

import (
	"errors"
	"fmt"
	"math"
)

// CostCategory classifies a catalog item for grouping and for
// category-specific location/age adjustments.
type CostCategory string

const (
	CategoryMaterial    CostCategory = "material"
	CategoryLabor       CostCategory = "labor"
	CategoryEquipment   CostCategory = "equipment"
	CategorySubcontract CostCategory = "subcontract"
	CategoryTax         CostCategory = "tax"
	CategoryOverhead    CostCategory = "overhead"
)

// Valid reports whether c is one of the known cost categories.
func (c CostCategory) Valid() bool {
	switch c {
	case CategoryMaterial, CategoryLabor, CategoryEquipment, CategorySubcontract, CategoryTax, CategoryOverhead:
		return true
	}
	return false
}

var (
	ErrDuplicateItem = errors.New("duplicate catalog item")
	ErrInvalidItem   = errors.New("invalid catalog item")
)

// Item is a single priceable unit of material, labor or equipment.
type Item struct {
	Code            string       `json:"code" yaml:"code"`
	Name            string       `json:"name" yaml:"name"`
	Unit            string       `json:"unit" yaml:"unit"`
	Category        CostCategory `json:"category" yaml:"category"`
	BaseUnitCost    float64      `json:"baseUnitCost" yaml:"baseUnitCost"`
	DefaultWastePct float64      `json:"defaultWastePct" yaml:"defaultWastePct"`
}

func (it Item) validate() error {
	if it.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidItem)
	}
	if !it.Category.Valid() {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidItem, it.Code, it.Category)
	}
	if !(it.BaseUnitCost > 0) || math.IsInf(it.BaseUnitCost, 0) {
		return fmt.Errorf("%w: %s base unit cost must be > 0", ErrInvalidItem, it.Code)
	}
	if it.DefaultWastePct < 0 || it.DefaultWastePct >= 1 {
		return fmt.Errorf("%w: %s waste fraction must be in [0, 1)", ErrInvalidItem, it.Code)
	}
	return nil
}

// Catalog is an immutable code-indexed set of items. It keeps registration
// order so listings and exports are stable.
type Catalog struct {
	items []Item
	index map[string]int
}

// NewCatalog validates items and builds a catalog. Duplicate codes are rejected.
func NewCatalog(items ...Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[it.Code]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, it.Code)
		}
		c.index[it.Code] = len(c.items)
		c.items = append(c.items, it)
	}
	return c, nil
}

// Lookup returns the item registered under code.
func (c *Catalog) Lookup(code string) (Item, bool) {
	i, ok := c.index[code]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of all items in registration order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}
