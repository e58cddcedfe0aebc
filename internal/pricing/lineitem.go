package pricing

import (
	"math"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// lineContext carries the per-item inputs that do not come from the catalog.
type lineContext struct {
	dims           RoomDimensions
	locationFactor func(catalog.CostCategory) float64
	ageFactor      func(catalog.CostCategory) float64
	taxRate        float64
	roomIndex      *int
	assemblyCode   string
}

// PriceLineItem prices one assembly item. Every monetary step is rounded to
// two decimals before the next one reads it. It returns false when the
// quantity is not a positive finite number.
func (e *Engine) PriceLineItem(item catalog.AssemblyItem, cat catalog.Item, dims RoomDimensions, location, age string, roomIndex int, assemblyCode string) (LineItem, bool) {
	idx := roomIndex
	return priceLine(item, cat, lineContext{
		dims: dims,
		locationFactor: func(c catalog.CostCategory) float64 {
			return e.multipliers.LocationFactor(location, c)
		},
		ageFactor: func(c catalog.CostCategory) float64 {
			return e.multipliers.AgeFactor(age, c)
		},
		taxRate:      e.assumptions.TaxRate,
		roomIndex:    &idx,
		assemblyCode: assemblyCode,
	})
}

func priceLine(item catalog.AssemblyItem, cat catalog.Item, ctx lineContext) (LineItem, bool) {
	quantity := Quantity(item.Formula, ctx.dims, item.Multiplier)
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return LineItem{}, false
	}

	locationFactor := ctx.locationFactor(cat.Category)
	ageFactor := ctx.ageFactor(cat.Category)

	unitCostFinal := Round2(cat.BaseUnitCost * locationFactor * ageFactor)
	costBeforeWaste := Round2(quantity * unitCostFinal)

	wastePct := 0.0
	if item.IncludeWaste {
		wastePct = cat.DefaultWastePct
	}
	wasteAmount := Round2(costBeforeWaste * wastePct)
	costBeforeTax := Round2(costBeforeWaste + wasteAmount)
	taxAmount := Round2(costBeforeTax * ctx.taxRate)
	totalCost := Round2(costBeforeTax + taxAmount)

	return LineItem{
		CatalogCode:     cat.Code,
		Name:            cat.Name,
		Category:        cat.Category,
		Unit:            cat.Unit,
		Quantity:        quantity,
		BaseUnitCost:    cat.BaseUnitCost,
		LocationFactor:  locationFactor,
		AgeFactor:       ageFactor,
		UnitCostFinal:   unitCostFinal,
		CostBeforeWaste: costBeforeWaste,
		WastePct:        wastePct,
		WasteAmount:     wasteAmount,
		CostBeforeTax:   costBeforeTax,
		TaxRate:         ctx.taxRate,
		TaxAmount:       taxAmount,
		TotalCost:       totalCost,
		AssemblyCode:    ctx.assemblyCode,
		RoomIndex:       ctx.roomIndex,
	}, true
}

func neutralFactor(catalog.CostCategory) float64 { return 1 }
