package pricing

import (
	"fmt"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// EstimateRoom prices the floor, wall and built-in selections of one room,
// in that order. Table gaps are skipped and reported as diagnostics.
func (e *Engine) EstimateRoom(index int, room RoomInput, location, age string) (RoomBreakdown, []Diagnostic) {
	dims := Dimensions(room)
	breakdown := RoomBreakdown{
		RoomIndex:     index,
		RoomType:      room.RoomType,
		FloorArea:     dims.FloorArea,
		Perimeter:     dims.Perimeter,
		WallArea:      dims.WallArea,
		CeilingArea:   dims.CeilingArea,
		CeilingHeight: dims.CeilingHeight,
		LineItems:     []LineItem{},
	}

	var diags []Diagnostic
	selections := []struct {
		category string
		value    string
	}{
		{catalog.SelectionFloorFinish, room.FloorFinish},
		{catalog.SelectionWallFinish, room.WallFinish},
		{catalog.SelectionBuiltInFurniture, room.BuiltInFurniture},
	}

	for _, sel := range selections {
		if sel.value == "" {
			continue
		}
		if sel.category == catalog.SelectionBuiltInFurniture && sel.value == catalog.BuiltInNone {
			continue
		}

		asm, ok := e.assemblies.Resolve(sel.category, sel.value)
		if !ok {
			diags = append(diags, Diagnostic{
				Code:      DiagAssemblyNotFound,
				Message:   fmt.Sprintf("no assembly registered for %s %q", sel.category, sel.value),
				RoomIndex: intPtr(index),
				Category:  sel.category,
				Value:     sel.value,
			})
			continue
		}

		for _, it := range asm.Items {
			cat, ok := e.catalog.Lookup(it.CatalogCode)
			if !ok {
				diags = append(diags, Diagnostic{
					Code:         DiagCatalogItemNotFound,
					Message:      fmt.Sprintf("assembly %s references unknown catalog item %s", asm.Code, it.CatalogCode),
					RoomIndex:    intPtr(index),
					Category:     sel.category,
					Value:        sel.value,
					AssemblyCode: asm.Code,
					CatalogCode:  it.CatalogCode,
				})
				continue
			}
			if !knownFormula(it.Formula) {
				diags = append(diags, Diagnostic{
					Code:         DiagFormulaUnknown,
					Message:      fmt.Sprintf("assembly %s uses unknown formula %q for %s", asm.Code, it.Formula, it.CatalogCode),
					RoomIndex:    intPtr(index),
					Category:     sel.category,
					Value:        sel.value,
					AssemblyCode: asm.Code,
					CatalogCode:  it.CatalogCode,
				})
				continue
			}

			li, ok := e.PriceLineItem(it, cat, dims, location, age, index, asm.Code)
			if !ok {
				continue
			}
			breakdown.LineItems = append(breakdown.LineItems, li)
		}
	}

	var materials, labor, subtotal []float64
	for _, li := range breakdown.LineItems {
		switch li.Category {
		case catalog.CategoryMaterial:
			materials = append(materials, li.CostBeforeTax)
		case catalog.CategoryLabor:
			labor = append(labor, li.CostBeforeTax)
		}
		subtotal = append(subtotal, li.CostBeforeTax)
	}
	breakdown.MaterialsCost = sum2(materials...)
	breakdown.LaborCost = sum2(labor...)
	breakdown.Subtotal = sum2(subtotal...)

	return breakdown, diags
}

func intPtr(v int) *int { return &v }
