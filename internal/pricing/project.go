package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Simplici0/reno.works/internal/catalog"
)

// projectItems prices the site-wide items. They carry no location or age
// adjustment and no waste, but are taxed.
func (e *Engine) projectItems(totalFloorArea float64) ([]LineItem, []Diagnostic) {
	defs := []catalog.AssemblyItem{
		{CatalogCode: catalog.CodeSiteSetup, Formula: catalog.FormulaFixed, Multiplier: 1},
		{CatalogCode: catalog.CodeSurfaceProtection, Formula: catalog.FormulaArea, Multiplier: 1},
		{CatalogCode: catalog.CodeFinalCleanup, Formula: catalog.FormulaArea, Multiplier: 1},
	}
	dims := RoomDimensions{FloorArea: totalFloorArea, CeilingArea: totalFloorArea}

	items := make([]LineItem, 0, len(defs))
	var diags []Diagnostic
	for _, def := range defs {
		cat, ok := e.catalog.Lookup(def.CatalogCode)
		if !ok {
			diags = append(diags, Diagnostic{
				Code:        DiagCatalogItemNotFound,
				Message:     "project item " + def.CatalogCode + " is not in the catalog",
				CatalogCode: def.CatalogCode,
			})
			continue
		}
		li, ok := priceLine(def, cat, lineContext{
			dims:           dims,
			locationFactor: neutralFactor,
			ageFactor:      neutralFactor,
			taxRate:        e.assumptions.TaxRate,
		})
		if ok {
			items = append(items, li)
		}
	}
	return items, diags
}

// summarize rolls every line item into category totals and applies the
// project multiplier, overhead, contingency and tax. The six project figures
// are computed at full precision and each rounded on its own.
func (e *Engine) summarize(items []LineItem, combined float64) EstimateSummary {
	var materials, labor, equipment, subcontract, other []float64
	for _, li := range items {
		switch li.Category {
		case catalog.CategoryMaterial:
			materials = append(materials, li.CostBeforeTax)
		case catalog.CategoryLabor:
			labor = append(labor, li.CostBeforeTax)
		case catalog.CategoryEquipment:
			equipment = append(equipment, li.CostBeforeTax)
		case catalog.CategorySubcontract:
			subcontract = append(subcontract, li.CostBeforeTax)
		default:
			other = append(other, li.CostBeforeTax)
		}
	}

	s := EstimateSummary{
		MaterialsCost:   sum2(materials...),
		LaborCost:       sum2(labor...),
		EquipmentCost:   sum2(equipment...),
		SubcontractCost: sum2(subcontract...),
		OtherCost:       sum2(other...),
	}

	base := decimal.NewFromFloat(s.MaterialsCost).
		Add(decimal.NewFromFloat(s.LaborCost)).
		Add(decimal.NewFromFloat(s.EquipmentCost)).
		Add(decimal.NewFromFloat(s.SubcontractCost)).
		Add(decimal.NewFromFloat(s.OtherCost))

	adjusted := base.Mul(decimal.NewFromFloat(combined))
	overhead := adjusted.Mul(decimal.NewFromFloat(e.assumptions.OverheadRate))
	contingency := adjusted.Mul(decimal.NewFromFloat(e.assumptions.ContingencyRate))
	subtotal := adjusted.Add(overhead).Add(contingency)
	tax := subtotal.Mul(decimal.NewFromFloat(e.assumptions.TaxRate))
	total := subtotal.Add(tax)

	s.AdjustedSubtotal = adjusted.Round(2).InexactFloat64()
	s.Overhead = overhead.Round(2).InexactFloat64()
	s.Contingency = contingency.Round(2).InexactFloat64()
	s.Subtotal = subtotal.Round(2).InexactFloat64()
	s.TaxTotal = tax.Round(2).InexactFloat64()
	s.Total = total.Round(2).InexactFloat64()
	return s
}
