package pricing

import "github.com/Simplici0/reno.works/internal/catalog"

// Quantity evaluates formula against dims. Unknown formulas yield 0, which
// callers treat as "not applicable".
func Quantity(formula catalog.Formula, dims RoomDimensions, multiplier float64) float64 {
	var q float64
	switch formula {
	case catalog.FormulaArea:
		q = multiplier * dims.FloorArea
	case catalog.FormulaPerimeter:
		q = multiplier * dims.Perimeter
	case catalog.FormulaWallArea:
		q = multiplier * dims.WallArea
	case catalog.FormulaCeilingArea:
		q = multiplier * dims.CeilingArea
	case catalog.FormulaFixed, catalog.FormulaCount:
		q = multiplier
	default:
		return 0
	}
	return Round2(q)
}

func knownFormula(f catalog.Formula) bool {
	switch f {
	case catalog.FormulaArea, catalog.FormulaPerimeter, catalog.FormulaWallArea,
		catalog.FormulaCeilingArea, catalog.FormulaFixed, catalog.FormulaCount:
		return true
	}
	return false
}
