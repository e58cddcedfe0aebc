package catalog

import "fmt"

// Project-level catalog codes priced once per estimate.
const (
	CodeSiteSetup         = "PRJ-SETUP"
	CodeSurfaceProtection = "PRJ-PROTECT"
	CodeFinalCleanup      = "PRJ-CLEAN"
)

// Base prices in EUR, excluding VAT.
var defaultItems = []Item{
	// Floors
	{Code: "DEMO-FLOOR", Name: "Remove existing floor covering", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 12.00},
	{Code: "PREP-FLOOR", Name: "Subfloor preparation and levelling", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 8.50},
	{Code: "MAT-UNDERLAY", Name: "Acoustic underlay", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 4.20, DefaultWastePct: 0.05},
	{Code: "MAT-HARDWOOD", Name: "Engineered hardwood boards", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 48.00, DefaultWastePct: 0.10},
	{Code: "LAB-HARDWOOD", Name: "Hardwood floor installation", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 22.00},
	{Code: "MAT-LAMINATE", Name: "AC4 laminate flooring", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 18.00, DefaultWastePct: 0.08},
	{Code: "LAB-LAMINATE", Name: "Laminate floor installation", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 14.00},
	{Code: "MAT-TILE-FLOOR", Name: "Porcelain floor tiles", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 32.00, DefaultWastePct: 0.12},
	{Code: "MAT-TILE-ADHESIVE", Name: "Tile adhesive and grout", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 6.00, DefaultWastePct: 0.05},
	{Code: "LAB-TILE-FLOOR", Name: "Floor tiling", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 35.00},
	{Code: "EQ-TILE-CUTTER", Name: "Wet tile cutter hire", Unit: "day", Category: CategoryEquipment, BaseUnitCost: 45.00},
	{Code: "MAT-VINYL", Name: "Luxury vinyl tiles (LVT)", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 26.00, DefaultWastePct: 0.07},
	{Code: "LAB-VINYL", Name: "Vinyl floor installation", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 12.00},
	{Code: "MAT-CARPET", Name: "Wool-blend carpet", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 22.00, DefaultWastePct: 0.10},
	{Code: "LAB-CARPET", Name: "Carpet fitting", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 9.00},
	{Code: "MAT-SKIRTING", Name: "MDF skirting board", Unit: "m", Category: CategoryMaterial, BaseUnitCost: 6.50, DefaultWastePct: 0.10},
	{Code: "LAB-SKIRTING", Name: "Skirting installation", Unit: "m", Category: CategoryLabor, BaseUnitCost: 5.00},
	{Code: "MAT-MICROCEMENT", Name: "Microcement system", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 38.00, DefaultWastePct: 0.05},
	{Code: "LAB-MICROCEMENT", Name: "Microcement application", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 45.00},

	// Walls and ceilings
	{Code: "DEMO-WALL", Name: "Strip existing wall finish", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 5.50},
	{Code: "PREP-WALL", Name: "Wall preparation and filling", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 4.50},
	{Code: "MAT-PRIMER", Name: "Primer / sealer", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 1.20, DefaultWastePct: 0.05},
	{Code: "MAT-PAINT-STD", Name: "Standard emulsion paint (2 coats)", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 2.80, DefaultWastePct: 0.10},
	{Code: "MAT-PAINT-PREM", Name: "Premium washable paint (2 coats)", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 4.60, DefaultWastePct: 0.10},
	{Code: "LAB-PAINT", Name: "Painting labour (2 coats)", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 9.00},
	{Code: "MAT-WALLPAPER", Name: "Non-woven wallpaper", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 12.00, DefaultWastePct: 0.15},
	{Code: "LAB-WALLPAPER", Name: "Wallpaper hanging", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 11.00},
	{Code: "MAT-TILE-WALL", Name: "Ceramic wall tiles", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 28.00, DefaultWastePct: 0.12},
	{Code: "LAB-TILE-WALL", Name: "Wall tiling", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 38.00},
	{Code: "MAT-WOOD-PANEL", Name: "Oak veneer wall panels", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 42.00, DefaultWastePct: 0.10},
	{Code: "LAB-WOOD-PANEL", Name: "Wall panel installation", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 30.00},

	// Built-in furniture
	{Code: "BI-WARDROBE", Name: "Built-in wardrobe (2.4m, sliding doors)", Unit: "unit", Category: CategoryMaterial, BaseUnitCost: 1450.00},
	{Code: "BI-BOOKSHELF", Name: "Fitted bookshelves", Unit: "unit", Category: CategoryMaterial, BaseUnitCost: 780.00},
	{Code: "BI-TV-UNIT", Name: "Wall-mounted TV unit", Unit: "unit", Category: CategoryMaterial, BaseUnitCost: 920.00},
	{Code: "BI-KITCHEN", Name: "Kitchen cabinet run with worktop", Unit: "unit", Category: CategoryMaterial, BaseUnitCost: 4200.00},
	{Code: "BI-DESK", Name: "Fitted home office desk", Unit: "unit", Category: CategoryMaterial, BaseUnitCost: 640.00},
	{Code: "LAB-BI-INSTALL", Name: "Built-in furniture installation", Unit: "unit", Category: CategoryLabor, BaseUnitCost: 280.00},

	// Project-level
	{Code: CodeSiteSetup, Name: "Site setup and mobilisation", Unit: "unit", Category: CategoryEquipment, BaseUnitCost: 350.00},
	{Code: CodeSurfaceProtection, Name: "Protection of existing surfaces", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 3.50},
	{Code: CodeFinalCleanup, Name: "Final builders clean", Unit: "m2", Category: CategoryLabor, BaseUnitCost: 2.75},
}

func area(code string, m float64, waste bool) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaArea, Multiplier: m, IncludeWaste: waste}
}

func perimeter(code string, m float64, waste bool) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaPerimeter, Multiplier: m, IncludeWaste: waste}
}

func wall(code string, m float64, waste bool) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaWallArea, Multiplier: m, IncludeWaste: waste}
}

func ceiling(code string, m float64, waste bool) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaCeilingArea, Multiplier: m, IncludeWaste: waste}
}

func fixed(code string, m float64) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaFixed, Multiplier: m}
}

func count(code string, m float64) AssemblyItem {
	return AssemblyItem{CatalogCode: code, Formula: FormulaCount, Multiplier: m}
}

var defaultAssemblies = []Assembly{
	{Code: "FLR-HARDWOOD", Name: "Engineered hardwood floor", Category: SelectionFloorFinish, Value: "Hardwood", Items: []AssemblyItem{
		area("DEMO-FLOOR", 1, false),
		area("PREP-FLOOR", 1, false),
		area("MAT-UNDERLAY", 1, true),
		area("MAT-HARDWOOD", 1, true),
		area("LAB-HARDWOOD", 1, false),
		perimeter("MAT-SKIRTING", 1, true),
		perimeter("LAB-SKIRTING", 1, false),
	}},
	{Code: "FLR-LAMINATE", Name: "Laminate floor", Category: SelectionFloorFinish, Value: "Laminate", Items: []AssemblyItem{
		area("DEMO-FLOOR", 1, false),
		area("MAT-UNDERLAY", 1, true),
		area("MAT-LAMINATE", 1, true),
		area("LAB-LAMINATE", 1, false),
		perimeter("MAT-SKIRTING", 1, true),
		perimeter("LAB-SKIRTING", 1, false),
	}},
	{Code: "FLR-TILE", Name: "Porcelain tile floor", Category: SelectionFloorFinish, Value: "Porcelain Tile", Items: []AssemblyItem{
		area("DEMO-FLOOR", 1, false),
		area("PREP-FLOOR", 1, false),
		area("MAT-TILE-FLOOR", 1, true),
		area("MAT-TILE-ADHESIVE", 1, true),
		area("LAB-TILE-FLOOR", 1, false),
		fixed("EQ-TILE-CUTTER", 2),
		perimeter("MAT-SKIRTING", 1, true),
		perimeter("LAB-SKIRTING", 1, false),
	}},
	{Code: "FLR-VINYL", Name: "Luxury vinyl floor", Category: SelectionFloorFinish, Value: "Vinyl (LVT)", Items: []AssemblyItem{
		area("DEMO-FLOOR", 1, false),
		area("PREP-FLOOR", 0.5, false),
		area("MAT-VINYL", 1, true),
		area("LAB-VINYL", 1, false),
	}},
	{Code: "FLR-CARPET", Name: "Fitted carpet", Category: SelectionFloorFinish, Value: "Carpet", Items: []AssemblyItem{
		area("DEMO-FLOOR", 1, false),
		area("MAT-UNDERLAY", 1, true),
		area("MAT-CARPET", 1, true),
		area("LAB-CARPET", 1, false),
	}},
	{Code: "FLR-MICROCEMENT", Name: "Microcement floor", Category: SelectionFloorFinish, Value: "Microcement", Items: []AssemblyItem{
		area("PREP-FLOOR", 1, false),
		area("MAT-MICROCEMENT", 1, true),
		area("LAB-MICROCEMENT", 1, false),
	}},
	{Code: "FLR-KEEP", Name: "Keep existing floor", Category: SelectionFloorFinish, Value: "Keep Existing"},

	{Code: "WAL-PAINT-STD", Name: "Standard paint finish", Category: SelectionWallFinish, Value: "Paint (Standard)", Items: []AssemblyItem{
		wall("PREP-WALL", 1, false),
		wall("MAT-PRIMER", 1, true),
		wall("MAT-PAINT-STD", 1, true),
		wall("LAB-PAINT", 1, false),
	}},
	{Code: "WAL-PAINT-PREM", Name: "Premium paint finish incl. ceiling", Category: SelectionWallFinish, Value: "Paint (Premium)", Items: []AssemblyItem{
		wall("PREP-WALL", 1, false),
		wall("MAT-PRIMER", 1, true),
		wall("MAT-PAINT-PREM", 1, true),
		wall("LAB-PAINT", 1.2, false),
		ceiling("MAT-PAINT-PREM", 1, true),
		ceiling("LAB-PAINT", 1.35, false),
	}},
	{Code: "WAL-WALLPAPER", Name: "Wallpaper", Category: SelectionWallFinish, Value: "Wallpaper", Items: []AssemblyItem{
		wall("DEMO-WALL", 1, false),
		wall("PREP-WALL", 1, false),
		wall("MAT-WALLPAPER", 1, true),
		wall("LAB-WALLPAPER", 1, false),
	}},
	{Code: "WAL-TILE", Name: "Ceramic wall tiling", Category: SelectionWallFinish, Value: "Ceramic Tile", Items: []AssemblyItem{
		wall("DEMO-WALL", 1, false),
		wall("MAT-TILE-WALL", 1, true),
		wall("MAT-TILE-ADHESIVE", 1, true),
		wall("LAB-TILE-WALL", 1, false),
		fixed("EQ-TILE-CUTTER", 2),
	}},
	{Code: "WAL-WOOD-PANEL", Name: "Wood panelling (half height)", Category: SelectionWallFinish, Value: "Wood Panelling", Items: []AssemblyItem{
		wall("PREP-WALL", 0.5, false),
		wall("MAT-WOOD-PANEL", 0.5, true),
		wall("LAB-WOOD-PANEL", 0.5, false),
	}},
	{Code: "WAL-MICROCEMENT", Name: "Microcement walls", Category: SelectionWallFinish, Value: "Microcement", Items: []AssemblyItem{
		wall("PREP-WALL", 1, false),
		wall("MAT-MICROCEMENT", 1, true),
		wall("LAB-MICROCEMENT", 0.9, false),
	}},
	{Code: "WAL-KEEP", Name: "Keep existing walls", Category: SelectionWallFinish, Value: "Keep Existing"},

	{Code: "BLT-WARDROBE", Name: "Built-in wardrobe", Category: SelectionBuiltInFurniture, Value: "Wardrobe", Items: []AssemblyItem{
		count("BI-WARDROBE", 1),
		fixed("LAB-BI-INSTALL", 1),
	}},
	{Code: "BLT-BOOKSHELF", Name: "Fitted bookshelves", Category: SelectionBuiltInFurniture, Value: "Bookshelves", Items: []AssemblyItem{
		count("BI-BOOKSHELF", 1),
		fixed("LAB-BI-INSTALL", 0.75),
	}},
	{Code: "BLT-TV-UNIT", Name: "TV unit", Category: SelectionBuiltInFurniture, Value: "TV Unit", Items: []AssemblyItem{
		count("BI-TV-UNIT", 1),
		fixed("LAB-BI-INSTALL", 0.75),
	}},
	{Code: "BLT-KITCHEN", Name: "Kitchen cabinets", Category: SelectionBuiltInFurniture, Value: "Kitchen Cabinets", Items: []AssemblyItem{
		count("BI-KITCHEN", 1),
		fixed("LAB-BI-INSTALL", 3),
	}},
	{Code: "BLT-DESK", Name: "Home office desk", Category: SelectionBuiltInFurniture, Value: "Home Office Desk", Items: []AssemblyItem{
		count("BI-DESK", 1),
		fixed("LAB-BI-INSTALL", 0.5),
	}},
}

// DefaultCatalog returns the built-in price catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultItems...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in catalog: %v", err))
	}
	return c
}

// DefaultAssemblies returns the built-in assembly registry.
func DefaultAssemblies() *Registry {
	r, err := NewRegistry(defaultAssemblies...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in assemblies: %v", err))
	}
	return r
}
