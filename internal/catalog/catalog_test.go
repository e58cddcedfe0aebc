package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalog_RejectsDuplicatesAndInvalidItems(t *testing.T) {
	ok := Item{Code: "A", Name: "a", Unit: "m2", Category: CategoryMaterial, BaseUnitCost: 1}

	if _, err := NewCatalog(ok, ok); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got %v", err)
	}

	tests := []struct {
		name string
		item Item
	}{
		{"empty code", Item{Category: CategoryLabor, BaseUnitCost: 1}},
		{"unknown category", Item{Code: "X", Category: "plant", BaseUnitCost: 1}},
		{"zero cost", Item{Code: "X", Category: CategoryLabor}},
		{"infinite cost", Item{Code: "X", Category: CategoryLabor, BaseUnitCost: math.Inf(1)}},
		{"waste of one", Item{Code: "X", Category: CategoryLabor, BaseUnitCost: 1, DefaultWastePct: 1}},
		{"negative waste", Item{Code: "X", Category: CategoryLabor, BaseUnitCost: 1, DefaultWastePct: -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.item); !errors.Is(err, ErrInvalidItem) {
				t.Fatalf("expected ErrInvalidItem, got %v", err)
			}
		})
	}
}

func TestCatalogItemsReturnsCopyInOrder(t *testing.T) {
	c, err := NewCatalog(
		Item{Code: "B", Category: CategoryLabor, BaseUnitCost: 2},
		Item{Code: "A", Category: CategoryMaterial, BaseUnitCost: 1},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	items := c.Items()
	if len(items) != 2 || items[0].Code != "B" || items[1].Code != "A" {
		t.Fatalf("unexpected order: %+v", items)
	}

	items[0].BaseUnitCost = 999
	got, _ := c.Lookup("B")
	if got.BaseUnitCost != 2 {
		t.Fatalf("catalog mutated through Items(): %v", got.BaseUnitCost)
	}
}

func TestNewRegistry_EnforcesUniqueSelectionKey(t *testing.T) {
	a := Assembly{Code: "F1", Category: SelectionFloorFinish, Value: "Hardwood"}
	b := Assembly{Code: "F2", Category: SelectionFloorFinish, Value: "Hardwood"}

	if _, err := NewRegistry(a, b); !errors.Is(err, ErrDuplicateAssembly) {
		t.Fatalf("expected ErrDuplicateAssembly for repeated key, got %v", err)
	}

	c := Assembly{Code: "F1", Category: SelectionWallFinish, Value: "Hardwood"}
	if _, err := NewRegistry(a, c); !errors.Is(err, ErrDuplicateAssembly) {
		t.Fatalf("expected ErrDuplicateAssembly for repeated code, got %v", err)
	}
}

func TestRegistryResolveDoesNotLeakInternalSlices(t *testing.T) {
	r := DefaultAssemblies()

	a, ok := r.Resolve(SelectionFloorFinish, "Hardwood")
	if !ok {
		t.Fatal("Hardwood assembly not registered")
	}
	a.Items[0].Multiplier = 42

	again, _ := r.Resolve(SelectionFloorFinish, "Hardwood")
	if again.Items[0].Multiplier != 1 {
		t.Fatalf("registry mutated through Resolve: %v", again.Items[0].Multiplier)
	}

	if _, ok := r.Resolve(SelectionBuiltInFurniture, BuiltInNone); ok {
		t.Fatal("the None sentinel must not resolve to an assembly")
	}
}

func TestDefaultTablesAreConsistent(t *testing.T) {
	c := DefaultCatalog()
	r := DefaultAssemblies()

	if missing := r.CheckReferences(c); len(missing) != 0 {
		t.Fatalf("assemblies reference unknown catalog codes: %v", missing)
	}
	for _, code := range []string{CodeSiteSetup, CodeSurfaceProtection, CodeFinalCleanup} {
		if _, ok := c.Lookup(code); !ok {
			t.Fatalf("project item %s missing from catalog", code)
		}
	}

	hardwood, _ := r.Resolve(SelectionFloorFinish, "Hardwood")
	if len(hardwood.Items) != 7 {
		t.Fatalf("Hardwood assembly has %d items, want 7", len(hardwood.Items))
	}
	paint, _ := r.Resolve(SelectionWallFinish, "Paint (Standard)")
	if len(paint.Items) != 4 {
		t.Fatalf("Paint (Standard) assembly has %d items, want 4", len(paint.Items))
	}
}

func TestCheckReferencesReportsMissingCodesOnce(t *testing.T) {
	c, _ := NewCatalog(Item{Code: "A", Category: CategoryMaterial, BaseUnitCost: 1})
	r, err := NewRegistry(
		Assembly{Code: "X", Category: SelectionFloorFinish, Value: "x", Items: []AssemblyItem{{CatalogCode: "A"}, {CatalogCode: "GONE"}}},
		Assembly{Code: "Y", Category: SelectionWallFinish, Value: "y", Items: []AssemblyItem{{CatalogCode: "GONE"}}},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	missing := r.CheckReferences(c)
	if len(missing) != 1 || missing[0] != "GONE" {
		t.Fatalf("unexpected missing list: %v", missing)
	}
}

func TestLoadPriceBook_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlDoc := []byte(`
version: "test-1"
currency: EUR
items:
  - code: MAT-A
    name: Material A
    unit: m2
    category: material
    baseUnitCost: 10
    defaultWastePct: 0.1
assemblies:
  - code: FLR-A
    name: Floor A
    category: floorFinish
    value: A
    items:
      - catalogCode: MAT-A
        formula: area
        multiplier: 1
        includeWaste: true
`)
	yamlPath := filepath.Join(dir, "book.yaml")
	if err := os.WriteFile(yamlPath, yamlDoc, 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	tables, err := LoadPriceBook(yamlPath)
	if err != nil {
		t.Fatalf("LoadPriceBook yaml: %v", err)
	}
	if tables.Version != "test-1" || tables.Catalog.Len() != 1 || tables.Assemblies.Len() != 1 {
		t.Fatalf("unexpected tables: %+v", tables)
	}
	a, ok := tables.Assemblies.Resolve(SelectionFloorFinish, "A")
	if !ok || a.Items[0].Formula != FormulaArea || !a.Items[0].IncludeWaste {
		t.Fatalf("unexpected assembly: %+v", a)
	}

	jsonPath := filepath.Join(dir, "book.json")
	jsonDoc := []byte(`{"items":[{"code":"A","category":"labor","baseUnitCost":1},{"code":"A","category":"labor","baseUnitCost":2}]}`)
	if err := os.WriteFile(jsonPath, jsonDoc, 0o600); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if _, err := LoadPriceBook(jsonPath); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected duplicate item error, got %v", err)
	}
}

func TestParsePriceBook_RejectsUnknownFormat(t *testing.T) {
	if _, err := ParsePriceBook([]byte("{}"), "toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLoadPriceBook_RelativePath(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`{"version":"rel","items":[{"code":"A","category":"labor","baseUnitCost":1}]}`)
	if err := os.WriteFile(filepath.Join(dir, "book.JSON"), doc, 0o600); err != nil {
		t.Fatalf("write json: %v", err)
	}
	t.Chdir(dir)

	tables, err := LoadPriceBook("book.JSON")
	if err != nil {
		t.Fatalf("LoadPriceBook: %v", err)
	}
	if tables.Version != "rel" {
		t.Fatalf("version = %q", tables.Version)
	}
	if _, err := LoadPriceBook("missing.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]string{
		"book.yaml": "yaml",
		"BOOK.YML":  "yaml",
		"book.json": "json",
		"book":      "json",
	} {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}
