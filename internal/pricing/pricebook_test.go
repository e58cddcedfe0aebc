package pricing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const overrideBook = `
version: "book-7"
currency: GBP
items:
  - {code: LAB-A, name: Fitting, unit: m2, category: labor, baseUnitCost: 10}
  - {code: PRJ-SETUP, name: Setup, unit: unit, category: equipment, baseUnitCost: 100}
  - {code: PRJ-PROTECT, name: Protect, unit: m2, category: material, baseUnitCost: 1}
  - {code: PRJ-CLEAN, name: Clean, unit: m2, category: labor, baseUnitCost: 1}
assemblies:
  - code: FLR-A
    name: Floor A
    category: floorFinish
    value: A
    items:
      - {catalogCode: LAB-A, formula: area, multiplier: 1}
multipliers:
  locationOverrides:
    Spain: {labor: 2, material: 1, other: 1}
  countries:
    United Kingdom:
      cities: {Leeds: 1.1}
    Ireland:
      factor: 1.25
      cities: {Dublin: 1.2}
rates:
  taxRate: 0.1
`

func overrideInput() ProjectInput {
	return ProjectInput{
		PropertyLocation: "Spain",
		PropertyCity:     "Other city",
		PropertyAge:      "0 - 5 Years",
		Rooms:            []RoomInput{{RoomType: "Hall", Width: 4, Length: 3, FloorFinish: "A"}},
	}
}

func TestLoadBook_YAMLOverridesLocationAndRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.yml")
	if err := os.WriteFile(path, []byte(overrideBook), 0o600); err != nil {
		t.Fatalf("write book: %v", err)
	}
	book, err := LoadBook(path)
	if err != nil {
		t.Fatalf("LoadBook: %v", err)
	}
	e := newEngine(t, WithBook(book))

	if e.Version() != "book-7" || e.Currency() != "GBP" {
		t.Fatalf("version/currency = %s/%s", e.Version(), e.Currency())
	}

	result := e.Estimate(overrideInput())
	li := findItem(t, result.LineItems, "LAB-A")
	nearlyEqual(t, "location factor", li.LocationFactor, 2)
	nearlyEqual(t, "unit cost", li.UnitCostFinal, 20)
	nearlyEqual(t, "cost before tax", li.CostBeforeTax, 240)
	nearlyEqual(t, "tax rate", li.TaxRate, 0.1)
	nearlyEqual(t, "tax amount", li.TaxAmount, 24)
	nearlyEqual(t, "overhead rate kept", result.Assumptions.OverheadRate, DefaultAssumptions().OverheadRate)

	m := e.Multipliers()
	nearlyEqual(t, "uk labor kept", m.LocationOverrides["United Kingdom"].Labor, 1.4)
	nearlyEqual(t, "leeds", m.Location("United Kingdom", "Leeds").Value, 1.35*1.1)
	nearlyEqual(t, "london kept", m.Location("United Kingdom", "London").Value, 1.35*1.30)
	nearlyEqual(t, "dublin", m.Location("Ireland", "Dublin").Value, 1.25*1.2)

	locations := e.Options().Locations
	if last := locations[len(locations)-1]; last.Country != "Ireland" {
		t.Fatalf("new country should be listed last, got %+v", last)
	}
}

func TestParseBook_JSONWithoutOverridesKeepsDefaults(t *testing.T) {
	doc := `{"items":[
		{"code":"PRJ-SETUP","category":"equipment","baseUnitCost":100},
		{"code":"PRJ-PROTECT","category":"material","baseUnitCost":1},
		{"code":"PRJ-CLEAN","category":"labor","baseUnitCost":1}]}`
	book, err := ParseBook([]byte(doc), "json")
	if err != nil {
		t.Fatalf("ParseBook: %v", err)
	}
	if book.Assumptions != DefaultAssumptions() {
		t.Fatalf("assumptions changed: %+v", book.Assumptions)
	}
	nearlyEqual(t, "madrid", book.Multipliers.Location("Spain", "Madrid").Value, 1.10)
	if len(book.Multipliers.CountryOrder) != len(DefaultMultipliers().CountryOrder) {
		t.Fatalf("country order changed: %v", book.Multipliers.CountryOrder)
	}
}

func TestParseBook_RejectsBadOverrides(t *testing.T) {
	items := "items:\n  - {code: PRJ-SETUP, category: equipment, baseUnitCost: 1}\n"
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"tax rate of one", items + "rates:\n  taxRate: 1\n", "rates"},
		{"negative overhead", items + "rates:\n  overheadRate: -0.1\n", "rates"},
		{"zero urgency", items + "multipliers:\n  urgency: {\"Urgent (< 1 month)\": 0}\n", "urgency"},
		{"negative city", items + "multipliers:\n  countries:\n    Spain:\n      cities: {Madrid: -1}\n", "Madrid"},
		{"zero location labor", items + "multipliers:\n  locationOverrides:\n    Spain: {labor: 0, material: 1, other: 1}\n", "locationOverrides"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBook([]byte(tc.doc), "yaml")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestMultipliersMerge_LeavesReceiverUntouched(t *testing.T) {
	base := DefaultMultipliers()
	merged := base.Merge(Multipliers{
		Urgency:           map[string]float64{"Overnight": 1.5},
		Countries:         map[string]Country{"Spain": {Cities: map[string]float64{"Seville": 0.95}}},
		AgeBands:          []string{"40+ Years"},
		LocationOverrides: map[string]CategoryFactors{"France": {Labor: 1.2, Material: 1, Other: 1}},
	})

	if _, ok := base.Urgency["Overnight"]; ok {
		t.Fatal("merge mutated receiver urgency table")
	}
	if _, ok := base.Countries["Spain"].Cities["Seville"]; ok {
		t.Fatal("merge mutated receiver city table")
	}
	nearlyEqual(t, "spain factor kept", merged.Countries["Spain"].Factor, 1.00)
	nearlyEqual(t, "seville", merged.Location("Spain", "Seville").Value, 0.95)
	if got := merged.UrgencyOptions[len(merged.UrgencyOptions)-1]; got != "Overnight" {
		t.Fatalf("new urgency should be appended, got %v", merged.UrgencyOptions)
	}
	if merged.AgeBands[0] != "40+ Years" || len(merged.AgeBands) != len(base.AgeBands) {
		t.Fatalf("age order = %v", merged.AgeBands)
	}
}
