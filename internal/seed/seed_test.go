package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Simplici0/reno.works/internal/catalog"
	"github.com/Simplici0/reno.works/internal/db"
	"github.com/Simplici0/reno.works/internal/migrations"
	"github.com/Simplici0/reno.works/internal/pricing"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := migrations.Up(database, db.DriverSQLite); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := openMigrated(t)

	engine, err := pricing.NewEngine()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	cfg := FromEngine(db.DriverSQLite, engine)
	wantInserts := 1 + engine.Catalog().Len()

	for i := 0; i < 10; i++ {
		stats, err := Run(database, cfg)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != wantInserts {
				t.Fatalf("expected %d inserts in first run, got %d", wantInserts, stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no changes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM pricing_schemes WHERE version = ?`, pricing.DefaultVersion, 1)
	assertCount(t, database, `SELECT COUNT(*) FROM catalog_items WHERE version = ?`, pricing.DefaultVersion, engine.Catalog().Len())

	var taxRate float64
	if err := database.QueryRow(`SELECT tax_rate FROM pricing_schemes WHERE version = ?`, pricing.DefaultVersion).Scan(&taxRate); err != nil {
		t.Fatalf("query tax rate: %v", err)
	}
	if taxRate != 0.21 {
		t.Fatalf("tax_rate = %v, want 0.21", taxRate)
	}
}

func TestRunUpdatesChangedPrices(t *testing.T) {
	database := openMigrated(t)

	cfg := Config{
		Driver:      db.DriverSQLite,
		Version:     "test",
		Currency:    "EUR",
		Assumptions: pricing.DefaultAssumptions(),
		Items: []catalog.Item{
			{Code: "A", Name: "A", Unit: "m2", Category: catalog.CategoryMaterial, BaseUnitCost: 10},
		},
	}
	if _, err := Run(database, cfg); err != nil {
		t.Fatalf("first run: %v", err)
	}

	cfg.Items[0].BaseUnitCost = 12
	stats, err := Run(database, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.Inserts != 0 || stats.Updates != 1 {
		t.Fatalf("expected one update, got %+v", stats)
	}

	var cost float64
	if err := database.QueryRow(`SELECT base_unit_cost FROM catalog_items WHERE version = ? AND code = ?`, "test", "A").Scan(&cost); err != nil {
		t.Fatalf("query cost: %v", err)
	}
	if cost != 12 {
		t.Fatalf("base_unit_cost = %v, want 12", cost)
	}
}

func TestRunRequiresVersion(t *testing.T) {
	database := openMigrated(t)
	if _, err := Run(database, Config{Driver: db.DriverSQLite}); err == nil {
		t.Fatal("expected error without a version")
	}
}

func assertCount(t *testing.T, database *sql.DB, query string, arg any, expected int) {
	t.Helper()

	var count int
	if err := database.QueryRow(query, arg).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d for query %q", expected, count, query)
	}
}
