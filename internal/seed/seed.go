package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Simplici0/reno.works/internal/catalog"
	"github.com/Simplici0/reno.works/internal/db"
	"github.com/Simplici0/reno.works/internal/pricing"
)

// Config contains the values required by startup seed.
type Config struct {
	Driver        string
	Version       string
	Currency      string
	Assumptions   pricing.Assumptions
	Items         []catalog.Item
	AssemblyCount int
}

// FromEngine snapshots the tables an engine prices with.
func FromEngine(driver string, e *pricing.Engine) Config {
	return Config{
		Driver:        driver,
		Version:       e.Version(),
		Currency:      e.Currency(),
		Assumptions:   e.Assumptions(),
		Items:         e.Catalog().Items(),
		AssemblyCount: e.Assemblies().Len(),
	}
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run records the pricing scheme and its catalog prices in an idempotent
// way, so saved estimates stay traceable to the prices they used.
func Run(database *sql.DB, cfg Config) (Stats, error) {
	if cfg.Version == "" {
		return Stats{}, fmt.Errorf("seed: pricing version is required")
	}

	tx, err := database.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	if err := ensureScheme(tx, cfg, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}
	for _, item := range cfg.Items {
		if err := ensureItem(tx, cfg.Driver, cfg.Version, item, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

type scheme struct {
	Currency         string
	TaxRate          float64
	OverheadRate     float64
	ContingencyRate  float64
	OpeningsFraction float64
	ItemCount        int
	AssemblyCount    int
}

func ensureScheme(tx *sql.Tx, cfg Config, stats *Stats) error {
	want := scheme{
		Currency:         cfg.Currency,
		TaxRate:          cfg.Assumptions.TaxRate,
		OverheadRate:     cfg.Assumptions.OverheadRate,
		ContingencyRate:  cfg.Assumptions.ContingencyRate,
		OpeningsFraction: cfg.Assumptions.OpeningsFraction,
		ItemCount:        len(cfg.Items),
		AssemblyCount:    cfg.AssemblyCount,
	}
	now := time.Now().UTC().Format(time.RFC3339)

	var have scheme
	err := tx.QueryRow(db.Rebind(cfg.Driver, `
		SELECT currency, tax_rate, overhead_rate, contingency_rate, openings_fraction, item_count, assembly_count
		FROM pricing_schemes
		WHERE version = ?
	`), cfg.Version).Scan(&have.Currency, &have.TaxRate, &have.OverheadRate, &have.ContingencyRate,
		&have.OpeningsFraction, &have.ItemCount, &have.AssemblyCount)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(db.Rebind(cfg.Driver, `
			INSERT INTO pricing_schemes (
				version,
				currency,
				tax_rate,
				overhead_rate,
				contingency_rate,
				openings_fraction,
				item_count,
				assembly_count,
				updated_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`), cfg.Version, want.Currency, want.TaxRate, want.OverheadRate, want.ContingencyRate,
			want.OpeningsFraction, want.ItemCount, want.AssemblyCount, now); err != nil {
			return fmt.Errorf("insert pricing scheme: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check pricing scheme existence: %w", err)
	}

	if have == want {
		return nil
	}
	if _, err := tx.Exec(db.Rebind(cfg.Driver, `
		UPDATE pricing_schemes
		SET currency = ?, tax_rate = ?, overhead_rate = ?, contingency_rate = ?,
			openings_fraction = ?, item_count = ?, assembly_count = ?, updated_at = ?
		WHERE version = ?
	`), want.Currency, want.TaxRate, want.OverheadRate, want.ContingencyRate,
		want.OpeningsFraction, want.ItemCount, want.AssemblyCount, now, cfg.Version); err != nil {
		return fmt.Errorf("update pricing scheme: %w", err)
	}
	stats.Updates++
	return nil
}

func ensureItem(tx *sql.Tx, driver, version string, item catalog.Item, stats *Stats) error {
	var have catalog.Item
	var category string
	err := tx.QueryRow(db.Rebind(driver, `
		SELECT code, name, unit, category, base_unit_cost, default_waste_pct
		FROM catalog_items
		WHERE version = ? AND code = ?
	`), version, item.Code).Scan(&have.Code, &have.Name, &have.Unit, &category, &have.BaseUnitCost, &have.DefaultWastePct)
	have.Category = catalog.CostCategory(category)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(db.Rebind(driver, `
			INSERT INTO catalog_items (version, code, name, unit, category, base_unit_cost, default_waste_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`), version, item.Code, item.Name, item.Unit, string(item.Category), item.BaseUnitCost, item.DefaultWastePct); err != nil {
			return fmt.Errorf("insert catalog item %s: %w", item.Code, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check catalog item %s: %w", item.Code, err)
	}

	if have == item {
		return nil
	}
	if _, err := tx.Exec(db.Rebind(driver, `
		UPDATE catalog_items
		SET name = ?, unit = ?, category = ?, base_unit_cost = ?, default_waste_pct = ?
		WHERE version = ? AND code = ?
	`), item.Name, item.Unit, string(item.Category), item.BaseUnitCost, item.DefaultWastePct, version, item.Code); err != nil {
		return fmt.Errorf("update catalog item %s: %w", item.Code, err)
	}
	stats.Updates++
	return nil
}
