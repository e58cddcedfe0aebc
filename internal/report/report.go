// Package report renders an itemized estimate as a bill of quantities, either
// as plain text for terminals and emails or as an Excel workbook.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/reno.works/internal/format"
	"github.com/Simplici0/reno.works/internal/pricing"
)

// Meta is the optional header shown above the bill of quantities.
type Meta struct {
	Title       string
	Reference   string
	CreatedDate string
}

// Text renders result as a plain-text BOQ: one block per room, then project
// items, then the summary.
func Text(result pricing.ItemizedEstimateResult, meta Meta, f *format.Formatter) (string, error) {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "Renovation estimate"
	}
	b.WriteString(title + "\n")
	header := fmt.Sprintf("Pricing %s", result.PricingVersion)
	if meta.Reference != "" {
		header = "Ref " + meta.Reference + " | " + header
	}
	if meta.CreatedDate != "" {
		header += " | " + meta.CreatedDate
	}
	b.WriteString(header + "\n")
	b.WriteString(fmt.Sprintf("Location: %s (x%.2f)\n\n", result.Multipliers.Location.Label, result.Multipliers.Location.Value))

	money := func(v float64) (string, error) {
		return f.Currency(v, result.Currency)
	}

	writeItems := func(items []pricing.LineItem) error {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
		for _, li := range items {
			cost, err := money(li.CostBeforeTax)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "  %s\t %s\t %s\t %s\t\n", li.CatalogCode, li.Name, f.Quantity(li.Quantity, li.Unit), cost)
		}
		return tw.Flush()
	}

	for _, room := range result.Rooms {
		b.WriteString(fmt.Sprintf("%d. %s - %s\n", room.RoomIndex+1, roomLabel(room), f.Quantity(room.FloorArea, "m2")))
		if err := writeItems(room.LineItems); err != nil {
			return "", err
		}
		sub, err := money(room.Subtotal)
		if err != nil {
			return "", err
		}
		b.WriteString("  Room subtotal: " + sub + "\n\n")
	}

	if len(result.ProjectItems) > 0 {
		b.WriteString("Project items\n")
		if err := writeItems(result.ProjectItems); err != nil {
			return "", err
		}
		b.WriteString("\n")
	}

	s := result.Summary
	a := result.Assumptions
	lines := []struct {
		label string
		value float64
	}{
		{"Materials", s.MaterialsCost},
		{"Labor", s.LaborCost},
		{"Equipment", s.EquipmentCost},
		{"Subcontract", s.SubcontractCost},
		{"Other", s.OtherCost},
		{fmt.Sprintf("Adjusted subtotal (x%.4f)", result.Multipliers.Combined), s.AdjustedSubtotal},
		{"Overhead " + f.Percent(a.OverheadRate), s.Overhead},
		{"Contingency " + f.Percent(a.ContingencyRate), s.Contingency},
		{"Subtotal", s.Subtotal},
		{"Tax " + f.Percent(a.TaxRate), s.TaxTotal},
		{"Total", s.Total},
	}
	b.WriteString("Summary\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, l := range lines {
		// Subcontract and other are usually zero; keep the summary short.
		if l.value == 0 && (l.label == "Subcontract" || l.label == "Other") {
			continue
		}
		v, err := money(l.value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(tw, "  %s\t %s\t\n", l.label, v)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}

	if len(result.Diagnostics) > 0 {
		b.WriteString("\nWarnings\n")
		for _, d := range result.Diagnostics {
			b.WriteString("  - " + d.Message + "\n")
		}
	}

	return b.String(), nil
}

func roomLabel(room pricing.RoomBreakdown) string {
	if room.RoomType == "" {
		return fmt.Sprintf("Room %d", room.RoomIndex+1)
	}
	return room.RoomType
}

func sumRounded(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(2).InexactFloat64()
}
