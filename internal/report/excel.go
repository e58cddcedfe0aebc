package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/reno.works/internal/pricing"
)

const (
	boqSheet     = "BOQ"
	summarySheet = "Summary"
)

// Excel renders the estimate as a workbook with a line-item BOQ sheet and a
// summary sheet. Amounts are numeric cells so they stay summable.
func Excel(result pricing.ItemizedEstimateResult, meta Meta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), boqSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("add summary sheet: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 16, 42, 10, 8, 12, 12, 16, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(boqSheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	// Title block.
	title := meta.Title
	if title == "" {
		title = "Renovation estimate"
	}
	if err := f.MergeCell(boqSheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(boqSheet, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(boqSheet, "A1", lastCol+"1", styles.title)

	subtitle := fmt.Sprintf("Pricing %s · %s", result.PricingVersion, result.Currency)
	if meta.Reference != "" {
		subtitle = "Ref: " + meta.Reference + " · " + subtitle
	}
	if meta.CreatedDate != "" {
		subtitle += " · " + meta.CreatedDate
	}
	if err := f.MergeCell(boqSheet, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge subtitle: %w", err)
	}
	f.SetCellValue(boqSheet, "A2", sanitizeExcelCell(subtitle))

	headers := []string{"#", "Code", "Description", "Qty", "Unit", "Unit cost", "Waste", "Before tax", "Tax", "Total"}
	for i, h := range headers {
		f.SetCellValue(boqSheet, columns[i]+"4", h)
	}
	f.SetCellStyle(boqSheet, "A4", lastCol+"4", styles.header)

	row := 5
	writeItems := func(prefix string, items []pricing.LineItem) {
		for i, li := range items {
			r := fmt.Sprintf("%d", row)
			f.SetCellValue(boqSheet, "A"+r, fmt.Sprintf("%s.%d", prefix, i+1))
			f.SetCellValue(boqSheet, "B"+r, sanitizeExcelCell(li.CatalogCode))
			f.SetCellValue(boqSheet, "C"+r, "  "+sanitizeExcelCell(li.Name))
			f.SetCellValue(boqSheet, "D"+r, li.Quantity)
			f.SetCellValue(boqSheet, "E"+r, sanitizeExcelCell(li.Unit))
			f.SetCellValue(boqSheet, "F"+r, li.UnitCostFinal)
			f.SetCellValue(boqSheet, "G"+r, li.WasteAmount)
			f.SetCellValue(boqSheet, "H"+r, li.CostBeforeTax)
			f.SetCellValue(boqSheet, "I"+r, li.TaxAmount)
			f.SetCellValue(boqSheet, "J"+r, li.TotalCost)
			f.SetCellStyle(boqSheet, "A"+r, lastCol+r, styles.item)
			f.SetCellStyle(boqSheet, "D"+r, "D"+r, styles.itemNumber)
			f.SetCellStyle(boqSheet, "F"+r, lastCol+r, styles.itemNumber)
			row++
		}
	}
	section := func(index, label string, subtotal float64) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(boqSheet, "A"+r, index)
		f.SetCellValue(boqSheet, "C"+r, sanitizeExcelCell(label))
		f.SetCellValue(boqSheet, "H"+r, subtotal)
		f.SetCellStyle(boqSheet, "A"+r, lastCol+r, styles.section)
		f.SetCellStyle(boqSheet, "H"+r, "H"+r, styles.sectionNumber)
		row++
	}

	for _, room := range result.Rooms {
		idx := fmt.Sprintf("%d", room.RoomIndex+1)
		section(idx, fmt.Sprintf("%s (%.2f m²)", roomLabel(room), room.FloorArea), room.Subtotal)
		writeItems(idx, room.LineItems)
	}
	if len(result.ProjectItems) > 0 {
		idx := fmt.Sprintf("%d", len(result.Rooms)+1)
		var subtotal []float64
		for _, li := range result.ProjectItems {
			subtotal = append(subtotal, li.CostBeforeTax)
		}
		section(idx, "Project items", sumRounded(subtotal))
		writeItems(idx, result.ProjectItems)
	}

	if err := writeSummarySheet(f, result, styles); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, result pricing.ItemizedEstimateResult, styles sheetStyles) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return fmt.Errorf("set summary col width: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "C", 18); err != nil {
		return fmt.Errorf("set summary col width: %w", err)
	}

	s := result.Summary
	rows := []struct {
		label string
		value float64
	}{
		{"Materials", s.MaterialsCost},
		{"Labor", s.LaborCost},
		{"Equipment", s.EquipmentCost},
		{"Subcontract", s.SubcontractCost},
		{"Other", s.OtherCost},
		{"Adjusted subtotal", s.AdjustedSubtotal},
		{fmt.Sprintf("Overhead (%.0f%%)", result.Assumptions.OverheadRate*100), s.Overhead},
		{fmt.Sprintf("Contingency (%.0f%%)", result.Assumptions.ContingencyRate*100), s.Contingency},
		{"Subtotal", s.Subtotal},
		{fmt.Sprintf("Tax (%.0f%%)", result.Assumptions.TaxRate*100), s.TaxTotal},
		{"Total", s.Total},
	}
	f.SetCellValue(summarySheet, "A1", "Summary ("+result.Currency+")")
	f.SetCellStyle(summarySheet, "A1", "A1", styles.title)
	for i, r := range rows {
		cell := fmt.Sprintf("%d", i+3)
		f.SetCellValue(summarySheet, "A"+cell, r.label)
		f.SetCellValue(summarySheet, "B"+cell, r.value)
		f.SetCellStyle(summarySheet, "A"+cell, "A"+cell, styles.summaryLabel)
		f.SetCellStyle(summarySheet, "B"+cell, "B"+cell, styles.summaryValue)
	}

	m := result.Multipliers
	start := len(rows) + 5
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", start-1), "Multipliers")
	f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", start-1), fmt.Sprintf("A%d", start-1), styles.summaryLabel)
	mults := []struct {
		name string
		m    pricing.ResolvedMultiplier
	}{
		{"Location", m.Location},
		{"Property age (labor)", m.PropertyAge},
		{"Property type", m.PropertyType},
		{"Condition", m.PropertyCondition},
		{"Access", m.AccessDifficulty},
		{"Urgency", m.Urgency},
	}
	for i, mm := range mults {
		r := fmt.Sprintf("%d", start+i)
		f.SetCellValue(summarySheet, "A"+r, mm.name)
		f.SetCellValue(summarySheet, "B"+r, sanitizeExcelCell(mm.m.Label))
		f.SetCellValue(summarySheet, "C"+r, mm.m.Value)
	}
	r := fmt.Sprintf("%d", start+len(mults))
	f.SetCellValue(summarySheet, "A"+r, "Combined project multiplier")
	f.SetCellValue(summarySheet, "C"+r, m.Combined)
	return nil
}

type sheetStyles struct {
	title, header, section, sectionNumber, item, itemNumber, summaryLabel, summaryValue int
}

func newStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	amount := 4 // #,##0.00

	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&s.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}},
		{&s.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&s.section, "section", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: thinBorders()}},
		{&s.sectionNumber, "section number", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}, Border: thinBorders(), NumFmt: amount}},
		{&s.item, "item", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&s.itemNumber, "item number", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), NumFmt: amount}},
		{&s.summaryLabel, "summary label", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}},
		{&s.summaryValue, "summary value", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, NumFmt: amount}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
