package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfMuted     = &props.Color{Red: 80, Green: 80, Blue: 80}
	pdfHeaderBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfSectionBg = &props.Color{Red: 235, Green: 235, Blue: 235}
	pdfSummaryBg = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// pdfColumn is one column of the line item table. Sizes add up to 12.
type pdfColumn struct {
	title string
	size  int
	align align.Type
	value func(r ExportRow, currency string) string
}

func pdfColumns(staff bool) []pdfColumn {
	money := func(f func(ExportRow) float64) func(ExportRow, string) string {
		return func(r ExportRow, cur string) string { return FormatAmount(cur, f(r)) }
	}
	if staff {
		return []pdfColumn{
			{"#", 1, align.Center, func(r ExportRow, _ string) string { return fmt.Sprintf("%d", r.Index) }},
			{"Item", 3, align.Left, itemLabel},
			{"Qty", 1, align.Right, func(r ExportRow, _ string) string { return FormatQty(r.Qty) }},
			{"Unit", 1, align.Center, func(r ExportRow, _ string) string { return r.Unit }},
			{"Price", 1, align.Right, money(func(r ExportRow) float64 { return r.RateClient })},
			{"Amount", 2, align.Right, money(func(r ExportRow) float64 { return r.ClientAmount })},
			{"Actual Price", 1, align.Right, money(func(r ExportRow) float64 { return r.RateActual })},
			{"Actual Amount", 2, align.Right, money(func(r ExportRow) float64 { return r.ActualAmount })},
		}
	}
	return []pdfColumn{
		{"#", 1, align.Center, func(r ExportRow, _ string) string { return fmt.Sprintf("%d", r.Index) }},
		{"Item", 5, align.Left, itemLabel},
		{"Qty", 1, align.Right, func(r ExportRow, _ string) string { return FormatQty(r.Qty) }},
		{"Unit", 1, align.Center, func(r ExportRow, _ string) string { return r.Unit }},
		{"Price", 2, align.Right, money(func(r ExportRow) float64 { return r.RateClient })},
		{"Amount", 2, align.Right, money(func(r ExportRow) float64 { return r.ClientAmount })},
	}
}

func itemLabel(r ExportRow, _ string) string {
	parts := []string{r.Name}
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	if r.Remark != "" {
		parts = append(parts, "("+r.Remark+")")
	}
	return strings.Join(parts, " - ")
}

// GeneratePDF creates a PDF document from quotation export data using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(marotoOrientation(data.Orientation)).
		WithPageSize(marotoPageSize(data.PageSize)).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addClientBlock(m, data)

	columns := pdfColumns(data.StaffMode)
	addTableHeader(m, columns)
	if len(data.Sections) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No items added yet.", props.Text{Size: 8, Align: align.Center, Color: pdfMuted}),
		)))
	}
	for _, sec := range data.Sections {
		addSectionHeader(m, sec.Label)
		for _, r := range sec.Rows {
			addTableRow(m, columns, r, data.Currency)
		}
		addSectionTotal(m, data, sec)
	}

	addSummary(m, data)
	addTerms(m, data.Terms)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addHeader adds the title, document number, and date to the PDF.
func addHeader(m core.Maroto, data ExportData) {
	if data.CompanyName != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New(data.CompanyName, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
		)))
	}

	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("No: %s", data.DocNo), props.Text{
					Size:  9,
					Align: align.Left,
					Color: pdfMuted,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.Date), props.Text{
					Size:  9,
					Align: align.Right,
					Color: pdfMuted,
				}),
			),
		),
	)
}

func addClientBlock(m core.Maroto, data ExportData) {
	lines := []string{}
	if data.ClientName != "" {
		lines = append(lines, "Client: "+data.ClientName)
	}
	if data.Location != "" {
		lines = append(lines, "Location: "+data.Location)
	}
	if data.ProjectTitle != "" {
		lines = append(lines, "Project: "+data.ProjectTitle)
	}
	for _, l := range lines {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 9, Align: align.Left}),
		)))
	}
	m.AddRows(row.New(4))
}

// addTableHeader adds the column header row for the line item table.
func addTableHeader(m core.Maroto, columns []pdfColumn) {
	headerCell := props.Cell{BackgroundColor: pdfHeaderBg}
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(
			text.New(c.title, props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Align: c.align,
				Color: &props.Color{Red: 255, Green: 255, Blue: 255},
			}),
		).WithStyle(&headerCell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addSectionHeader(m core.Maroto, label string) {
	cell := &props.Cell{BackgroundColor: pdfSectionBg}
	m.AddRows(row.New(7).Add(
		col.New(12).Add(
			text.New(label, props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left}),
		).WithStyle(cell),
	))
}

func addTableRow(m core.Maroto, columns []pdfColumn, r ExportRow, currency string) {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(
			text.New(c.value(r, currency), props.Text{Size: 7, Align: c.align}),
		))
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addSectionTotal(m core.Maroto, data ExportData, sec ExportSection) {
	style := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	label := sec.Label + " Total"
	if data.StaffMode {
		m.AddRows(row.New(7).Add(
			col.New(7).Add(text.New(label, style)),
			col.New(2).Add(text.New(FormatAmount(data.Currency, sec.Total), style)),
			col.New(3).Add(text.New(FormatAmount(data.Currency, sec.ActualTotal), style)),
		))
		return
	}
	m.AddRows(row.New(7).Add(
		col.New(10).Add(text.New(label, style)),
		col.New(2).Add(text.New(FormatAmount(data.Currency, sec.Total), style)),
	))
}

// addSummary adds the totals block: the client track, plus the actual track
// and profit in staff mode.
func addSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	for _, line := range SummaryLines(data) {
		cell := &props.Cell{BackgroundColor: pdfSummaryBg}
		labelStyle := props.Text{Size: 9, Align: align.Right}
		if line.Strong {
			labelStyle.Style = fontstyle.Bold
		}
		valueStyle := labelStyle
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(line.Label, labelStyle)).WithStyle(cell),
				col.New(4).Add(text.New(FormatAmount(data.Currency, line.Amount), valueStyle)).WithStyle(cell),
			),
		)
	}
}

func addTerms(m core.Maroto, terms string) {
	if strings.TrimSpace(terms) == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Terms & Conditions", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
	)))
	for _, line := range strings.Split(terms, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(line, props.Text{Size: 7, Align: align.Left, Color: pdfMuted}),
		)))
	}
}

// SummaryLine is one labelled amount in the totals block.
type SummaryLine struct {
	Label  string
	Amount float64
	Strong bool
}

// SummaryLines lists the totals block shared by the PDF and Excel exports.
func SummaryLines(data ExportData) []SummaryLine {
	t := data.Totals
	discount := t.ClientSubtotal * finite(data.Discount) / 100
	handling := (t.ClientSubtotal - discount) * finite(data.Handling) / 100
	lines := []SummaryLine{
		{Label: "Subtotal", Amount: t.ClientSubtotal},
		{Label: "Discount (" + FormatPercent(data.Discount) + ")", Amount: -discount},
		{Label: "Handling (" + FormatPercent(data.Handling) + ")", Amount: handling},
		{Label: "Pre-tax Total", Amount: t.ClientPretax},
		{Label: "Tax (" + FormatPercent(data.Tax) + ")", Amount: t.ClientTax},
		{Label: "Grand Total", Amount: t.ClientGrand, Strong: true},
	}
	if data.StaffMode {
		lines = append(lines,
			SummaryLine{Label: "Actual Subtotal", Amount: t.ActualSubtotal},
			SummaryLine{Label: "Actual Grand Total", Amount: t.ActualGrand, Strong: true},
			SummaryLine{Label: "Profit", Amount: t.Profit, Strong: true},
		)
	}
	return lines
}
