package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type excelColumn struct {
	title string
	width float64
	value func(r ExportRow, currency string) any
}

func excelColumns(staff bool) []excelColumn {
	cols := []excelColumn{
		{"#", 6, func(r ExportRow, _ string) any { return r.Index }},
		{"Item", 28, func(r ExportRow, _ string) any { return sanitizeExcelCell(r.Name) }},
		{"Description", 36, func(r ExportRow, _ string) any { return sanitizeExcelCell(r.Description) }},
		{"Unit", 8, func(r ExportRow, _ string) any { return sanitizeExcelCell(r.Unit) }},
		{"Qty", 8, func(r ExportRow, _ string) any { return r.Qty }},
		{"Price", 16, func(r ExportRow, cur string) any { return FormatAmount(cur, r.RateClient) }},
		{"Amount", 18, func(r ExportRow, cur string) any { return FormatAmount(cur, r.ClientAmount) }},
	}
	if staff {
		cols = append(cols,
			excelColumn{"Actual Price", 16, func(r ExportRow, cur string) any { return FormatAmount(cur, r.RateActual) }},
			excelColumn{"Actual Amount", 18, func(r ExportRow, cur string) any { return FormatAmount(cur, r.ActualAmount) }},
		)
	}
	return append(cols, excelColumn{"Remark", 24, func(r ExportRow, _ string) any { return sanitizeExcelCell(r.Remark) }})
}

// GenerateExcel creates an Excel file from the given ExportData and returns
// the file contents as a byte slice.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 characters and may not contain []:*?/\.
	sheetName := strings.NewReplacer("[", "", "]", "", ":", "", "*", "", "?", "", "/", "", `\`, "").Replace(data.DocNo)
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Quotation"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := excelColumns(data.StaffMode)
	names := make([]string, len(columns))
	for i := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name %d: %w", i+1, err)
		}
		names[i] = name
		if err := f.SetColWidth(sheetName, name, name, columns[i].width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}
	lastCol := names[len(names)-1]
	amountCol := names[6]

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#EBEBEB"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows ─────────────────────────────────────────────────────

	row := 1
	merged := func(value string, style int) error {
		r := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+r, lastCol+r); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheetName, "A"+r, sanitizeExcelCell(value))
		f.SetCellStyle(sheetName, "A"+r, lastCol+r, style)
		row++
		return nil
	}

	if data.CompanyName != "" {
		if err := merged(data.CompanyName, subtitleStyle); err != nil {
			return nil, err
		}
	}
	if err := merged(data.Title, titleStyle); err != nil {
		return nil, err
	}
	header := []string{"No: " + data.DocNo, "Date: " + data.Date}
	if data.ClientName != "" {
		header = append(header, "Client: "+data.ClientName)
	}
	if data.Location != "" {
		header = append(header, "Location: "+data.Location)
	}
	if data.ProjectTitle != "" {
		header = append(header, "Project: "+data.ProjectTitle)
	}
	for _, h := range header {
		if err := merged(h, subtitleStyle); err != nil {
			return nil, err
		}
	}
	row++

	// ── Column Headers ──────────────────────────────────────────────────

	headerRow := fmt.Sprintf("%d", row)
	for i, c := range columns {
		f.SetCellValue(sheetName, names[i]+headerRow, c.title)
	}
	f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	// ── Section blocks ──────────────────────────────────────────────────

	for _, sec := range data.Sections {
		if err := merged(sec.Label, sectionStyle); err != nil {
			return nil, err
		}
		for _, r := range sec.Rows {
			rowStr := fmt.Sprintf("%d", row)
			for i, c := range columns {
				f.SetCellValue(sheetName, names[i]+rowStr, c.value(r, data.Currency))
			}
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}

		totalRow := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, names[5]+totalRow, sanitizeExcelCell(sec.Label+" Total"))
		f.SetCellStyle(sheetName, names[5]+totalRow, names[5]+totalRow, summaryLabelStyle)
		f.SetCellValue(sheetName, amountCol+totalRow, FormatAmount(data.Currency, sec.Total))
		f.SetCellStyle(sheetName, amountCol+totalRow, amountCol+totalRow, summaryValueStyle)
		if data.StaffMode {
			f.SetCellValue(sheetName, names[8]+totalRow, FormatAmount(data.Currency, sec.ActualTotal))
			f.SetCellStyle(sheetName, names[8]+totalRow, names[8]+totalRow, summaryValueStyle)
		}
		row++
	}

	// ── Summary Rows ────────────────────────────────────────────────────

	row++
	for _, line := range SummaryLines(data) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, names[5]+r, line.Label+":")
		f.SetCellStyle(sheetName, names[5]+r, names[5]+r, summaryLabelStyle)
		f.SetCellValue(sheetName, amountCol+r, FormatAmount(data.Currency, line.Amount))
		f.SetCellStyle(sheetName, amountCol+r, amountCol+r, summaryValueStyle)
		row++
	}

	if strings.TrimSpace(data.Terms) != "" {
		row++
		if err := merged("Terms & Conditions", summaryValueStyle); err != nil {
			return nil, err
		}
		for _, line := range strings.Split(data.Terms, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := merged(line, subtitleStyle); err != nil {
				return nil, err
			}
		}
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
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

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
