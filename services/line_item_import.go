package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoNameColumn is returned when an import file has no Name/Item column.
var ErrNoNameColumn = errors.New("file must have a Name or Item column")

// importHeaders maps normalized header text to a LineItem field.
var importHeaders = map[string]string{
	"section":       "section",
	"name":          "name",
	"item":          "name",
	"item name":     "name",
	"description":   "description",
	"unit":          "unit",
	"uom":           "unit",
	"qty":           "qty",
	"quantity":      "qty",
	"rate":          "rateClient",
	"client rate":   "rateClient",
	"rate (client)": "rateClient",
	"actual rate":   "rateActual",
	"rate (actual)": "rateActual",
	"remark":        "remark",
	"remarks":       "remark",
}

// ImportResult holds the line items read from an upload.
type ImportResult struct {
	Items        []LineItem
	SkippedRows  int      // rows with every cell empty
	Unrecognized []string // headers that matched no field
}

// ImportLineItems parses a CSV or XLSX upload into line items. The format is
// chosen from fileName's extension.
func ImportLineItems(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}
	return rowsToLineItems(headers, dataRows)
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapImportHeaders returns the LineItem field for each column ("" when the
// header is not recognized) and the unrecognized headers.
func mapImportHeaders(headers []string) ([]string, []string) {
	mapped := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))
		if key, ok := importHeaders[norm]; ok {
			mapped[i] = key
		} else if strings.TrimSpace(h) != "" {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

func rowsToLineItems(headers []string, dataRows [][]string) (*ImportResult, error) {
	columns, unrecognized := mapImportHeaders(headers)

	hasName := false
	for _, c := range columns {
		if c == "name" {
			hasName = true
		}
	}
	if !hasName {
		return nil, ErrNoNameColumn
	}

	result := &ImportResult{Items: []LineItem{}, Unrecognized: unrecognized}
	for _, cells := range dataRows {
		values := make(map[string]string, len(columns))
		empty := true
		for i, key := range columns {
			if i >= len(cells) {
				break
			}
			v := strings.TrimSpace(cells[i])
			if v != "" {
				empty = false
			}
			if key != "" {
				values[key] = v
			}
		}
		if empty {
			result.SkippedRows++
			continue
		}
		result.Items = append(result.Items, LineItem{
			Section:     values["section"],
			Name:        values["name"],
			Description: values["description"],
			Unit:        values["unit"],
			Qty:         ToNumber(values["qty"]),
			RateClient:  ToNumber(stripGrouping(values["rateClient"])),
			RateActual:  ToNumber(stripGrouping(values["rateActual"])),
			Remark:      values["remark"],
		})
	}
	return result, nil
}

// stripGrouping removes currency symbols and thousands separators from
// exported amounts such as "₹ 1,200.00".
func stripGrouping(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(strings.TrimSpace(s), "₹")
	return strings.TrimSpace(s)
}
