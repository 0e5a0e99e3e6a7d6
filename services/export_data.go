package services

import (
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
)

// Supported export page sizes and orientations.
var (
	PageSizes    = []string{"A3", "A4", "A5", "Letter", "Legal"}
	Orientations = []string{"portrait", "landscape"}
)

// ExportOptions controls how a quotation is rendered for export.
type ExportOptions struct {
	StaffMode   bool   // include actual rates, actual totals and profit
	Currency    string // defaults to "₹"
	PageSize    string // one of PageSizes, defaults to A4
	Orientation string // portrait or landscape, defaults to portrait
	CompanyName string
}

// ExportRow represents a single line item in the export.
type ExportRow struct {
	Index        int // 1-based, running across sections
	Name         string
	Description  string
	Unit         string
	Qty          float64
	RateClient   float64
	RateActual   float64
	ClientAmount float64
	ActualAmount float64
	Remark       string
}

// ExportSection is one consolidated section block.
type ExportSection struct {
	Label       string
	Rows        []ExportRow
	Total       float64
	ActualTotal float64
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title        string
	DocNo        string
	Date         string
	ClientName   string
	Location     string
	ProjectTitle string
	CompanyName  string
	Currency     string
	StaffMode    bool
	PageSize     string
	Orientation  string

	Sections []ExportSection
	Totals   Totals
	Discount float64
	Handling float64
	Tax      float64
	Terms    string
}

// BuildQuotationExport consolidates q's rows and assembles ExportData.
// Percentages left unset on q count as 0.
func BuildQuotationExport(q *Quotation, opts ExportOptions) ExportData {
	if q == nil {
		q = &Quotation{}
	}
	currency := opts.Currency
	if currency == "" {
		currency = "₹"
	}

	data := ExportData{
		Title:        "Quotation",
		DocNo:        q.DocNo,
		Date:         q.Date,
		ClientName:   q.ClientName,
		Location:     q.Location,
		ProjectTitle: q.ProjectTitle,
		CompanyName:  opts.CompanyName,
		Currency:     currency,
		StaffMode:    opts.StaffMode,
		PageSize:     NormalizePageSize(opts.PageSize),
		Orientation:  NormalizeOrientation(opts.Orientation),
		Discount:     ValueOr(q.Discount, 0),
		Handling:     ValueOr(q.Handling, 0),
		Tax:          ValueOr(q.Tax, 0),
		Terms:        q.TermsOrDefault(),
		Totals:       q.Totals(),
	}

	groups := GroupBySection(Consolidate(q.Rows))
	index := 1
	for _, label := range groups.SortedLabels() {
		items := groups.Items(label)
		sec := ExportSection{Label: label}
		for _, it := range items {
			sec.Rows = append(sec.Rows, ExportRow{
				Index:        index,
				Name:         it.Name,
				Description:  it.Description,
				Unit:         it.Unit,
				Qty:          it.Qty,
				RateClient:   it.RateClient,
				RateActual:   it.RateActual,
				ClientAmount: it.ClientAmount(),
				ActualAmount: it.ActualAmount(),
				Remark:       it.Remark,
			})
			sec.ActualTotal += it.ActualAmount()
			index++
		}
		sec.Total = SectionTotal(items)
		data.Sections = append(data.Sections, sec)
	}
	return data
}

// ExportFilename returns "<docNo>.<ext>", falling back to "Quotation" when
// docNo is blank.
func ExportFilename(docNo, ext string) string {
	base := strings.TrimSpace(docNo)
	if base == "" {
		base = "Quotation"
	}
	return base + "." + ext
}

// NormalizePageSize maps a case-insensitive name onto PageSizes, defaulting to A4.
func NormalizePageSize(s string) string {
	for _, p := range PageSizes {
		if strings.EqualFold(strings.TrimSpace(s), p) {
			return p
		}
	}
	return "A4"
}

// NormalizeOrientation returns "landscape" or "portrait".
func NormalizeOrientation(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), "landscape") {
		return "landscape"
	}
	return "portrait"
}

func marotoPageSize(s string) pagesize.Type {
	switch NormalizePageSize(s) {
	case "A3":
		return pagesize.A3
	case "A5":
		return pagesize.A5
	case "Letter":
		return pagesize.Letter
	case "Legal":
		return pagesize.Legal
	}
	return pagesize.A4
}

func marotoOrientation(s string) orientation.Type {
	if NormalizeOrientation(s) == "landscape" {
		return orientation.Horizontal
	}
	return orientation.Vertical
}
