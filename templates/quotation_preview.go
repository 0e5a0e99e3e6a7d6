package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// EmptyPreviewMessage is shown when a quotation has no line items.
const EmptyPreviewMessage = "No items added yet. Add items using the form on the left."

// PreviewRow is one preformatted line item.
type PreviewRow struct {
	Index        string
	Name         string
	Description  string
	Unit         string
	Qty          string
	Rate         string
	Amount       string
	ActualRate   string
	ActualAmount string
	Remark       string
}

// PreviewSection is one consolidated section with its subtotal.
type PreviewSection struct {
	Label       string
	Rows        []PreviewRow
	Total       string
	ActualTotal string
}

// PreviewTotal is one labelled line of the totals block.
type PreviewTotal struct {
	Label  string
	Amount string
	Strong bool
}

// PreviewData is everything the quotation preview shows.
type PreviewData struct {
	DocNo        string
	Date         string
	ClientName   string
	Location     string
	ProjectTitle string
	CompanyName  string
	Staff        bool
	Sections     []PreviewSection
	Totals       []PreviewTotal
	Terms        []string

	// Links; empty values hide the action.
	PDFURL        string
	ExcelURL      string
	EditURL       string
	CopyURL       string
	ClientModeURL string
	StaffModeURL  string
}

// QuotationViewPage renders a stored quotation with its actions.
func QuotationViewPage(data PreviewData) templ.Component {
	return Layout(data.DocNo, component(func(ctx context.Context, h *htmlWriter) {
		h.open("div", "class", "actions")
		if data.EditURL != "" {
			h.elem("a", "Edit", "href", data.EditURL)
			h.raw(" ")
		}
		if data.CopyURL != "" {
			h.elem("button", "Copy to builder", "hx-post", data.CopyURL)
			h.raw(" ")
		}
		if data.PDFURL != "" {
			h.elem("a", "Download PDF", "href", data.PDFURL, "hx-boost", "false")
			h.raw(" ")
		}
		if data.ExcelURL != "" {
			h.elem("a", "Download Excel", "href", data.ExcelURL, "hx-boost", "false")
			h.raw(" ")
		}
		if data.Staff && data.ClientModeURL != "" {
			h.elem("a", "Client view", "href", data.ClientModeURL)
		} else if !data.Staff && data.StaffModeURL != "" {
			h.elem("a", "Staff view", "href", data.StaffModeURL)
		}
		h.close("div")
		h.render(ctx, QuotationPreview(data))
	}))
}

// QuotationPreview renders the document as the client would receive it,
// section by section. Staff mode adds the actual rate columns and totals.
func QuotationPreview(data PreviewData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("article", "id", "quotation-preview")
		if data.CompanyName != "" {
			h.elem("p", data.CompanyName, "class", "company")
		}
		h.elem("h2", "Quotation")
		h.open("p")
		h.text("No: " + data.DocNo)
		h.raw(" &middot; ")
		h.text("Date: " + data.Date)
		h.close("p")
		if data.ClientName != "" {
			h.elem("p", "Client: "+data.ClientName)
		}
		if data.Location != "" {
			h.elem("p", "Location: "+data.Location)
		}
		if data.ProjectTitle != "" {
			h.elem("p", "Project: "+data.ProjectTitle)
		}

		if len(data.Sections) == 0 {
			h.elem("p", EmptyPreviewMessage, "class", "muted empty")
			h.close("article")
			return
		}

		cols := 7
		if data.Staff {
			cols = 9
		}
		h.raw("<table><thead><tr>")
		headers := []string{"#", "Item", "Unit", "Qty", "Price", "Amount"}
		if data.Staff {
			headers = append(headers, "Actual Price", "Actual Amount")
		}
		headers = append(headers, "Remark")
		for _, th := range headers {
			h.elem("th", th)
		}
		h.raw("</tr></thead><tbody>")

		for _, sec := range data.Sections {
			h.open("tr", "class", "section-row")
			h.elem("td", sec.Label, "colspan", strconv.Itoa(cols))
			h.close("tr")
			for _, r := range sec.Rows {
				h.raw("<tr>")
				h.elem("td", r.Index)
				h.open("td")
				h.elem("strong", r.Name)
				if r.Description != "" {
					h.raw("<br>")
					h.elem("span", r.Description, "class", "muted")
				}
				h.close("td")
				h.elem("td", r.Unit)
				h.elem("td", r.Qty, "class", "num")
				h.elem("td", r.Rate, "class", "num")
				h.elem("td", r.Amount, "class", "num")
				if data.Staff {
					h.elem("td", r.ActualRate, "class", "num")
					h.elem("td", r.ActualAmount, "class", "num")
				}
				h.elem("td", r.Remark)
				h.raw("</tr>")
			}
			h.open("tr", "class", "section-total")
			h.elem("td", sec.Label+" Total", "colspan", "5", "class", "num")
			h.elem("td", sec.Total, "class", "num")
			if data.Staff {
				h.elem("td", "")
				h.elem("td", sec.ActualTotal, "class", "num")
			}
			h.elem("td", "")
			h.close("tr")
		}
		h.raw("</tbody></table>")

		h.open("table", "class", "totals")
		for _, t := range data.Totals {
			h.raw("<tr>")
			if t.Strong {
				h.open("th")
				h.text(t.Label)
				h.close("th")
				h.open("td", "class", "num")
				h.elem("strong", t.Amount)
				h.close("td")
			} else {
				h.elem("td", t.Label)
				h.elem("td", t.Amount, "class", "num")
			}
			h.raw("</tr>")
		}
		h.close("table")

		if len(data.Terms) > 0 {
			h.elem("h3", "Terms & Conditions")
			h.raw("<ul class=\"terms\">")
			for _, line := range data.Terms {
				h.elem("li", line)
			}
			h.raw("</ul>")
		}
		h.close("article")
	})
}
