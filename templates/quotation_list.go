package templates

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// QuotationListItem is one row of the quotations table, preformatted.
type QuotationListItem struct {
	DocNo        string
	ClientName   string
	ProjectTitle string
	Location     string
	Date         string
	DaysAgo      string
	GrandTotal   string
	ViewURL      string
	EditURL      string
	CopyURL      string
	DeleteURL    string
}

// QuotationListData is the data for the quotations page.
type QuotationListData struct {
	Items []QuotationListItem
	Query string
	Total int
}

// QuotationListPage renders the full quotations page.
func QuotationListPage(data QuotationListData) templ.Component {
	return Layout("Quotations", QuotationListContent(data))
}

// QuotationListContent renders the search box and the results table.
func QuotationListContent(data QuotationListData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("section", "id", "quotation-list")
		h.elem("h1", "Quotations")
		h.open("input", "type", "search", "name", "q", "value", data.Query,
			"placeholder", "Search by number, client, project or location",
			"hx-get", "/quotations", "hx-trigger", "input changed delay:300ms, search",
			"hx-target", "#quotation-list", "hx-swap", "outerHTML")
		h.elem("p", fmt.Sprintf("%d quotation(s)", data.Total), "class", "muted")

		if len(data.Items) == 0 {
			if data.Query != "" {
				h.elem("p", fmt.Sprintf("No quotations match %q.", data.Query), "class", "muted")
			} else {
				h.elem("p", "No quotations saved yet.", "class", "muted")
			}
			h.close("section")
			return
		}

		h.raw("<table><thead><tr>")
		for _, th := range []string{"No.", "Client", "Project", "Location", "Date", "Grand Total", ""} {
			h.elem("th", th)
		}
		h.raw("</tr></thead><tbody>")
		for _, it := range data.Items {
			h.raw("<tr>")
			h.open("td")
			h.elem("a", it.DocNo, "href", it.ViewURL)
			h.close("td")
			h.elem("td", it.ClientName)
			h.elem("td", it.ProjectTitle)
			h.elem("td", it.Location)
			h.open("td")
			h.text(it.Date)
			h.raw(" ")
			h.elem("span", "("+it.DaysAgo+")", "class", "muted")
			h.close("td")
			h.elem("td", it.GrandTotal, "class", "num")
			h.open("td")
			h.elem("a", "Edit", "href", it.EditURL)
			h.raw(" ")
			h.elem("button", "Copy", "hx-post", it.CopyURL)
			h.raw(" ")
			h.elem("button", "Delete", "hx-delete", it.DeleteURL,
				"hx-confirm", "Delete quotation "+it.DocNo+"?")
			h.close("td")
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
		h.close("section")
	})
}
