package templates

import (
	"context"

	"github.com/a-h/templ"
)

// BuilderRow is one editable line item, with numbers already rendered as text.
type BuilderRow struct {
	Section     string
	Name        string
	Description string
	Unit        string
	Qty         string
	RateClient  string
	RateActual  string
	Remark      string
}

// BuilderData is the state of the quotation builder form.
type BuilderData struct {
	Mode         string // new, copy or load
	SourceDocNo  string // the record a copy was made from
	DocNo        string
	Date         string
	ClientName   string
	Location     string
	ProjectTitle string
	Discount     string
	Handling     string
	Tax          string
	Terms        string
	Rows         []BuilderRow
	Preview      PreviewData
}

// BuilderPage renders the builder with the live preview beside it.
func BuilderPage(data BuilderData) templ.Component {
	title := "New Quotation"
	if data.DocNo != "" {
		title = data.DocNo
	}
	return Layout(title, component(func(ctx context.Context, h *htmlWriter) {
		h.open("div", "class", "builder")
		h.render(ctx, BuilderForm(data))
		h.render(ctx, QuotationPreview(data.Preview))
		h.close("div")
	}))
}

// BuilderForm renders the editable form. It is also returned on its own
// after an import so HTMX can swap the rows in place.
func BuilderForm(data BuilderData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.open("form", "id", "builder-form", "method", "post", "action", "/builder/save",
			"hx-post", "/builder/save", "hx-target", "#builder-form", "hx-swap", "outerHTML")

		switch data.Mode {
		case "copy":
			h.elem("p", "Copied from "+data.SourceDocNo+". Review and save to keep it.", "class", "notice")
		case "load":
			h.elem("p", "Editing "+data.DocNo+".", "class", "notice")
		}

		field := func(label, name, value, typ string) {
			h.open("label")
			h.text(label)
			h.raw(" ")
			h.open("input", "type", typ, "name", name, "value", value)
			h.close("label")
		}

		h.raw("<fieldset>")
		h.elem("legend", "Details")
		h.open("label")
		h.text("Quotation No.")
		h.raw(" ")
		h.open("input", "type", "text", "name", "docNo", "value", data.DocNo, "readonly", "readonly")
		h.close("label")
		field("Date", "date", data.Date, "date")
		field("Client", "clientName", data.ClientName, "text")
		field("Location", "location", data.Location, "text")
		field("Project", "projectTitle", data.ProjectTitle, "text")
		h.raw("</fieldset>")

		h.raw("<fieldset>")
		h.elem("legend", "Settings")
		field("Discount %", "discount", data.Discount, "number")
		field("Handling %", "handling", data.Handling, "number")
		field("Tax %", "tax", data.Tax, "number")
		h.open("label")
		h.text("Terms")
		h.open("textarea", "name", "terms", "rows", "5")
		h.text(data.Terms)
		h.close("textarea")
		h.close("label")
		h.raw("</fieldset>")

		h.raw("<fieldset>")
		h.elem("legend", "Items")
		h.raw("<table id=\"builder-rows\"><thead><tr>")
		for _, th := range []string{"Section", "Item", "Description", "Unit", "Qty", "Rate (Client)", "Rate (Actual)", "Remark"} {
			h.elem("th", th)
		}
		h.raw("</tr></thead><tbody>")
		rows := append(append([]BuilderRow{}, data.Rows...), BuilderRow{})
		for _, r := range rows {
			h.raw("<tr>")
			for _, c := range []struct{ name, value, typ string }{
				{"row_section", r.Section, "text"},
				{"row_name", r.Name, "text"},
				{"row_description", r.Description, "text"},
				{"row_unit", r.Unit, "text"},
				{"row_qty", r.Qty, "number"},
				{"row_rate_client", r.RateClient, "number"},
				{"row_rate_actual", r.RateActual, "number"},
				{"row_remark", r.Remark, "text"},
			} {
				h.open("td")
				h.open("input", "type", c.typ, "name", c.name, "value", c.value, "step", "any")
				h.close("td")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
		h.raw("</fieldset>")

		h.elem("button", "Save Quotation", "type", "submit")
		h.raw(" ")
		h.elem("button", "Import items", "type", "button",
			"hx-post", "/builder/import", "hx-encoding", "multipart/form-data",
			"hx-include", "#builder-form", "hx-target", "#builder-form", "hx-swap", "outerHTML")
		h.raw(" ")
		h.open("input", "type", "file", "name", "file", "accept", ".csv,.xlsx")
		h.close("form")
	})
}
