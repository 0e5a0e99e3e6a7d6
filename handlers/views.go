package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
	"quotebuilder/templates"
)

func quotationURL(docNo string) string {
	return "/quotations/" + url.PathEscape(docNo)
}

func exportOptions(cfg *config.Config, staff bool) services.ExportOptions {
	return services.ExportOptions{
		StaffMode:   staff,
		Currency:    cfg.Quote.Currency,
		PageSize:    cfg.Export.PageSize,
		Orientation: cfg.Export.Orientation,
		CompanyName: cfg.Company.Name,
	}
}

// newStore returns a quotation store raising the configured counter.
func newStore(app *pocketbase.PocketBase, cfg *config.Config) *services.QuotationStore {
	store := services.NewQuotationStore(app)
	store.CounterKey = cfg.Counter.Key
	return store
}

// newDocNumbers returns the generator backed by the app_settings counter.
func newDocNumbers(app *pocketbase.PocketBase, cfg *config.Config) *services.DocNumberGenerator {
	return &services.DocNumberGenerator{
		Store: &services.SettingsCounterStore{App: app},
		Key:   cfg.Counter.Key,
	}
}

// buildPreviewData formats q for the preview. Rows are always consolidated.
func buildPreviewData(q *services.Quotation, cfg *config.Config, staff bool) templates.PreviewData {
	data := services.BuildQuotationExport(q, exportOptions(cfg, staff))
	cur := data.Currency

	pd := templates.PreviewData{
		DocNo:        data.DocNo,
		Date:         data.Date,
		ClientName:   data.ClientName,
		Location:     data.Location,
		ProjectTitle: data.ProjectTitle,
		CompanyName:  data.CompanyName,
		Staff:        staff,
	}
	for _, sec := range data.Sections {
		ps := templates.PreviewSection{
			Label:       sec.Label,
			Total:       services.FormatAmount(cur, sec.Total),
			ActualTotal: services.FormatAmount(cur, sec.ActualTotal),
		}
		for _, r := range sec.Rows {
			ps.Rows = append(ps.Rows, templates.PreviewRow{
				Index:        strconv.Itoa(r.Index),
				Name:         r.Name,
				Description:  r.Description,
				Unit:         r.Unit,
				Qty:          services.FormatQty(r.Qty),
				Rate:         services.FormatAmount(cur, r.RateClient),
				Amount:       services.FormatAmount(cur, r.ClientAmount),
				ActualRate:   services.FormatAmount(cur, r.RateActual),
				ActualAmount: services.FormatAmount(cur, r.ActualAmount),
				Remark:       r.Remark,
			})
		}
		pd.Sections = append(pd.Sections, ps)
	}
	if len(pd.Sections) > 0 {
		for _, line := range services.SummaryLines(data) {
			pd.Totals = append(pd.Totals, templates.PreviewTotal{
				Label:  line.Label,
				Amount: services.FormatAmount(cur, line.Amount),
				Strong: line.Strong,
			})
		}
	}
	for _, line := range strings.Split(data.Terms, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			pd.Terms = append(pd.Terms, line)
		}
	}

	if q != nil && q.DocNo != "" {
		base := quotationURL(q.DocNo)
		mode := "client"
		if staff {
			mode = "staff"
		}
		pd.PDFURL = base + "/export/pdf?mode=" + mode
		pd.ExcelURL = base + "/export/excel?mode=" + mode
		pd.EditURL = "/builder?" + services.LoadURLParams(q.DocNo)
		pd.CopyURL = base + "/copy"
		pd.ClientModeURL = base + "?mode=client"
		pd.StaffModeURL = base + "?mode=staff"
	}
	return pd
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// buildBuilderData fills the builder form from q. The preview never carries
// links because the quotation may not be saved yet.
func buildBuilderData(q *services.Quotation, mode, sourceDocNo string, cfg *config.Config, staff bool) templates.BuilderData {
	bd := templates.BuilderData{
		Mode:         mode,
		SourceDocNo:  sourceDocNo,
		DocNo:        q.DocNo,
		Date:         q.Date,
		ClientName:   q.ClientName,
		Location:     q.Location,
		ProjectTitle: q.ProjectTitle,
		Discount:     formatNumber(services.ValueOr(q.Discount, cfg.Quote.Discount)),
		Handling:     formatNumber(services.ValueOr(q.Handling, cfg.Quote.Handling)),
		Tax:          formatNumber(services.ValueOr(q.Tax, cfg.Quote.Tax)),
		Terms:        q.TermsOrDefault(),
	}
	if q.Terms == nil && cfg.Quote.Terms != "" {
		bd.Terms = cfg.Quote.Terms
	}
	for _, item := range q.Rows {
		bd.Rows = append(bd.Rows, templates.BuilderRow{
			Section:     item.Section,
			Name:        item.Name,
			Description: item.Description,
			Unit:        item.Unit,
			Qty:         formatNumber(item.Qty),
			RateClient:  formatNumber(item.RateClient),
			RateActual:  formatNumber(item.RateActual),
			Remark:      item.Remark,
		})
	}
	preview := *q
	preview.DocNo = ""
	bd.Preview = buildPreviewData(&preview, cfg, staff)
	bd.Preview.DocNo = q.DocNo
	return bd
}

// newQuotation is the blank quotation the builder opens with.
func newQuotation(docNo string, cfg *config.Config, now time.Time) *services.Quotation {
	return &services.Quotation{
		DocNo:    docNo,
		Date:     now.Format(services.DateLayout),
		Discount: services.Float(cfg.Quote.Discount),
		Handling: services.Float(cfg.Quote.Handling),
		Tax:      services.Float(cfg.Quote.Tax),
		Terms:    services.String(cfg.Quote.Terms),
		Rows:     []services.LineItem{},
	}
}

// parseBuilderForm reads the builder form. Row fields arrive as parallel
// row_* lists; rows whose text and number cells are all blank are dropped.
func parseBuilderForm(r *http.Request) (*services.Quotation, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	return quotationFromForm(r.Form), nil
}

func quotationFromForm(form url.Values) *services.Quotation {
	q := &services.Quotation{
		DocNo:        strings.TrimSpace(form.Get("docNo")),
		Date:         strings.TrimSpace(form.Get("date")),
		ClientName:   strings.TrimSpace(form.Get("clientName")),
		Location:     strings.TrimSpace(form.Get("location")),
		ProjectTitle: strings.TrimSpace(form.Get("projectTitle")),
		Discount:     services.ToPercent(form.Get("discount")),
		Handling:     services.ToPercent(form.Get("handling")),
		Tax:          services.ToPercent(form.Get("tax")),
		Rows:         []services.LineItem{},
	}
	if _, ok := form["terms"]; ok {
		q.Terms = services.String(strings.ReplaceAll(form.Get("terms"), "\r\n", "\n"))
	}

	col := func(name string, i int) string {
		vals := form[name]
		if i < len(vals) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}
	n := 0
	for _, name := range []string{"row_section", "row_name", "row_description", "row_unit",
		"row_qty", "row_rate_client", "row_rate_actual", "row_remark"} {
		n = max(n, len(form[name]))
	}
	for i := 0; i < n; i++ {
		cells := []string{
			col("row_section", i), col("row_name", i), col("row_description", i), col("row_unit", i),
			col("row_qty", i), col("row_rate_client", i), col("row_rate_actual", i), col("row_remark", i),
		}
		if strings.Join(cells, "") == "" {
			continue
		}
		q.Rows = append(q.Rows, services.LineItem{
			Section:     cells[0],
			Name:        cells[1],
			Description: cells[2],
			Unit:        cells[3],
			Qty:         services.ToNumber(cells[4]),
			RateClient:  services.ToNumber(cells[5]),
			RateActual:  services.ToNumber(cells[6]),
			Remark:      cells[7],
		})
	}
	return q
}

// render writes partial for HTMX fragment requests and page otherwise.
// Boosted navigation swaps the whole body, so it gets the page.
func render(e *core.RequestEvent, page, partial templ.Component) error {
	c := page
	if e.Request.Header.Get("HX-Request") == "true" && e.Request.Header.Get("HX-Boosted") != "true" {
		c = partial
	}
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(e.Request.Context(), e.Response)
}
