package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return buf.String()
}

func previewFixture(staff bool) PreviewData {
	return PreviewData{
		DocNo:      "LI-0001",
		Date:       "2025-01-15",
		ClientName: "Acme <Builders>",
		Staff:      staff,
		Sections: []PreviewSection{
			{Label: "KITCHEN", Total: "₹ 54,000.00", ActualTotal: "₹ 40,000.00", Rows: []PreviewRow{
				{Index: "1", Name: "Base", Amount: "₹ 24,000.00", ActualAmount: "₹ 18,000.00"},
			}},
		},
		Totals: []PreviewTotal{{Label: "Grand Total", Amount: "₹ 63,720.00", Strong: true}},
		Terms:  []string{"1. Advance"},
	}
}

func TestQuotationPreview_Client(t *testing.T) {
	body := render(t, QuotationPreview(previewFixture(false)))

	for _, want := range []string{"LI-0001", "KITCHEN", "KITCHEN Total", "₹ 54,000.00", "Grand Total", "1. Advance"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected preview to contain %q", want)
		}
	}
	if strings.Contains(body, "Actual Amount") || strings.Contains(body, "₹ 18,000.00") {
		t.Error("client preview must not show actual amounts")
	}
	if !strings.Contains(body, "Acme &lt;Builders&gt;") {
		t.Error("expected client name to be escaped")
	}
}

func TestQuotationPreview_Staff(t *testing.T) {
	body := render(t, QuotationPreview(previewFixture(true)))
	for _, want := range []string{"Actual Price", "Actual Amount", "₹ 18,000.00", "₹ 40,000.00", `colspan="9"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected staff preview to contain %q", want)
		}
	}
}

func TestQuotationPreview_Empty(t *testing.T) {
	body := render(t, QuotationPreview(PreviewData{DocNo: "LI-0002"}))
	if !strings.Contains(body, EmptyPreviewMessage) {
		t.Error("expected empty state message")
	}
	if strings.Contains(body, "<table") {
		t.Error("empty preview should not render a table")
	}
}

func TestQuotationListContent(t *testing.T) {
	data := QuotationListData{
		Total: 1,
		Items: []QuotationListItem{{
			DocNo: "LI-0003", ClientName: "Acme", DaysAgo: "Today",
			ViewURL: "/quotations/LI-0003", CopyURL: "/quotations/LI-0003/copy", DeleteURL: "/quotations/LI-0003",
		}},
	}
	body := render(t, QuotationListContent(data))
	for _, want := range []string{`href="/quotations/LI-0003"`, `hx-post="/quotations/LI-0003/copy"`, "(Today)", "1 quotation(s)"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected list to contain %q", want)
		}
	}

	empty := render(t, QuotationListContent(QuotationListData{Query: "zzz"}))
	if !strings.Contains(empty, "No quotations match") {
		t.Error("expected no-match message")
	}
}

func TestQuotationListPage_UsesLayout(t *testing.T) {
	body := render(t, QuotationListPage(QuotationListData{}))
	if !strings.HasPrefix(body, "<!DOCTYPE html>") {
		t.Error("expected full page")
	}
	if !strings.Contains(body, "htmx.org") || !strings.Contains(body, `id="toast"`) {
		t.Error("expected layout scripts and toast container")
	}
}

func TestBuilderForm(t *testing.T) {
	data := BuilderData{
		Mode:        "copy",
		SourceDocNo: "LI-0001",
		DocNo:       "LI-0009",
		ClientName:  "Acme",
		Tax:         "18",
		Rows:        []BuilderRow{{Section: "KITCHEN", Name: "Base", Qty: "10"}},
	}
	body := render(t, BuilderForm(data))

	for _, want := range []string{"Copied from LI-0001", `value="LI-0009"`, `value="KITCHEN"`, `name="row_name"`, `value="18"`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected form to contain %q", want)
		}
	}
	// One row per item plus a blank row for the next entry.
	if got := strings.Count(body, `name="row_name"`); got != 2 {
		t.Errorf("expected 2 row inputs, got %d", got)
	}
}

func TestBuilderPage_IncludesPreview(t *testing.T) {
	body := render(t, BuilderPage(BuilderData{Preview: PreviewData{}}))
	if !strings.Contains(body, EmptyPreviewMessage) {
		t.Error("expected builder page to include the empty preview")
	}
	if !strings.Contains(body, "<title>New Quotation | Quotation Builder</title>") {
		t.Error("expected New Quotation title")
	}
}
