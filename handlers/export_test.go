package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"quotebuilder/testhelpers"
)

func TestHandleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestQuotation(t, app, "LI-0007", "Acme Builders")

	for _, target := range []string{
		"/quotations/LI-0007/export/pdf",
		"/quotations/LI-0007/export/pdf?mode=staff&pageSize=A3&orientation=landscape",
		"/quotations/LI-0007/export/pdf?pageSize=bogus",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.SetPathValue("docNo", "LI-0007")
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)
		if err := HandleExportPDF(app, testConfig())(e); err != nil {
			t.Fatalf("%s: handler error: %v", target, err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("%s: Content-Type = %q", target, ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="LI-0007.pdf"` {
			t.Errorf("%s: Content-Disposition = %q", target, cd)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
			t.Errorf("%s: body is not a PDF", target)
		}
	}
}

func TestHandleExportExcel_StaffColumns(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestQuotation(t, app, "LI-0007", "Acme Builders")

	tests := []struct {
		query      string
		wantActual bool
	}{
		{"", false},
		{"?mode=staff", true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/quotations/LI-0007/export/excel"+tt.query, nil)
		req.SetPathValue("docNo", "LI-0007")
		rec := httptest.NewRecorder()
		e := newTestRequestEvent(app, req, rec)
		if err := HandleExportExcel(app, testConfig())(e); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="LI-0007.xlsx"` {
			t.Errorf("Content-Disposition = %q", cd)
		}

		f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		if err != nil {
			t.Fatalf("response is not a workbook: %v", err)
		}
		rows, err := f.GetRows(f.GetSheetName(0))
		f.Close()
		if err != nil {
			t.Fatalf("GetRows: %v", err)
		}
		var text strings.Builder
		for _, r := range rows {
			text.WriteString(strings.Join(r, "|"))
			text.WriteString("\n")
		}
		if got := strings.Contains(text.String(), "Actual Amount"); got != tt.wantActual {
			t.Errorf("mode %q: Actual Amount present = %v, want %v", tt.query, got, tt.wantActual)
		}
		if !strings.Contains(text.String(), "KITCHEN") {
			t.Error("expected KITCHEN section in workbook")
		}
	}
}

func TestHandleExport_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/quotations/LI-0404/export/pdf", nil)
	req.SetPathValue("docNo", "LI-0404")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := HandleExportPDF(app, testConfig())(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
