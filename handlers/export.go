package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// buildExportData loads the quotation and applies the ?mode=, ?pageSize=
// and ?orientation= overrides on top of the configured defaults.
func buildExportData(app *pocketbase.PocketBase, cfg *config.Config, r *http.Request) (services.ExportData, error) {
	q, err := services.NewQuotationStore(app).Load(r.PathValue("docNo"))
	if err != nil {
		return services.ExportData{}, err
	}

	opts := exportOptions(cfg, IsStaffMode(r))
	query := r.URL.Query()
	if v := query.Get("pageSize"); v != "" {
		opts.PageSize = v
	}
	if v := query.Get("orientation"); v != "" {
		opts.Orientation = v
	}
	return services.BuildQuotationExport(q, opts), nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	return strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-", `"`, "").Replace(s)
}

type exportFormat struct {
	name        string
	ext         string
	contentType string
	generate    func(services.ExportData) ([]byte, error)
}

var (
	pdfExport = exportFormat{
		name:        "export_pdf",
		ext:         "pdf",
		contentType: "application/pdf",
		generate:    services.GeneratePDF,
	}
	excelExport = exportFormat{
		name:        "export_excel",
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		generate:    services.GenerateExcel,
	}
)

func handleExport(app *pocketbase.PocketBase, cfg *config.Config, f exportFormat) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docNo := e.Request.PathValue("docNo")
		if docNo == "" {
			return e.String(http.StatusBadRequest, "Missing quotation number")
		}

		data, err := buildExportData(app, cfg, e.Request)
		if errors.Is(err, services.ErrQuotationNotFound) {
			return e.String(http.StatusNotFound, "Quotation not found")
		}
		if err != nil {
			log.Printf("%s: %v", f.name, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		content, err := f.generate(data)
		if err != nil {
			log.Printf("%s: failed to generate %s: %v", f.name, docNo, err)
			return e.String(http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s file", strings.ToUpper(f.ext)))
		}

		filename := sanitizeFilename(services.ExportFilename(data.DocNo, f.ext))
		e.Response.Header().Set("Content-Type", f.contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		_, err = e.Response.Write(content)
		return err
	}
}

// HandleExportPDF returns a handler that downloads a quotation as PDF.
func HandleExportPDF(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return handleExport(app, cfg, pdfExport)
}

// HandleExportExcel returns a handler that downloads a quotation as an Excel workbook.
func HandleExportExcel(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return handleExport(app, cfg, excelExport)
}
