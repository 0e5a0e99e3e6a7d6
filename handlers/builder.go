package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// maxImportSize caps line item uploads.
const maxImportSize = 10 << 20

// HandleBuilder returns a handler that opens the quotation builder. With
// ?copy=ID the stored quotation is transformed into a new one, with ?load=ID
// it is opened as-is, otherwise a blank quotation gets the next number.
func HandleBuilder(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		store := services.NewQuotationStore(app)
		staff := IsStaffMode(e.Request)
		req := services.ParseBuilderRequest(e.Request.URL.Query())

		var (
			q      *services.Quotation
			source string
		)
		switch req.Mode {
		case services.BuilderModeCopy:
			src, err := store.Load(req.ID)
			if err != nil {
				log.Printf("builder: copy source %s: %v", req.ID, err)
				SetToast(e, "error", "Quotation "+req.ID+" not found")
				return redirect(e, "/quotations")
			}
			copied, err := services.Copier{Numbers: newDocNumbers(app, cfg)}.Copy(src)
			if err != nil {
				var verr *services.CopyValidationError
				if !errors.As(err, &verr) {
					log.Printf("builder: copy %s: %v", req.ID, err)
				}
				SetToast(e, "error", "Cannot copy quotation: "+err.Error())
				return redirect(e, "/quotations")
			}
			q, source = copied, src.DocNo

		case services.BuilderModeLoad:
			loaded, err := store.Load(req.ID)
			if err != nil {
				log.Printf("builder: load %s: %v", req.ID, err)
				SetToast(e, "error", "Quotation "+req.ID+" not found")
				return redirect(e, "/quotations")
			}
			q = loaded

		default:
			docNo, err := newDocNumbers(app, cfg).Next()
			if err != nil {
				log.Printf("builder: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, "Could not issue a quotation number")
			}
			q = newQuotation(docNo, cfg, time.Now())
		}

		data := buildBuilderData(q, req.Mode, source, cfg, staff)
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.BuilderPage(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleBuilderSave returns a handler that saves the builder form. The
// quotation must pass ValidateForCopy before it is written.
func HandleBuilderSave(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := parseBuilderForm(e.Request)
		if err != nil {
			log.Printf("builder_save: %v", err)
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}
		if q.DocNo == "" {
			return ErrorToast(e, http.StatusUnprocessableEntity, services.ErrDocNoRequired.Error())
		}
		if v := services.ValidateForCopy(q); !v.Valid {
			return ErrorToast(e, http.StatusUnprocessableEntity, v.Message)
		}
		if q.Date == "" {
			q.Date = time.Now().Format(services.DateLayout)
		}

		saved, err := newStore(app, cfg).Save(q)
		if err != nil {
			log.Printf("builder_save: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Quotation "+saved.DocNo+" saved")
		return redirect(e, quotationURL(saved.DocNo))
	}
}

// HandleBuilderImport returns a handler that appends the line items of an
// uploaded CSV or XLSX file to the rows already in the form.
func HandleBuilderImport(cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please choose a CSV or Excel file")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Please choose a CSV or Excel file")
		}
		defer file.Close()

		result, err := services.ImportLineItems(file, header.Filename)
		if err != nil {
			log.Printf("builder_import: %s: %v", header.Filename, err)
			return ErrorToast(e, http.StatusBadRequest, "Import failed: "+err.Error())
		}

		q := quotationFromForm(e.Request.Form)
		q.Rows = append(q.Rows, result.Items...)

		msg := fmt.Sprintf("Imported %d item(s)", len(result.Items))
		if result.SkippedRows > 0 {
			msg += fmt.Sprintf(", skipped %d empty row(s)", result.SkippedRows)
		}
		if len(result.Unrecognized) > 0 {
			msg += ". Ignored columns: " + strings.Join(result.Unrecognized, ", ")
		}
		SetToast(e, "success", msg)

		data := buildBuilderData(q, "", "", cfg, IsStaffMode(e.Request))
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.BuilderForm(data).Render(e.Request.Context(), e.Response)
	}
}
