package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// HandleQuotationView returns a handler that renders a stored quotation.
func HandleQuotationView(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docNo := e.Request.PathValue("docNo")
		if docNo == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing quotation number")
		}

		q, err := services.NewQuotationStore(app).Load(docNo)
		if errors.Is(err, services.ErrQuotationNotFound) {
			return ErrorToast(e, http.StatusNotFound, "Quotation not found")
		}
		if err != nil {
			log.Printf("quotation_view: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := buildPreviewData(q, cfg, IsStaffMode(e.Request))
		return render(e, templates.QuotationViewPage(data), templates.QuotationPreview(data))
	}
}
