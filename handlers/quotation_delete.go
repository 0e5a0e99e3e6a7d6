package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleQuotationDelete returns a handler that deletes a quotation and
// sends the browser back to the list.
func HandleQuotationDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		docNo := e.Request.PathValue("docNo")
		if docNo == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing quotation number")
		}

		err := services.NewQuotationStore(app).Delete(docNo)
		if errors.Is(err, services.ErrQuotationNotFound) {
			return ErrorToast(e, http.StatusNotFound, "Quotation not found")
		}
		if err != nil {
			log.Printf("quotation_delete: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		SetToast(e, "success", "Quotation "+docNo+" deleted")
		return redirect(e, "/quotations")
	}
}
