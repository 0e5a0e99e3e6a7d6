package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleQuotationCopy checks that a stored quotation can be copied and
// sends the browser to the builder, which performs the copy. Nothing is
// written and no number is issued here.
func HandleQuotationCopy(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
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
			log.Printf("quotation_copy: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		if v := services.ValidateForCopy(q); !v.Valid {
			return ErrorToast(e, http.StatusUnprocessableEntity, "Cannot copy quotation: "+v.Message)
		}

		return redirect(e, "/builder?"+services.CopyURLParams(docNo))
	}
}
