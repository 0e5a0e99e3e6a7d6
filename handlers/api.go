package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

type apiError struct {
	Error string `json:"error"`
}

// TotalsResponse is the body of GET /api/quotations/{docNo}/totals.
type TotalsResponse struct {
	DocNo         string                 `json:"docNo"`
	Totals        services.Totals        `json:"totals"`
	SectionTotals services.SectionTotals `json:"sectionTotals"`
}

func loadForAPI(e *core.RequestEvent, app *pocketbase.PocketBase, name string) (*services.Quotation, error) {
	docNo := e.Request.PathValue("docNo")
	q, err := services.NewQuotationStore(app).Load(docNo)
	if errors.Is(err, services.ErrQuotationNotFound) {
		return nil, e.JSON(http.StatusNotFound, apiError{Error: "quotation " + docNo + " not found"})
	}
	if err != nil {
		log.Printf("%s: %v", name, err)
		return nil, e.JSON(http.StatusInternalServerError, apiError{Error: "internal error"})
	}
	return q, nil
}

// HandleAPIQuotationList returns every quotation as JSON, filtered by ?q=.
func HandleAPIQuotationList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		list, err := services.NewQuotationStore(app).Search(e.Request.URL.Query().Get("q"))
		if err != nil {
			log.Printf("api_list: %v", err)
			return e.JSON(http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		return e.JSON(http.StatusOK, list)
	}
}

// HandleAPIQuotationGet returns one quotation as JSON.
func HandleAPIQuotationGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := loadForAPI(e, app, "api_get")
		if q == nil {
			return err
		}
		return e.JSON(http.StatusOK, q)
	}
}

// HandleAPIQuotationSave creates or updates a quotation from a JSON body.
// Numeric fields are decoded leniently; the quotation must pass ValidateForCopy.
// Fields left out of the body keep their stored values.
func HandleAPIQuotationSave(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var q services.Quotation
		if err := json.NewDecoder(e.Request.Body).Decode(&q); err != nil {
			return e.JSON(http.StatusBadRequest, apiError{Error: "invalid JSON body"})
		}
		q.DocNo = strings.TrimSpace(q.DocNo)
		if q.DocNo == "" {
			return e.JSON(http.StatusUnprocessableEntity, apiError{Error: services.ErrDocNoRequired.Error()})
		}

		store := newStore(app, cfg)
		existing, err := store.Load(q.DocNo)
		switch {
		case errors.Is(err, services.ErrQuotationNotFound):
			if strings.TrimSpace(q.Date) == "" {
				q.Date = time.Now().Format(services.DateLayout)
			}
		case err != nil:
			log.Printf("api_save: %v", err)
			return e.JSON(http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		if v := services.ValidateForCopy(q.MergedOver(existing)); !v.Valid {
			return e.JSON(http.StatusUnprocessableEntity, apiError{Error: v.Message})
		}

		saved, err := store.Save(&q)
		if errors.Is(err, services.ErrDocNoRequired) {
			return e.JSON(http.StatusUnprocessableEntity, apiError{Error: err.Error()})
		}
		if err != nil {
			log.Printf("api_save: %v", err)
			return e.JSON(http.StatusInternalServerError, apiError{Error: "internal error"})
		}
		return e.JSON(http.StatusOK, saved)
	}
}

// HandleAPIQuotationCopy returns the builder-ready copy of a quotation. The
// copy gets a new number but is not saved.
func HandleAPIQuotationCopy(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		src, err := loadForAPI(e, app, "api_copy")
		if src == nil {
			return err
		}

		copied, err := services.Copier{Numbers: newDocNumbers(app, cfg)}.Copy(src)
		var verr *services.CopyValidationError
		switch {
		case errors.As(err, &verr):
			return e.JSON(http.StatusUnprocessableEntity, apiError{Error: verr.Reason})
		case err != nil:
			log.Printf("api_copy: %s: %v", src.DocNo, err)
			return e.JSON(http.StatusInternalServerError, apiError{Error: err.Error()})
		}
		return e.JSON(http.StatusOK, copied)
	}
}

// HandleAPIQuotationTotals returns the grand and per-section totals of a quotation.
func HandleAPIQuotationTotals(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		q, err := loadForAPI(e, app, "api_totals")
		if q == nil {
			return err
		}
		return e.JSON(http.StatusOK, TotalsResponse{
			DocNo:         q.DocNo,
			Totals:        q.Totals(),
			SectionTotals: services.AllSectionTotals(q.Rows),
		})
	}
}
