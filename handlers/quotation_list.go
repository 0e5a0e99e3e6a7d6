package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// HandleQuotationList returns a handler that lists saved quotations,
// most recently updated first, filtered by ?q=.
func HandleQuotationList(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query().Get("q")

		list, err := services.NewQuotationStore(app).Search(query)
		if err != nil {
			log.Printf("quotation_list: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load quotations")
		}

		now := time.Now()
		data := templates.QuotationListData{Query: query, Total: len(list)}
		for _, q := range list {
			base := quotationURL(q.DocNo)
			data.Items = append(data.Items, templates.QuotationListItem{
				DocNo:        q.DocNo,
				ClientName:   q.ClientName,
				ProjectTitle: q.ProjectTitle,
				Location:     q.Location,
				Date:         q.Date,
				DaysAgo:      services.DaysAgo(q.Date, now),
				GrandTotal:   services.FormatAmount(cfg.Quote.Currency, q.Totals().ClientGrand),
				ViewURL:      base,
				EditURL:      "/builder?" + services.LoadURLParams(q.DocNo),
				CopyURL:      base + "/copy",
				DeleteURL:    base,
			})
		}

		return render(e, templates.QuotationListPage(data), templates.QuotationListContent(data))
	}
}
