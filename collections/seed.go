package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	section     string
	name        string
	description string
	unit        string
	qty         float64
	rateClient  float64
	rateActual  float64
	remark      string
}

type quotationDef struct {
	docNo        string
	date         string
	clientName   string
	location     string
	projectTitle string
	discount     float64
	handling     float64
	tax          float64
	items        []itemDef
}

var seedQuotations = []quotationDef{
	{
		docNo:        "LI-0001",
		date:         "2025-01-15",
		clientName:   "Meera Interiors Pvt. Ltd.",
		location:     "Bengaluru",
		projectTitle: "Residence Fit-Out, Tower B Flat 1204",
		discount:     5,
		handling:     10,
		tax:          18,
		items: []itemDef{
			{"KITCHEN", "Base cabinets", "BWP ply carcass with laminate shutters", "rft", 20, 1200, 850, ""},
			{"WASHROOM", "Vanity unit", "Wall-hung vanity with quartz top", "nos", 2, 14500, 10200, "Client to approve sample"},
			{"KITCHEN", "Wall cabinets", "Lift-up shutters with soft-close hardware", "rft", 15, 2000, 1450, ""},
			{"", "Site cleaning", "Post-installation deep cleaning", "lot", 1, 6000, 3500, ""},
		},
	},
}

// Seed inserts a sample quotation so a fresh install has something to look
// at. It is safe to call on every startup because it returns early if any
// quotation records already exist.
func Seed(app core.App) error {
	col, err := app.FindCollectionByNameOrId(services.QuotationsCollection)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", services.QuotationsCollection, err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query quotations: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: quotations collection is empty – inserting seed data …")

	store := services.NewQuotationStore(app)
	for _, def := range seedQuotations {
		rows := make([]services.LineItem, 0, len(def.items))
		for _, it := range def.items {
			rows = append(rows, services.LineItem{
				Section:     it.section,
				Name:        it.name,
				Description: it.description,
				Unit:        it.unit,
				Qty:         it.qty,
				RateClient:  it.rateClient,
				RateActual:  it.rateActual,
				Remark:      it.remark,
			})
		}
		q := &services.Quotation{
			DocNo:        def.docNo,
			Date:         def.date,
			ClientName:   def.clientName,
			Location:     def.location,
			ProjectTitle: def.projectTitle,
			Discount:     services.Float(def.discount),
			Handling:     services.Float(def.handling),
			Tax:          services.Float(def.tax),
			Terms:        services.String(services.DefaultTerms),
			Rows:         rows,
		}
		if _, err := store.Save(q); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Printf("seed: created quotation %s for %q\n", def.docNo, def.clientName)
	}

	log.Println("seed: done.")
	return nil
}
