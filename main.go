package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotebuilder/collections"
	"quotebuilder/config"
	"quotebuilder/handlers"
)

func main() {
	app := pocketbase.New()

	var cfgPath string
	app.RootCmd.PersistentFlags().StringVar(&cfgPath, "qbconfig", "",
		"path to the quotation builder YAML config (QB_* env vars override it)")

	app.RootCmd.AddCommand(&cobra.Command{
		Use:   "quoteconfig",
		Short: "Print the effective quotation builder settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "quote.currency      %s\n", c.Quote.Currency)
			fmt.Fprintf(out, "quote.discount      %v\n", c.Quote.Discount)
			fmt.Fprintf(out, "quote.handling      %v\n", c.Quote.Handling)
			fmt.Fprintf(out, "quote.tax           %v\n", c.Quote.Tax)
			fmt.Fprintf(out, "company.name        %s\n", c.Company.Name)
			fmt.Fprintf(out, "export.page_size    %s\n", c.Export.PageSize)
			fmt.Fprintf(out, "export.orientation  %s\n", c.Export.Orientation)
			fmt.Fprintf(out, "counter.key         %s\n", c.Counter.Key)
			return nil
		},
	})

	var cfg *config.Config

	// Load settings, create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded

		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateDocNumberCounter(app, cfg.Counter.Key); err != nil {
			log.Printf("Warning: counter migration failed: %v", err)
		}
		return se.Next()
	})

	// Routes; cfg is set by the hook above, which runs first
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		se.Router.BindFunc(handlers.DisplayModeMiddleware())

		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quotations")
		})

		// ── Quotations ───────────────────────────────────────────
		se.Router.GET("/quotations", handlers.HandleQuotationList(app, cfg))
		se.Router.GET("/quotations/{docNo}", handlers.HandleQuotationView(app, cfg))
		se.Router.DELETE("/quotations/{docNo}", handlers.HandleQuotationDelete(app))
		se.Router.POST("/quotations/{docNo}/copy", handlers.HandleQuotationCopy(app))
		se.Router.GET("/quotations/{docNo}/export/pdf", handlers.HandleExportPDF(app, cfg))
		se.Router.GET("/quotations/{docNo}/export/excel", handlers.HandleExportExcel(app, cfg))

		// ── Builder ──────────────────────────────────────────────
		se.Router.GET("/builder", handlers.HandleBuilder(app, cfg))
		se.Router.POST("/builder/save", handlers.HandleBuilderSave(app, cfg))
		se.Router.POST("/builder/import", handlers.HandleBuilderImport(cfg))

		// ── JSON API ─────────────────────────────────────────────
		se.Router.GET("/api/quotations", handlers.HandleAPIQuotationList(app))
		se.Router.POST("/api/quotations", handlers.HandleAPIQuotationSave(app, cfg))
		se.Router.GET("/api/quotations/{docNo}", handlers.HandleAPIQuotationGet(app))
		se.Router.POST("/api/quotations/{docNo}/copy", handlers.HandleAPIQuotationCopy(app, cfg))
		se.Router.GET("/api/quotations/{docNo}/totals", handlers.HandleAPIQuotationTotals(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
