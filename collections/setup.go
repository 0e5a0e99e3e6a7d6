package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// Setup programmatically creates/ensures the quotations and app_settings
// collections exist.
func Setup(app core.App) {
	ensureCollection(app, services.QuotationsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "doc_no", Required: true})
		c.Fields.Add(&core.TextField{Name: "date", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "project_title", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "handling", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax", Required: false})
		c.Fields.Add(&core.TextField{Name: "terms", Required: false, Max: 10000})
		c.Fields.Add(&core.JSONField{Name: "rows", Required: false, MaxSize: 2 << 20})
		c.Fields.Add(&core.TextField{Name: "created_at", Required: false})
		c.Fields.Add(&core.TextField{Name: "updated_at", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_quotations_doc_no", true, "doc_no", "")
		c.AddIndex("idx_quotations_updated_at", false, "updated_at", "")
	})

	ensureCollection(app, services.SettingsCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.TextField{Name: "value", Required: false})
		c.AddIndex("idx_app_settings_key", true, "key", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
