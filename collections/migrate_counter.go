package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// MigrateDocNumberCounter raises the document number counter stored under
// key to the highest "LI-####" number already present in the quotations
// collection, so numbers issued afterwards never collide with imported or
// seeded records. The counter is never lowered. Safe to call on every startup.
func MigrateDocNumberCounter(app core.App, key string) error {
	if key == "" {
		key = services.DocNumberCounterKey
	}

	col, err := app.FindCollectionByNameOrId(services.QuotationsCollection)
	if err != nil {
		return fmt.Errorf("migrate: could not find %s collection: %w", services.QuotationsCollection, err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotations: %w", err)
	}

	highest := 0
	for _, r := range records {
		if n, ok := services.ParseDocNo(r.GetString("doc_no")); ok && n > highest {
			highest = n
		}
	}

	store := &services.SettingsCounterStore{App: app}
	value, _, err := store.GetCounter(key)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	raised, err := store.RaiseCounter(key, highest)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if raised {
		log.Printf("migrate: counter %q raised from %d to %d\n", key, services.ParseCounter(value), highest)
	}
	return nil
}
