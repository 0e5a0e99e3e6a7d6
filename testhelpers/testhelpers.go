// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"

	"quotebuilder/collections"
	"quotebuilder/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// SampleRows returns a small two-section item list with the sections out of order.
func SampleRows() []services.LineItem {
	return []services.LineItem{
		{Section: "WASHROOM", Name: "Vanity", Unit: "nos", Qty: 2, RateClient: 12000, RateActual: 9000},
		{Section: "KITCHEN", Name: "Base cabinet", Unit: "rft", Qty: 10, RateClient: 3000, RateActual: 2200},
		{Section: "KITCHEN", Name: "Wall cabinet", Unit: "rft", Qty: 8, RateClient: 3000, RateActual: 2100},
	}
}

// CreateTestQuotation stores a quotation with SampleRows through the
// QuotationStore and returns the saved copy.
func CreateTestQuotation(t *testing.T, app *pocketbase.PocketBase, docNo, clientName string) *services.Quotation {
	t.Helper()

	q := &services.Quotation{
		DocNo:        docNo,
		Date:         "2025-03-01",
		ClientName:   clientName,
		Location:     "Pune",
		ProjectTitle: "Test Project",
		Discount:     services.Float(0),
		Handling:     services.Float(10),
		Tax:          services.Float(18),
		Rows:         SampleRows(),
	}
	saved, err := services.NewQuotationStore(app).Save(q)
	if err != nil {
		t.Fatalf("failed to save test quotation: %v", err)
	}
	return saved
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
