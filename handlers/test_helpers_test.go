package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// testConfig returns the built-in configuration, unaffected by the environment.
func testConfig() *config.Config {
	return config.Default()
}

// storedCounter reads the document number counter, failing the test on error.
func storedCounter(t *testing.T, app *pocketbase.PocketBase) (string, bool) {
	t.Helper()
	v, ok, err := (&services.SettingsCounterStore{App: app}).GetCounter(services.DocNumberCounterKey)
	if err != nil {
		t.Fatalf("GetCounter: %v", err)
	}
	return v, ok
}

func quotationCount(t *testing.T, app *pocketbase.PocketBase) int {
	t.Helper()
	records, err := app.FindAllRecords(services.QuotationsCollection)
	if err != nil {
		t.Fatalf("FindAllRecords: %v", err)
	}
	return len(records)
}

var copyTestNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
