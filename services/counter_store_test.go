package services_test

import (
	"testing"

	"quotebuilder/services"
	"quotebuilder/testhelpers"
)

func TestSettingsCounterStore_GetSet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := &services.SettingsCounterStore{App: app}

	if _, ok, err := store.GetCounter("qb_last_no"); ok || err != nil {
		t.Fatalf("expected missing counter, got ok=%v err=%v", ok, err)
	}
	if err := store.SetCounter("qb_last_no", "5"); err != nil {
		t.Fatalf("SetCounter() error: %v", err)
	}
	if err := store.SetCounter("qb_last_no", "8"); err != nil {
		t.Fatalf("SetCounter() overwrite error: %v", err)
	}
	value, ok, err := store.GetCounter("qb_last_no")
	if err != nil || !ok || value != "8" {
		t.Errorf("GetCounter() = (%q, %v, %v), want (8, true, nil)", value, ok, err)
	}

	col, _ := app.FindCollectionByNameOrId("app_settings")
	records, _ := app.FindAllRecords(col)
	if len(records) != 1 {
		t.Errorf("expected a single settings record, got %d", len(records))
	}
}

func TestSettingsCounterStore_NextDocNo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := &services.SettingsCounterStore{App: app}
	gen := services.NewDocNumberGenerator(store)

	first, err := gen.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if first != "LI-0001" {
		t.Errorf("first = %q, want LI-0001", first)
	}

	if err := store.SetCounter(services.DocNumberCounterKey, "5"); err != nil {
		t.Fatalf("SetCounter() error: %v", err)
	}
	next, err := gen.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if next != "LI-0006" {
		t.Errorf("next = %q, want LI-0006", next)
	}
	value, _, _ := store.GetCounter(services.DocNumberCounterKey)
	if value != "6" {
		t.Errorf("persisted counter = %q, want 6", value)
	}
}

func TestSettingsCounterStore_RaiseCounter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := &services.SettingsCounterStore{App: app}

	tests := []struct {
		n          int
		wantRaised bool
		wantValue  string
	}{
		{0, false, ""},
		{5, true, "5"},
		{3, false, "5"},
		{5, false, "5"},
		{6, true, "6"},
	}
	for _, tt := range tests {
		raised, err := store.RaiseCounter("qb_last_no", tt.n)
		if err != nil {
			t.Fatalf("RaiseCounter(%d) error: %v", tt.n, err)
		}
		if raised != tt.wantRaised {
			t.Errorf("RaiseCounter(%d) raised = %v, want %v", tt.n, raised, tt.wantRaised)
		}
		if v, _, _ := store.GetCounter("qb_last_no"); v != tt.wantValue {
			t.Errorf("after RaiseCounter(%d) value = %q, want %q", tt.n, v, tt.wantValue)
		}
	}
}
