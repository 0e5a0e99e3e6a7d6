package services_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"quotebuilder/services"
	"quotebuilder/testhelpers"
)

func fixedClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestQuotationStore_SaveAndLoad(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	store.Clock = fixedClock(time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC))

	saved, err := store.Save(&services.Quotation{
		DocNo:      "LI-0001",
		Date:       "2025-01-02",
		ClientName: "Acme",
		Tax:        services.Float(12),
		Rows:       testhelpers.SampleRows(),
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if saved.CreatedAt != "2025-01-02T03:04:05.006Z" || saved.UpdatedAt != saved.CreatedAt {
		t.Errorf("timestamps = %q / %q", saved.CreatedAt, saved.UpdatedAt)
	}

	got, err := store.Load("LI-0001")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.ClientName != "Acme" || len(got.Rows) != 3 {
		t.Errorf("loaded = %+v", got)
	}
	if got.Rows[0].Section != "WASHROOM" || got.Rows[0].Qty != 2 || got.Rows[0].RateActual != 9000 {
		t.Errorf("row 0 = %+v", got.Rows[0])
	}
	// Absent settings on first insert get the builder defaults.
	if *got.Discount != 0 || *got.Handling != 10 || *got.Tax != 12 {
		t.Errorf("percentages = %v/%v/%v", *got.Discount, *got.Handling, *got.Tax)
	}
	if *got.Terms != services.DefaultTerms {
		t.Errorf("terms = %q", *got.Terms)
	}
}

func TestQuotationStore_SaveMerges(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	store.Clock = fixedClock(first, second)

	if _, err := store.Save(&services.Quotation{
		DocNo: "LI-0002", ClientName: "Acme", Discount: services.Float(7),
		Terms: services.String("Net 30"), Rows: testhelpers.SampleRows(),
	}); err != nil {
		t.Fatalf("first Save() error: %v", err)
	}

	// Second save omits percentages, terms and rows.
	updated, err := store.Save(&services.Quotation{DocNo: "LI-0002", ClientName: "Acme Ltd"})
	if err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	if updated.ClientName != "Acme Ltd" {
		t.Errorf("ClientName = %q", updated.ClientName)
	}
	if *updated.Discount != 7 || *updated.Terms != "Net 30" || len(updated.Rows) != 3 {
		t.Errorf("merge lost stored fields: %+v", updated)
	}
	if updated.CreatedAt != first.Format(services.TimestampLayout) {
		t.Errorf("CreatedAt = %q, want first stamp", updated.CreatedAt)
	}
	if updated.UpdatedAt != second.Format(services.TimestampLayout) {
		t.Errorf("UpdatedAt = %q, want second stamp", updated.UpdatedAt)
	}
}

func TestQuotationStore_SaveRequiresDocNo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)

	for _, q := range []*services.Quotation{nil, {DocNo: "  "}} {
		if _, err := store.Save(q); !errors.Is(err, services.ErrDocNoRequired) {
			t.Errorf("Save(%v) error = %v, want ErrDocNoRequired", q, err)
		}
	}
}

func TestQuotationStore_ListOrderAndSearch(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Clock = fixedClock(base, base.Add(time.Minute), base.Add(2*time.Minute))

	for _, q := range []*services.Quotation{
		{DocNo: "LI-0001", ClientName: "Zed", Location: "Goa"},
		{DocNo: "LI-0002", ClientName: "Acme", ProjectTitle: "Office"},
		{DocNo: "LI-0003", ClientName: "Beta"},
	} {
		if _, err := store.Save(q); err != nil {
			t.Fatalf("Save(%s) error: %v", q.DocNo, err)
		}
	}

	list, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"LI-0003", "LI-0002", "LI-0001"}
	if len(list) != len(want) {
		t.Fatalf("List() returned %d, want %d", len(list), len(want))
	}
	for i, w := range want {
		if list[i].DocNo != w {
			t.Errorf("list[%d] = %s, want %s", i, list[i].DocNo, w)
		}
	}

	found, err := store.Search("goa")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(found) != 1 || found[0].DocNo != "LI-0001" {
		t.Errorf("Search(goa) = %v", found)
	}
}

func TestQuotationStore_DeleteAndNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	testhelpers.CreateTestQuotation(t, app, "LI-0005", "Acme")

	if err := store.Delete("LI-0005"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load("LI-0005"); !errors.Is(err, services.ErrQuotationNotFound) {
		t.Errorf("Load after delete error = %v, want ErrQuotationNotFound", err)
	}
	if err := store.Delete("LI-0005"); !errors.Is(err, services.ErrQuotationNotFound) {
		t.Errorf("second Delete error = %v, want ErrQuotationNotFound", err)
	}
}

func TestQuotationStore_CopyOfLoadedRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	testhelpers.CreateTestQuotation(t, app, "LI-0010", "Acme")

	src, err := store.Load("LI-0010")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	numbers := services.NewDocNumberGenerator(&services.SettingsCounterStore{App: app})
	out, err := services.CopyToBuilder(src, numbers, time.Now())
	if err != nil {
		t.Fatalf("CopyToBuilder() error: %v", err)
	}
	if out.DocNo != "LI-0011" {
		t.Errorf("DocNo = %q, want LI-0011", out.DocNo)
	}
	if _, err := store.Save(out); err != nil {
		t.Fatalf("Save(copy) error: %v", err)
	}
	list, _ := store.List()
	if len(list) != 2 {
		t.Errorf("expected original and copy to be stored, got %d", len(list))
	}
}

func TestQuotationStore_PartialJSONSaveKeepsHeaderFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)

	if _, err := store.Save(&services.Quotation{
		DocNo:        "LI-0001",
		Date:         "2025-01-02",
		ClientName:   "Acme",
		Location:     "Chennai",
		ProjectTitle: "Villa",
		Rows:         testhelpers.SampleRows(),
	}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	var partial services.Quotation
	body := `{"docNo":"LI-0001","clientName":"Acme Ltd","projectTitle":null,"rows":[{"name":"Sofa","qty":1,"rateClient":500}]}`
	if err := json.Unmarshal([]byte(body), &partial); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if _, err := store.Save(&partial); err != nil {
		t.Fatalf("partial Save() error: %v", err)
	}

	got, _ := store.Load("LI-0001")
	if got.ClientName != "Acme Ltd" {
		t.Errorf("ClientName = %q, want Acme Ltd", got.ClientName)
	}
	if got.Date != "2025-01-02" || got.Location != "Chennai" || got.ProjectTitle != "Villa" {
		t.Errorf("absent fields were not kept: date=%q location=%q project=%q", got.Date, got.Location, got.ProjectTitle)
	}
	if len(got.Rows) != 1 || got.Rows[0].Name != "Sofa" {
		t.Errorf("rows = %+v", got.Rows)
	}

	var clear services.Quotation
	json.Unmarshal([]byte(`{"docNo":"LI-0001","location":""}`), &clear)
	if _, err := store.Save(&clear); err != nil {
		t.Fatalf("clearing Save() error: %v", err)
	}
	got, _ = store.Load("LI-0001")
	if got.Location != "" || got.ClientName != "Acme Ltd" {
		t.Errorf("explicit empty location should clear only that field: %+v", got)
	}
}

func TestQuotationStore_SaveRaisesCounter(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	counter := &services.SettingsCounterStore{App: app}

	steps := []struct {
		docNo string
		want  string
	}{
		{"LI-0042", "42"},
		{"LI-0005", "42"},
		{"CUSTOM-99", "42"},
		{"LI-0043", "43"},
	}
	for _, s := range steps {
		if _, err := store.Save(&services.Quotation{DocNo: s.docNo, ClientName: "A"}); err != nil {
			t.Fatalf("Save(%s) error: %v", s.docNo, err)
		}
		if v, _, _ := counter.GetCounter(services.DocNumberCounterKey); v != s.want {
			t.Errorf("after %s counter = %q, want %q", s.docNo, v, s.want)
		}
	}

	next, err := services.NewDocNumberGenerator(counter).Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if next != "LI-0044" {
		t.Errorf("next = %q, want LI-0044", next)
	}
}

func TestQuotationStore_SaveRaisesCustomCounterKey(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	store := services.NewQuotationStore(app)
	store.CounterKey = "branch_last_no"

	if _, err := store.Save(&services.Quotation{DocNo: "LI-0009", ClientName: "A"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	counter := &services.SettingsCounterStore{App: app}
	if v, _, _ := counter.GetCounter("branch_last_no"); v != "9" {
		t.Errorf("custom counter = %q, want 9", v)
	}
	if _, ok, _ := counter.GetCounter(services.DocNumberCounterKey); ok {
		t.Error("default counter should be untouched")
	}
}
