package services

import (
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"
)

var docNoPattern = regexp.MustCompile(`^LI-\d{4,}$`)

func copySource() *Quotation {
	return &Quotation{
		DocNo:        "LI-0003",
		Date:         "2024-12-01",
		ClientName:   "Acme Builders",
		Location:     "Chennai",
		ProjectTitle: "Villa 7",
		Discount:     Float(5),
		Handling:     Float(12),
		Tax:          Float(18),
		Terms:        String("Custom terms"),
		Rows: []LineItem{
			{Section: "KITCHEN", Name: "Base", Description: "Ply", Unit: "rft", Qty: 10, RateClient: 3000, RateActual: 2200, Remark: "r1"},
			{Section: "", Name: "Cleaning", Qty: 1, RateClient: 500, RateActual: 300},
		},
		CreatedAt: "2024-12-01T10:00:00.000Z",
		UpdatedAt: "2024-12-02T10:00:00.000Z",
	}
}

var copyNow = time.Date(2025, 3, 14, 9, 30, 15, 123000000, time.UTC)

func TestCopyToBuilder_ReIdentifies(t *testing.T) {
	store := NewMemoryCounterStore()
	store.SetCounter(DocNumberCounterKey, "5")

	src := copySource()
	out, err := CopyToBuilder(src, NewDocNumberGenerator(store), copyNow)
	if err != nil {
		t.Fatalf("CopyToBuilder() error: %v", err)
	}

	if out.DocNo != "LI-0006" || !docNoPattern.MatchString(out.DocNo) {
		t.Errorf("DocNo = %q, want LI-0006", out.DocNo)
	}
	if out.DocNo == src.DocNo {
		t.Error("copy must get a new document number")
	}
	if out.Date != "2025-03-14" {
		t.Errorf("Date = %q, want 2025-03-14", out.Date)
	}
	if out.CreatedAt != "2025-03-14T09:30:15.123Z" || out.UpdatedAt != out.CreatedAt {
		t.Errorf("timestamps = %q / %q", out.CreatedAt, out.UpdatedAt)
	}
	if _, err := time.Parse(time.RFC3339Nano, out.CreatedAt); err != nil {
		t.Errorf("CreatedAt is not a valid timestamp: %v", err)
	}
}

func TestCopyToBuilder_PreservesFields(t *testing.T) {
	src := copySource()
	out, err := CopyToBuilder(src, NewDocNumberGenerator(NewMemoryCounterStore()), copyNow)
	if err != nil {
		t.Fatalf("CopyToBuilder() error: %v", err)
	}

	if out.ClientName != src.ClientName || out.Location != src.Location || out.ProjectTitle != src.ProjectTitle {
		t.Errorf("header fields changed: %+v", out)
	}
	if *out.Discount != 5 || *out.Handling != 12 || *out.Tax != 18 {
		t.Errorf("percentages = %v/%v/%v", *out.Discount, *out.Handling, *out.Tax)
	}
	if *out.Terms != "Custom terms" {
		t.Errorf("Terms = %q", *out.Terms)
	}
	if len(out.Rows) != len(src.Rows) {
		t.Fatalf("rows = %d, want %d", len(out.Rows), len(src.Rows))
	}
	for i := range src.Rows {
		if out.Rows[i] != src.Rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, out.Rows[i], src.Rows[i])
		}
	}
}

func TestCopyToBuilder_Independence(t *testing.T) {
	src := copySource()
	out, err := CopyToBuilder(src, NewDocNumberGenerator(NewMemoryCounterStore()), copyNow)
	if err != nil {
		t.Fatalf("CopyToBuilder() error: %v", err)
	}

	out.ClientName = "Changed"
	*out.Discount = 99
	*out.Terms = "Changed"
	out.Rows[0].Name = "Changed"
	out.Rows[0].Qty = 999
	out.Rows = append(out.Rows, LineItem{Name: "extra"})

	if src.ClientName != "Acme Builders" || *src.Discount != 5 || *src.Terms != "Custom terms" {
		t.Error("mutating the copy changed the source header")
	}
	if src.Rows[0].Name != "Base" || src.Rows[0].Qty != 10 || len(src.Rows) != 2 {
		t.Errorf("mutating the copy changed the source rows: %+v", src.Rows)
	}
}

func TestCopyToBuilder_Defaults(t *testing.T) {
	src := &Quotation{ClientName: "Acme", Rows: []LineItem{{Name: "A"}}}
	out, err := CopyToBuilder(src, NewDocNumberGenerator(NewMemoryCounterStore()), copyNow)
	if err != nil {
		t.Fatalf("CopyToBuilder() error: %v", err)
	}
	if *out.Discount != 0 || *out.Handling != 10 || *out.Tax != 18 {
		t.Errorf("defaults = %v/%v/%v, want 0/10/18", *out.Discount, *out.Handling, *out.Tax)
	}
	if *out.Terms != DefaultTerms {
		t.Errorf("Terms = %q, want DefaultTerms", *out.Terms)
	}
}

func TestCopyToBuilder_ExplicitZeroKept(t *testing.T) {
	src := &Quotation{ClientName: "Acme", Handling: Float(0), Terms: String(""), Rows: []LineItem{{Name: "A"}}}
	out, _ := CopyToBuilder(src, NewDocNumberGenerator(NewMemoryCounterStore()), copyNow)
	if *out.Handling != 0 {
		t.Errorf("explicit 0 handling replaced with %v", *out.Handling)
	}
	if *out.Terms != "" {
		t.Errorf("explicit empty terms replaced with %q", *out.Terms)
	}
}

func TestCopyToBuilder_ValidationGate(t *testing.T) {
	invalid := []*Quotation{
		nil,
		{ClientName: "", Rows: []LineItem{{Name: "A"}}},
		{ClientName: "Acme"},
		{ClientName: "Acme", Rows: []LineItem{}},
		{ClientName: "Acme", Rows: []LineItem{{Name: ""}}},
	}
	for i, q := range invalid {
		store := NewMemoryCounterStore()
		out, err := CopyToBuilder(q, NewDocNumberGenerator(store), copyNow)
		var ve *CopyValidationError
		if !errors.As(err, &ve) {
			t.Errorf("case %d: expected CopyValidationError, got %v", i, err)
			continue
		}
		if ve.Error() != ValidateForCopy(q).Message {
			t.Errorf("case %d: message %q, want %q", i, ve.Error(), ValidateForCopy(q).Message)
		}
		if out != nil {
			t.Errorf("case %d: expected no partial copy", i)
		}
		if _, ok, _ := store.GetCounter(DocNumberCounterKey); ok {
			t.Errorf("case %d: counter must not advance on validation failure", i)
		}
	}
}

type failingSource struct{ err error }

func (f failingSource) Next() (string, error) { return "", f.err }

type panickingSource struct{}

func (panickingSource) Next() (string, error) { panic("counter exploded") }

func TestCopyToBuilder_NumberErrors(t *testing.T) {
	boom := errors.New("store down")
	_, err := CopyToBuilder(copySource(), failingSource{boom}, copyNow)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped store error, got %v", err)
	}

	out, err := CopyToBuilder(copySource(), panickingSource{}, copyNow)
	var ce *CopyError
	if !errors.As(err, &ce) || ce.Message != "counter exploded" {
		t.Errorf("expected CopyError with panic message, got %v", err)
	}
	if out != nil {
		t.Error("expected nil copy after panic")
	}
}

func TestCopier_UsesClock(t *testing.T) {
	c := Copier{
		Numbers: NewDocNumberGenerator(NewMemoryCounterStore()),
		Clock:   func() time.Time { return copyNow },
	}
	out, err := c.Copy(copySource())
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if out.Date != "2025-03-14" {
		t.Errorf("Date = %q", out.Date)
	}
}

func TestBuilderURLParams(t *testing.T) {
	if got := CopyURLParams("LI-0001"); got != "copy=LI-0001" {
		t.Errorf("CopyURLParams = %q", got)
	}
	if got := LoadURLParams("LI 1"); got != "load=LI+1" {
		t.Errorf("LoadURLParams = %q", got)
	}

	tests := []struct {
		query string
		want  BuilderRequest
	}{
		{"", BuilderRequest{Mode: BuilderModeNew}},
		{"copy=LI-0001", BuilderRequest{Mode: BuilderModeCopy, ID: "LI-0001"}},
		{"load=LI-0002", BuilderRequest{Mode: BuilderModeLoad, ID: "LI-0002"}},
		{"load=LI-0002&copy=LI-0001", BuilderRequest{Mode: BuilderModeCopy, ID: "LI-0001"}},
		{"copy=%20", BuilderRequest{Mode: BuilderModeNew}},
	}
	for _, tt := range tests {
		q, _ := url.ParseQuery(tt.query)
		if got := ParseBuilderRequest(q); got != tt.want {
			t.Errorf("ParseBuilderRequest(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}
