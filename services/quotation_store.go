package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// Collection names used by the quotation builder.
const (
	QuotationsCollection = "quotations"
	SettingsCollection   = "app_settings"
)

// ErrQuotationNotFound is returned when no quotation has the requested document number.
var ErrQuotationNotFound = errors.New("quotation not found")

// ErrDocNoRequired is returned when saving a quotation without a document number.
var ErrDocNoRequired = errors.New("Quotation number is required")

// QuotationStore persists quotations in the quotations collection, keyed by
// doc_no. Saving a "LI-####" number raises the counter under CounterKey
// (DocNumberCounterKey when empty) so the generator never reissues it.
type QuotationStore struct {
	App        core.App
	Clock      func() time.Time
	CounterKey string
}

// NewQuotationStore returns a store using the wall clock.
func NewQuotationStore(app core.App) *QuotationStore {
	return &QuotationStore{App: app, Clock: time.Now}
}

func (s *QuotationStore) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

func (s *QuotationStore) counterKey() string {
	if s.CounterKey == "" {
		return DocNumberCounterKey
	}
	return s.CounterKey
}

// Save creates or updates the quotation with q.DocNo. Fields that q leaves
// unset (nil percentages, terms or rows, header text missing from decoded
// JSON) keep their stored values; on first insert they get the builder
// defaults. UpdatedAt is always stamped;
// CreatedAt is set once.
func (s *QuotationStore) Save(q *Quotation) (*Quotation, error) {
	if q == nil || strings.TrimSpace(q.DocNo) == "" {
		return nil, ErrDocNoRequired
	}
	docNo := strings.TrimSpace(q.DocNo)

	record, err := s.findRecord(docNo)
	created := false
	switch {
	case errors.Is(err, ErrQuotationNotFound):
		created = true
		col, err := s.App.FindCollectionByNameOrId(QuotationsCollection)
		if err != nil {
			return nil, fmt.Errorf("find %s collection: %w", QuotationsCollection, err)
		}
		record = core.NewRecord(col)
		record.Set("doc_no", docNo)
		record.Set("discount", float64(DefaultDiscountPercent))
		record.Set("handling", float64(DefaultHandlingPercent))
		record.Set("tax", float64(DefaultTaxPercent))
		record.Set("terms", DefaultTerms)
		record.Set("rows", []LineItem{})
	case err != nil:
		return nil, err
	}

	stamp := s.now().Format(TimestampLayout)

	for _, f := range []struct {
		field  textField
		column string
		value  string
	}{
		{fieldDate, "date", q.Date},
		{fieldClientName, "client_name", q.ClientName},
		{fieldLocation, "location", q.Location},
		{fieldProjectTitle, "project_title", q.ProjectTitle},
	} {
		if created || q.has(f.field) {
			record.Set(f.column, f.value)
		}
	}
	if q.Discount != nil {
		record.Set("discount", finite(*q.Discount))
	}
	if q.Handling != nil {
		record.Set("handling", finite(*q.Handling))
	}
	if q.Tax != nil {
		record.Set("tax", finite(*q.Tax))
	}
	if q.Terms != nil {
		record.Set("terms", *q.Terms)
	}
	if q.Rows != nil {
		record.Set("rows", q.Rows)
	}
	switch {
	case q.CreatedAt != "":
		record.Set("created_at", q.CreatedAt)
	case record.GetString("created_at") == "":
		record.Set("created_at", stamp)
	}
	record.Set("updated_at", stamp)

	err = s.App.RunInTransaction(func(txApp core.App) error {
		if err := txApp.Save(record); err != nil {
			return fmt.Errorf("save quotation %s: %w", docNo, err)
		}
		n, ok := ParseDocNo(docNo)
		if !ok {
			return nil
		}
		_, err := (&SettingsCounterStore{App: txApp}).RaiseCounter(s.counterKey(), n)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recordToQuotation(record), nil
}

// Load returns the quotation with docNo.
func (s *QuotationStore) Load(docNo string) (*Quotation, error) {
	record, err := s.findRecord(docNo)
	if err != nil {
		return nil, err
	}
	return recordToQuotation(record), nil
}

// List returns every quotation, most recently updated first.
func (s *QuotationStore) List() ([]*Quotation, error) {
	records, err := s.App.FindRecordsByFilter(QuotationsCollection, "id != ''", "-updated_at", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	out := make([]*Quotation, 0, len(records))
	for _, r := range records {
		out = append(out, recordToQuotation(r))
	}
	return out, nil
}

// Search lists quotations matching term (see FilterQuotations).
func (s *QuotationStore) Search(term string) ([]*Quotation, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	return FilterQuotations(all, term), nil
}

// Delete removes the quotation with docNo.
func (s *QuotationStore) Delete(docNo string) error {
	record, err := s.findRecord(docNo)
	if err != nil {
		return err
	}
	if err := s.App.Delete(record); err != nil {
		return fmt.Errorf("delete quotation %s: %w", docNo, err)
	}
	return nil
}

func (s *QuotationStore) findRecord(docNo string) (*core.Record, error) {
	docNo = strings.TrimSpace(docNo)
	if docNo == "" {
		return nil, ErrQuotationNotFound
	}
	record, err := s.App.FindFirstRecordByData(QuotationsCollection, "doc_no", docNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuotationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quotation %s: %w", docNo, err)
	}
	return record, nil
}

func recordToQuotation(r *core.Record) *Quotation {
	rows := []LineItem{}
	if err := r.UnmarshalJSONField("rows", &rows); err != nil || rows == nil {
		rows = []LineItem{}
	}
	return &Quotation{
		DocNo:        r.GetString("doc_no"),
		Date:         r.GetString("date"),
		ClientName:   r.GetString("client_name"),
		Location:     r.GetString("location"),
		ProjectTitle: r.GetString("project_title"),
		Discount:     Float(r.GetFloat("discount")),
		Handling:     Float(r.GetFloat("handling")),
		Tax:          Float(r.GetFloat("tax")),
		Terms:        String(r.GetString("terms")),
		Rows:         rows,
		CreatedAt:    r.GetString("created_at"),
		UpdatedAt:    r.GetString("updated_at"),
	}
}
