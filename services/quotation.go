package services

import (
	"encoding/json"
	"fmt"
)

// Default calculation settings applied when a quotation does not carry its own.
const (
	DefaultDiscountPercent = 0
	DefaultHandlingPercent = 10
	DefaultTaxPercent      = 18
)

// DefaultTerms is the boilerplate printed under a quotation when no terms were entered.
const DefaultTerms = "1. 30% advance upon order confirmation.\n" +
	"2. Balance as per progress milestones.\n" +
	"3. Delivery and installation as per schedule.\n" +
	"4. All materials are of approved quality."

// DateLayout is the calendar date format used for Quotation.Date.
const DateLayout = "2006-01-02"

// TimestampLayout is the ISO-8601 UTC layout (millisecond precision) used
// for CreatedAt and UpdatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// LineItem is a single priced row of a quotation.
type LineItem struct {
	Section     string  `json:"section"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Qty         float64 `json:"qty"`
	RateClient  float64 `json:"rateClient"`
	RateActual  float64 `json:"rateActual"`
	Remark      string  `json:"remark"`
}

// ClientAmount is Qty * RateClient.
func (li LineItem) ClientAmount() float64 {
	return finite(li.Qty) * finite(li.RateClient)
}

// ActualAmount is Qty * RateActual.
func (li LineItem) ActualAmount() float64 {
	return finite(li.Qty) * finite(li.RateActual)
}

// UnmarshalJSON decodes a line item leniently. Numeric fields accept numbers,
// numeric strings or anything else (which decodes to 0); text fields accept
// null.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Section     *string `json:"section"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Unit        *string `json:"unit"`
		Qty         any     `json:"qty"`
		RateClient  any     `json:"rateClient"`
		RateActual  any     `json:"rateActual"`
		Remark      *string `json:"remark"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode line item: %w", err)
	}
	*li = LineItem{
		Section:     deref(raw.Section),
		Name:        deref(raw.Name),
		Description: deref(raw.Description),
		Unit:        deref(raw.Unit),
		Qty:         ToNumber(raw.Qty),
		RateClient:  ToNumber(raw.RateClient),
		RateActual:  ToNumber(raw.RateActual),
		Remark:      deref(raw.Remark),
	}
	return nil
}

// textField flags a header text field left out of a decoded quotation.
type textField uint8

const (
	fieldDate textField = 1 << iota
	fieldClientName
	fieldLocation
	fieldProjectTitle
)

// Quotation is a stored sales estimate. Nil pointer fields were never
// provided; a nil Rows slice means the record carries no item list at all,
// which is different from an empty one. Header text fields missing from
// decoded JSON are remembered so a save keeps their stored values.
type Quotation struct {
	DocNo        string     `json:"docNo"`
	Date         string     `json:"date"`
	ClientName   string     `json:"clientName"`
	Location     string     `json:"location"`
	ProjectTitle string     `json:"projectTitle"`
	Discount     *float64   `json:"discount,omitempty"`
	Handling     *float64   `json:"handling,omitempty"`
	Tax          *float64   `json:"tax,omitempty"`
	Terms        *string    `json:"terms,omitempty"`
	Rows         []LineItem `json:"rows"`
	CreatedAt    string     `json:"createdAt,omitempty"`
	UpdatedAt    string     `json:"updatedAt,omitempty"`

	missing textField
}

// UnmarshalJSON accepts percentages given as numbers or numeric strings.
// Absent or null header text fields are marked missing.
func (q *Quotation) UnmarshalJSON(data []byte) error {
	type plain Quotation
	var raw struct {
		plain
		Date         *string `json:"date"`
		ClientName   *string `json:"clientName"`
		Location     *string `json:"location"`
		ProjectTitle *string `json:"projectTitle"`
		Discount     any     `json:"discount"`
		Handling     any     `json:"handling"`
		Tax          any     `json:"tax"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode quotation: %w", err)
	}
	*q = Quotation(raw.plain)
	for _, f := range []struct {
		src   *string
		dst   *string
		field textField
	}{
		{raw.Date, &q.Date, fieldDate},
		{raw.ClientName, &q.ClientName, fieldClientName},
		{raw.Location, &q.Location, fieldLocation},
		{raw.ProjectTitle, &q.ProjectTitle, fieldProjectTitle},
	} {
		if f.src == nil {
			q.missing |= f.field
			continue
		}
		*f.dst = *f.src
	}
	q.Discount = ToPercent(raw.Discount)
	q.Handling = ToPercent(raw.Handling)
	q.Tax = ToPercent(raw.Tax)
	return nil
}

// MergedOver returns q as it reads once saved over stored: fields q leaves
// unset take the stored values. A nil stored returns q itself.
func (q *Quotation) MergedOver(stored *Quotation) *Quotation {
	if stored == nil {
		return q
	}
	out := *q
	out.missing = 0
	if !q.has(fieldDate) {
		out.Date = stored.Date
	}
	if !q.has(fieldClientName) {
		out.ClientName = stored.ClientName
	}
	if !q.has(fieldLocation) {
		out.Location = stored.Location
	}
	if !q.has(fieldProjectTitle) {
		out.ProjectTitle = stored.ProjectTitle
	}
	if q.Discount == nil {
		out.Discount = stored.Discount
	}
	if q.Handling == nil {
		out.Handling = stored.Handling
	}
	if q.Tax == nil {
		out.Tax = stored.Tax
	}
	if q.Terms == nil {
		out.Terms = stored.Terms
	}
	if q.Rows == nil {
		out.Rows = stored.Rows
	}
	return &out
}

// has reports whether a header text field was provided.
func (q *Quotation) has(f textField) bool {
	return q.missing&f == 0
}

// Totals computes the grand totals of q. Absent percentages count as 0.
func (q *Quotation) Totals() Totals {
	if q == nil {
		return Totals{}
	}
	return GrandTotals(q.Rows, ValueOr(q.Discount, 0), ValueOr(q.Handling, 0), ValueOr(q.Tax, 0))
}

// TermsOrDefault returns the quotation terms, or DefaultTerms when none were set.
func (q *Quotation) TermsOrDefault() string {
	if q == nil || q.Terms == nil {
		return DefaultTerms
	}
	return *q.Terms
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
