package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CopyValidationError is returned when a quotation fails ValidateForCopy.
// Its message is the validation reason, unchanged.
type CopyValidationError struct {
	Reason string
}

func (e *CopyValidationError) Error() string {
	return e.Reason
}

// CopyError wraps an unexpected failure while building the copy.
type CopyError struct {
	Message string
}

func (e *CopyError) Error() string {
	return e.Message
}

// CopyToBuilder builds a new, independent quotation from src for editing.
// The copy gets a fresh document number, today's date and new timestamps;
// every other field is carried over value for value, with missing settings
// filled from the defaults. Nothing in the result shares memory with src.
// Either the full copy is returned or an error, never a partial record.
func CopyToBuilder(src *Quotation, numbers DocNumberSource, now time.Time) (out *Quotation, err error) {
	if v := ValidateForCopy(src); !v.Valid {
		return nil, &CopyValidationError{Reason: v.Message}
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &CopyError{Message: fmt.Sprint(r)}
		}
	}()

	docNo, err := numbers.Next()
	if err != nil {
		return nil, fmt.Errorf("generate document number: %w", err)
	}

	now = now.UTC()
	stamp := now.Format(TimestampLayout)

	rows := make([]LineItem, 0, len(src.Rows))
	for _, item := range src.Rows {
		rows = append(rows, LineItem{
			Section:     item.Section,
			Name:        item.Name,
			Description: item.Description,
			Unit:        item.Unit,
			Qty:         ToNumber(item.Qty),
			RateClient:  ToNumber(item.RateClient),
			RateActual:  ToNumber(item.RateActual),
			Remark:      item.Remark,
		})
	}

	return &Quotation{
		DocNo:        docNo,
		Date:         now.Format(DateLayout),
		ClientName:   src.ClientName,
		Location:     src.Location,
		ProjectTitle: src.ProjectTitle,
		Discount:     Float(ValueOr(src.Discount, DefaultDiscountPercent)),
		Handling:     Float(ValueOr(src.Handling, DefaultHandlingPercent)),
		Tax:          Float(ValueOr(src.Tax, DefaultTaxPercent)),
		Terms:        String(src.TermsOrDefault()),
		Rows:         rows,
		CreatedAt:    stamp,
		UpdatedAt:    stamp,
	}, nil
}

// Copier binds CopyToBuilder to a number source and a clock.
type Copier struct {
	Numbers DocNumberSource
	Clock   func() time.Time
}

// Copy runs CopyToBuilder with the copier's dependencies.
func (c Copier) Copy(src *Quotation) (*Quotation, error) {
	now := time.Now
	if c.Clock != nil {
		now = c.Clock
	}
	return CopyToBuilder(src, c.Numbers, now())
}

// Builder request modes.
const (
	BuilderModeNew  = "new"
	BuilderModeCopy = "copy"
	BuilderModeLoad = "load"
)

// BuilderRequest is what the builder page was asked to open.
type BuilderRequest struct {
	Mode string
	ID   string
}

// CopyURLParams returns the query string that opens a copy of id in the builder.
func CopyURLParams(id string) string {
	return url.Values{BuilderModeCopy: {id}}.Encode()
}

// LoadURLParams returns the query string that opens id in the builder for editing.
func LoadURLParams(id string) string {
	return url.Values{BuilderModeLoad: {id}}.Encode()
}

// ParseBuilderRequest reads the copy/load parameter from a builder URL.
// Copy wins if both are present.
func ParseBuilderRequest(q url.Values) BuilderRequest {
	if id := strings.TrimSpace(q.Get(BuilderModeCopy)); id != "" {
		return BuilderRequest{Mode: BuilderModeCopy, ID: id}
	}
	if id := strings.TrimSpace(q.Get(BuilderModeLoad)); id != "" {
		return BuilderRequest{Mode: BuilderModeLoad, ID: id}
	}
	return BuilderRequest{Mode: BuilderModeNew}
}
