package services

import (
	"fmt"
	"strings"
)

// ValidationResult reports whether a quotation may be copied or saved.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateForCopy checks that q has the minimum shape of a quotation:
// a client name and a non-empty list of named items. Checks run in order
// and the first failure is reported. It never panics.
func ValidateForCopy(q *Quotation) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ValidationResult{Message: fmt.Sprintf("Validation error: %v", r)}
		}
	}()

	if q == nil {
		return invalid("No quotation data provided")
	}
	if strings.TrimSpace(q.ClientName) == "" {
		return invalid("Client name is required")
	}
	if q.Rows == nil {
		return invalid("Quotation must have items")
	}
	if len(q.Rows) == 0 {
		return invalid("Quotation must have at least one item")
	}
	for i, item := range q.Rows {
		if strings.TrimSpace(item.Name) == "" {
			return invalid(fmt.Sprintf("Item %d is missing a name", i+1))
		}
	}
	return ValidationResult{Valid: true, Message: "Quotation is valid for copying"}
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Message: msg}
}
