package services

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// numericPrefix matches the leading decimal number of a string, the way a
// browser's parseFloat reads it: "12abc" -> "12", "1,200" -> "1".
var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ToNumber converts an arbitrary input value into a finite float64.
// Text is read up to the first character that cannot continue a decimal
// number, so partially typed values keep their leading digits. Anything
// without a leading number yields 0: nil, booleans, blank or malformed
// text, NaN and ±Inf. This is the only place the number-or-zero policy is
// implemented; totals, copy, form parsing and file import all go through it.
func ToNumber(v any) float64 {
	switch val := v.(type) {
	case nil, bool:
		return 0
	case string:
		return parseLeadingNumber(val)
	case json.Number:
		return parseLeadingNumber(val.String())
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return finite(f)
}

func parseLeadingNumber(s string) float64 {
	prefix := numericPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	return finite(cast.ToFloat64(prefix))
}

// ToPercent converts an optional percentage input. Nil and blank text
// mean "not provided" and return nil; every other value is coerced with
// ToNumber.
func ToPercent(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return nil
		}
	case *float64:
		if val == nil {
			return nil
		}
		return Float(finite(*val))
	}
	return Float(ToNumber(v))
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// ValueOr dereferences p, falling back to def when p is nil.
func ValueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return finite(*p)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
