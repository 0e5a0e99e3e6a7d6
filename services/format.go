package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatAmount formats amount with the given currency symbol using the
// Indian numbering system, e.g. FormatAmount("₹", 1234567.5) -> "₹ 12,34,567.50".
// The result always has exactly 2 decimal places.
func FormatAmount(currency string, amount float64) string {
	amount = finite(amount)
	negative := amount < 0
	if negative {
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := applyIndianGrouping(intPart) + "." + decPart
	if currency != "" {
		result = currency + " " + result
	}
	if negative && strings.Trim(intPart+decPart, "0") != "" {
		result = "-" + result
	}
	return result
}

// FormatINR formats amount in rupees without a separating space, e.g. "₹1,23,45,678.90".
func FormatINR(amount float64) string {
	return strings.Replace(FormatAmount("₹", amount), "₹ ", "₹", 1)
}

// FormatQty renders a quantity: whole numbers without decimals, others with 2.
func FormatQty(qty float64) string {
	qty = finite(qty)
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}

// FormatPercent renders a percentage without trailing zeros, e.g. 18 -> "18%", 2.5 -> "2.5%".
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(finite(pct), 'f', -1, 64) + "%"
}

// applyIndianGrouping inserts Indian-style separators into a string of
// digits: the last three stay together, the rest are grouped in pairs,
// e.g. "12345678" -> "1,23,45,678".
func applyIndianGrouping(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	lead := len(head) % 2
	if lead == 1 {
		b.WriteString(head[:1])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
