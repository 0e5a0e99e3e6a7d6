package services

import (
	"fmt"
	"strings"
	"time"
)

// FilterQuotations returns the quotations whose document number, client
// name, project title or location contains term, ignoring case. A blank
// term returns every quotation.
func FilterQuotations(list []*Quotation, term string) []*Quotation {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return list
	}
	out := make([]*Quotation, 0, len(list))
	for _, q := range list {
		if q == nil {
			continue
		}
		for _, field := range []string{q.DocNo, q.ClientName, q.ProjectTitle, q.Location} {
			if strings.Contains(strings.ToLower(field), term) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

// DaysAgo describes how long ago date (YYYY-MM-DD or RFC 3339) was,
// relative to now: "Today", "1 day ago" or "N days ago". Unparsable or
// empty dates give "N/A".
func DaysAgo(date string, now time.Time) string {
	t, ok := parseDate(date)
	if !ok {
		return "N/A"
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)
	switch days {
	case 0:
		return "Today"
	case 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{DateLayout, time.RFC3339Nano, TimestampLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
