package services

import "sort"

// GeneralSection is the section key used for items without a section.
const GeneralSection = "General"

// CanonicalSection returns the grouping key for a raw section label.
// Callers are expected to trim input before storing it; no trimming is applied here.
func CanonicalSection(section string) string {
	if section == "" {
		return GeneralSection
	}
	return section
}

// SectionGroups is an insertion-ordered mapping from canonical section
// label to the items of that section, in input order.
type SectionGroups struct {
	labels []string
	items  map[string][]LineItem
}

// GroupBySection groups items by canonical section. Labels are kept in
// order of first appearance.
func GroupBySection(items []LineItem) SectionGroups {
	g := SectionGroups{items: make(map[string][]LineItem)}
	for _, item := range items {
		label := CanonicalSection(item.Section)
		if _, ok := g.items[label]; !ok {
			g.labels = append(g.labels, label)
		}
		g.items[label] = append(g.items[label], item)
	}
	return g
}

// Len returns the number of distinct sections.
func (g SectionGroups) Len() int {
	return len(g.labels)
}

// Labels returns the section labels in order of first appearance.
func (g SectionGroups) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// SortedLabels returns the section labels in consolidation order.
func (g SectionGroups) SortedLabels() []string {
	out := g.Labels()
	sort.Strings(out)
	return out
}

// Items returns a copy of the items grouped under label.
func (g SectionGroups) Items(label string) []LineItem {
	src := g.items[label]
	if src == nil {
		return nil
	}
	out := make([]LineItem, len(src))
	copy(out, src)
	return out
}

// Consolidate regroups items into one contiguous run per section. Sections
// are ordered by label (byte-wise), items keep their relative input order
// within a section, and every item is returned unchanged, including its raw
// Section value. The input slice is not modified.
func Consolidate(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	if len(items) == 0 {
		return out
	}
	groups := GroupBySection(items)
	for _, label := range groups.SortedLabels() {
		out = append(out, groups.items[label]...)
	}
	return out
}

// NeedsConsolidation reports whether Consolidate would reorder items. A
// section that reappears after another one started always shows up as a
// descending label, so checking adjacent labels is enough.
func NeedsConsolidation(items []LineItem) bool {
	for i := 1; i < len(items); i++ {
		if CanonicalSection(items[i].Section) < CanonicalSection(items[i-1].Section) {
			return true
		}
	}
	return false
}
