package services

// Totals holds both pricing tracks of a quotation. The client track uses
// RateClient, the actual track uses RateActual; both go through the same
// discount -> handling -> tax pipeline.
type Totals struct {
	ClientSubtotal float64 `json:"clientSubtotal"`
	ActualSubtotal float64 `json:"actualSubtotal"`
	ClientPretax   float64 `json:"clientPretax"`
	ActualPretax   float64 `json:"actualPretax"`
	ClientTax      float64 `json:"clientTax"`
	ActualTax      float64 `json:"actualTax"`
	ClientGrand    float64 `json:"clientGrand"`
	ActualGrand    float64 `json:"actualGrand"`
	Profit         float64 `json:"profit"`
}

// SectionTotal sums Qty * RateClient over items.
func SectionTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.ClientAmount()
	}
	return total
}

// SectionAmount is one entry of SectionTotals.
type SectionAmount struct {
	Section string  `json:"section"`
	Total   float64 `json:"total"`
}

// SectionTotals maps section labels to their client totals, ordered like
// GroupBySection.
type SectionTotals []SectionAmount

// Get returns the total for section and whether it was present.
func (st SectionTotals) Get(section string) (float64, bool) {
	for _, s := range st {
		if s.Section == section {
			return s.Total, true
		}
	}
	return 0, false
}

// Sum adds all section totals together.
func (st SectionTotals) Sum() float64 {
	var sum float64
	for _, s := range st {
		sum += s.Total
	}
	return sum
}

// AllSectionTotals computes SectionTotal for every section of items.
func AllSectionTotals(items []LineItem) SectionTotals {
	groups := GroupBySection(items)
	out := make(SectionTotals, 0, groups.Len())
	for _, label := range groups.labels {
		out = append(out, SectionAmount{Section: label, Total: SectionTotal(groups.items[label])})
	}
	return out
}

// GrandTotals runs the pricing pipeline for both tracks:
//
//	subtotal      = Σ qty * rate
//	afterDiscount = subtotal - subtotal*discount/100
//	pretax        = afterDiscount + afterDiscount*handling/100
//	tax           = pretax * tax/100
//	grand         = pretax + tax
//
// Profit is the client grand total minus the actual grand total.
func GrandTotals(items []LineItem, discountPct, handlingPct, taxPct float64) Totals {
	discountPct = finite(discountPct)
	handlingPct = finite(handlingPct)
	taxPct = finite(taxPct)

	var clientSubtotal, actualSubtotal float64
	for _, item := range items {
		clientSubtotal += item.ClientAmount()
		actualSubtotal += item.ActualAmount()
	}

	clientPretax, clientTax, clientGrand := applyRates(clientSubtotal, discountPct, handlingPct, taxPct)
	actualPretax, actualTax, actualGrand := applyRates(actualSubtotal, discountPct, handlingPct, taxPct)

	return Totals{
		ClientSubtotal: clientSubtotal,
		ActualSubtotal: actualSubtotal,
		ClientPretax:   clientPretax,
		ActualPretax:   actualPretax,
		ClientTax:      clientTax,
		ActualTax:      actualTax,
		ClientGrand:    clientGrand,
		ActualGrand:    actualGrand,
		Profit:         clientGrand - actualGrand,
	}
}

func applyRates(subtotal, discountPct, handlingPct, taxPct float64) (pretax, tax, grand float64) {
	afterDiscount := subtotal - subtotal*discountPct/100
	pretax = afterDiscount + afterDiscount*handlingPct/100
	tax = pretax * taxPct / 100
	grand = pretax + tax
	return pretax, tax, grand
}
