// Package quotation derives ticket totals from itemized service details.
// It is pure computation so pricing rules stay testable without a store.
package quotation

import "github.com/spec-kit/carmarket-service/internal/domain"

// ComputeTotals sums the price of every fixed category carrying a price,
// plus every priced ad-hoc item, and returns the quotation together with
// the final amount including labor. Missing prices contribute zero.
func ComputeTotals(details *domain.ServiceDetails, laborCharges float64) (totalQuotation, finalAmount float64) {
	if details == nil {
		return 0, laborCharges
	}
	for _, price := range details.CategoryPrices() {
		if price != nil {
			totalQuotation += *price
		}
	}
	for _, item := range details.Other {
		if item.Price != nil {
			totalQuotation += *item.Price
		}
	}
	return totalQuotation, totalQuotation + laborCharges
}

// FinalAmount recomputes the payable amount from an existing quotation,
// used when an update changes labor charges without touching details.
func FinalAmount(totalQuotation, laborCharges float64) float64 {
	return totalQuotation + laborCharges
}
