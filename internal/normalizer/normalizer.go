// Package normalizer turns an untrusted model parse into a canonical
// receipt. It degrades rather than fails: missing numbers default,
// missing totals are derived, and a subtotal discrepancy becomes an
// advisory warning instead of an error.
package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/utils"
)

// MismatchThreshold is the absolute delta, in currency units, above
// which a parsed-vs-computed subtotal discrepancy is reported.
const MismatchThreshold = 0.05

var (
	// ErrNoItems signals a parse with zero usable line items. The user
	// must rescan; this is recoverable, not fatal.
	ErrNoItems = errors.New("no items found on receipt")

	// ErrNotReceipt signals that the model decided the image is not a
	// receipt at all.
	ErrNotReceipt = errors.New("image is not a receipt")
)

// Normalize validates and repairs a raw parsed receipt. It never
// panics; the only errors returned are ErrNoItems and ErrNotReceipt.
func Normalize(raw domain.RawParsedReceipt) (domain.NormalizedReceipt, error) {
	if raw.IsReceipt != nil && !*raw.IsReceipt {
		return domain.NormalizedReceipt{}, ErrNotReceipt
	}

	items := normalizeItems(raw.Items)
	if len(items) == 0 {
		return domain.NormalizedReceipt{}, ErrNoItems
	}

	// Prices are line totals, so the computed subtotal is a plain sum.
	var computedSubtotal float64
	for _, item := range items {
		computedSubtotal += item.Price
	}

	totals := normalizeTotals(raw.Totals, computedSubtotal)

	out := domain.NormalizedReceipt{
		RestaurantName: "Receipt",
		Items:          items,
		Totals:         totals,
	}
	if raw.RestaurantName != nil && *raw.RestaurantName != "" {
		out.RestaurantName = *raw.RestaurantName
	}
	if raw.Date != nil {
		out.Date = *raw.Date
	}

	if raw.Totals != nil && raw.Totals.Subtotal != nil {
		parsedSubtotal := *raw.Totals.Subtotal
		delta := math.Abs(parsedSubtotal - computedSubtotal)
		if delta > MismatchThreshold {
			out.MismatchWarning = &domain.MismatchInfo{
				ParsedSubtotal:   utils.RoundMoney(parsedSubtotal),
				ComputedSubtotal: utils.RoundMoney(computedSubtotal),
				Delta:            utils.RoundMoney(delta),
			}
		}
	}

	return out, nil
}

// normalizeItems drops nameless rows, coerces numbers and assigns
// deterministic positional ids to items that arrived without one.
func normalizeItems(raw []domain.RawItem) []domain.ReceiptItem {
	items := make([]domain.ReceiptItem, 0, len(raw))
	for _, r := range raw {
		if r.Name == "" {
			continue
		}

		item := domain.ReceiptItem{
			Name:     r.Name,
			Quantity: 1,
		}
		if r.Price != nil && !math.IsNaN(*r.Price) {
			item.Price = *r.Price
		}
		if r.Quantity != nil && !math.IsNaN(*r.Quantity) && *r.Quantity >= 1 {
			item.Quantity = int(*r.Quantity)
		}
		if r.ID != "" {
			item.ID = r.ID
		} else {
			item.ID = strconv.Itoa(len(items) + 1)
		}

		items = append(items, item)
	}
	return items
}

// normalizeTotals coerces the parsed totals, falling back to the
// computed subtotal and deriving total and tax rate when absent.
func normalizeTotals(raw *domain.RawTotals, computedSubtotal float64) domain.Totals {
	totals := domain.Totals{Subtotal: computedSubtotal}
	if raw != nil {
		if raw.Subtotal != nil && !math.IsNaN(*raw.Subtotal) {
			totals.Subtotal = *raw.Subtotal
		}
		if raw.Tax != nil && !math.IsNaN(*raw.Tax) {
			totals.Tax = *raw.Tax
		}
		if raw.Tip != nil && !math.IsNaN(*raw.Tip) {
			totals.Tip = *raw.Tip
		}
		if raw.ServiceCharge != nil && !math.IsNaN(*raw.ServiceCharge) {
			totals.ServiceCharge = *raw.ServiceCharge
		}
		if raw.Total != nil && !math.IsNaN(*raw.Total) && *raw.Total != 0 {
			totals.Total = *raw.Total
		}
		if raw.TaxRate != nil && !math.IsNaN(*raw.TaxRate) {
			totals.TaxRate = *raw.TaxRate
		}
	}

	if totals.Total == 0 {
		totals.Total = utils.RoundMoney(totals.Subtotal + totals.Tax + totals.Tip + totals.ServiceCharge)
	}
	if totals.TaxRate == 0 && totals.Subtotal > 0 && totals.Tax > 0 {
		totals.TaxRate = utils.RoundFloat(totals.Tax/totals.Subtotal*100, 2)
	}

	return totals
}

// DescribeMismatch renders a mismatch warning the way the review screen
// presents it.
func DescribeMismatch(m *domain.MismatchInfo) string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("Receipt subtotal $%.2f does not match item sum $%.2f (off by $%.2f)",
		m.ParsedSubtotal, m.ComputedSubtotal, m.Delta)
}
