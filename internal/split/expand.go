// Package split implements the bill-splitting core: expanding
// multi-quantity line items into claimable unit rows, tracking which
// participants claimed which unit, and allocating each participant's
// share of the subtotal and tax.
package split

import (
	"fmt"

	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/utils"
)

// Expand turns each line item into Quantity unit-priced rows so that
// participants can claim units of a multi-quantity item independently.
//
// Expansion is pure and deterministic: re-running it on an unchanged
// item list yields identical ids and prices, which is what lets the
// selection map be rebuilt safely whenever the source items change.
func Expand(items []domain.ReceiptItem) []domain.ReceiptItem {
	expanded := make([]domain.ReceiptItem, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			// A zero or negative quantity would leave nothing to claim.
			qty = 1
		}

		unitPrice := item.Price
		if qty > 1 {
			unitPrice = utils.RoundMoney(item.Price / float64(qty))
		}

		for unit := 1; unit <= qty; unit++ {
			expanded = append(expanded, domain.ReceiptItem{
				ID:       fmt.Sprintf("%s-%d", item.ID, unit),
				Name:     item.Name,
				Price:    unitPrice,
				Quantity: 1,
			})
		}
	}
	return expanded
}
