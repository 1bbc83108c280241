package split

import (
	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/utils"
)

// Allocate computes each participant's owed amount from the expanded
// items and the current selection. Items nobody claimed contribute to
// no entry; their value is reported as UnallocatedAmount so callers can
// reconcile the per-person sum against the bill total if they want to.
//
// Rounding happens once, at the output boundary, to keep fractional
// cents from compounding across shared items.
func Allocate(expanded []domain.ReceiptItem, selection *Selection, participants []domain.Participant, totals domain.Totals) domain.SplitResult {
	type accumulator struct {
		owed       float64
		itemsCount int
		items      []domain.ItemShare
	}

	accs := make(map[string]*accumulator, len(participants))
	for _, p := range participants {
		accs[p.ID] = &accumulator{}
	}

	var allocated, unallocated float64
	for _, item := range expanded {
		claimants := selection.Claimants(item.ID)
		if len(claimants) == 0 {
			unallocated += item.Price
			continue
		}

		share := item.Price / float64(len(claimants))
		allocated += item.Price
		for _, id := range claimants {
			acc, ok := accs[id]
			if !ok {
				continue
			}
			acc.owed += share
			acc.itemsCount++
			acc.items = append(acc.items, domain.ItemShare{Name: item.Name, Share: share})
		}
	}

	taxRate := totals.TaxRate
	if taxRate == 0 && totals.Subtotal > 0 {
		taxRate = totals.Tax / totals.Subtotal * 100
	}

	entries := make([]domain.SummaryEntry, 0, len(participants))
	for _, p := range participants {
		acc := accs[p.ID]

		var taxAmount float64
		if taxRate > 0 {
			taxAmount = acc.owed * taxRate / 100
		}

		shares := make([]domain.ItemShare, len(acc.items))
		for i, s := range acc.items {
			shares[i] = domain.ItemShare{Name: s.Name, Share: utils.RoundMoney(s.Share)}
		}

		entries = append(entries, domain.SummaryEntry{
			ParticipantID: p.ID,
			Name:          p.Name,
			ItemsCount:    acc.itemsCount,
			TotalOwed:     utils.RoundMoney(acc.owed + taxAmount),
			TaxAmount:     utils.RoundMoney(taxAmount),
			TaxRate:       utils.RoundFloat(taxRate, 2),
			Items:         shares,
		})
	}

	return domain.SplitResult{
		Entries:           entries,
		TaxRate:           utils.RoundFloat(taxRate, 2),
		AllocatedSubtotal: utils.RoundMoney(allocated),
		UnallocatedAmount: utils.RoundMoney(unallocated),
	}
}
