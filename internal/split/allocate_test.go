package split

import (
	"math"
	"testing"

	"github.com/splycehq/splyce-backend/internal/domain"
)

func TestAllocateSharedItem(t *testing.T) {
	expanded := Expand([]domain.ReceiptItem{
		{ID: "1", Name: "Platter", Price: 10.00, Quantity: 1},
	})
	participants := NewParticipants([]string{"Alice", "Bob"})
	sel := NewSelection(expanded)
	_ = sel.Toggle("1-1", "p1")
	_ = sel.Toggle("1-1", "p2")

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 10.00})

	for _, entry := range result.Entries {
		preTax := entry.TotalOwed - entry.TaxAmount
		if math.Abs(preTax-5.00) > 0.01 {
			t.Errorf("%s pre-tax share = %v, want 5.00", entry.Name, preTax)
		}
		if entry.ItemsCount != 1 {
			t.Errorf("%s itemsCount = %d, want 1", entry.Name, entry.ItemsCount)
		}
	}
}

func TestAllocateTaxProportionality(t *testing.T) {
	expanded := Expand([]domain.ReceiptItem{
		{ID: "1", Name: "Steak", Price: 20.00, Quantity: 1},
	})
	participants := NewParticipants([]string{"Alice"})
	sel := NewSelection(expanded)
	_ = sel.Toggle("1-1", "p1")

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 20.00, TaxRate: 8})

	entry := result.Entries[0]
	if math.Abs(entry.TaxAmount-1.60) > 0.001 {
		t.Errorf("taxAmount = %v, want 1.60", entry.TaxAmount)
	}
	if math.Abs(entry.TotalOwed-21.60) > 0.001 {
		t.Errorf("totalOwed = %v, want 21.60", entry.TotalOwed)
	}
}

func TestAllocateConservationFullyClaimed(t *testing.T) {
	items := []domain.ReceiptItem{
		{ID: "1", Name: "Pizza", Price: 18.99, Quantity: 1},
		{ID: "2", Name: "Fries", Price: 17.97, Quantity: 3},
		{ID: "3", Name: "Wings", Price: 12.50, Quantity: 2},
	}
	expanded := Expand(items)
	participants := NewParticipants([]string{"Alice", "Bob", "Cara"})
	sel := NewSelection(expanded)

	// Every unit claimed by somebody; a couple shared.
	ids := []string{"p1", "p2", "p3"}
	for i, row := range expanded {
		_ = sel.Toggle(row.ID, ids[i%len(ids)])
	}
	_ = sel.Toggle(expanded[0].ID, "p2") // share the pizza

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 49.46})

	var expandedTotal, preTaxSum float64
	for _, row := range expanded {
		expandedTotal += row.Price
	}
	for _, entry := range result.Entries {
		preTaxSum += entry.TotalOwed - entry.TaxAmount
	}

	tolerance := float64(len(expanded)) * 0.01
	if math.Abs(preTaxSum-expandedTotal) > tolerance {
		t.Errorf("pre-tax sum = %v, want within %v of %v", preTaxSum, tolerance, expandedTotal)
	}
	if result.UnallocatedAmount != 0 {
		t.Errorf("unallocatedAmount = %v, want 0", result.UnallocatedAmount)
	}
}

func TestAllocateUnclaimedItemsDropped(t *testing.T) {
	expanded := Expand([]domain.ReceiptItem{
		{ID: "1", Name: "Pizza", Price: 18.99, Quantity: 1},
		{ID: "2", Name: "Dessert", Price: 7.00, Quantity: 1},
	})
	participants := NewParticipants([]string{"Alice"})
	sel := NewSelection(expanded)
	_ = sel.Toggle("1-1", "p1")

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 25.99})

	entry := result.Entries[0]
	preTax := entry.TotalOwed - entry.TaxAmount
	if math.Abs(preTax-18.99) > 0.01 {
		t.Errorf("pre-tax owed = %v, want 18.99 (dessert unclaimed)", preTax)
	}
	if math.Abs(result.UnallocatedAmount-7.00) > 0.001 {
		t.Errorf("unallocatedAmount = %v, want 7.00", result.UnallocatedAmount)
	}
}

func TestAllocateDuplicateNamesStaySeparate(t *testing.T) {
	expanded := Expand([]domain.ReceiptItem{
		{ID: "1", Name: "Burger", Price: 12.00, Quantity: 1},
		{ID: "2", Name: "Burger", Price: 12.00, Quantity: 1},
	})
	participants := NewParticipants([]string{"Alex", "Alex"})
	sel := NewSelection(expanded)
	_ = sel.Toggle("1-1", "p1")
	_ = sel.Toggle("2-1", "p2")

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 24.00})

	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (same-name participants must not merge)", len(result.Entries))
	}
	for _, entry := range result.Entries {
		preTax := entry.TotalOwed - entry.TaxAmount
		if math.Abs(preTax-12.00) > 0.01 {
			t.Errorf("participant %s pre-tax owed = %v, want 12.00", entry.ParticipantID, preTax)
		}
	}
}

func TestAllocateZeroTax(t *testing.T) {
	expanded := Expand([]domain.ReceiptItem{
		{ID: "1", Name: "Coffee", Price: 4.00, Quantity: 1},
	})
	participants := NewParticipants([]string{"Alice"})
	sel := NewSelection(expanded)
	_ = sel.Toggle("1-1", "p1")

	result := Allocate(expanded, sel, participants, domain.Totals{Subtotal: 4.00, Tax: 0})

	entry := result.Entries[0]
	if entry.TaxAmount != 0 {
		t.Errorf("taxAmount = %v, want 0", entry.TaxAmount)
	}
	if math.Abs(entry.TotalOwed-4.00) > 0.001 {
		t.Errorf("totalOwed = %v, want 4.00", entry.TotalOwed)
	}
}

func TestAllocateEndToEndScenario(t *testing.T) {
	// Alice claims the pizza and one fries unit, Bob takes the other
	// two fries units; tax 5.58 on subtotal 36.96 (~15.1%).
	items := []domain.ReceiptItem{
		{ID: "1", Name: "Pizza", Price: 18.99, Quantity: 1},
		{ID: "2", Name: "Fries", Price: 17.97, Quantity: 3},
	}
	expanded := Expand(items)
	participants := NewParticipants([]string{"Alice", "Bob"})
	sel := NewSelection(expanded)

	_ = sel.Toggle("1-1", "p1")
	_ = sel.Toggle("2-1", "p1")
	_ = sel.Toggle("2-2", "p2")
	_ = sel.Toggle("2-3", "p2")

	totals := domain.Totals{Subtotal: 36.96, Tax: 5.58}
	result := Allocate(expanded, sel, participants, totals)

	wantRate := 5.58 / 36.96 * 100
	if math.Abs(result.TaxRate-wantRate) > 0.01 {
		t.Errorf("taxRate = %v, want ~%v", result.TaxRate, wantRate)
	}

	var preTaxSum float64
	for _, entry := range result.Entries {
		preTax := entry.TotalOwed - entry.TaxAmount
		preTaxSum += preTax

		switch entry.Name {
		case "Alice":
			if math.Abs(preTax-24.98) > 0.01 {
				t.Errorf("Alice pre-tax = %v, want 24.98", preTax)
			}
			wantTax := 24.98 * wantRate / 100
			if math.Abs(entry.TaxAmount-wantTax) > 0.01 {
				t.Errorf("Alice tax = %v, want ~%v", entry.TaxAmount, wantTax)
			}
		case "Bob":
			if math.Abs(preTax-11.98) > 0.01 {
				t.Errorf("Bob pre-tax = %v, want 11.98", preTax)
			}
		}
	}

	if math.Abs(preTaxSum-36.96) > 0.05 {
		t.Errorf("pre-tax totals sum to %v, want ~36.96", preTaxSum)
	}
}
