package split

import (
	"math"
	"testing"

	"github.com/splycehq/splyce-backend/internal/domain"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name      string
		items     []domain.ReceiptItem
		wantIDs   []string
		wantPrice []float64
	}{
		{
			name: "single quantity passes through with unit suffix",
			items: []domain.ReceiptItem{
				{ID: "1", Name: "Pizza", Price: 18.99, Quantity: 1},
			},
			wantIDs:   []string{"1-1"},
			wantPrice: []float64{18.99},
		},
		{
			name: "quantity three splits into unit rows",
			items: []domain.ReceiptItem{
				{ID: "2", Name: "Fries", Price: 17.97, Quantity: 3},
			},
			wantIDs:   []string{"2-1", "2-2", "2-3"},
			wantPrice: []float64{5.99, 5.99, 5.99},
		},
		{
			name: "zero quantity coerced to one row",
			items: []domain.ReceiptItem{
				{ID: "3", Name: "Soda", Price: 2.50, Quantity: 0},
			},
			wantIDs:   []string{"3-1"},
			wantPrice: []float64{2.50},
		},
		{
			name: "negative quantity coerced to one row",
			items: []domain.ReceiptItem{
				{ID: "4", Name: "Soup", Price: 6.00, Quantity: -2},
			},
			wantIDs:   []string{"4-1"},
			wantPrice: []float64{6.00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.items)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Expand() returned %d rows, want %d", len(got), len(tt.wantIDs))
			}
			for i, row := range got {
				if row.ID != tt.wantIDs[i] {
					t.Errorf("row %d id = %q, want %q", i, row.ID, tt.wantIDs[i])
				}
				if math.Abs(row.Price-tt.wantPrice[i]) > 0.001 {
					t.Errorf("row %d price = %v, want %v", i, row.Price, tt.wantPrice[i])
				}
				if row.Quantity != 1 {
					t.Errorf("row %d quantity = %d, want 1", i, row.Quantity)
				}
			}
		})
	}
}

func TestExpandConservation(t *testing.T) {
	// Unit prices may each be off by a fraction of a cent after
	// rounding, so the sum is conserved within n * 0.01.
	items := []domain.ReceiptItem{
		{ID: "1", Name: "Dumplings", Price: 10.00, Quantity: 3},
		{ID: "2", Name: "Tea", Price: 7.99, Quantity: 7},
	}

	expanded := Expand(items)

	var wantTotal float64
	n := 0
	for _, item := range items {
		wantTotal += item.Price
		n += item.Quantity
	}

	var gotTotal float64
	for _, row := range expanded {
		gotTotal += row.Price
	}

	if len(expanded) != n {
		t.Fatalf("expanded %d rows, want %d", len(expanded), n)
	}
	if math.Abs(gotTotal-wantTotal) > float64(n)*0.01 {
		t.Errorf("expanded prices sum to %v, want within %v of %v", gotTotal, float64(n)*0.01, wantTotal)
	}
}

func TestExpandIdempotent(t *testing.T) {
	items := []domain.ReceiptItem{
		{ID: "1", Name: "Pizza", Price: 18.99, Quantity: 1},
		{ID: "2", Name: "Fries", Price: 17.97, Quantity: 3},
	}

	first := Expand(items)
	second := Expand(items)

	if len(first) != len(second) {
		t.Fatalf("re-expansion changed row count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
