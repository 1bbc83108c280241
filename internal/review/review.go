// Package review is the user-facing correction layer over a normalized
// receipt: editable line items, editable base charges (service charge,
// tax, tip) and arbitrary extra charges or discounts. It adjusts what
// the model parsed; it never re-runs OCR.
package review

import (
	"fmt"

	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/utils"
)

// BaseChargeKey identifies one of the three built-in charges.
type BaseChargeKey string

const (
	BaseServiceCharge BaseChargeKey = "serviceCharge"
	BaseTax           BaseChargeKey = "tax"
	BaseTip           BaseChargeKey = "tip"
)

// BaseCharge is a relabelable built-in charge. The amount a user types
// is authoritative; it is never recomputed from a rate.
type BaseCharge struct {
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity"`
}

// Review holds a receipt under user correction.
type Review struct {
	RestaurantName  string
	Items           []domain.ReceiptItem
	BaseCharges     map[BaseChargeKey]*BaseCharge
	ExtraCharges    []domain.ExtraCharge
	MismatchWarning *domain.MismatchInfo

	nextItemSeq   int
	nextChargeSeq int
}

// New builds a review from a normalized receipt.
func New(receipt domain.NormalizedReceipt) *Review {
	items := make([]domain.ReceiptItem, len(receipt.Items))
	copy(items, receipt.Items)

	return &Review{
		RestaurantName: receipt.RestaurantName,
		Items:          items,
		BaseCharges: map[BaseChargeKey]*BaseCharge{
			BaseServiceCharge: {Label: "Service Charge", Amount: receipt.Totals.ServiceCharge, Quantity: 1},
			BaseTax:           {Label: "Tax", Amount: receipt.Totals.Tax, Quantity: 1},
			BaseTip:           {Label: "Tip", Amount: receipt.Totals.Tip, Quantity: 1},
		},
		MismatchWarning: receipt.MismatchWarning,
		nextItemSeq:     len(receipt.Items),
	}
}

// AddItem appends a manually entered item. Price text is sanitized;
// nameless or non-positive entries are rejected.
func (r *Review) AddItem(name, priceText string) (domain.ReceiptItem, error) {
	price := ParseAmount(priceText)
	if name == "" {
		return domain.ReceiptItem{}, fmt.Errorf("item name is required")
	}
	if price <= 0 {
		return domain.ReceiptItem{}, fmt.Errorf("item price must be greater than zero")
	}

	r.nextItemSeq++
	item := domain.ReceiptItem{
		ID:       fmt.Sprintf("added-%d", r.nextItemSeq),
		Name:     name,
		Price:    price,
		Quantity: 1,
	}
	r.Items = append(r.Items, item)
	return item, nil
}

// UpdateItem edits an item's name, quantity and price in place.
func (r *Review) UpdateItem(id, name, quantityText, priceText string) error {
	for i := range r.Items {
		if r.Items[i].ID != id {
			continue
		}
		if name != "" {
			r.Items[i].Name = name
		}
		r.Items[i].Quantity = ParseQuantity(quantityText)
		r.Items[i].Price = ParseAmount(priceText)
		return nil
	}
	return fmt.Errorf("unknown item id %q", id)
}

// RemoveItem deletes an item.
func (r *Review) RemoveItem(id string) error {
	for i := range r.Items {
		if r.Items[i].ID == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown item id %q", id)
}

// AddCharge appends an extra charge or discount. An empty label falls
// back to a kind-specific default.
func (r *Review) AddCharge(label, amountText string, kind domain.ChargeKind) domain.ExtraCharge {
	if kind != domain.ChargeDiscount {
		kind = domain.ChargeExtra
	}
	if label == "" {
		if kind == domain.ChargeDiscount {
			label = "Discount"
		} else {
			label = "Additional charge"
		}
	}

	r.nextChargeSeq++
	charge := domain.ExtraCharge{
		ID:       fmt.Sprintf("charge-%d", r.nextChargeSeq),
		Name:     label,
		Amount:   ParseAmount(amountText),
		Kind:     kind,
		Quantity: 1,
	}
	r.ExtraCharges = append(r.ExtraCharges, charge)
	return charge
}

// UpdateCharge edits an extra charge's label, amount, kind and quantity.
func (r *Review) UpdateCharge(id, label, amountText, quantityText string, kind domain.ChargeKind) error {
	for i := range r.ExtraCharges {
		if r.ExtraCharges[i].ID != id {
			continue
		}
		if label != "" {
			r.ExtraCharges[i].Name = label
		}
		if kind == domain.ChargeExtra || kind == domain.ChargeDiscount {
			r.ExtraCharges[i].Kind = kind
		}
		r.ExtraCharges[i].Amount = ParseAmount(amountText)
		r.ExtraCharges[i].Quantity = ParseQuantity(quantityText)
		return nil
	}
	return fmt.Errorf("unknown charge id %q", id)
}

// RemoveCharge deletes an extra charge.
func (r *Review) RemoveCharge(id string) error {
	for i := range r.ExtraCharges {
		if r.ExtraCharges[i].ID == id {
			r.ExtraCharges = append(r.ExtraCharges[:i], r.ExtraCharges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown charge id %q", id)
}

// SetBaseCharge replaces a base charge amount with user input.
func (r *Review) SetBaseCharge(key BaseChargeKey, amountText string) error {
	charge, ok := r.BaseCharges[key]
	if !ok {
		return fmt.Errorf("unknown base charge %q", key)
	}
	charge.Amount = ParseAmount(amountText)
	return nil
}

// RelabelBaseCharge renames a base charge without touching its amount.
func (r *Review) RelabelBaseCharge(key BaseChargeKey, label string) error {
	charge, ok := r.BaseCharges[key]
	if !ok {
		return fmt.Errorf("unknown base charge %q", key)
	}
	if label != "" {
		charge.Label = label
	}
	return nil
}

// Subtotal sums the current line totals.
func (r *Review) Subtotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Price
	}
	return sum
}

// ExtraChargesTotal sums the extra charges, negating discounts.
func (r *Review) ExtraChargesTotal() float64 {
	var sum float64
	for _, charge := range r.ExtraCharges {
		if charge.Kind == domain.ChargeDiscount {
			sum -= charge.Amount
		} else {
			sum += charge.Amount
		}
	}
	return sum
}

// Totals recomputes the receipt totals from the edited state. Edited
// tax/tip/service amounts are taken as authoritative absolute values;
// only the tax rate is re-derived, from the edited tax and the current
// subtotal. A previously entered tax amount stays fixed when the item
// list changes afterward.
func (r *Review) Totals() domain.Totals {
	subtotal := r.Subtotal()
	tax := r.BaseCharges[BaseTax].Amount
	tip := r.BaseCharges[BaseTip].Amount
	service := r.BaseCharges[BaseServiceCharge].Amount

	totals := domain.Totals{
		Subtotal:      subtotal,
		Tax:           tax,
		Tip:           tip,
		ServiceCharge: service,
		Total:         utils.RoundMoney(subtotal + tax + tip + service + r.ExtraChargesTotal()),
	}
	if subtotal > 0 && tax > 0 {
		totals.TaxRate = utils.RoundFloat(tax/subtotal*100, 2)
	}
	return totals
}

// Receipt snapshots the reviewed state back into a normalized receipt,
// ready for splitting.
func (r *Review) Receipt() domain.NormalizedReceipt {
	items := make([]domain.ReceiptItem, len(r.Items))
	copy(items, r.Items)
	return domain.NormalizedReceipt{
		RestaurantName:  r.RestaurantName,
		Items:           items,
		Totals:          r.Totals(),
		MismatchWarning: r.MismatchWarning,
	}
}
