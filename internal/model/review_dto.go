package model

import "github.com/splycehq/splyce-backend/internal/domain"

// ReviewEdit is one correction applied to a scanned receipt. Op selects
// the operation; the remaining fields are read as that operation needs
// them. Amounts and quantities are free-form text, sanitized server
// side so clients can forward raw input.
type ReviewEdit struct {
	Op       string            `json:"op"`
	ID       string            `json:"id,omitempty"`
	Name     string            `json:"name,omitempty"`
	Label    string            `json:"label,omitempty"`
	Key      string            `json:"key,omitempty"`
	Kind     domain.ChargeKind `json:"kind,omitempty"`
	Price    string            `json:"price,omitempty"`
	Amount   string            `json:"amount,omitempty"`
	Quantity string            `json:"quantity,omitempty"`
}

// ReviewReceiptRequest applies a sequence of edits to a scanned receipt
// and returns the corrected receipt with recomputed totals.
type ReviewReceiptRequest struct {
	Receipt domain.NormalizedReceipt `json:"receipt"`
	Edits   []ReviewEdit             `json:"edits"`
}

// ReviewReceiptResponse is the corrected receipt, ready for splitting,
// plus any user-added extra charges and discounts.
type ReviewReceiptResponse struct {
	Receipt      domain.NormalizedReceipt `json:"receipt"`
	ExtraCharges []domain.ExtraCharge     `json:"extraCharges,omitempty"`
}
