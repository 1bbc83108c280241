package domain

// RawItem is a line item as returned by the vision model, before any
// validation. Every field may be missing or malformed.
type RawItem struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *float64 `json:"quantity"`
}

// RawTotals holds the aggregate charges as parsed by the vision model.
type RawTotals struct {
	Subtotal      *float64 `json:"subtotal"`
	Tax           *float64 `json:"tax"`
	Tip           *float64 `json:"tip"`
	ServiceCharge *float64 `json:"serviceCharge"`
	Total         *float64 `json:"total"`
	TaxRate       *float64 `json:"taxRate"`
}

// RawParsedReceipt is the untrusted model output for one scanned image.
type RawParsedReceipt struct {
	IsReceipt      *bool      `json:"isReceipt"`
	RestaurantName *string    `json:"restaurantName"`
	Date           *string    `json:"date"`
	Items          []RawItem  `json:"items"`
	Totals         *RawTotals `json:"totals"`
}

// ReceiptItem represents an item on a receipt. Price is the line total
// for Quantity units until the item is expanded into unit rows.
type ReceiptItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Totals holds the aggregate charges of a receipt. TaxRate is a
// percentage in [0, 100].
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Tip           float64 `json:"tip"`
	ServiceCharge float64 `json:"serviceCharge,omitempty"`
	Total         float64 `json:"total,omitempty"`
	TaxRate       float64 `json:"taxRate,omitempty"`
}

// MismatchInfo reports a discrepancy between the subtotal printed on the
// receipt and the sum of the parsed line items. Advisory only.
type MismatchInfo struct {
	ParsedSubtotal   float64 `json:"parsedSubtotal"`
	ComputedSubtotal float64 `json:"computedSubtotal"`
	Delta            float64 `json:"delta"`
}

// NormalizedReceipt is the canonical receipt produced from a raw parse.
type NormalizedReceipt struct {
	RestaurantName  string        `json:"restaurantName"`
	Date            string        `json:"date,omitempty"`
	Items           []ReceiptItem `json:"items"`
	Totals          Totals        `json:"totals"`
	MismatchWarning *MismatchInfo `json:"mismatchWarning,omitempty"`
}

// Participant is one diner in a split. ID is an opaque per-session key;
// Name is display-only and need not be unique.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemShare is one participant's share of a single claimed unit.
type ItemShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// SummaryEntry is the computed result for one participant.
type SummaryEntry struct {
	ParticipantID string      `json:"participantId"`
	Name          string      `json:"name"`
	ItemsCount    int         `json:"itemsCount"`
	TotalOwed     float64     `json:"totalOwed"`
	TaxAmount     float64     `json:"taxAmount,omitempty"`
	TaxRate       float64     `json:"taxRate,omitempty"`
	Items         []ItemShare `json:"items,omitempty"`
}

// SplitResult is the full output of an allocation run.
type SplitResult struct {
	Entries []SummaryEntry `json:"entries"`
	TaxRate float64        `json:"taxRate"`

	// AllocatedSubtotal is the pre-tax sum claimed across all
	// participants. UnallocatedAmount is the pre-tax value of units
	// nobody claimed; when nonzero, the sum of per-person totals will
	// not reconcile with the bill total.
	AllocatedSubtotal float64 `json:"allocatedSubtotal"`
	UnallocatedAmount float64 `json:"unallocatedAmount"`
}

// StoredReceipt is one finalized split in the history list. Owned
// exclusively by the history store after creation.
type StoredReceipt struct {
	ID             string         `json:"id"`
	RestaurantName string         `json:"restaurantName"`
	Total          float64        `json:"total"`
	Date           string         `json:"date"`
	Summary        []SummaryEntry `json:"summary"`
}

// ChargeKind distinguishes additions from discounts on a reviewed
// receipt.
type ChargeKind string

const (
	ChargeExtra    ChargeKind = "extra"
	ChargeDiscount ChargeKind = "discount"
)

// ExtraCharge is a user-added pseudo-charge on a reviewed receipt.
// Discounts contribute negatively to the total.
type ExtraCharge struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Amount   float64    `json:"amount"`
	Kind     ChargeKind `json:"kind"`
	Quantity int        `json:"quantity"`
}
