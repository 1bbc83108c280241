package model

import "github.com/splycehq/splyce-backend/internal/domain"

// CreateSplitRequest starts a split session from a confirmed receipt.
type CreateSplitRequest struct {
	Receipt      domain.NormalizedReceipt `json:"receipt"`
	Participants []string                 `json:"participants"`
}

// CreateSplitResponse returns the session id along with the expanded
// claimable unit rows and the assigned participant ids.
type CreateSplitResponse struct {
	SplitID      string               `json:"splitId"`
	Items        []domain.ReceiptItem `json:"items"`
	Participants []domain.Participant `json:"participants"`
}

// SplitStateResponse is a snapshot of a session's claims, for clients
// that rejoin or refresh mid-split. Claims maps item id to the ids of
// its claimants.
type SplitStateResponse struct {
	SplitID      string               `json:"splitId"`
	Items        []domain.ReceiptItem `json:"items"`
	Participants []domain.Participant `json:"participants"`
	Claims       map[string][]string  `json:"claims"`
	Version      uint64               `json:"version"`
}

// ToggleClaimRequest flips one participant's claim on one unit row.
type ToggleClaimRequest struct {
	ItemID        string `json:"itemId"`
	ParticipantID string `json:"participantId"`
}

// ToggleClaimResponse reports the selection state version after the
// toggle. Versions only ever grow; clients can discard stale updates.
type ToggleClaimResponse struct {
	Version uint64 `json:"version"`
}

// SummaryResponse is the current allocation of a split session.
type SummaryResponse struct {
	Result domain.SplitResult `json:"result"`
}

// FinalizeResponse is the outcome of completing a split.
type FinalizeResponse struct {
	Receipt   domain.StoredReceipt `json:"receipt"`
	Result    domain.SplitResult   `json:"result"`
	ShareText string               `json:"shareText"`
}

// HistoryResponse lists finalized splits, newest first.
type HistoryResponse struct {
	Receipts []domain.StoredReceipt `json:"receipts"`
}
