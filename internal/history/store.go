// Package history keeps the capped, newest-first list of finalized
// splits. History is auxiliary data: every operation is best-effort and
// never surfaces a persistence failure to the split flow.
package history

import (
	"context"
	"log/slog"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// StorageKey is the fixed key the receipt list is stored under.
const StorageKey = "splyce:receipts"

// MaxEntries caps the history list; the oldest entries are dropped past
// the cap.
const MaxEntries = 50

// Repository loads and saves the full receipt list blob for StorageKey.
type Repository interface {
	Load(ctx context.Context) ([]domain.StoredReceipt, error)
	Save(ctx context.Context, receipts []domain.StoredReceipt) error
}

// Store owns StoredReceipts after creation; nothing else mutates them.
type Store struct {
	repo Repository
}

// NewStore creates a history store over the given repository.
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// All returns the stored receipts, newest first. A load failure yields
// an empty list.
func (s *Store) All(ctx context.Context) []domain.StoredReceipt {
	receipts, err := s.repo.Load(ctx)
	if err != nil {
		slog.Warn("history load failed", "error", err)
		return []domain.StoredReceipt{}
	}
	if receipts == nil {
		receipts = []domain.StoredReceipt{}
	}
	return receipts
}

// Add prepends a finalized split and enforces the cap. Failures are
// swallowed; history never blocks the flow that produced the receipt.
func (s *Store) Add(ctx context.Context, receipt domain.StoredReceipt) {
	existing := s.All(ctx)
	next := append([]domain.StoredReceipt{receipt}, existing...)
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	if err := s.repo.Save(ctx, next); err != nil {
		slog.Warn("history save failed", "error", err, "receipt_id", receipt.ID)
	}
}

// Remove deletes one receipt by id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) {
	existing := s.All(ctx)
	next := make([]domain.StoredReceipt, 0, len(existing))
	for _, r := range existing {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(existing) {
		return
	}
	if err := s.repo.Save(ctx, next); err != nil {
		slog.Warn("history remove failed", "error", err, "receipt_id", id)
	}
}

// Clear empties the history list.
func (s *Store) Clear(ctx context.Context) {
	if err := s.repo.Save(ctx, []domain.StoredReceipt{}); err != nil {
		slog.Warn("history clear failed", "error", err)
	}
}
