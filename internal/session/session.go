// Package session manages in-flight bill splits. A session holds the
// expanded item rows, the participants, and who has claimed what, from
// the moment a receipt is confirmed until the split is finalized into
// history.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/history"
	"github.com/splycehq/splyce-backend/internal/share"
	"github.com/splycehq/splyce-backend/internal/split"
)

var (
	// ErrNotFound signals an unknown or already finalized session.
	ErrNotFound = errors.New("split session not found")
	// ErrNothingClaimed signals a summary request before any item has a
	// claimant.
	ErrNothingClaimed = errors.New("no items have been claimed yet")
	// ErrNoParticipants signals a create request without participants.
	ErrNoParticipants = errors.New("at least one participant is required")
	// ErrUnknownParticipant signals a toggle for a participant id the
	// session does not know.
	ErrUnknownParticipant = errors.New("unknown participant")
)

// SessionError represents an error in the session manager.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// SplitSession is one live bill split.
type SplitSession struct {
	ID           string
	Receipt      domain.NormalizedReceipt
	Expanded     []domain.ReceiptItem
	Participants []domain.Participant
	Selection    *split.Selection
	CreatedAt    time.Time
}

// FinalizeResult is what a completed split produces: the history entry,
// the allocation, and the ready-to-send share text.
type FinalizeResult struct {
	Receipt   domain.StoredReceipt
	Result    domain.SplitResult
	ShareText string
}

// DefaultTTL is how long an untouched session survives before the
// manager sweeps it. A split that nobody finalizes should not pin
// memory forever.
const DefaultTTL = 2 * time.Hour

// Manager owns all live sessions. Sessions are held in memory only;
// finalizing a split moves its outcome into the history store and drops
// the session. Sessions older than the TTL are swept lazily on access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*SplitSession
	history  *history.Store
	ttl      time.Duration
}

// NewManager creates a session manager with the default session TTL.
// The history store may be nil; finalize never fails on history errors.
func NewManager(historyStore *history.Store) *Manager {
	return NewManagerWithTTL(historyStore, DefaultTTL)
}

// NewManagerWithTTL creates a session manager whose sessions expire
// after ttl. A non-positive ttl disables expiry.
func NewManagerWithTTL(historyStore *history.Store, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*SplitSession),
		history:  historyStore,
		ttl:      ttl,
	}
}

// purgeExpired drops sessions past their TTL. Callers must hold mu.
func (m *Manager) purgeExpired() {
	if m.ttl <= 0 {
		return
	}
	deadline := time.Now().Add(-m.ttl)
	for id, session := range m.sessions {
		if session.CreatedAt.Before(deadline) {
			delete(m.sessions, id)
		}
	}
}

// Create starts a split session from a confirmed receipt. Quantity rows
// are expanded into claimable units and every participant gets an
// opaque id.
func (m *Manager) Create(receipt domain.NormalizedReceipt, participantNames []string) (*SplitSession, error) {
	if len(participantNames) == 0 {
		return nil, &SessionError{Op: "create_session", Err: ErrNoParticipants}
	}

	expanded := split.Expand(receipt.Items)
	session := &SplitSession{
		ID:           uuid.NewString(),
		Receipt:      receipt,
		Expanded:     expanded,
		Participants: split.NewParticipants(participantNames),
		Selection:    split.NewSelection(expanded),
		CreatedAt:    time.Now(),
	}

	m.mu.Lock()
	m.purgeExpired()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

// State is a point-in-time snapshot of a session's claims.
type State struct {
	Items        []domain.ReceiptItem
	Participants []domain.Participant
	Claims       map[string][]string
	Version      uint64
}

// State returns a consistent snapshot of the session for clients that
// rejoin or refresh mid-split.
func (m *Manager) State(sessionID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpired()

	session, ok := m.sessions[sessionID]
	if !ok {
		return State{}, &SessionError{Op: "get_session_state", Err: ErrNotFound}
	}

	return State{
		Items:        session.Expanded,
		Participants: session.Participants,
		Claims:       session.Selection.Sets(),
		Version:      session.Selection.Version(),
	}, nil
}

// Toggle flips a participant's claim on an expanded item row and
// returns the new selection version.
func (m *Manager) Toggle(sessionID, itemID, participantID string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpired()

	session, ok := m.sessions[sessionID]
	if !ok {
		return 0, &SessionError{Op: "toggle_claim", Err: ErrNotFound}
	}

	if !hasParticipant(session.Participants, participantID) {
		return 0, &SessionError{Op: "toggle_claim", Err: ErrUnknownParticipant}
	}

	if err := session.Selection.Toggle(itemID, participantID); err != nil {
		return 0, &SessionError{Op: "toggle_claim", Err: err}
	}
	return session.Selection.Version(), nil
}

// Summary computes the current allocation for a session. At least one
// item must be claimed.
func (m *Manager) Summary(sessionID string) (domain.SplitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpired()

	session, ok := m.sessions[sessionID]
	if !ok {
		return domain.SplitResult{}, &SessionError{Op: "summarize_session", Err: ErrNotFound}
	}

	if session.Selection.ClaimedCount() == 0 {
		return domain.SplitResult{}, &SessionError{Op: "summarize_session", Err: ErrNothingClaimed}
	}

	result := split.Allocate(session.Expanded, session.Selection, session.Participants, session.Receipt.Totals)
	return result, nil
}

// Finalize computes the final allocation, records the receipt in
// history, and drops the session. History failures are swallowed by the
// store, so finalize only fails on session state problems.
func (m *Manager) Finalize(ctx context.Context, sessionID string) (FinalizeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpired()

	session, ok := m.sessions[sessionID]
	if !ok {
		return FinalizeResult{}, &SessionError{Op: "finalize_session", Err: ErrNotFound}
	}

	if session.Selection.ClaimedCount() == 0 {
		return FinalizeResult{}, &SessionError{Op: "finalize_session", Err: ErrNothingClaimed}
	}

	result := split.Allocate(session.Expanded, session.Selection, session.Participants, session.Receipt.Totals)

	stored := domain.StoredReceipt{
		ID:             uuid.NewString(),
		RestaurantName: session.Receipt.RestaurantName,
		Total:          session.Receipt.Totals.Total,
		Date:           receiptDate(session.Receipt),
		Summary:        result.Entries,
	}

	if m.history != nil {
		m.history.Add(ctx, stored)
	}

	delete(m.sessions, sessionID)

	return FinalizeResult{
		Receipt:   stored,
		Result:    result,
		ShareText: share.Compose(session.Receipt.RestaurantName, session.Receipt.Totals.Total, result.TaxRate, result.Entries),
	}, nil
}

// receiptDate prefers the date read off the receipt and falls back to
// today.
func receiptDate(receipt domain.NormalizedReceipt) string {
	if receipt.Date != "" {
		return receipt.Date
	}
	return time.Now().Format("2006-01-02")
}

func hasParticipant(participants []domain.Participant, id string) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}
