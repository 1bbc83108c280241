package split

import (
	"errors"
	"fmt"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// ErrUnknownItem signals a toggle against an item id that was never
// expanded into this selection.
var ErrUnknownItem = errors.New("unknown item")

// Selection maps each expanded-item id to the set of participant ids
// that claimed that unit. Any subset of participants may jointly claim
// a single unit; there are no exclusive slots.
//
// Selection is keyed by participant id, not display name, so two
// participants who happen to share a name never merge claims.
type Selection struct {
	sets    map[string]map[string]bool
	order   []string
	version uint64
}

// NewSelection seeds an empty claim set for every expanded item. Every
// expanded id has an entry before allocation runs.
func NewSelection(expanded []domain.ReceiptItem) *Selection {
	sets := make(map[string]map[string]bool, len(expanded))
	order := make([]string, 0, len(expanded))
	for _, item := range expanded {
		if _, ok := sets[item.ID]; ok {
			continue
		}
		sets[item.ID] = make(map[string]bool)
		order = append(order, item.ID)
	}
	return &Selection{sets: sets, order: order}
}

// Toggle adds the participant to the item's claim set if absent,
// otherwise removes it. Toggling one item never touches another.
func (s *Selection) Toggle(itemID, participantID string) error {
	set, ok := s.sets[itemID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if set[participantID] {
		delete(set, participantID)
	} else {
		set[participantID] = true
	}
	s.version++
	return nil
}

// Version increases on every successful toggle. Observers compare
// versions instead of deep-comparing the claim sets.
func (s *Selection) Version() uint64 {
	return s.version
}

// Claimants returns the participant ids that claimed the given item.
func (s *Selection) Claimants(itemID string) []string {
	set := s.sets[itemID]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// ClaimedCount reports how many items have at least one claimant.
func (s *Selection) ClaimedCount() int {
	n := 0
	for _, set := range s.sets {
		if len(set) > 0 {
			n++
		}
	}
	return n
}

// Sets exports the selection as plain id slices, keyed by item id.
func (s *Selection) Sets() map[string][]string {
	out := make(map[string][]string, len(s.sets))
	for _, id := range s.order {
		out[id] = s.Claimants(id)
	}
	return out
}

// NewParticipants assigns opaque sequential ids to a list of display
// names. Names are kept purely presentational.
func NewParticipants(names []string) []domain.Participant {
	participants := make([]domain.Participant, 0, len(names))
	for i, name := range names {
		participants = append(participants, domain.Participant{
			ID:   fmt.Sprintf("p%d", i+1),
			Name: name,
		})
	}
	return participants
}
