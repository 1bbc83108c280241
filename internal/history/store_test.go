package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// memoryRepository is a Repository backed by a slice, with optional
// injected failures.
type memoryRepository struct {
	receipts []domain.StoredReceipt
	loadErr  error
	saveErr  error
}

func (m *memoryRepository) Load(ctx context.Context) ([]domain.StoredReceipt, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.receipts, nil
}

func (m *memoryRepository) Save(ctx context.Context, receipts []domain.StoredReceipt) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.receipts = receipts
	return nil
}

func TestAddPrependsNewestFirst(t *testing.T) {
	repo := &memoryRepository{}
	store := NewStore(repo)
	ctx := context.Background()

	store.Add(ctx, domain.StoredReceipt{ID: "first"})
	store.Add(ctx, domain.StoredReceipt{ID: "second"})

	got := store.All(ctx)
	if len(got) != 2 {
		t.Fatalf("got %d receipts, want 2", len(got))
	}
	if got[0].ID != "second" || got[1].ID != "first" {
		t.Errorf("order = [%s, %s], want newest first", got[0].ID, got[1].ID)
	}
}

func TestAddEnforcesCap(t *testing.T) {
	repo := &memoryRepository{}
	store := NewStore(repo)
	ctx := context.Background()

	for i := 1; i <= MaxEntries; i++ {
		store.Add(ctx, domain.StoredReceipt{ID: fmt.Sprintf("r%d", i)})
	}
	store.Add(ctx, domain.StoredReceipt{ID: "r51"})

	got := store.All(ctx)
	if len(got) != MaxEntries {
		t.Fatalf("got %d receipts, want %d", len(got), MaxEntries)
	}
	if got[0].ID != "r51" {
		t.Errorf("newest = %s, want r51", got[0].ID)
	}
	// The oldest entry (r1) fell off the end.
	if got[MaxEntries-1].ID != "r2" {
		t.Errorf("oldest kept = %s, want r2", got[MaxEntries-1].ID)
	}
}

func TestRemove(t *testing.T) {
	repo := &memoryRepository{receipts: []domain.StoredReceipt{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}}
	store := NewStore(repo)
	ctx := context.Background()

	store.Remove(ctx, "b")

	got := store.All(ctx)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("after remove = %+v, want [a c]", got)
	}

	// Unknown id is a no-op.
	store.Remove(ctx, "zzz")
	if len(store.All(ctx)) != 2 {
		t.Error("removing unknown id changed the list")
	}
}

func TestClear(t *testing.T) {
	repo := &memoryRepository{receipts: []domain.StoredReceipt{{ID: "a"}}}
	store := NewStore(repo)
	ctx := context.Background()

	store.Clear(ctx)
	if got := store.All(ctx); len(got) != 0 {
		t.Errorf("after clear = %+v, want empty", got)
	}
}

func TestFailuresAreSwallowed(t *testing.T) {
	repo := &memoryRepository{
		loadErr: errors.New("disk on fire"),
		saveErr: errors.New("disk on fire"),
	}
	store := NewStore(repo)
	ctx := context.Background()

	// None of these may panic or surface the error.
	store.Add(ctx, domain.StoredReceipt{ID: "x"})
	store.Remove(ctx, "x")
	store.Clear(ctx)

	if got := store.All(ctx); len(got) != 0 {
		t.Errorf("All() under load failure = %+v, want empty", got)
	}
}
