package repository

import (
	"context"
	"testing"

	"github.com/splycehq/splyce-backend/internal/domain"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, err := NewFileHistoryRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileHistoryRepository() error = %v", err)
	}
	ctx := context.Background()

	// A fresh directory holds an empty list.
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh load = %+v, want empty", got)
	}

	want := []domain.StoredReceipt{
		{ID: "r1", RestaurantName: "Cafe Uno", Total: 4.86, Date: "2024-06-01"},
		{ID: "r2", RestaurantName: "Mama's Pizza", Total: 33.45, Date: "2024-05-20"},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].RestaurantName != "Mama's Pizza" {
		t.Errorf("loaded = %+v", got)
	}
}

func TestFileRepositoryCancelledContext(t *testing.T) {
	repo, err := NewFileHistoryRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileHistoryRepository() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Load(ctx); err == nil {
		t.Error("Load() with cancelled context: expected error")
	}
	if err := repo.Save(ctx, nil); err == nil {
		t.Error("Save() with cancelled context: expected error")
	}
}
