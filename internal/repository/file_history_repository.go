package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/splycehq/splyce-backend/internal/domain"
)

// FileHistoryRepository stores the receipt history list as a JSON file
// on the local filesystem. It is the zero-infrastructure deployment
// option.
type FileHistoryRepository struct {
	path  string
	mutex sync.RWMutex
}

// NewFileHistoryRepository creates a file-backed history repository
// under baseDir.
func NewFileHistoryRepository(baseDir string) (*FileHistoryRepository, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &RepositoryError{Op: "create_history_dir", Err: err}
	}
	return &FileHistoryRepository{
		path: filepath.Join(baseDir, "receipts.json"),
	}, nil
}

// Load reads the stored receipt list. A missing file is an empty list.
func (r *FileHistoryRepository) Load(ctx context.Context) ([]domain.StoredReceipt, error) {
	select {
	case <-ctx.Done():
		return nil, &RepositoryError{Op: "load_history", Err: ctx.Err()}
	default:
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.StoredReceipt{}, nil
		}
		return nil, &RepositoryError{Op: "load_history", Err: err}
	}

	var receipts []domain.StoredReceipt
	if err := json.Unmarshal(data, &receipts); err != nil {
		return nil, &RepositoryError{Op: "decode_history", Err: err}
	}
	return receipts, nil
}

// Save replaces the stored receipt list.
func (r *FileHistoryRepository) Save(ctx context.Context, receipts []domain.StoredReceipt) error {
	select {
	case <-ctx.Done():
		return &RepositoryError{Op: "save_history", Err: ctx.Err()}
	default:
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := json.Marshal(receipts)
	if err != nil {
		return &RepositoryError{Op: "encode_history", Err: err}
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return &RepositoryError{Op: "save_history", Err: err}
	}
	return nil
}
