package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/history"
)

// PostgresHistoryRepository stores the receipt history list as a single
// JSON blob row keyed by the fixed storage key. The list is small
// (capped at 50) so a blob beats a relational layout here.
type PostgresHistoryRepository struct {
	db *pgxpool.Pool
}

// NewPostgresHistoryRepository creates a PostgreSQL history repository.
func NewPostgresHistoryRepository(db *pgxpool.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// Load reads the stored receipt list. A missing row is an empty list.
func (r *PostgresHistoryRepository) Load(ctx context.Context) ([]domain.StoredReceipt, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, `
		SELECT payload
		FROM history_blobs
		WHERE storage_key = $1
	`, history.StorageKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.StoredReceipt{}, nil
		}
		return nil, &RepositoryError{Op: "load_history", Err: err}
	}

	var receipts []domain.StoredReceipt
	if err := json.Unmarshal(payload, &receipts); err != nil {
		return nil, &RepositoryError{Op: "decode_history", Err: err}
	}
	return receipts, nil
}

// Save upserts the receipt list blob.
func (r *PostgresHistoryRepository) Save(ctx context.Context, receipts []domain.StoredReceipt) error {
	payload, err := json.Marshal(receipts)
	if err != nil {
		return &RepositoryError{Op: "encode_history", Err: err}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO history_blobs (storage_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, history.StorageKey, payload)
	if err != nil {
		return &RepositoryError{Op: "save_history", Err: err}
	}
	return nil
}
