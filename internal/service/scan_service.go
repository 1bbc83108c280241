// Package service holds the receipt scanning pipeline: image prep,
// vision model extraction, and normalization.
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/imageutil"
	"github.com/splycehq/splyce-backend/internal/normalizer"
	"github.com/splycehq/splyce-backend/internal/openai"
	"github.com/splycehq/splyce-backend/internal/storage"
)

// ScanServiceError represents an error in the scan pipeline.
type ScanServiceError struct {
	Op  string
	Err error
}

func (e *ScanServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ScanServiceError) Unwrap() error {
	return e.Err
}

// ScanService defines the receipt scanning business logic.
type ScanService interface {
	// ScanReceipt runs a receipt photo through the vision model and
	// returns the normalized receipt.
	ScanReceipt(ctx context.Context, imageData []byte) (domain.NormalizedReceipt, error)
}

// ScanServiceImpl implements ScanService with a bounded worker pool so
// a burst of uploads cannot flood the upstream model.
type ScanServiceImpl struct {
	openAIClient *openai.Client
	archiver     *storage.ReceiptArchiver
	workerPool   chan struct{}
	logger       *slog.Logger
}

// NewScanService creates a ScanService. The archiver may be nil, in
// which case scanned images are not retained.
func NewScanService(openAIClient *openai.Client, archiver *storage.ReceiptArchiver, maxWorkers int, logger *slog.Logger) *ScanServiceImpl {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &ScanServiceImpl{
		openAIClient: openAIClient,
		archiver:     archiver,
		workerPool:   make(chan struct{}, maxWorkers),
		logger:       logger,
	}
}

// ScanReceipt processes an image to extract receipt data.
func (s *ScanServiceImpl) ScanReceipt(ctx context.Context, imageData []byte) (domain.NormalizedReceipt, error) {
	select {
	case s.workerPool <- struct{}{}:
		defer func() { <-s.workerPool }()
	case <-ctx.Done():
		return domain.NormalizedReceipt{}, &ScanServiceError{
			Op:  "acquire_worker",
			Err: ctx.Err(),
		}
	}

	// Shrink oversized photos before they hit the model. A failed
	// decode is not fatal; the original bytes are sent as-is and the
	// model gets to complain instead.
	resized, err := imageutil.ShrinkReceiptImage(imageData, nil)
	if err != nil {
		s.logger.Warn("could not resize receipt image, sending original", "error", err)
		resized = imageData
	}

	if s.archiver != nil {
		go s.archiveImage(resized)
	}

	encoded := base64.StdEncoding.EncodeToString(resized)

	raw, err := s.openAIClient.ExtractReceipt(ctx, encoded)
	if err != nil {
		return domain.NormalizedReceipt{}, &ScanServiceError{
			Op:  "extract_receipt_data",
			Err: err,
		}
	}

	receipt, err := normalizer.Normalize(raw)
	if err != nil {
		return domain.NormalizedReceipt{}, &ScanServiceError{
			Op:  "normalize_receipt",
			Err: err,
		}
	}

	if receipt.MismatchWarning != nil {
		s.logger.Warn(normalizer.DescribeMismatch(receipt.MismatchWarning))
	}

	return receipt, nil
}

// archiveImage uploads a scanned image in the background. Failures are
// logged and otherwise ignored; archival never blocks or breaks a scan.
func (s *ScanServiceImpl) archiveImage(imageData []byte) {
	filename := fmt.Sprintf("receipt_%d.jpg", time.Now().UnixNano())
	if _, err := s.archiver.ArchiveImage(imageData, filename); err != nil {
		s.logger.Warn("failed to archive receipt image", "error", err)
	}
}
