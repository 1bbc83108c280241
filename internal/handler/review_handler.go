package handler

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/model"
	"github.com/splycehq/splyce-backend/internal/review"
)

// ReviewHandler handles HTTP requests for receipt correction. The
// endpoint is stateless: the client sends the scanned receipt plus the
// edits it accumulated and gets the corrected receipt back.
type ReviewHandler struct {
	logger *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{logger: logger}
}

// ReviewReceipt handles the POST /api/review-receipt endpoint
// @Summary Apply corrections to a scanned receipt
// @Description Apply a sequence of item and charge edits to a receipt and recompute its totals
// @Tags receipts
// @Accept json
// @Produce json
// @Param body body model.ReviewReceiptRequest true "Receipt and edits"
// @Success 200 {object} model.ReviewReceiptResponse "Corrected receipt"
// @Failure 400 {object} model.ErrorResponse "Invalid receipt or edit"
// @Router /api/review-receipt [post]
func (h *ReviewHandler) ReviewReceipt(c *gin.Context) {
	var req model.ReviewReceiptRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("body", "request body must be valid JSON"))
		return
	}
	if len(req.Receipt.Items) == 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("receipt.items", "a receipt with at least one item is required"))
		return
	}

	rev := review.New(req.Receipt)
	for i, edit := range req.Edits {
		if err := applyEdit(rev, edit); err != nil {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail(fmt.Sprintf("edits[%d]", i), err.Error()))
			return
		}
	}

	respondOK(c, model.ReviewReceiptResponse{
		Receipt:      rev.Receipt(),
		ExtraCharges: rev.ExtraCharges,
	})
}

// applyEdit dispatches one edit onto the review.
func applyEdit(rev *review.Review, edit model.ReviewEdit) error {
	switch edit.Op {
	case "addItem":
		_, err := rev.AddItem(edit.Name, edit.Price)
		return err
	case "updateItem":
		return rev.UpdateItem(edit.ID, edit.Name, edit.Quantity, edit.Price)
	case "removeItem":
		return rev.RemoveItem(edit.ID)
	case "addCharge":
		rev.AddCharge(edit.Label, edit.Amount, edit.Kind)
		return nil
	case "updateCharge":
		return rev.UpdateCharge(edit.ID, edit.Label, edit.Amount, edit.Quantity, edit.Kind)
	case "removeCharge":
		return rev.RemoveCharge(edit.ID)
	case "setBaseCharge":
		return rev.SetBaseCharge(review.BaseChargeKey(edit.Key), edit.Amount)
	case "relabelBaseCharge":
		return rev.RelabelBaseCharge(review.BaseChargeKey(edit.Key), edit.Label)
	default:
		return fmt.Errorf("unknown edit op %q", edit.Op)
	}
}
