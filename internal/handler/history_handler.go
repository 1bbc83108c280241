package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/history"
	"github.com/splycehq/splyce-backend/internal/model"
)

// HistoryHandler handles HTTP requests for the finalized-split history.
type HistoryHandler struct {
	store *history.Store
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// ListHistory handles the GET /api/history endpoint
// @Summary List finalized splits
// @Description All stored receipts, newest first
// @Tags history
// @Produce json
// @Success 200 {object} model.HistoryResponse "Stored receipts"
// @Router /api/history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	receipts := h.store.All(c.Request.Context())
	respondOK(c, model.HistoryResponse{Receipts: receipts})
}

// RemoveReceipt handles the DELETE /api/history/:receiptId endpoint
// @Summary Remove one stored receipt
// @Tags history
// @Param receiptId path string true "Stored receipt id"
// @Success 204 "Removed"
// @Failure 400 {object} model.ErrorResponse "Missing receipt id"
// @Router /api/history/{receiptId} [delete]
func (h *HistoryHandler) RemoveReceipt(c *gin.Context) {
	receiptID, err := getPathParam(c, "receiptId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	h.store.Remove(c.Request.Context(), receiptID)
	respondNoContent(c)
}

// ClearHistory handles the DELETE /api/history endpoint
// @Summary Clear all stored receipts
// @Tags history
// @Success 204 "Cleared"
// @Router /api/history [delete]
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	h.store.Clear(c.Request.Context())
	respondNoContent(c)
}
