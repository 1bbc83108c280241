package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/model"
	"github.com/splycehq/splyce-backend/internal/normalizer"
	"github.com/splycehq/splyce-backend/internal/openai"
	"github.com/splycehq/splyce-backend/internal/service"
)

// ReceiptHandler handles HTTP requests for receipt scanning.
type ReceiptHandler struct {
	scanService service.ScanService
	logger      *slog.Logger
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(scanService service.ScanService, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// ParseReceipt handles the POST /api/parse-receipt endpoint
// @Summary Scan a receipt image
// @Description Relay a receipt photo to the vision model and return the normalized receipt
// @Tags receipts
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param body body model.ParseReceiptRequest false "Base64-encoded receipt photo"
// @Param file formData file false "Receipt photo file"
// @Success 200 {object} model.ParseReceiptResponse "Normalized receipt"
// @Failure 400 {object} model.ErrorResponse "No image provided"
// @Failure 408 {object} model.ErrorResponse "Upstream model timed out"
// @Failure 422 {object} model.ErrorResponse "Image is not a readable receipt"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/parse-receipt [post]
func (h *ReceiptHandler) ParseReceipt(c *gin.Context) {
	imageData, ok := h.readImage(c)
	if !ok {
		return
	}

	receipt, err := h.scanService.ScanReceipt(c.Request.Context(), imageData)
	if err != nil {
		h.logger.Warn("receipt scan failed", "error", err, "image_size", len(imageData))

		switch {
		case errors.Is(err, openai.ErrTimeout):
			respondRequestTimeout(c, ErrModelWakingUp)
		case errors.Is(err, normalizer.ErrNotReceipt):
			respondUnprocessableEntity(c, "The image does not appear to be a receipt")
		case errors.Is(err, normalizer.ErrNoItems):
			respondUnprocessableEntity(c, "No items could be read from this receipt")
		default:
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.ParseReceiptResponse{
		IsReceipt:         true,
		NormalizedReceipt: receipt,
	})
}

// readImage extracts the photo bytes from either a multipart "file"
// part or a JSON body with a base64 field. Responds with an error and
// returns ok=false when no usable image is present.
func (h *ReceiptHandler) readImage(c *gin.Context) ([]byte, bool) {
	if file, _, err := getFormFile(c, "file"); err == nil {
		defer file.Close()

		imageData, readErr := io.ReadAll(file)
		if readErr != nil {
			h.logger.Warn("failed to read uploaded file", "error", readErr)
			respondInternalServerError(c, ErrInternalServer)
			return nil, false
		}
		if len(imageData) == 0 {
			respondBadRequest(c, ErrNoImage)
			return nil, false
		}
		return imageData, true
	}

	var req model.ParseReceiptRequest
	if err := bindJSON(c, &req); err != nil || req.Base64 == "" {
		respondBadRequest(c, ErrNoImage)
		return nil, false
	}

	imageData, err := base64.StdEncoding.DecodeString(stripDataURLPrefix(req.Base64))
	if err != nil {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("base64", "not valid base64 data"))
		return nil, false
	}
	if len(imageData) == 0 {
		respondBadRequest(c, ErrNoImage)
		return nil, false
	}

	return imageData, true
}
