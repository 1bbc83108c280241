package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/model"
	"github.com/splycehq/splyce-backend/internal/session"
	"github.com/splycehq/splyce-backend/internal/split"
)

// SplitHandler handles HTTP requests for live bill-split sessions.
type SplitHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

// NewSplitHandler creates a new split handler.
func NewSplitHandler(sessions *session.Manager, logger *slog.Logger) *SplitHandler {
	return &SplitHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSplit handles the POST /api/splits endpoint
// @Summary Start a bill split
// @Description Create a split session from a confirmed receipt and a list of participant names
// @Tags splits
// @Accept json
// @Produce json
// @Param body body model.CreateSplitRequest true "Receipt and participants"
// @Success 201 {object} model.CreateSplitResponse "Session created"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Router /api/splits [post]
func (h *SplitHandler) CreateSplit(c *gin.Context) {
	var req model.CreateSplitRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	if len(req.Receipt.Items) == 0 {
		respondBadRequest(c, ErrInvalidInput, newErrorDetail("receipt.items", "at least one item is required"))
		return
	}

	s, err := h.sessions.Create(req.Receipt, req.Participants)
	if err != nil {
		if errors.Is(err, session.ErrNoParticipants) {
			respondBadRequest(c, ErrInvalidInput, newErrorDetail("participants", "at least one participant is required"))
			return
		}
		h.logger.Error("failed to create split session", "error", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondCreated(c, model.CreateSplitResponse{
		SplitID:      s.ID,
		Items:        s.Expanded,
		Participants: s.Participants,
	})
}

// GetSplit handles the GET /api/splits/:splitId endpoint
// @Summary Split session state
// @Description Snapshot of the session's items, participants, and claims
// @Tags splits
// @Produce json
// @Param splitId path string true "Split session id"
// @Success 200 {object} model.SplitStateResponse "Session state"
// @Failure 404 {object} model.ErrorResponse "Session not found"
// @Router /api/splits/{splitId} [get]
func (h *SplitHandler) GetSplit(c *gin.Context) {
	splitID, err := getPathParam(c, "splitId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	state, err := h.sessions.State(splitID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			respondNotFound(c, "Split session not found")
			return
		}
		h.logger.Error("failed to read split state", "error", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, model.SplitStateResponse{
		SplitID:      splitID,
		Items:        state.Items,
		Participants: state.Participants,
		Claims:       state.Claims,
		Version:      state.Version,
	})
}

// ToggleClaim handles the POST /api/splits/:splitId/toggle endpoint
// @Summary Toggle an item claim
// @Description Flip one participant's claim on one expanded item row
// @Tags splits
// @Accept json
// @Produce json
// @Param splitId path string true "Split session id"
// @Param body body model.ToggleClaimRequest true "Item and participant"
// @Success 200 {object} model.ToggleClaimResponse "New selection version"
// @Failure 400 {object} model.ErrorResponse "Unknown item or participant"
// @Failure 404 {object} model.ErrorResponse "Session not found"
// @Router /api/splits/{splitId}/toggle [post]
func (h *SplitHandler) ToggleClaim(c *gin.Context) {
	splitID, err := getPathParam(c, "splitId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.ToggleClaimRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	version, err := h.sessions.Toggle(splitID, req.ItemID, req.ParticipantID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			respondNotFound(c, "Split session not found")
		case errors.Is(err, session.ErrUnknownParticipant):
			respondBadRequest(c, "Unknown participant", newErrorDetail("participantId", req.ParticipantID))
		case errors.Is(err, split.ErrUnknownItem):
			respondBadRequest(c, "Unknown item", newErrorDetail("itemId", req.ItemID))
		default:
			h.logger.Error("failed to toggle claim", "error", err)
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.ToggleClaimResponse{Version: version})
}

// GetSummary handles the GET /api/splits/:splitId/summary endpoint
// @Summary Current split allocation
// @Description Compute each participant's share for the current selection
// @Tags splits
// @Produce json
// @Param splitId path string true "Split session id"
// @Success 200 {object} model.SummaryResponse "Allocation result"
// @Failure 404 {object} model.ErrorResponse "Session not found"
// @Failure 409 {object} model.ErrorResponse "Nothing has been claimed yet"
// @Router /api/splits/{splitId}/summary [get]
func (h *SplitHandler) GetSummary(c *gin.Context) {
	splitID, err := getPathParam(c, "splitId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := h.sessions.Summary(splitID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			respondNotFound(c, "Split session not found")
		case errors.Is(err, session.ErrNothingClaimed):
			respondConflict(c, "No items have been claimed yet")
		default:
			h.logger.Error("failed to summarize split", "error", err)
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.SummaryResponse{Result: result})
}

// FinalizeSplit handles the POST /api/splits/:splitId/finalize endpoint
// @Summary Finalize a split
// @Description Compute the final allocation, store the receipt in history, and return share text
// @Tags splits
// @Produce json
// @Param splitId path string true "Split session id"
// @Success 200 {object} model.FinalizeResponse "Finalized split"
// @Failure 404 {object} model.ErrorResponse "Session not found"
// @Failure 409 {object} model.ErrorResponse "Nothing has been claimed yet"
// @Router /api/splits/{splitId}/finalize [post]
func (h *SplitHandler) FinalizeSplit(c *gin.Context) {
	splitID, err := getPathParam(c, "splitId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	outcome, err := h.sessions.Finalize(c.Request.Context(), splitID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			respondNotFound(c, "Split session not found")
		case errors.Is(err, session.ErrNothingClaimed):
			respondConflict(c, "No items have been claimed yet")
		default:
			h.logger.Error("failed to finalize split", "error", err)
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, model.FinalizeResponse{
		Receipt:   outcome.Receipt,
		Result:    outcome.Result,
		ShareText: outcome.ShareText,
	})
}
