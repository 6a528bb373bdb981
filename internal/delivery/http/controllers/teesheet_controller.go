package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "github.com/claussm/barefoot-tees/internal/delivery/http/helpers"
	"github.com/claussm/barefoot-tees/internal/domain"
)

type TeeSheetController struct {
	Logger  *slog.Logger
	Service domain.TeeSheetService
}

func NewTeeSheetController(logger *slog.Logger, svc domain.TeeSheetService) *TeeSheetController {
	return &TeeSheetController{
		Logger:  logger,
		Service: svc,
	}
}

// GetTeeSheet godoc
// @Summary Get an event's tee sheet
// @Description Groups with their slot assignments plus the derived list of playing players without a slot.
// @Tags teesheet
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the tee sheet"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tee-sheet [get]
func (c *TeeSheetController) GetTeeSheet(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	sheet, err := c.Service.GetTeeSheet(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sheet)
}

// MovePlayerRequest is the request body for PUT /events/{eventID}/tee-sheet/players/{playerID}.
type MovePlayerRequest struct {
	GroupID  string `json:"group_id"`
	Position int    `json:"position"`
}

// Validate implements helpers.Validator.
func (m *MovePlayerRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(m.GroupID) {
		errs = append(errs, "group_id must be a UUID")
	}
	if m.Position < 0 {
		errs = append(errs, "position must not be negative")
	}
	return errs
}

// MovePlayer godoc
// @Summary Place or move a player on the tee sheet
// @Description Assigns the player to (group, position). The player's own prior slot is released in the same transaction; another player's slot is never displaced.
// @Tags teesheet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param playerID path string true "Player ID (UUID)"
// @Param body body MovePlayerRequest true "Target slot"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (slot occupied)"
// @Failure 423 {object} helpers.APIResponse "error.code: locked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tee-sheet/players/{playerID} [put]
func (c *TeeSheetController) MovePlayer(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	playerID := r.PathValue("playerID")
	if !uuidRegex.MatchString(eventID) || !uuidRegex.MatchString(playerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID or playerID")
		return
	}
	var req MovePlayerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.MovePlayer(r.Context(), eventID, playerID, req.GroupID, req.Position)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotOccupied):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "slot is already taken")
		case errors.Is(err, domain.ErrEventLocked):
			h.WriteJSONError(w, http.StatusLocked, h.ErrCodeLocked, "event is locked")
		default:
			c.writeServiceError(w, r, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemovePlayer godoc
// @Summary Remove a player from the tee sheet
// @Description Clears the player's slot assignment. Removing a player with no slot succeeds.
// @Tags teesheet
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param playerID path string true "Player ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 423 {object} helpers.APIResponse "error.code: locked"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tee-sheet/players/{playerID} [delete]
func (c *TeeSheetController) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	playerID := r.PathValue("playerID")
	if !uuidRegex.MatchString(eventID) || !uuidRegex.MatchString(playerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID or playerID")
		return
	}
	if err := c.Service.RemovePlayer(r.Context(), eventID, playerID); err != nil {
		if errors.Is(err, domain.ErrEventLocked) {
			h.WriteJSONError(w, http.StatusLocked, h.ErrCodeLocked, "event is locked")
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LockEvent godoc
// @Summary Lock the tee sheet
// @Description Freezes the tee sheet and emails it to the playing players.
// @Tags teesheet
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/lock [post]
func (c *TeeSheetController) LockEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if err := c.Service.LockEvent(r.Context(), eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnlockEvent godoc
// @Summary Unlock the tee sheet
// @Tags teesheet
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/unlock [post]
func (c *TeeSheetController) UnlockEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if err := c.Service.UnlockEvent(r.Context(), eventID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *TeeSheetController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
