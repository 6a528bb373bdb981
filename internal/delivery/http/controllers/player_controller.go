package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "github.com/claussm/barefoot-tees/internal/delivery/http/helpers"
	"github.com/claussm/barefoot-tees/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// phoneRegex accepts E.164-ish numbers: optional +, 7 to 15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

type PlayerController struct {
	Logger  *slog.Logger
	Service domain.RosterService
}

func NewPlayerController(logger *slog.Logger, svc domain.RosterService) *PlayerController {
	return &PlayerController{
		Logger:  logger,
		Service: svc,
	}
}

// PlayerRequest is the request body for POST /players and PUT /players/{playerID}.
type PlayerRequest struct {
	Name     string   `json:"name"`
	Email    *string  `json:"email"`
	Phone    *string  `json:"phone"`
	Handicap *float64 `json:"handicap"`
}

// Validate implements helpers.Validator.
func (p *PlayerRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.Phone != nil {
		phone := strings.TrimSpace(*p.Phone)
		if phone == "" {
			p.Phone = nil
		} else if !phoneRegex.MatchString(phone) {
			errs = append(errs, "phone must be digits with an optional leading +")
		} else {
			p.Phone = &phone
		}
	}
	if p.Handicap != nil && (*p.Handicap < -10 || *p.Handicap > 54) {
		errs = append(errs, "handicap must be between -10 and 54")
	}
	return errs
}

// CreatePlayer godoc
// @Summary Add a player to the roster
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PlayerRequest true "Player data"
// @Success 201 {object} helpers.APIResponse "data contains the created player"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /players [post]
func (c *PlayerController) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req PlayerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	player := &domain.Player{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Handicap: req.Handicap,
		IsActive: true,
	}
	if err := c.Service.CreatePlayer(r.Context(), player); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, player)
}

// UpdatePlayer godoc
// @Summary Update a roster player
// @Tags players
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param playerID path string true "Player ID (UUID)"
// @Param body body PlayerRequest true "Player data"
// @Success 200 {object} helpers.APIResponse "data contains the updated player"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /players/{playerID} [put]
func (c *PlayerController) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerID")
	if !uuidRegex.MatchString(playerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid playerID")
		return
	}
	var req PlayerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	player := &domain.Player{
		ID:       playerID,
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		Handicap: req.Handicap,
	}
	if err := c.Service.UpdatePlayer(r.Context(), player); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, player)
}

// DeactivatePlayer godoc
// @Summary Deactivate a roster player
// @Description Soft delete: the player stops appearing in the active roster but history stays intact.
// @Tags players
// @Produce json
// @Security BearerAuth
// @Param playerID path string true "Player ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /players/{playerID} [delete]
func (c *PlayerController) DeactivatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("playerID")
	if !uuidRegex.MatchString(playerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid playerID")
		return
	}
	if err := c.Service.DeactivatePlayer(r.Context(), playerID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlayers godoc
// @Summary List the roster
// @Tags players
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the player list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /players [get]
func (c *PlayerController) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := c.Service.ListPlayers(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, players)
}

func (c *PlayerController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "player not found")
	case errors.Is(err, domain.ErrInvalidInput):
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}
