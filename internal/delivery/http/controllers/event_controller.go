package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "github.com/claussm/barefoot-tees/internal/delivery/http/helpers"
	"github.com/claussm/barefoot-tees/internal/domain"
)

type EventController struct {
	Logger   *slog.Logger
	Schedule domain.ScheduleService
	Roster   domain.RosterService
}

func NewEventController(logger *slog.Logger, schedule domain.ScheduleService, roster domain.RosterService) *EventController {
	return &EventController{
		Logger:   logger,
		Schedule: schedule,
		Roster:   roster,
	}
}

// CourseRequest is the request body for POST /courses.
type CourseRequest struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Validate implements helpers.Validator.
func (c *CourseRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// CreateCourse godoc
// @Summary Add a course
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourseRequest true "Course data"
// @Success 201 {object} helpers.APIResponse "data contains the created course"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses [post]
func (c *EventController) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	course := &domain.Course{
		Name:  strings.TrimSpace(req.Name),
		City:  strings.TrimSpace(req.City),
		State: strings.TrimSpace(req.State),
	}
	if err := c.Schedule.CreateCourse(r.Context(), course); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, course)
}

// ListCourses godoc
// @Summary List courses
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the course list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses [get]
func (c *EventController) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := c.Schedule.ListCourses(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, courses)
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	CourseID      string `json:"course_id"`
	Date          string `json:"date"`           // "2006-01-02"
	FirstTeeTime  string `json:"first_tee_time"` // "15:04"
	MaxPlayers    int    `json:"max_players"`
	SlotsPerGroup int    `json:"slots_per_group"`
	GroupCount    int    `json:"group_count"`
}

// Validate implements helpers.Validator.
func (e *CreateEventRequest) Validate() []string {
	var errs []string
	if !uuidRegex.MatchString(e.CourseID) {
		errs = append(errs, "course_id must be a UUID")
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(e.FirstTeeTime) == "" {
		errs = append(errs, "first_tee_time is required")
	}
	if e.MaxPlayers < 1 {
		errs = append(errs, "max_players must be at least 1")
	}
	if e.SlotsPerGroup < 1 {
		errs = append(errs, "slots_per_group must be at least 1")
	}
	if e.GroupCount < 1 {
		errs = append(errs, "group_count must be at least 1")
	}
	return errs
}

// CreateEvent godoc
// @Summary Schedule a league event
// @Description Creates the event and its empty tee-sheet groups in one transaction.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (course)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	event := &domain.Event{
		CourseID:      req.CourseID,
		Date:          date,
		FirstTeeTime:  strings.TrimSpace(req.FirstTeeTime),
		MaxPlayers:    req.MaxPlayers,
		SlotsPerGroup: req.SlotsPerGroup,
	}
	if err := c.Schedule.CreateEvent(r.Context(), event, req.GroupCount); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events, newest first
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Schedule.ListEvents(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get one event
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	event, err := c.Schedule.GetEvent(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, event)
}

// AddPlayerRequest is the request body for POST /events/{eventID}/players.
type AddPlayerRequest struct {
	PlayerID string `json:"player_id"`
}

// Validate implements helpers.Validator.
func (a *AddPlayerRequest) Validate() []string {
	if !uuidRegex.MatchString(a.PlayerID) {
		return []string{"player_id must be a UUID"}
	}
	return nil
}

// AddPlayer godoc
// @Summary Add a player to an event
// @Description Creates the sign-up row with status "invited".
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body AddPlayerRequest true "Player to add"
// @Success 201 {object} helpers.APIResponse "data contains the sign-up row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already added)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/players [post]
func (c *EventController) AddPlayer(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req AddPlayerRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	ep, err := c.Roster.AddPlayerToEvent(r.Context(), eventID, req.PlayerID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyAdded) {
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "player already added to event")
			return
		}
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, ep)
}

// ListEventPlayersResponse is the data payload for GET /events/{eventID}/players.
type ListEventPlayersResponse struct {
	Players      []*domain.EventPlayerDetail `json:"players"`
	PlayingCount int                         `json:"playing_count"`
}

// ListEventPlayers godoc
// @Summary List an event's roster
// @Tags roster
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param status query string false "Filter by status" Enums(invited, playing, waitlist, not_playing)
// @Success 200 {object} helpers.APIResponse "data contains players and playing_count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/players [get]
func (c *EventController) ListEventPlayers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	status := domain.Status(r.URL.Query().Get("status"))
	players, playing, err := c.Roster.ListEventPlayers(r.Context(), eventID, status)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ListEventPlayersResponse{Players: players, PlayingCount: playing})
}

// SetStatusRequest is the request body for PATCH /event-players/{eventPlayerID}/status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements helpers.Validator.
func (s *SetStatusRequest) Validate() []string {
	if !domain.Status(s.Status).Valid() {
		return []string{"status must be one of invited, playing, waitlist, not_playing"}
	}
	return nil
}

// SetPlayerStatus godoc
// @Summary Change a player's sign-up status
// @Description Moving a player into "playing" is refused with 409 once the event is full; waitlist stays open.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventPlayerID path string true "Event player ID (UUID)"
// @Param body body SetStatusRequest true "Target status"
// @Success 200 {object} helpers.APIResponse "data contains the updated sign-up row"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event full or concurrent change)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-players/{eventPlayerID}/status [patch]
func (c *EventController) SetPlayerStatus(w http.ResponseWriter, r *http.Request) {
	eventPlayerID := r.PathValue("eventPlayerID")
	if !uuidRegex.MatchString(eventPlayerID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventPlayerID")
		return
	}
	var req SetStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	ep, err := c.Roster.SetPlayerStatus(r.Context(), eventPlayerID, domain.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCapacityExceeded):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "event is full; move the player to the waitlist instead")
		case errors.Is(err, domain.ErrConflict):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "status changed concurrently, retry")
		default:
			c.writeServiceError(w, r, err)
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, ep)
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
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
