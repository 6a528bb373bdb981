package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/claussm/barefoot-tees/internal/delivery/http/controllers"
	"github.com/claussm/barefoot-tees/internal/delivery/http/middleware"
	"github.com/claussm/barefoot-tees/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a Bearer token; the SMS webhook and login do not.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	playerController *controllers.PlayerController,
	eventController *controllers.EventController,
	teeSheetController *controllers.TeeSheetController,
	rsvpController *controllers.RSVPController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Roster
	mux.HandleFunc("POST /players", requireAuth(playerController.CreatePlayer))
	mux.HandleFunc("GET /players", requireAuth(playerController.ListPlayers))
	mux.HandleFunc("PUT /players/{playerID}", requireAuth(playerController.UpdatePlayer))
	mux.HandleFunc("DELETE /players/{playerID}", requireAuth(playerController.DeactivatePlayer))

	// Schedule
	mux.HandleFunc("POST /courses", requireAuth(eventController.CreateCourse))
	mux.HandleFunc("GET /courses", requireAuth(eventController.ListCourses))
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events", requireAuth(eventController.ListEvents))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEvent))

	// Event roster
	mux.HandleFunc("POST /events/{eventID}/players", requireAuth(eventController.AddPlayer))
	mux.HandleFunc("GET /events/{eventID}/players", requireAuth(eventController.ListEventPlayers))
	mux.HandleFunc("PATCH /event-players/{eventPlayerID}/status", requireAuth(eventController.SetPlayerStatus))

	// Tee sheet
	mux.HandleFunc("GET /events/{eventID}/tee-sheet", requireAuth(teeSheetController.GetTeeSheet))
	mux.HandleFunc("PUT /events/{eventID}/tee-sheet/players/{playerID}", requireAuth(teeSheetController.MovePlayer))
	mux.HandleFunc("DELETE /events/{eventID}/tee-sheet/players/{playerID}", requireAuth(teeSheetController.RemovePlayer))
	mux.HandleFunc("POST /events/{eventID}/lock", requireAuth(teeSheetController.LockEvent))
	mux.HandleFunc("POST /events/{eventID}/unlock", requireAuth(teeSheetController.UnlockEvent))

	// RSVP
	mux.HandleFunc("POST /events/{eventID}/rsvp", requireAuth(rsvpController.SendRSVPs))
	// Gateway callback, authenticated by Twilio's signature on their side.
	mux.HandleFunc("POST /webhooks/sms", rsvpController.IncomingSMS)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
