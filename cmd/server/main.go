// Golf league backend: roster, schedule, tee sheets, and the SMS RSVP flow.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claussm/barefoot-tees/config"
	authadapter "github.com/claussm/barefoot-tees/internal/adapters/auth"
	"github.com/claussm/barefoot-tees/internal/adapters/email"
	"github.com/claussm/barefoot-tees/internal/adapters/sms"
	"github.com/claussm/barefoot-tees/internal/database"
	delivery "github.com/claussm/barefoot-tees/internal/delivery/http"
	"github.com/claussm/barefoot-tees/internal/delivery/http/controllers"
	"github.com/claussm/barefoot-tees/internal/delivery/http/middleware"
	"github.com/claussm/barefoot-tees/internal/repository/postgres"
	"github.com/claussm/barefoot-tees/internal/services"
)

const (
	serviceTimeout = 10 * time.Second
	tokenExpiry    = 24 * time.Hour
)

// @title Barefoot Tees API
// @version 1.0
// @description Golf league management: player roster, event schedule, tee sheets, and SMS RSVPs.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Repositories
	playerRepo := postgres.NewPlayerRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	eventPlayerRepo := postgres.NewEventPlayerRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Adapters
	smsSender := sms.NewSender(sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	})
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SES.Region,
			AccessKeyID:     cfg.Email.SES.AccessKeyID,
			SecretAccessKey: cfg.Email.SES.SecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer := email.NewTemplateRenderer()
	hasher := authadapter.NewBcryptHasher(12)
	issuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	verifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	rosterService := services.NewRosterService(playerRepo, eventRepo, eventPlayerRepo, serviceTimeout)
	scheduleService := services.NewScheduleService(eventRepo, courseRepo, serviceTimeout)
	teeSheetService := services.NewTeeSheetService(eventRepo, courseRepo, playerRepo, eventPlayerRepo, groupRepo, emailService, serviceTimeout)
	rsvpService := services.NewRSVPService(eventRepo, courseRepo, playerRepo, eventPlayerRepo, smsSender, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, issuer, tokenExpiry)

	// Controllers
	authController := controllers.NewAuthController(logger, authService)
	playerController := controllers.NewPlayerController(logger, rosterService)
	eventController := controllers.NewEventController(logger, scheduleService, rosterService)
	teeSheetController := controllers.NewTeeSheetController(logger, teeSheetService)
	rsvpController := controllers.NewRSVPController(logger, rsvpService)

	mux := delivery.NewRouter(logger, verifier, authController, playerController, eventController, teeSheetController, rsvpController)

	handler := middleware.LoggingMiddleware(logger, mux)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
