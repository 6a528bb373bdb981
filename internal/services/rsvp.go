package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type rsvpService struct {
	eventRepo       domain.EventRepository
	courseRepo      domain.CourseRepository
	playerRepo      domain.PlayerRepository
	eventPlayerRepo domain.EventPlayerRepository
	sms             domain.SMSSender
	contextTimeout  time.Duration
}

// NewRSVPService creates an RSVPService with the given repositories and
// SMS gateway.
func NewRSVPService(
	eventRepo domain.EventRepository,
	courseRepo domain.CourseRepository,
	playerRepo domain.PlayerRepository,
	eventPlayerRepo domain.EventPlayerRepository,
	sms domain.SMSSender,
	timeout time.Duration,
) domain.RSVPService {
	return &rsvpService{
		eventRepo:       eventRepo,
		courseRepo:      courseRepo,
		playerRepo:      playerRepo,
		eventPlayerRepo: eventPlayerRepo,
		sms:             sms,
		contextTimeout:  timeout,
	}
}

func (s *rsvpService) SendEventRSVPs(ctx context.Context, eventID string) (*domain.RSVPSendSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Missing gateway credentials fail the whole call, unlike per-recipient
	// problems which only mark that recipient's result.
	if !s.sms.Configured() {
		return nil, domain.ErrSMSNotConfigured
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	course, err := s.courseRepo.GetByID(ctx, event.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}

	recipients, err := s.eventPlayerRepo.ListByEventID(ctx, eventID, domain.StatusPlaying)
	if err != nil {
		return nil, fmt.Errorf("list playing players: %w", err)
	}

	message := rsvpMessage(course.Name, event.Date, event.FirstTeeTime)

	results := make([]*domain.RSVPSendResult, 0, len(recipients))
	sent := 0
	for _, rec := range recipients {
		if rec.PlayerPhone == nil || *rec.PlayerPhone == "" {
			results = append(results, &domain.RSVPSendResult{
				PlayerID:   rec.PlayerID,
				PlayerName: rec.PlayerName,
				Success:    false,
				Error:      "No phone number",
			})
			continue
		}

		if err := s.sms.Send(ctx, *rec.PlayerPhone, message); err != nil {
			log.Printf("[RSVP] Failed to send to %s: %v", rec.PlayerName, err)
			results = append(results, &domain.RSVPSendResult{
				PlayerID:   rec.PlayerID,
				PlayerName: rec.PlayerName,
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}

		// The stamp is the correlation key for inbound replies; without it
		// a reply cannot be matched, so a failed stamp counts as a failure.
		if err := s.eventPlayerRepo.StampRSVPSent(ctx, rec.ID, time.Now()); err != nil {
			log.Printf("[RSVP] Sent to %s but failed to stamp: %v", rec.PlayerName, err)
			results = append(results, &domain.RSVPSendResult{
				PlayerID:   rec.PlayerID,
				PlayerName: rec.PlayerName,
				Success:    false,
				Error:      err.Error(),
			})
			continue
		}

		sent++
		results = append(results, &domain.RSVPSendResult{
			PlayerID:   rec.PlayerID,
			PlayerName: rec.PlayerName,
			Success:    true,
		})
		log.Printf("[RSVP] Sent RSVP to %s at %s", rec.PlayerName, *rec.PlayerPhone)
	}

	return &domain.RSVPSendSummary{
		Success: true,
		Message: fmt.Sprintf("Sent %d of %d RSVPs", sent, len(results)),
		Results: results,
	}, nil
}

func (s *rsvpService) HandleReply(ctx context.Context, fromPhone, body string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rsvp, ok := domain.NormalizeReply(body)
	if !ok {
		return domain.MsgReplyHelp, nil
	}

	players, err := s.playerRepo.FindActiveByPhone(ctx, fromPhone)
	if err != nil {
		return "", fmt.Errorf("find player by phone: %w", err)
	}
	if len(players) == 0 {
		return domain.MsgPhoneNotRecognized, nil
	}
	if len(players) > 1 {
		// Shared phone numbers make the reply unattributable. Refusing is
		// safer than guessing and updating the wrong player's RSVP.
		log.Printf("[RSVP] Ambiguous reply: %d active players share phone %s", len(players), fromPhone)
		return domain.MsgPhoneNotRecognized, nil
	}
	player := players[0]

	ep, err := s.eventPlayerRepo.LatestRSVPSent(ctx, player.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MsgNoRecentRSVP, nil
		}
		return "", fmt.Errorf("find latest rsvp: %w", err)
	}

	status := domain.StatusPlaying
	if rsvp == domain.RSVPNo {
		status = domain.StatusNotPlaying
	}
	// Keyed by the event_player row's own id so replies can never touch
	// other rows that happen to share the phone number.
	if err := s.eventPlayerRepo.RecordReply(ctx, ep.ID, rsvp, status); err != nil {
		return "", fmt.Errorf("record reply: %w", err)
	}

	if rsvp == domain.RSVPYes {
		return fmt.Sprintf(domain.MsgConfirmYesFmt, player.Name), nil
	}
	return fmt.Sprintf(domain.MsgConfirmNoFmt, player.Name), nil
}

// rsvpMessage builds the outbound invitation text. firstTeeTime is the
// event's "15:04" (or "15:04:05") wall-clock string; when it does not parse
// it is included as stored rather than dropping the message.
func rsvpMessage(courseName string, date time.Time, firstTeeTime string) string {
	teeTime := firstTeeTime
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, firstTeeTime); err == nil {
			teeTime = t.Format("3:04 PM")
			break
		}
	}
	return fmt.Sprintf("Golf League RSVP:\n%s\n%s\nFirst Tee Time: %s\n\nReply Y for Yes or N for No",
		courseName,
		date.Format("Monday, January 2, 2006"),
		teeTime,
	)
}
