package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/claussm/barefoot-tees/internal/domain"
)

// uniqueViolation is the Postgres error code raised when a unique
// constraint rejects an insert.
const uniqueViolation = "23505"

type eventPlayerRepository struct {
	DB *sql.DB
}

func NewEventPlayerRepository(db *sql.DB) domain.EventPlayerRepository {
	return &eventPlayerRepository{
		DB: db,
	}
}

func (r *eventPlayerRepository) Create(ctx context.Context, ep *domain.EventPlayer) error {
	query := `
		INSERT INTO event_players (event_id, player_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		ep.EventID, ep.PlayerID, ep.Status, ep.CreatedAt, ep.UpdatedAt).
		Scan(&ep.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrAlreadyAdded
		}
		return err
	}
	return nil
}

func (r *eventPlayerRepository) GetByID(ctx context.Context, id string) (*domain.EventPlayer, error) {
	query := `
		SELECT id, event_id, player_id, status, rsvp_status, rsvp_sent_at, created_at, updated_at
		FROM event_players
		WHERE id = $1
	`
	ep := &domain.EventPlayer{}
	if err := scanEventPlayer(r.DB.QueryRowContext(ctx, query, id), ep); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ep, nil
}

func (r *eventPlayerRepository) ListByEventID(ctx context.Context, eventID string, status domain.Status) ([]*domain.EventPlayerDetail, error) {
	query := `
		SELECT ep.id, ep.event_id, ep.player_id, ep.status, ep.rsvp_status, ep.rsvp_sent_at,
		       ep.created_at, ep.updated_at, p.name, p.phone, p.handicap
		FROM event_players ep
		JOIN players p ON p.id = ep.player_id
		WHERE ep.event_id = $1
	`
	args := []any{eventID}
	if status != "" {
		query += ` AND ep.status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY p.name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.EventPlayerDetail, 0)
	for rows.Next() {
		d := &domain.EventPlayerDetail{}
		var rsvpNull sql.NullString
		var sentNull sql.NullTime
		var phoneNull sql.NullString
		var handicapNull sql.NullFloat64
		err := rows.Scan(&d.ID, &d.EventID, &d.PlayerID, &d.Status, &rsvpNull, &sentNull,
			&d.CreatedAt, &d.UpdatedAt, &d.PlayerName, &phoneNull, &handicapNull)
		if err != nil {
			return nil, err
		}
		if rsvpNull.Valid {
			rsvp := domain.RSVPStatus(rsvpNull.String)
			d.RSVPStatus = &rsvp
		}
		if sentNull.Valid {
			d.RSVPSentAt = &sentNull.Time
		}
		if phoneNull.Valid {
			d.PlayerPhone = &phoneNull.String
		}
		if handicapNull.Valid {
			d.PlayerHandicap = &handicapNull.Float64
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *eventPlayerRepository) CountPlaying(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM event_players WHERE event_id = $1 AND status = 'playing'`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventPlayerRepository) UpdateStatusIf(ctx context.Context, id string, expected, target domain.Status) (bool, error) {
	query := `
		UPDATE event_players
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`
	result, err := r.DB.ExecContext(ctx, query, target, id, expected)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *eventPlayerRepository) StampRSVPSent(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE event_players SET rsvp_sent_at = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, at, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventPlayerRepository) LatestRSVPSent(ctx context.Context, playerID string) (*domain.EventPlayer, error) {
	query := `
		SELECT id, event_id, player_id, status, rsvp_status, rsvp_sent_at, created_at, updated_at
		FROM event_players
		WHERE player_id = $1 AND rsvp_sent_at IS NOT NULL
		ORDER BY rsvp_sent_at DESC
		LIMIT 1
	`
	ep := &domain.EventPlayer{}
	if err := scanEventPlayer(r.DB.QueryRowContext(ctx, query, playerID), ep); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return ep, nil
}

func (r *eventPlayerRepository) RecordReply(ctx context.Context, id string, rsvp domain.RSVPStatus, status domain.Status) error {
	query := `
		UPDATE event_players
		SET rsvp_status = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, rsvp, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEventPlayer(row scanner, ep *domain.EventPlayer) error {
	var rsvpNull sql.NullString
	var sentNull sql.NullTime
	err := row.Scan(&ep.ID, &ep.EventID, &ep.PlayerID, &ep.Status, &rsvpNull, &sentNull,
		&ep.CreatedAt, &ep.UpdatedAt)
	if err != nil {
		return err
	}
	if rsvpNull.Valid {
		rsvp := domain.RSVPStatus(rsvpNull.String)
		ep.RSVPStatus = &rsvp
	}
	if sentNull.Valid {
		ep.RSVPSentAt = &sentNull.Time
	}
	return nil
}
