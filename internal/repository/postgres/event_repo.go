package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, groupCount int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	eventQuery := `
		INSERT INTO events (course_id, date, first_tee_time, max_players, slots_per_group, is_locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, eventQuery,
		e.CourseID, e.Date, e.FirstTeeTime, e.MaxPlayers, e.SlotsPerGroup,
		e.IsLocked, e.CreatedAt, e.UpdatedAt).
		Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	groupQuery := `
		INSERT INTO groups (event_id, group_number, created_at)
		VALUES ($1, $2, $3)
	`
	for n := 1; n <= groupCount; n++ {
		if _, err := tx.ExecContext(ctx, groupQuery, e.ID, n, e.CreatedAt); err != nil {
			return fmt.Errorf("insert group %d: %w", n, err)
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, course_id, date, first_tee_time, max_players, slots_per_group, is_locked, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.CourseID, &e.Date, &e.FirstTeeTime, &e.MaxPlayers,
		&e.SlotsPerGroup, &e.IsLocked, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, course_id, date, first_tee_time, max_players, slots_per_group, is_locked, created_at, updated_at
		FROM events
		ORDER BY date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Date, &e.FirstTeeTime,
			&e.MaxPlayers, &e.SlotsPerGroup, &e.IsLocked, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	query := `UPDATE events SET is_locked = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, locked, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
