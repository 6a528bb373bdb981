package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{
		DB: db,
	}
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	query := `
		SELECT id, event_id, group_number, created_at
		FROM groups
		WHERE id = $1
	`
	g := &domain.Group{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.EventID, &g.GroupNumber, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Group, error) {
	query := `
		SELECT id, event_id, group_number, created_at
		FROM groups
		WHERE event_id = $1
		ORDER BY group_number ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*domain.Group, 0)
	for rows.Next() {
		g := &domain.Group{}
		if err := rows.Scan(&g.ID, &g.EventID, &g.GroupNumber, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) ListAssignmentsByEventID(ctx context.Context, eventID string) ([]*domain.AssignmentDetail, error) {
	query := `
		SELECT ga.id, ga.group_id, ga.event_id, ga.player_id, ga.position, ga.created_at,
		       p.name, p.handicap
		FROM group_assignments ga
		JOIN players p ON p.id = ga.player_id
		WHERE ga.event_id = $1
		ORDER BY ga.position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.AssignmentDetail, 0)
	for rows.Next() {
		a := &domain.AssignmentDetail{}
		var handicapNull sql.NullFloat64
		err := rows.Scan(&a.ID, &a.GroupID, &a.EventID, &a.PlayerID, &a.Position,
			&a.CreatedAt, &a.PlayerName, &handicapNull)
		if err != nil {
			return nil, err
		}
		if handicapNull.Valid {
			a.PlayerHandicap = &handicapNull.Float64
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ReplaceAssignment runs the delete-then-insert as one transaction so a
// player can never briefly hold two slots, and a failed insert leaves the
// previous assignment in place. The unique index on (group_id, position)
// turns a collision with another player into ErrSlotOccupied; inserting the
// player back into their own slot succeeds because the delete already
// cleared the row.
func (r *groupRepository) ReplaceAssignment(ctx context.Context, eventID, playerID, groupID string, position int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM group_assignments WHERE event_id = $1 AND player_id = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, eventID, playerID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	insertQuery := `
		INSERT INTO group_assignments (group_id, event_id, player_id, position, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.ExecContext(ctx, insertQuery, groupID, eventID, playerID, position); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrSlotOccupied
		}
		return fmt.Errorf("insert assignment: %w", err)
	}

	return tx.Commit()
}

func (r *groupRepository) DeleteAssignmentByPlayer(ctx context.Context, eventID, playerID string) error {
	query := `DELETE FROM group_assignments WHERE event_id = $1 AND player_id = $2`
	// Zero rows deleted means the player was not assigned; that is fine.
	_, err := r.DB.ExecContext(ctx, query, eventID, playerID)
	return err
}
