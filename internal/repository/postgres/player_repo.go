package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type playerRepository struct {
	DB *sql.DB
}

func NewPlayerRepository(db *sql.DB) domain.PlayerRepository {
	return &playerRepository{
		DB: db,
	}
}

func (r *playerRepository) Create(ctx context.Context, p *domain.Player) error {
	query := `
		INSERT INTO players (name, email, phone, handicap, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, p.Handicap, p.IsActive, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID)
}

func (r *playerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	query := `
		SELECT id, name, email, phone, handicap, is_active, created_at, updated_at
		FROM players
		WHERE id = $1
	`
	p := &domain.Player{}
	err := scanPlayer(r.DB.QueryRowContext(ctx, query, id), p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *playerRepository) Update(ctx context.Context, p *domain.Player) error {
	query := `
		UPDATE players
		SET name = $1, email = $2, phone = $3, handicap = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.DB.ExecContext(ctx, query, p.Name, p.Email, p.Phone, p.Handicap, p.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *playerRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE players SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *playerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	query := `
		SELECT id, name, email, phone, handicap, is_active, created_at, updated_at
		FROM players
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		p := &domain.Player{}
		if err := scanPlayer(rows, p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (r *playerRepository) FindActiveByPhone(ctx context.Context, phone string) ([]*domain.Player, error) {
	query := `
		SELECT id, name, email, phone, handicap, is_active, created_at, updated_at
		FROM players
		WHERE phone = $1 AND is_active = TRUE
	`
	rows, err := r.DB.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]*domain.Player, 0)
	for rows.Next() {
		p := &domain.Player{}
		if err := scanPlayer(rows, p); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner, p *domain.Player) error {
	var emailNull, phoneNull sql.NullString
	var handicapNull sql.NullFloat64
	err := row.Scan(&p.ID, &p.Name, &emailNull, &phoneNull, &handicapNull,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if emailNull.Valid {
		p.Email = &emailNull.String
	}
	if phoneNull.Valid {
		p.Phone = &phoneNull.String
	}
	if handicapNull.Valid {
		p.Handicap = &handicapNull.Float64
	}
	return nil
}
