package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type courseRepository struct {
	DB *sql.DB
}

func NewCourseRepository(db *sql.DB) domain.CourseRepository {
	return &courseRepository{
		DB: db,
	}
}

func (r *courseRepository) Create(ctx context.Context, c *domain.Course) error {
	query := `
		INSERT INTO courses (name, city, state, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, c.Name, c.City, c.State, c.CreatedAt).Scan(&c.ID)
}

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `
		SELECT id, name, city, state, created_at
		FROM courses
		WHERE id = $1
	`
	c := &domain.Course{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.City, &c.State, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	query := `
		SELECT id, name, city, state, created_at
		FROM courses
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*domain.Course, 0)
	for rows.Next() {
		c := &domain.Course{}
		if err := rows.Scan(&c.ID, &c.Name, &c.City, &c.State, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
