package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/claussm/barefoot-tees/internal/domain"
)

func TestEventRepository_Create(t *testing.T) {
	now := time.Now()
	event := func() *domain.Event {
		return &domain.Event{
			CourseID:      "c1",
			Date:          time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
			FirstTeeTime:  "08:30",
			MaxPlayers:    12,
			SlotsPerGroup: 4,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	t.Run("inserts event and numbered groups in one tx", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		e := event()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO events`).
			WithArgs("c1", e.Date, "08:30", 12, 4, false, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid"))
		for n := 1; n <= 3; n++ {
			mock.ExpectExec(`INSERT INTO groups`).
				WithArgs("ev-uuid", n, now).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.Create(context.Background(), e, 3))
		require.Equal(t, "ev-uuid", e.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("group insert failure rolls back the event", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		e := event()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO events`).
			WithArgs("c1", e.Date, "08:30", 12, 4, false, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid"))
		mock.ExpectExec(`INSERT INTO groups`).
			WithArgs("ev-uuid", 1, now).
			WillReturnError(context.DeadlineExceeded)
		mock.ExpectRollback()

		repo := NewEventRepository(db)
		require.Error(t, repo.Create(context.Background(), e, 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_SetLocked(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE events SET is_locked = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(true, "ev1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEventRepository(db)
	require.NoError(t, repo.SetLocked(context.Background(), "ev1", true))
	require.NoError(t, mock.ExpectationsWereMet())
}
