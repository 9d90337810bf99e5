package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/repository"
	"roomdesk-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestClosureRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClosureRepository(db)
	ctx := context.Background()
	from := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "room_id", "start_date", "end_date", "reason", "created_at"}).
			AddRow("c1", nil, from, from.AddDate(0, 0, 7), "owner holiday", time.Now()).
			AddRow("c2", 3, from.AddDate(0, 0, 10), from.AddDate(0, 0, 12), "painting", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM closures WHERE 1=1 AND start_date < \\$1 AND end_date > \\$2").
			WithArgs(to, from).
			WillReturnRows(rows)

		closures, err := repo.List(ctx, from, to)
		assert.NoError(t, err)
		assert.Len(t, closures, 2)
		assert.True(t, closures[0].WholeStructure())
		assert.Equal(t, int32(3), *closures[1].RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClosureRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClosureRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		roomID := int32(5)
		c := &domain.Closure{
			ID:        "c1",
			RoomID:    &roomID,
			StartDate: time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 11, 4, 0, 0, 0, 0, time.UTC),
			Reason:    "plumbing",
		}
		mock.ExpectExec("INSERT INTO closures").
			WithArgs("c1", int64(5), c.StartDate, c.EndDate, "plumbing", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.False(t, c.CreatedAt.IsZero())
	})
}

func TestClosureRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewClosureRepository(db)
	ctx := context.Background()

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM closures WHERE id = \\$1").WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, "missing")
		assert.True(t, errors.Is(err, repository.ErrNotFound))
	})
}
