package postgres

import (
	"context"
	"database/sql"

	"roomdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RoomRepository
	repository.BookingRepository
	repository.ClosureRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		RoomRepository:    NewRoomRepository(db),
		BookingRepository: NewBookingRepository(db),
		ClosureRepository: NewClosureRepository(db),
	}
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
