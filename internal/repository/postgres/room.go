package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/repository"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	query := `SELECT id, name, type, capacity, status FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Type, &rm.Capacity, &rm.Status); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	rm := &domain.Room{}
	query := `SELECT id, name, type, capacity, status FROM rooms WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rm.ID, &rm.Name, &rm.Type, &rm.Capacity, &rm.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id int32, status domain.RoomStatus) error {
	query := `UPDATE rooms SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("room %d: %w", id, repository.ErrNotFound)
	}
	return nil
}
