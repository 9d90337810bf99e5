package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/repository"
)

type closureRepository struct {
	db *sql.DB
}

func NewClosureRepository(db *sql.DB) repository.ClosureRepository {
	return &closureRepository{db: db}
}

func (r *closureRepository) List(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	query := `SELECT id, room_id, start_date, end_date, reason, created_at FROM closures WHERE 1=1`
	var args []interface{}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND start_date < $%d", len(args))
	}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND end_date > $%d", len(args))
	}
	query += " ORDER BY start_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []domain.Closure
	for rows.Next() {
		var c domain.Closure
		var roomID sql.NullInt32
		if err := rows.Scan(&c.ID, &roomID, &c.StartDate, &c.EndDate, &c.Reason, &c.CreatedAt); err != nil {
			return nil, err
		}
		if roomID.Valid {
			id := roomID.Int32
			c.RoomID = &id
		}
		c.StartDate = domain.DateOf(c.StartDate)
		c.EndDate = domain.DateOf(c.EndDate)
		closures = append(closures, c)
	}
	return closures, rows.Err()
}

func (r *closureRepository) Create(ctx context.Context, c *domain.Closure) error {
	query := `INSERT INTO closures (id, room_id, start_date, end_date, reason, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	var roomID sql.NullInt32
	if c.RoomID != nil {
		roomID = sql.NullInt32{Int32: *c.RoomID, Valid: true}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, query, c.ID, roomID, c.StartDate, c.EndDate, c.Reason, c.CreatedAt)
	return err
}

func (r *closureRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM closures WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("closure %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
