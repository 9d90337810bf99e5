package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"

	"github.com/lib/pq"
)

const bookingColumns = `id, guest_name, guest_email, guest_phone, check_in, check_out, status, source, notes, total_price_cents, tourist_tax_cents, arrived, room_locked, version, created_at, updated_at`

// conflictQuery counts what a (booking, room) pair collides with: other
// confirmed stays in the room on a shared night, and closures of the room or
// the whole structure. A booking that is not confirmed never collides.
const conflictQuery = `SELECT COUNT(*) FROM (
	SELECT o.booking_id FROM booking_rooms a
	JOIN bookings ab ON ab.id = a.booking_id
	JOIN booking_rooms o ON o.room_id = a.room_id AND o.booking_id <> a.booking_id
	JOIN bookings ob ON ob.id = o.booking_id
	WHERE a.booking_id = $1 AND a.room_id = $2 AND ab.status = 'confirmed' AND ob.status = 'confirmed'
	  AND ob.check_in < ab.check_out AND ab.check_in < ob.check_out
	UNION ALL
	SELECT c.id FROM booking_rooms a
	JOIN bookings ab ON ab.id = a.booking_id
	JOIN closures c ON c.room_id IS NULL OR c.room_id = a.room_id
	WHERE a.booking_id = $1 AND a.room_id = $2 AND ab.status = 'confirmed'
	  AND c.start_date < ab.check_out AND ab.check_in < c.end_date
) AS conflicts`

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking, moves []domain.Move) error {
	now := time.Now()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockRooms(ctx, tx, touchedRooms(b.Rooms, moves)); err != nil {
		return err
	}
	if err := applyMoves(ctx, tx, moves, now); err != nil {
		return err
	}

	query := `INSERT INTO bookings (` + bookingColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = tx.ExecContext(ctx, query, b.ID, b.GuestName, b.GuestEmail, b.GuestPhone, b.CheckIn, b.CheckOut,
		b.Status, b.Source, b.Notes, b.TotalPriceCents, b.TouristTaxCents, b.Arrived, b.RoomLocked, 1, now, now)
	if err != nil {
		return err
	}
	if err := insertDetails(ctx, tx, b); err != nil {
		return err
	}
	if err := checkAllocations(ctx, tx, b, moves); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	b.Version = 1
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var b domain.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), &b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	bookings := []domain.Booking{b}
	if err := loadDetails(ctx, r.db, bookings); err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

func (r *bookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	var args []interface{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.RoomID != 0 {
		args = append(args, filter.RoomID)
		query += fmt.Sprintf(" AND id IN (SELECT booking_id FROM booking_rooms WHERE room_id = $%d)", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND check_in < $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND check_out > $%d", len(args))
	}
	query += " ORDER BY check_in, id"

	logger.DatabaseCall("SELECT", "bookings", "status", filter.Status, "roomID", filter.RoomID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "table", "bookings")
		return nil, err
	}
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			rows.Close()
			return nil, err
		}
		bookings = append(bookings, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := loadDetails(ctx, r.db, bookings); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(bookings)), nil, "table", "bookings")
	return bookings, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking, moves []domain.Move) error {
	now := time.Now()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockRooms(ctx, tx, touchedRooms(b.Rooms, moves)); err != nil {
		return err
	}

	query := `UPDATE bookings SET guest_name=$1, guest_email=$2, guest_phone=$3, check_in=$4, check_out=$5, status=$6,
	          source=$7, notes=$8, total_price_cents=$9, tourist_tax_cents=$10, arrived=$11, room_locked=$12,
	          version=version+1, updated_at=$13
	          WHERE id=$14 AND version=$15`
	result, err := tx.ExecContext(ctx, query, b.GuestName, b.GuestEmail, b.GuestPhone, b.CheckIn, b.CheckOut, b.Status,
		b.Source, b.Notes, b.TotalPriceCents, b.TouristTaxCents, b.Arrived, b.RoomLocked, now, b.ID, b.Version)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("booking %s changed since version %d: %w", b.ID, b.Version, repository.ErrConflict)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_rooms WHERE booking_id = $1`, b.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_exemptions WHERE booking_id = $1`, b.ID); err != nil {
		return err
	}
	if err := insertDetails(ctx, tx, b); err != nil {
		return err
	}
	if err := applyMoves(ctx, tx, moves, now); err != nil {
		return err
	}
	if err := checkAllocations(ctx, tx, b, moves); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	b.Version++
	b.UpdatedAt = now
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *bookingRepository) ApplyMoves(ctx context.Context, moves []domain.Move) error {
	if len(moves) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockRooms(ctx, tx, touchedRooms(nil, moves)); err != nil {
		return err
	}
	if err := applyMoves(ctx, tx, moves, time.Now()); err != nil {
		return err
	}
	if err := checkAllocations(ctx, tx, nil, moves); err != nil {
		return err
	}
	err = tx.Commit()
	logger.DatabaseResult("UPDATE", int64(len(moves)), err, "table", "booking_rooms")
	return err
}

func (r *bookingRepository) SetArrived(ctx context.Context, id string, arrived bool) error {
	query := `UPDATE bookings SET arrived = $1, version = version + 1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, arrived, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

// MarkArrivedThrough flags confirmed stays that started on or before day and
// have not checked out yet.
func (r *bookingRepository) MarkArrivedThrough(ctx context.Context, day time.Time) (int64, error) {
	query := `UPDATE bookings SET arrived = true, version = version + 1, updated_at = $1
	          WHERE status = 'confirmed' AND arrived = false AND check_in <= $2 AND check_out > $2`
	logger.DatabaseCall("UPDATE", "bookings", "arrivedThrough", day)
	result, err := r.db.ExecContext(ctx, query, time.Now(), day)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	return n, err
}

func (r *bookingRepository) ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	query := `UPDATE bookings SET status = 'cancelled', version = version + 1, updated_at = $1
	          WHERE status = 'pending' AND created_at < $2`
	logger.DatabaseCall("UPDATE", "bookings", "pendingBefore", createdBefore)
	result, err := r.db.ExecContext(ctx, query, time.Now(), createdBefore)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return 0, err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	return n, err
}

func scanBooking(s scanner, b *domain.Booking) error {
	err := s.Scan(&b.ID, &b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.CheckIn, &b.CheckOut, &b.Status, &b.Source,
		&b.Notes, &b.TotalPriceCents, &b.TouristTaxCents, &b.Arrived, &b.RoomLocked, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	b.CheckIn = domain.DateOf(b.CheckIn)
	b.CheckOut = domain.DateOf(b.CheckOut)
	return nil
}

// loadDetails fills Rooms and Exemptions of bookings with two batched queries.
func loadDetails(ctx context.Context, q queryer, bookings []domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	index := make(map[string]int, len(bookings))
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		index[b.ID] = i
		ids[i] = b.ID
	}

	rows, err := q.QueryContext(ctx, `SELECT booking_id, room_id, guests FROM booking_rooms WHERE booking_id = ANY($1::uuid[]) ORDER BY booking_id, room_id`, pq.Array(ids))
	if err != nil {
		return err
	}
	for rows.Next() {
		var id string
		var br domain.BookedRoom
		if err := rows.Scan(&id, &br.RoomID, &br.Guests); err != nil {
			rows.Close()
			return err
		}
		if i, ok := index[id]; ok {
			bookings[i].Rooms = append(bookings[i].Rooms, br)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.QueryContext(ctx, `SELECT booking_id, guest_index, kind FROM booking_exemptions WHERE booking_id = ANY($1::uuid[]) ORDER BY booking_id, guest_index`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var ex domain.GuestExemption
		if err := rows.Scan(&id, &ex.GuestIndex, &ex.Kind); err != nil {
			return err
		}
		if i, ok := index[id]; ok {
			bookings[i].Exemptions = append(bookings[i].Exemptions, ex)
		}
	}
	return rows.Err()
}

func insertDetails(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	for _, br := range b.Rooms {
		_, err := tx.ExecContext(ctx, `INSERT INTO booking_rooms (booking_id, room_id, guests) VALUES ($1, $2, $3)`, b.ID, br.RoomID, br.Guests)
		if err != nil {
			return err
		}
	}
	for _, ex := range b.Exemptions {
		_, err := tx.ExecContext(ctx, `INSERT INTO booking_exemptions (booking_id, guest_index, kind) VALUES ($1, $2, $3)`, b.ID, ex.GuestIndex, ex.Kind)
		if err != nil {
			return err
		}
	}
	return nil
}

// touchedRooms lists every room a write may fill, sorted so concurrent
// writers lock in the same order.
func touchedRooms(rooms []domain.BookedRoom, moves []domain.Move) []int32 {
	seen := map[int32]bool{}
	var ids []int32
	add := func(id int32) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, br := range rooms {
		add(br.RoomID)
	}
	for _, m := range moves {
		add(m.FromRoomID)
		add(m.ToRoomID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func lockRooms(ctx context.Context, tx *sql.Tx, ids []int32) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := tx.QueryContext(ctx, `SELECT id FROM rooms WHERE id = ANY($1) ORDER BY id FOR UPDATE`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	locked := 0
	for rows.Next() {
		locked++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if locked != len(ids) {
		return fmt.Errorf("rooms %v: %w", ids, repository.ErrNotFound)
	}
	return nil
}

// applyMoves relocates booked rooms. A move whose booking left the source
// room, arrived or got pinned meanwhile fails with ErrConflict.
func applyMoves(ctx context.Context, tx *sql.Tx, moves []domain.Move, now time.Time) error {
	for _, m := range moves {
		query := `UPDATE booking_rooms br SET room_id = $1 FROM bookings b
		          WHERE b.id = br.booking_id AND br.booking_id = $2 AND br.room_id = $3
		            AND b.status = 'confirmed' AND NOT b.arrived AND NOT b.room_locked`
		result, err := tx.ExecContext(ctx, query, m.ToRoomID, m.BookingID, m.FromRoomID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("booking %s is no longer movable from room %d: %w", m.BookingID, m.FromRoomID, repository.ErrConflict)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE bookings SET version = version + 1, updated_at = $1 WHERE id = $2`, now, m.BookingID); err != nil {
			return err
		}
	}
	return nil
}

// checkAllocations verifies the rooms of b and the destinations of moves
// against the state inside tx.
func checkAllocations(ctx context.Context, tx *sql.Tx, b *domain.Booking, moves []domain.Move) error {
	type pair struct {
		bookingID string
		roomID    int32
	}
	var pairs []pair
	if b != nil && b.Status == domain.BookingStatusConfirmed {
		for _, br := range b.Rooms {
			pairs = append(pairs, pair{b.ID, br.RoomID})
		}
	}
	for _, m := range moves {
		pairs = append(pairs, pair{m.BookingID, m.ToRoomID})
	}

	for _, p := range pairs {
		var n int
		if err := tx.QueryRowContext(ctx, conflictQuery, p.bookingID, p.roomID).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("booking %s overlaps another stay or a closure in room %d: %w", p.bookingID, p.roomID, repository.ErrConflict)
		}
	}
	return nil
}
