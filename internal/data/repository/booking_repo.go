package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create inserts a booking. It returns ErrOverlap when a holding booking
	// for the same room already covers any of its nights.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context, status *entity.BookingStatus) (int64, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error)

	// Business queries
	FindBlockingByRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error)
	HasBlockingFrom(ctx context.Context, roomID uuid.UUID, from time.Time) (bool, error)
	FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Booking, error)

	// UpdateStatus moves a booking from one status to another only if it is
	// still in from. ErrStatusMismatch reports that it was not.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, reason *string) error
	// Confirm moves a PENDING booking to CONFIRMED and stores its completed
	// payment in one transaction.
	Confirm(ctx context.Context, id uuid.UUID, payment *entity.Payment) error
	// Delete removes a booking whose status is one of deletable. Its payment
	// goes with it.
	Delete(ctx context.Context, id uuid.UUID, deletable ...entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, hotel_id, room_id, check_in, check_out, total_amount_cents,
		status, cancel_reason, cancelled_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.HotelID,
		&b.RoomID,
		&b.CheckIn,
		&b.CheckOut,
		&b.TotalCents,
		&b.Status,
		&b.CancelReason,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) collect(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, hotel_id, room_id, check_in, check_out,
		                      total_amount_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.HotelID,
		booking.RoomID,
		booking.CheckIn,
		booking.CheckOut,
		booking.TotalCents,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		err = translate(err)
		if errors.Is(err, ErrOverlap) {
			r.log.Warn("Booking rejected by overlap constraint",
				zap.String("room_id", booking.RoomID.String()),
				zap.Time("check_in", booking.CheckIn),
				zap.Time("check_out", booking.CheckOut),
			)
			return err
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, statusArg(status), limit, offset)
	if err != nil {
		r.log.Error("Failed to find all bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) CountAll(ctx context.Context, status *entity.BookingStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE ($1::text IS NULL OR status = $1)`, statusArg(status)).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count all bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		ORDER BY check_in
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find bookings by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find bookings by room ID %s: %w", roomID.String(), err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) FindBlockingByRoom(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND check_in < $3
		  AND check_out > $2
	`

	rows, err := r.db.Query(ctx, query, roomID, checkIn, checkOut)
	if err != nil {
		r.log.Error("Failed to find blocking bookings",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find blocking bookings for room %s: %w", roomID.String(), err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) HasBlockingFrom(ctx context.Context, roomID uuid.UUID, from time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE room_id = $1 AND status IN ('PENDING', 'CONFIRMED') AND check_out > $2
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, from).Scan(&exists); err != nil {
		return false, fmt.Errorf("check blocking bookings for room %s: %w", roomID.String(), err)
	}
	return exists, nil
}

func (r *bookingRepository) FindStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'PENDING' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, createdBefore, limit)
	if err != nil {
		r.log.Error("Failed to find stale pending bookings", zap.Error(err))
		return nil, fmt.Errorf("find stale pending bookings: %w", err)
	}

	return r.collect(rows)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, reason *string) error {
	query := `
		UPDATE bookings
		SET status = $3,
		    cancel_reason = COALESCE($4, cancel_reason),
		    cancelled_at = CASE WHEN $3 = 'CANCELLED' THEN NOW() ELSE cancelled_at END,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.Exec(ctx, query, id, from, to, reason)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("update booking %s status %s -> %s: %w", id.String(), from, to, err)
	}

	if result.RowsAffected() == 0 {
		return r.missOrMismatch(ctx, id)
	}

	return nil
}

func (r *bookingRepository) Confirm(ctx context.Context, id uuid.UUID, payment *entity.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin confirm booking %s: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE bookings SET status = 'CONFIRMED', updated_at = NOW() WHERE id = $1 AND status = 'PENDING'`,
		id,
	)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("confirm booking %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return r.missOrMismatch(ctx, id)
	}

	if err := updatePayment(ctx, tx, payment); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit confirm booking %s: %w", id.String(), err)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID, deletable ...entity.BookingStatus) error {
	statuses := make([]string, len(deletable))
	for i, s := range deletable {
		statuses[i] = string(s)
	}

	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1 AND status = ANY($2)`, id, statuses)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return r.missOrMismatch(ctx, id)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

// missOrMismatch explains a conditional write that touched no rows.
func (r *bookingRepository) missOrMismatch(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check booking %s: %w", id.String(), err)
	}
	if !exists {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNotFound)
	}
	return fmt.Errorf("booking %s: %w", id.String(), ErrStatusMismatch)
}

func statusArg(status *entity.BookingStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}
