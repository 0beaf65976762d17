package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingLedger owns booking records and their status machine:
//
//	PENDING -> CONFIRMED | CANCELLED
//	CONFIRMED -> CANCELLED
//
// CANCELLED is terminal. Only PENDING and CANCELLED bookings may be deleted.
type BookingLedger interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Transition(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, reason string) error
	Confirm(ctx context.Context, id uuid.UUID, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var allowedTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:   {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed: {entity.BookingStatusCancelled},
}

func canTransition(from, to entity.BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// MaxStayNights is the longest stay a single booking may cover.
const MaxStayNights = 365

// ComputeAmount prices a stay at pricePerNight for every night, counting a
// partial day as a full night. It never returns a truncated or wrapped total.
func ComputeAmount(pricePerNight int64, checkIn, checkOut time.Time) (int64, error) {
	if !checkIn.Before(checkOut) {
		return 0, ErrInvalidDateRange
	}
	if pricePerNight < 0 {
		return 0, ErrInvalidPrice
	}

	nights := entity.StayNights(checkIn, checkOut)
	if nights > MaxStayNights {
		return 0, ErrStayTooLong
	}
	if pricePerNight > 0 && nights > math.MaxInt64/pricePerNight {
		return 0, ErrAmountTooLarge
	}
	return nights * pricePerNight, nil
}

type bookingLedger struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingLedger(repo *repository.Repository, log *zap.Logger) BookingLedger {
	return &bookingLedger{
		repo: repo,
		log:  log.With(zap.String("component", "ledger")),
	}
}

func (l *bookingLedger) Create(ctx context.Context, b *entity.Booking) error {
	if !b.CheckIn.Before(b.CheckOut) {
		return ErrInvalidDateRange
	}
	if b.Status != entity.BookingStatusPending {
		return apperror.Validation("new bookings start as PENDING")
	}

	guest, err := l.repo.User.FindByID(ctx, b.UserID)
	if err != nil {
		return fmt.Errorf("load guest %s: %w", b.UserID.String(), err)
	}
	if guest == nil || !guest.IsActive {
		return ErrUnknownGuest
	}

	hotel, err := l.repo.Hotel.FindByID(ctx, b.HotelID)
	if err != nil {
		return fmt.Errorf("load hotel %s: %w", b.HotelID.String(), err)
	}
	if hotel == nil {
		return ErrUnknownHotel
	}

	room, err := l.repo.Room.FindByID(ctx, b.RoomID)
	if err != nil {
		return fmt.Errorf("load room %s: %w", b.RoomID.String(), err)
	}
	if room == nil {
		return ErrUnknownRoom
	}
	if room.HotelID != hotel.ID {
		return ErrRoomNotInHotel
	}

	if err := l.repo.Booking.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return ErrRoomUnavailable.Wrap(err)
		}
		return fmt.Errorf("persist booking: %w", err)
	}

	l.log.Info("Booking recorded",
		zap.String("booking_id", b.ID.String()),
		zap.String("room_id", b.RoomID.String()),
		zap.String("status", string(b.Status)),
	)
	return nil
}

func (l *bookingLedger) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, err := l.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id.String(), err)
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

func (l *bookingLedger) Transition(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus, reason string) error {
	if !canTransition(from, to) {
		return apperror.Newf(apperror.KindConflict, "cannot move booking from %s to %s", from, to)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	if err := l.repo.Booking.UpdateStatus(ctx, id, from, to, reasonPtr); err != nil {
		return l.mapWriteError(id, from, err)
	}

	l.log.Info("Booking status changed",
		zap.String("booking_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("reason", reason),
	)
	return nil
}

func (l *bookingLedger) Confirm(ctx context.Context, id uuid.UUID, payment *entity.Payment) error {
	if err := l.repo.Booking.Confirm(ctx, id, payment); err != nil {
		return l.mapWriteError(id, entity.BookingStatusPending, err)
	}

	l.log.Info("Booking confirmed",
		zap.String("booking_id", id.String()),
		zap.String("payment_id", payment.ID.String()),
	)
	return nil
}

func (l *bookingLedger) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := l.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == entity.BookingStatusConfirmed {
		return ErrConfirmedDelete
	}

	err = l.repo.Booking.Delete(ctx, id, entity.BookingStatusPending, entity.BookingStatusCancelled)
	switch {
	case errors.Is(err, repository.ErrStatusMismatch):
		// confirmed between the read and the delete
		return ErrConfirmedDelete
	case err != nil:
		return l.mapWriteError(id, b.Status, err)
	}
	return nil
}

func (l *bookingLedger) mapWriteError(id uuid.UUID, expected entity.BookingStatus, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrBookingNotFound
	case errors.Is(err, repository.ErrStatusMismatch):
		return apperror.Newf(apperror.KindConflict, "booking %s is no longer %s", id.String(), expected).Wrap(err)
	default:
		return fmt.Errorf("write booking %s: %w", id.String(), err)
	}
}
