package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityChecker answers whether a room is free for [checkIn, checkOut).
// Only PENDING and CONFIRMED bookings occupy a room. exclude names a booking
// to ignore, uuid.Nil for none.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) (bool, error)
}

type availabilityChecker struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewAvailabilityChecker(bookings repository.BookingRepository, log *zap.Logger) AvailabilityChecker {
	return &availabilityChecker{
		bookings: bookings,
		log:      log.With(zap.String("component", "availability")),
	}
}

func (c *availabilityChecker) IsAvailable(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude uuid.UUID) (bool, error) {
	if !checkIn.Before(checkOut) {
		return false, ErrInvalidDateRange
	}

	existing, err := c.bookings.FindBlockingByRoom(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return false, fmt.Errorf("check availability of room %s: %w", roomID.String(), err)
	}

	for _, b := range existing {
		if b.ID == exclude || !b.Status.Blocking() {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			c.log.Debug("Room occupied",
				zap.String("room_id", roomID.String()),
				zap.String("blocking_booking_id", b.ID.String()),
			)
			return false, nil
		}
	}

	return true, nil
}
