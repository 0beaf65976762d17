package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Blocking reports whether a booking in this status holds its room.
func (s BookingStatus) Blocking() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a guest's claim on one room for the half-open date range
// [CheckIn, CheckOut). Dates are calendar days at midnight UTC.
type Booking struct {
	BaseNoDelete
	UserID       uuid.UUID     `db:"user_id"`
	HotelID      uuid.UUID     `db:"hotel_id"`
	RoomID       uuid.UUID     `db:"room_id"`
	CheckIn      time.Time     `db:"check_in"`
	CheckOut     time.Time     `db:"check_out"`
	TotalCents   int64         `db:"total_amount_cents"`
	Status       BookingStatus `db:"status"`
	CancelReason *string       `db:"cancel_reason"`
	CancelledAt  *time.Time    `db:"cancelled_at"`
}

// Overlaps reports whether the booking's stay intersects [checkIn, checkOut).
// A stay ending on the day another begins does not overlap it.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}

const secondsPerDay = 24 * 60 * 60

// StayNights counts the nights billed for [checkIn, checkOut). A partial
// day counts as a whole night. It works on Unix seconds because a
// time.Duration saturates after about 292 years.
func StayNights(checkIn, checkOut time.Time) int64 {
	if !checkOut.After(checkIn) {
		return 0
	}
	span := checkOut.Unix() - checkIn.Unix()
	nights := span / secondsPerDay
	if span%secondsPerDay != 0 || checkOut.Nanosecond() > checkIn.Nanosecond() {
		nights++
	}
	return nights
}
