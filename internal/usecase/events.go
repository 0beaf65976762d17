package usecase

import (
	"context"
	"time"
)

// Routing keys of the events published on the booking exchange.
const (
	EventBookingInitiated = "booking.initiated"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
	EventBookingDeleted   = "booking.deleted"
	EventPaymentFailed    = "payment.failed"
	EventPaymentRefunded  = "payment.refunded"
)

// EventPublisher delivers lifecycle events. Delivery is best effort: a
// failed publish never fails the operation that emitted it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type BookingEvent struct {
	BookingID    string    `json:"booking_id"`
	UserID       string    `json:"user_id"`
	HotelID      string    `json:"hotel_id"`
	RoomID       string    `json:"room_id"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Status       string    `json:"status"`
	TotalAmount  float64   `json:"total_amount"`
	RefundAmount float64   `json:"refund_amount,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
