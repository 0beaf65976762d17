package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending      PaymentStatus = "PENDING"
	PaymentStatusCompleted    PaymentStatus = "COMPLETED"
	PaymentStatusFailed       PaymentStatus = "FAILED"
	PaymentStatusRefunded     PaymentStatus = "REFUNDED"
	PaymentStatusRefundFailed PaymentStatus = "REFUND_FAILED"
)

// Payment records the single charge attempt made for a booking.
type Payment struct {
	BaseNoDelete
	BookingID     uuid.UUID     `db:"booking_id"`
	AmountCents   int64         `db:"amount_cents"`
	Method        string        `db:"method"`
	Status        PaymentStatus `db:"status"`
	Reference     *string       `db:"reference"`
	FailureReason *string       `db:"failure_reason"`
	RefundCents   int64         `db:"refund_amount_cents"`
}
