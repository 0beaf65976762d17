package usecase

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

// ReservationPolicy holds the tunables of the booking lifecycle.
type ReservationPolicy struct {
	// PendingTTL bounds how long an unpaid booking holds its room. Zero disables expiry.
	PendingTTL     time.Duration
	CancelLead     time.Duration
	RefundPercent  int64
	CheckInHour    int
	PaymentTimeout time.Duration
	Currency       string
}

func PolicyFromConfig(cfg utils.BookingConfig) ReservationPolicy {
	return ReservationPolicy{
		PendingTTL:     cfg.PendingTTL,
		CancelLead:     cfg.CancelLead,
		RefundPercent:  cfg.RefundPercent,
		CheckInHour:    cfg.CheckInHour,
		PaymentTimeout: cfg.PaymentTimeout,
		Currency:       cfg.Currency,
	}
}

// CheckInAt is the instant the guest may arrive.
func (p ReservationPolicy) CheckInAt(b *entity.Booking) time.Time {
	return b.CheckIn.Add(time.Duration(p.CheckInHour) * time.Hour)
}

// RefundFor returns the refund owed when b is cancelled at now: RefundPercent
// of the total while at least CancelLead remains before check-in, else nothing.
func (p ReservationPolicy) RefundFor(b *entity.Booking, now time.Time) int64 {
	if p.CheckInAt(b).Sub(now) < p.CancelLead {
		return 0
	}
	return b.TotalCents * p.RefundPercent / 100
}

// HoldExpiresAt returns when a pending booking stops holding its room.
func (p ReservationPolicy) HoldExpiresAt(b *entity.Booking) *time.Time {
	if p.PendingTTL <= 0 || b.Status != entity.BookingStatusPending {
		return nil
	}
	at := b.CreatedAt.Add(p.PendingTTL)
	return &at
}

func (p ReservationPolicy) holdExpired(b *entity.Booking, now time.Time) bool {
	at := p.HoldExpiresAt(b)
	return at != nil && now.After(*at)
}
