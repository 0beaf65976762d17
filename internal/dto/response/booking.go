package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type BookingResponse struct {
	ID            string               `json:"id"`
	UserID        string               `json:"user_id"`
	HotelID       string               `json:"hotel_id"`
	HotelName     string               `json:"hotel_name,omitempty"`
	RoomID        string               `json:"room_id"`
	RoomNumber    string               `json:"room_number,omitempty"`
	RoomType      string               `json:"room_type,omitempty"`
	CheckIn       string               `json:"check_in"`
	CheckOut      string               `json:"check_out"`
	Nights        int64                `json:"nights"`
	TotalAmount   float64              `json:"total_amount"`
	Status        entity.BookingStatus `json:"status"`
	CancelReason  *string              `json:"cancel_reason,omitempty"`
	CancelledAt   *time.Time           `json:"cancelled_at,omitempty"`
	HoldExpiresAt *time.Time           `json:"hold_expires_at,omitempty"`
	Payment       *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	BookingID     string               `json:"booking_id"`
	Amount        float64              `json:"amount"`
	Method        string               `json:"method"`
	Status        entity.PaymentStatus `json:"status"`
	Reference     *string              `json:"reference,omitempty"`
	FailureReason *string              `json:"failure_reason,omitempty"`
	RefundAmount  float64              `json:"refund_amount,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type CancellationResponse struct {
	Booking      BookingResponse      `json:"booking"`
	RefundAmount float64              `json:"refund_amount"`
	RefundStatus entity.PaymentStatus `json:"refund_status,omitempty"`
}

type AvailabilityResponse struct {
	RoomID          string  `json:"room_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Available       bool    `json:"available"`
	Nights          int64   `json:"nights"`
	EstimatedAmount float64 `json:"estimated_amount"`
}

type SweepResponse struct {
	Expired int `json:"expired"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		UserID:       b.UserID.String(),
		HotelID:      b.HotelID.String(),
		RoomID:       b.RoomID.String(),
		CheckIn:      utils.FormatDate(b.CheckIn),
		CheckOut:     utils.FormatDate(b.CheckOut),
		Nights:       entity.StayNights(b.CheckIn, b.CheckOut),
		TotalAmount:  utils.FromCents(b.TotalCents),
		Status:       b.Status,
		CancelReason: b.CancelReason,
		CancelledAt:  b.CancelledAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func PaymentToResponse(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:            p.ID.String(),
		BookingID:     p.BookingID.String(),
		Amount:        utils.FromCents(p.AmountCents),
		Method:        p.Method,
		Status:        p.Status,
		Reference:     p.Reference,
		FailureReason: p.FailureReason,
		RefundAmount:  utils.FromCents(p.RefundCents),
		CreatedAt:     p.CreatedAt,
	}
}
