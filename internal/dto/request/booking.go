package request

type InitiateBookingRequest struct {
	HotelID  string `json:"hotel_id" validate:"required,uuid"`
	RoomID   string `json:"room_id" validate:"required,uuid"`
	CheckIn  string `json:"check_in" validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

// FinalizeBookingRequest echoes what the guest was shown at initiation.
// TotalAmount must equal the stored amount; the optional stay fields, when
// sent, must equal the stored stay.
type FinalizeBookingRequest struct {
	BookingID     string   `json:"booking_id" validate:"required,uuid"`
	TotalAmount   *float64 `json:"total_amount" validate:"required,gte=0"`
	PaymentMethod string   `json:"payment_method" validate:"required,max=128"`
	RoomID        *string  `json:"room_id,omitempty" validate:"omitempty,uuid"`
	CheckIn       *string  `json:"check_in,omitempty" validate:"omitempty,date"`
	CheckOut      *string  `json:"check_out,omitempty" validate:"omitempty,date"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in" validate:"required,date"`
	CheckOut string `json:"check_out" validate:"required,date"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED"`
}

type PaymentListRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED REFUND_FAILED"`
}
