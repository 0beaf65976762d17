package usecase

import (
	"fmt"

	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"
)

var (
	ErrInvalidDateRange = apperror.Validation("check-out must be after check-in")
	ErrCheckInPast      = apperror.Validation("check-in must not be in the past")
	ErrUnknownHotel     = apperror.Validation("hotel not found")
	ErrUnknownRoom      = apperror.Validation("room not found")
	ErrUnknownGuest     = apperror.Validation("guest not found")
	ErrRoomNotInHotel   = apperror.Validation("room does not belong to hotel")
	ErrInvalidID        = apperror.Validation("invalid ID format")
	ErrInvalidPrice     = apperror.Validation("price must not be negative")
	ErrStayTooLong      = apperror.Validation(fmt.Sprintf("stay must not exceed %d nights", MaxStayNights))
	ErrAmountTooLarge   = apperror.Validation("stay total exceeds the supported amount")

	ErrBookingNotFound = apperror.NotFound("booking not found")
	ErrHotelNotFound   = apperror.NotFound("hotel not found")
	ErrRoomNotFound    = apperror.NotFound("room not found")
	ErrUserNotFound    = apperror.NotFound("user not found")
	ErrPaymentNotFound = apperror.NotFound("payment not found")

	ErrRoomUnavailable       = apperror.Conflict("room is not available for the selected dates")
	ErrRoomNoLongerAvailable = apperror.Conflict("room is no longer available for the selected dates")
	ErrNotPending            = apperror.Conflict("booking is not awaiting payment")
	ErrNotConfirmed          = apperror.Conflict("only confirmed bookings can be cancelled")
	ErrConfirmedDelete       = apperror.Conflict("confirmed bookings must be cancelled before deletion")
	ErrHoldExpired           = apperror.Conflict("booking hold has expired")
	ErrPaymentInProgress     = apperror.Conflict("payment already submitted for this booking")
	ErrRoomHasBookings       = apperror.Conflict("room has active bookings")
	ErrDuplicateRoom         = apperror.Conflict("room number already exists in this hotel")
	ErrUserHasStays          = apperror.Conflict("user has upcoming stays")

	ErrAmountMismatch = apperror.Stale("booking amount no longer matches")
	ErrStaleBooking   = apperror.Stale("booking details no longer match")

	ErrNotOwner = apperror.Forbidden("booking belongs to another guest")
)

func validationError(errs map[string]string) error {
	return apperror.Validation("validation failed: " + utils.FormatValidationErrors(errs))
}
