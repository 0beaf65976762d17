package adaptor

import (
	"hotel-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Catalog *CatalogHandler
	User    *UserHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Reservation, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		User:    NewUserHandler(service.User, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}
