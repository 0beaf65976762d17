package usecase

import (
	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/payment"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
	Catalog     CatalogService
	User        UserService
	Payment     PaymentService
}

func NewService(repo *repository.Repository, gateway payment.Gateway, events EventPublisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Reservation: NewReservationService(repo, gateway, events, PolicyFromConfig(config.Booking), log),
		Catalog:     NewCatalogService(repo, log),
		User:        NewUserService(repo, log),
		Payment:     NewPaymentService(repo, log),
	}
}
