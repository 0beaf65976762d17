package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/auth"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	tokens *auth.TokenManager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/rooms/{id}/availability?check_in=2030-01-10&check_out=2030-01-13
	r.Get("/api/rooms/{id}/availability", bookingHandler.CheckAvailability)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))

		r.Post("/api/bookings/initiate", bookingHandler.Initiate)
		r.Post("/api/bookings/finalize", bookingHandler.Finalize)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.Cancel)
		r.Delete("/api/bookings/{id}", bookingHandler.Delete)

		// Owner or admin
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		r.Get("/api/admin/bookings", bookingHandler.GetAllBookings)
		r.Post("/api/admin/bookings/sweep", bookingHandler.Sweep)
		r.Get("/api/admin/rooms/{id}/bookings", bookingHandler.GetRoomBookings)
	})
}
