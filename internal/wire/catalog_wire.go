package wire

import (
	"hotel-booking/internal/adaptor"
	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/auth"
	"hotel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	tokens *auth.TokenManager,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/hotels?city=Bangkok&page=1&per_page=10
	r.Get("/api/hotels", catalogHandler.GetHotels)
	r.Get("/api/hotels/{id}", catalogHandler.GetHotelByID)
	r.Get("/api/rooms/{id}", catalogHandler.GetRoomByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens, log))
		r.Use(middleware.RequireRole(log, string(entity.RoleAdmin)))

		r.Post("/api/admin/hotels", catalogHandler.CreateHotel)
		r.Put("/api/admin/hotels/{id}", catalogHandler.UpdateHotel)
		r.Delete("/api/admin/hotels/{id}", catalogHandler.DeleteHotel)
		r.Post("/api/admin/hotels/{id}/rooms", catalogHandler.CreateRoom)

		r.Put("/api/admin/rooms/{id}", catalogHandler.UpdateRoom)
		r.Delete("/api/admin/rooms/{id}", catalogHandler.DeleteRoom)
	})
}
