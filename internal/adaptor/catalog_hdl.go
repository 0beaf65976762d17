package adaptor

import (
	"encoding/json"
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetHotels handles GET /api/hotels (public)
func (h *CatalogHandler) GetHotels(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	var cityFilter *string
	if city := r.URL.Query().Get("city"); city != "" {
		cityFilter = &city
	}

	hotels, err := h.service.GetHotels(r.Context(), &req, cityFilter)
	if err != nil {
		writeServiceError(h.log, w, err, "get hotels")
		return
	}

	utils.ResponseSuccess(w, "success", hotels)
}

// GetHotelByID handles GET /api/hotels/{id} (public)
func (h *CatalogHandler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.service.GetHotelByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err, "get hotel by ID")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

// GetRoomByID handles GET /api/rooms/{id} (public)
func (h *CatalogHandler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoomByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err, "get room by ID")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// ==================== ADMIN METHODS ====================

// CreateHotel handles POST /api/admin/hotels (admin only)
func (h *CatalogHandler) CreateHotel(w http.ResponseWriter, r *http.Request) {
	var req request.HotelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	hotel, err := h.service.CreateHotel(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create hotel")
		return
	}

	utils.ResponseCreated(w, "success", hotel)
}

// UpdateHotel handles PUT /api/admin/hotels/{id} (admin only)
func (h *CatalogHandler) UpdateHotel(w http.ResponseWriter, r *http.Request) {
	var req request.HotelUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	hotel, err := h.service.UpdateHotel(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "update hotel")
		return
	}

	utils.ResponseSuccess(w, "success", hotel)
}

// DeleteHotel handles DELETE /api/admin/hotels/{id} (admin only)
func (h *CatalogHandler) DeleteHotel(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHotel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(h.log, w, err, "delete hotel")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateRoom handles POST /api/admin/hotels/{id}/rooms (admin only)
func (h *CatalogHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "create room")
		return
	}

	utils.ResponseCreated(w, "success", room)
}

// UpdateRoom handles PUT /api/admin/rooms/{id} (admin only)
func (h *CatalogHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	room, err := h.service.UpdateRoom(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "update room")
		return
	}

	utils.ResponseSuccess(w, "success", room)
}

// DeleteRoom handles DELETE /api/admin/rooms/{id} (admin only)
func (h *CatalogHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(h.log, w, err, "delete room")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
