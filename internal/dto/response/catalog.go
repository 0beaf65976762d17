package response

import (
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/utils"
)

type HotelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	City        string    `json:"city"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type HotelDetailResponse struct {
	HotelResponse
	Rooms []RoomResponse `json:"rooms"`
}

type RoomResponse struct {
	ID         string  `json:"id"`
	HotelID    string  `json:"hotel_id"`
	RoomNumber string  `json:"room_number"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	Listed     bool    `json:"listed"`
}

// Helper converters
func HotelToResponse(hotel *entity.Hotel) HotelResponse {
	return HotelResponse{
		ID:          hotel.ID.String(),
		Name:        hotel.Name,
		Location:    hotel.Location,
		City:        hotel.City,
		Description: hotel.Description,
		CreatedAt:   hotel.CreatedAt,
		UpdatedAt:   hotel.UpdatedAt,
	}
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:         room.ID.String(),
		HotelID:    room.HotelID.String(),
		RoomNumber: room.RoomNumber,
		Type:       room.Type,
		Price:      utils.FromCents(room.PriceCents),
		Listed:     room.Listed,
	}
}
