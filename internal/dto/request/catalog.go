package request

type HotelRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Location    string  `json:"location" validate:"required,max=500"`
	City        string  `json:"city" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type HotelUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location    *string `json:"location,omitempty" validate:"omitempty,min=1,max=500"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// MaxRoomPrice caps the nightly price in major units. Together with
// usecase.MaxStayNights it keeps every stay total well inside int64 cents.
const MaxRoomPrice = 1_000_000

type RoomRequest struct {
	RoomNumber string   `json:"room_number" validate:"required,max=20"`
	Type       string   `json:"type" validate:"required,max=50"`
	Price      *float64 `json:"price" validate:"required,gte=0,lte=1000000"`
}

type RoomUpdateRequest struct {
	RoomNumber *string  `json:"room_number,omitempty" validate:"omitempty,min=1,max=20"`
	Type       *string  `json:"type,omitempty" validate:"omitempty,min=1,max=50"`
	Price      *float64 `json:"price,omitempty" validate:"omitempty,gte=0,lte=1000000"`
	Listed     *bool    `json:"listed,omitempty"`
}
