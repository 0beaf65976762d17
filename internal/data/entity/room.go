package entity

import "github.com/google/uuid"

type Room struct {
	Base
	HotelID    uuid.UUID `db:"hotel_id"`
	RoomNumber string    `db:"room_number"`
	Type       string    `db:"type"`
	PriceCents int64     `db:"price_cents"` // per night
	Listed     bool      `db:"listed"`
}
