package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/dto/request"
	"hotel-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestCatalogLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalog := NewCatalogService(f.repo, zap.NewNop())

	hotel, err := catalog.CreateHotel(ctx, &request.HotelRequest{
		Name:     "Old Town Inn",
		Location: "3 Thapae Rd",
		City:     "Chiang Mai",
	})
	if err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}

	price := 85.5
	room, err := catalog.CreateRoom(ctx, hotel.ID, &request.RoomRequest{RoomNumber: "7", Type: "twin", Price: &price})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.Price != 85.5 || !room.Listed {
		t.Fatalf("room = %+v", room)
	}

	if _, err := catalog.CreateRoom(ctx, hotel.ID, &request.RoomRequest{RoomNumber: "7", Type: "twin", Price: &price}); !errors.Is(err, ErrDuplicateRoom) {
		t.Fatalf("duplicate room err = %v, want ErrDuplicateRoom", err)
	}

	detail, err := catalog.GetHotelByID(ctx, hotel.ID)
	if err != nil {
		t.Fatalf("GetHotelByID: %v", err)
	}
	if len(detail.Rooms) != 1 {
		t.Fatalf("rooms = %d, want 1", len(detail.Rooms))
	}

	city := "Chiang Mai"
	list, err := catalog.GetHotels(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10}, &city)
	if err != nil {
		t.Fatalf("GetHotels: %v", err)
	}
	if list.Pagination.Total != 1 || list.Data[0].ID != hotel.ID {
		t.Fatalf("hotels in %s = %+v", city, list.Pagination)
	}

	newPrice := 90.0
	updated, err := catalog.UpdateRoom(ctx, room.ID, &request.RoomUpdateRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	if updated.Price != 90 {
		t.Fatalf("price = %v, want 90", updated.Price)
	}

	if err := catalog.DeleteRoom(ctx, room.ID); err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if _, err := catalog.GetRoomByID(ctx, room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("deleted room err = %v, want ErrRoomNotFound", err)
	}
	if err := catalog.DeleteHotel(ctx, hotel.ID); err != nil {
		t.Fatalf("DeleteHotel: %v", err)
	}
	if _, err := catalog.GetHotelByID(ctx, hotel.ID); !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("deleted hotel err = %v, want ErrHotelNotFound", err)
	}
}

func TestCatalogRefusesToDropHeldRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalog := NewCatalogService(f.repo, zap.NewNop())

	f.initiate(t, f.guest, "2030-01-10", "2030-01-12")

	// The hold is judged against the real date, so the stay sits far in the future.
	if err := catalog.DeleteRoom(ctx, f.room.ID.String()); !errors.Is(err, ErrRoomHasBookings) {
		t.Fatalf("DeleteRoom err = %v, want ErrRoomHasBookings", err)
	}
	if err := catalog.DeleteHotel(ctx, f.hotel.ID.String()); !errors.Is(err, ErrRoomHasBookings) {
		t.Fatalf("DeleteHotel err = %v, want ErrRoomHasBookings", err)
	}
	if _, err := catalog.GetHotelByID(ctx, uuid.NewString()); !errors.Is(err, ErrHotelNotFound) {
		t.Fatalf("unknown hotel err = %v, want ErrHotelNotFound", err)
	}
	if _, err := catalog.GetRoomByID(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad id err = %v, want ErrInvalidID", err)
	}
}

func TestCatalogCapsRoomPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalog := NewCatalogService(f.repo, zap.NewNop())

	tooMuch := float64(request.MaxRoomPrice + 1)
	_, err := catalog.CreateRoom(ctx, f.hotel.ID.String(), &request.RoomRequest{RoomNumber: "PH", Type: "suite", Price: &tooMuch})
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("CreateRoom err = %v, want validation error", err)
	}
	if _, err := catalog.UpdateRoom(ctx, f.room.ID.String(), &request.RoomUpdateRequest{Price: &tooMuch}); apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("UpdateRoom err = %v, want validation error", err)
	}

	ceiling := float64(request.MaxRoomPrice)
	room, err := catalog.CreateRoom(ctx, f.hotel.ID.String(), &request.RoomRequest{RoomNumber: "PH", Type: "suite", Price: &ceiling})
	if err != nil {
		t.Fatalf("CreateRoom at the cap: %v", err)
	}
	if room.Price != ceiling {
		t.Fatalf("price = %v, want %v", room.Price, ceiling)
	}
}
