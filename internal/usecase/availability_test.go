package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/memory"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestAvailabilityChecker(t *testing.T) {
	store := memory.NewStore()
	checker := NewAvailabilityChecker(memory.NewRepository(store).Booking, zap.NewNop())
	ctx := context.Background()
	room := uuid.New()

	held := entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		RoomID:       room,
		CheckIn:      day("2030-04-10"),
		CheckOut:     day("2030-04-14"),
		Status:       entity.BookingStatusConfirmed,
	}
	store.PutBooking(held)
	store.PutBooking(entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		RoomID:       room,
		CheckIn:      day("2030-04-20"),
		CheckOut:     day("2030-04-25"),
		Status:       entity.BookingStatusCancelled,
	})

	cases := []struct {
		name    string
		in, out string
		exclude uuid.UUID
		want    bool
	}{
		{"before", "2030-04-05", "2030-04-10", uuid.Nil, true},
		{"after", "2030-04-14", "2030-04-16", uuid.Nil, true},
		{"inside", "2030-04-11", "2030-04-12", uuid.Nil, false},
		{"covering", "2030-04-01", "2030-04-30", uuid.Nil, false},
		{"tail overlap", "2030-04-13", "2030-04-15", uuid.Nil, false},
		{"excluding itself", "2030-04-10", "2030-04-14", held.ID, true},
		{"cancelled stay ignored", "2030-04-21", "2030-04-22", uuid.Nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := checker.IsAvailable(ctx, room, day(tc.in), day(tc.out), tc.exclude)
			if err != nil {
				t.Fatalf("IsAvailable: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsAvailable = %v, want %v", got, tc.want)
			}
		})
	}

	if _, err := checker.IsAvailable(ctx, room, day("2030-04-14"), day("2030-04-10"), uuid.Nil); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("reversed range err = %v, want ErrInvalidDateRange", err)
	}
	if ok, _ := checker.IsAvailable(ctx, uuid.New(), day("2030-04-11"), day("2030-04-12"), uuid.Nil); !ok {
		t.Fatalf("other room reported occupied")
	}
}
