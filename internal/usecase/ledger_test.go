package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeAmount(t *testing.T) {
	cases := []struct {
		name    string
		price   int64
		in, out time.Time
		want    int64
		wantErr error
	}{
		{"one night", 12500, day("2030-01-01"), day("2030-01-02"), 12500, nil},
		{"three nights", 10000, day("2030-01-10"), day("2030-01-13"), 30000, nil},
		{"across month end", 9999, day("2030-01-30"), day("2030-02-02"), 29997, nil},
		{"partial day rounds up", 10000, day("2030-01-01"), day("2030-01-02").Add(3 * time.Hour), 20000, nil},
		{"free room", 0, day("2030-01-01"), day("2030-01-05"), 0, nil},
		{"same day", 10000, day("2030-01-01"), day("2030-01-01"), 0, ErrInvalidDateRange},
		{"reversed", 10000, day("2030-01-05"), day("2030-01-01"), 0, ErrInvalidDateRange},
		{"full year", 100, day("2030-01-01"), day("2031-01-01"), 36500, nil},
		{"one night over the maximum", 100, day("2030-01-01"), day("2031-01-02"), 0, ErrStayTooLong},
		{"centuries long", 100, day("2030-02-01"), day("2400-02-01"), 0, ErrStayTooLong},
		{"total would overflow", 1 << 60, day("2030-01-01"), day("2030-01-20"), 0, ErrAmountTooLarge},
		{"largest exact total", math.MaxInt64 / 19, day("2030-01-01"), day("2030-01-20"), math.MaxInt64 / 19 * 19, nil},
		{"negative price", -1, day("2030-01-01"), day("2030-01-02"), 0, ErrInvalidPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeAmount(tc.price, tc.in, tc.out)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("amount = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLedgerTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ledger := NewBookingLedger(f.repo, zap.NewNop())

	now := f.clock.Now()
	b := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       f.guest.UserID,
		HotelID:      f.hotel.ID,
		RoomID:       f.room.ID,
		CheckIn:      day("2030-01-10"),
		CheckOut:     day("2030-01-12"),
		TotalCents:   20000,
		Status:       entity.BookingStatusPending,
	}
	if err := ledger.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := ledger.Transition(ctx, b.ID, entity.BookingStatusCancelled, entity.BookingStatusPending, ""); apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("CANCELLED->PENDING err = %v, want conflict", err)
	}
	if err := ledger.Transition(ctx, b.ID, entity.BookingStatusConfirmed, entity.BookingStatusCancelled, ""); apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("stale from-status err = %v, want conflict", err)
	}
	if err := ledger.Transition(ctx, uuid.New(), entity.BookingStatusPending, entity.BookingStatusCancelled, ""); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("missing booking err = %v, want ErrBookingNotFound", err)
	}
	if err := ledger.Transition(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusCancelled, "guest left"); err != nil {
		t.Fatalf("PENDING->CANCELLED: %v", err)
	}

	got, err := ledger.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != entity.BookingStatusCancelled || got.CancelledAt == nil || *got.CancelReason != "guest left" {
		t.Fatalf("booking = %+v", got)
	}

	// A cancelled stay no longer holds the room.
	again := *b
	again.ID = uuid.New()
	again.Status = entity.BookingStatusPending
	if err := ledger.Create(ctx, &again); err != nil {
		t.Fatalf("re-create over cancelled stay: %v", err)
	}
	dup := again
	dup.ID = uuid.New()
	if err := ledger.Create(ctx, &dup); !errors.Is(err, ErrRoomUnavailable) {
		t.Fatalf("overlapping create err = %v, want ErrRoomUnavailable", err)
	}

	if err := ledger.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete cancelled: %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]entity.BookingStatus]bool{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed}:   true,
		{entity.BookingStatusPending, entity.BookingStatusCancelled}:   true,
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled}: true,
	}
	all := []entity.BookingStatus{entity.BookingStatusPending, entity.BookingStatusConfirmed, entity.BookingStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			if got := canTransition(from, to); got != allowed[[2]entity.BookingStatus{from, to}] {
				t.Errorf("canTransition(%s, %s) = %v", from, to, got)
			}
		}
	}
}
