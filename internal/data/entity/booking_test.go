package entity

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBookingOverlaps(t *testing.T) {
	existing := &Booking{CheckIn: day("2025-03-10"), CheckOut: day("2025-03-13")}

	cases := []struct {
		name        string
		in, out     string
		wantOverlap bool
	}{
		{"identical", "2025-03-10", "2025-03-13", true},
		{"inside", "2025-03-11", "2025-03-12", true},
		{"covers", "2025-03-09", "2025-03-14", true},
		{"tail", "2025-03-12", "2025-03-15", true},
		{"head", "2025-03-08", "2025-03-11", true},
		{"back-to-back after", "2025-03-13", "2025-03-15", false},
		{"back-to-back before", "2025-03-08", "2025-03-10", false},
		{"disjoint", "2025-04-01", "2025-04-02", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := existing.Overlaps(day(tc.in), day(tc.out)); got != tc.wantOverlap {
				t.Fatalf("Overlaps(%s, %s) = %v, want %v", tc.in, tc.out, got, tc.wantOverlap)
			}
		})
	}
}

func TestBookingStatusBlocking(t *testing.T) {
	if !BookingStatusPending.Blocking() || !BookingStatusConfirmed.Blocking() {
		t.Fatalf("pending and confirmed bookings must block their room")
	}
	if BookingStatusCancelled.Blocking() {
		t.Fatalf("cancelled bookings must not block their room")
	}
	if BookingStatus("EXPIRED").Valid() {
		t.Fatalf("unknown status reported as valid")
	}
}

func TestStayNights(t *testing.T) {
	cases := []struct {
		name    string
		in, out time.Time
		want    int64
	}{
		{"one night", day("2030-01-01"), day("2030-01-02"), 1},
		{"leap february", day("2028-02-27"), day("2028-03-01"), 3},
		{"partial day", day("2030-01-01"), day("2030-01-02").Add(time.Minute), 2},
		{"sub-second remainder", day("2030-01-01"), day("2030-01-02").Add(time.Millisecond), 2},
		{"beyond duration range", day("2030-02-01"), day("2400-02-01"), 135139},
		{"empty", day("2030-01-01"), day("2030-01-01"), 0},
		{"reversed", day("2030-01-02"), day("2030-01-01"), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StayNights(tc.in, tc.out); got != tc.want {
				t.Fatalf("StayNights = %d, want %d", got, tc.want)
			}
		})
	}
}
