package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("connection reset")
	foreignKey := &pgconn.PgError{Code: "23503", ConstraintName: "bookings_room_id_fkey"}

	cases := []struct {
		name string
		in   error
		want error
	}{
		{"exclusion violation", &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}, ErrOverlap},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "rooms_hotel_id_room_number_key"}, ErrDuplicate},
		{"wrapped exclusion violation", fmt.Errorf("insert booking: %w", &pgconn.PgError{Code: "23P01"}), ErrOverlap},
		{"other constraint", foreignKey, foreignKey},
		{"plain error", plain, plain},
		{"nil", nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.in)
			if got != tc.want {
				t.Fatalf("translate(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
