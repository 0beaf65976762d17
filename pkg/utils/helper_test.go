package utils

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-10")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}
	if _, err := ParseDate("10/03/2025"); err == nil {
		t.Fatalf("expected an error for a non ISO date")
	}
	if FormatDate(got) != "2025-03-10" {
		t.Fatalf("FormatDate round trip = %s", FormatDate(got))
	}
}

func TestCents(t *testing.T) {
	cases := []struct {
		amount float64
		cents  int64
	}{
		{300, 30000},
		{0.1 + 0.2, 30},
		{19.99, 1999},
	}
	for _, tc := range cases {
		if got := ToCents(tc.amount); got != tc.cents {
			t.Fatalf("ToCents(%v) = %d, want %d", tc.amount, got, tc.cents)
		}
	}
	if FromCents(27000) != 270 {
		t.Fatalf("FromCents(27000) = %v", FromCents(27000))
	}
}

func TestValidateStructDate(t *testing.T) {
	type payload struct {
		CheckIn string `validate:"required,date"`
	}
	if errs := ValidateStruct(payload{CheckIn: "2025-13-01"}); errs["CheckIn"] == "" {
		t.Fatalf("expected a date validation error, got %v", errs)
	}
	if errs := ValidateStruct(payload{CheckIn: "2025-12-01"}); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
