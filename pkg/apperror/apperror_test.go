package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	sentinel := Conflict("room unavailable")
	wrapped := fmt.Errorf("initiate: %w", sentinel.Wrap(errors.New("exclusion violation")))

	if got := KindOf(wrapped); got != KindConflict {
		t.Fatalf("KindOf = %q, want %q", got, KindConflict)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Fatalf("errors.Is should match a wrapped copy of the sentinel")
	}
	if errors.Is(wrapped, Conflict("other")) {
		t.Fatalf("errors.Is matched a different message")
	}
	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Fatalf("plain error kind = %q, want internal", got)
	}
	if got := Message(errors.New("boom")); got != "Internal server error" {
		t.Fatalf("plain error message leaked: %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:   http.StatusBadRequest,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindStale:        http.StatusConflict,
		KindPayment:      http.StatusPaymentRequired,
		KindForbidden:    http.StatusForbidden,
		KindUnauthorized: http.StatusUnauthorized,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.HTTPStatus(); got != want {
			t.Fatalf("%s.HTTPStatus() = %d, want %d", kind, got, want)
		}
	}
}
