package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/memory"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/auth"
	"hotel-booking/pkg/payment"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  any             `json:"errors"`
}

type testServer struct {
	handler http.Handler
	guest   string
	other   string
	admin   string
	hotelID uuid.UUID
	roomID  uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	repo := memory.NewRepository(memory.NewStore())
	tokens, err := auth.NewTokenManager("wire-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	config := &utils.Config{
		App: utils.AppConfig{Name: "hotel-booking"},
		Booking: utils.BookingConfig{
			PendingTTL:     15 * time.Minute,
			CancelLead:     2 * time.Hour,
			RefundPercent:  90,
			CheckInHour:    14,
			PaymentTimeout: time.Second,
			Currency:       "THB",
		},
	}

	app := Wiring(repo, payment.NewSimulatedGateway(0), usecase.NopPublisher{}, tokens, config, zap.NewNop())
	srv := &testServer{handler: app.Router}

	now := time.Now()
	issue := func(email string, role entity.UserRole) string {
		u := &entity.User{
			Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Name:     email,
			Email:    email,
			Role:     role,
			IsActive: true,
		}
		if err := repo.User.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		token, err := tokens.Issue(u.ID.String(), string(role), email)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		return token
	}
	srv.guest = issue("guest@example.com", entity.RoleGuest)
	srv.other = issue("other@example.com", entity.RoleGuest)
	srv.admin = issue("admin@example.com", entity.RoleAdmin)

	hotel := &entity.Hotel{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, Name: "Harbour View", Location: "1 Pier Rd", City: "Phuket"}
	room := &entity.Room{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}, HotelID: hotel.ID, RoomNumber: "204", Type: "suite", PriceCents: 250000, Listed: true}
	if err := repo.Hotel.Create(ctx, hotel); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	if err := repo.Room.Create(ctx, room); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	srv.hotelID, srv.roomID = hotel.ID, room.ID

	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec.Code, env
}

func (s *testServer) initiateBody(in, out string) map[string]string {
	return map[string]string{
		"hotel_id":  s.hotelID.String(),
		"room_id":   s.roomID.String(),
		"check_in":  in,
		"check_out": out,
	}
}

type bookingData struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

func TestBookingFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)

	if code, _ := s.do(t, http.MethodGet, "/health", "", nil); code != http.StatusOK {
		t.Fatalf("health = %d", code)
	}

	if code, _ := s.do(t, http.MethodPost, "/api/bookings/initiate", "", s.initiateBody("2099-05-01", "2099-05-03")); code != http.StatusUnauthorized {
		t.Fatalf("initiate without token = %d, want 401", code)
	}

	code, env := s.do(t, http.MethodPost, "/api/bookings/initiate", s.guest, s.initiateBody("2099-05-01", "2099-05-03"))
	if code != http.StatusCreated {
		t.Fatalf("initiate = %d (%s), want 201", code, env.Message)
	}
	var booking bookingData
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Status != "PENDING" || booking.TotalAmount != 5000 {
		t.Fatalf("booking = %+v", booking)
	}

	if code, env := s.do(t, http.MethodPost, "/api/bookings/initiate", s.other, s.initiateBody("2099-05-02", "2099-05-04")); code != http.StatusConflict {
		t.Fatalf("overlapping initiate = %d (%s), want 409", code, env.Message)
	}

	stale := map[string]any{"booking_id": booking.ID, "total_amount": 4999.0, "payment_method": "tokn_test"}
	if code, _ := s.do(t, http.MethodPost, "/api/bookings/finalize", s.guest, stale); code != http.StatusConflict {
		t.Fatalf("stale finalize = %d, want 409", code)
	}

	if code, _ := s.do(t, http.MethodGet, "/api/bookings/"+booking.ID, s.other, nil); code != http.StatusForbidden {
		t.Fatalf("foreign read = %d, want 403", code)
	}

	finalize := map[string]any{"booking_id": booking.ID, "total_amount": booking.TotalAmount, "payment_method": "tokn_test"}
	code, env = s.do(t, http.MethodPost, "/api/bookings/finalize", s.guest, finalize)
	if code != http.StatusOK {
		t.Fatalf("finalize = %d (%s), want 200", code, env.Message)
	}
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Status != "CONFIRMED" {
		t.Fatalf("status = %s, want CONFIRMED", booking.Status)
	}

	if code, _ := s.do(t, http.MethodPost, "/api/bookings/finalize", s.guest, finalize); code != http.StatusConflict {
		t.Fatalf("second finalize = %d, want 409", code)
	}

	code, env = s.do(t, http.MethodGet, "/api/admin/payments?status=COMPLETED", s.admin, nil)
	if code != http.StatusOK {
		t.Fatalf("list payments = %d (%s), want 200", code, env.Message)
	}
	var payments struct {
		Data []struct {
			ID        string  `json:"id"`
			BookingID string  `json:"booking_id"`
			Amount    float64 `json:"amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &payments); err != nil {
		t.Fatalf("decode payments: %v", err)
	}
	if len(payments.Data) != 1 || payments.Data[0].BookingID != booking.ID || payments.Data[0].Amount != 5000 {
		t.Fatalf("payments = %+v", payments.Data)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/admin/payments/"+payments.Data[0].ID, s.admin, nil); code != http.StatusOK {
		t.Fatalf("read payment = %d, want 200", code)
	}
	if code, _ := s.do(t, http.MethodDelete, "/api/bookings/"+booking.ID, s.guest, nil); code != http.StatusConflict {
		t.Fatalf("delete confirmed = %d, want 409", code)
	}

	code, env = s.do(t, http.MethodPut, "/api/bookings/"+booking.ID+"/cancel", s.guest, nil)
	if code != http.StatusOK {
		t.Fatalf("cancel = %d (%s), want 200", code, env.Message)
	}
	var cancelled struct {
		RefundAmount float64 `json:"refund_amount"`
		RefundStatus string  `json:"refund_status"`
	}
	if err := json.Unmarshal(env.Data, &cancelled); err != nil {
		t.Fatalf("decode cancellation: %v", err)
	}
	if cancelled.RefundAmount != 4500 || cancelled.RefundStatus != "REFUNDED" {
		t.Fatalf("cancellation = %+v, want 4500 REFUNDED", cancelled)
	}

	if code, _ := s.do(t, http.MethodDelete, "/api/bookings/"+booking.ID, s.guest, nil); code != http.StatusOK {
		t.Fatalf("delete cancelled = %d, want 200", code)
	}
	if code, _ := s.do(t, http.MethodGet, "/api/bookings/"+booking.ID, s.guest, nil); code != http.StatusNotFound {
		t.Fatalf("read deleted = %d, want 404", code)
	}
}

func TestDeclinedPaymentReturns402(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/bookings/initiate", s.guest, s.initiateBody("2099-06-01", "2099-06-02"))
	var booking bookingData
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}

	declined := map[string]any{"booking_id": booking.ID, "total_amount": booking.TotalAmount, "payment_method": payment.MethodDeclined}
	code, env := s.do(t, http.MethodPost, "/api/bookings/finalize", s.guest, declined)
	if code != http.StatusPaymentRequired {
		t.Fatalf("declined finalize = %d, want 402", code)
	}
	if env.Message != "card declined" {
		t.Errorf("message = %q", env.Message)
	}

	// The room is free again.
	code, env = s.do(t, http.MethodGet, "/api/rooms/"+s.roomID.String()+"/availability?check_in=2099-06-01&check_out=2099-06-02", "", nil)
	if code != http.StatusOK {
		t.Fatalf("availability = %d", code)
	}
	var avail struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(env.Data, &avail); err != nil || !avail.Available {
		t.Fatalf("availability = %s (%v)", env.Data, err)
	}
}

func TestRequestValidationAndRoles(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"reversed dates", http.MethodPost, "/api/bookings/initiate", s.guest, s.initiateBody("2099-05-03", "2099-05-01"), http.StatusBadRequest},
		{"missing room", http.MethodPost, "/api/bookings/initiate", s.guest, map[string]string{"hotel_id": s.hotelID.String()}, http.StatusBadRequest},
		{"finalize without amount", http.MethodPost, "/api/bookings/finalize", s.guest, map[string]string{"booking_id": uuid.NewString(), "payment_method": "x"}, http.StatusBadRequest},
		{"availability without dates", http.MethodGet, "/api/rooms/" + uuid.NewString() + "/availability", "", nil, http.StatusBadRequest},
		{"guest on admin list", http.MethodGet, "/api/admin/bookings", s.guest, nil, http.StatusForbidden},
		{"guest creating hotel", http.MethodPost, "/api/admin/hotels", s.guest, map[string]string{"name": "x"}, http.StatusForbidden},
		{"admin list", http.MethodGet, "/api/admin/bookings?status=PENDING", s.admin, nil, http.StatusOK},
		{"admin list bad status", http.MethodGet, "/api/admin/bookings?status=LOST", s.admin, nil, http.StatusBadRequest},
		{"admin sweep", http.MethodPost, "/api/admin/bookings/sweep", s.admin, nil, http.StatusOK},
		{"unknown hotel", http.MethodGet, "/api/hotels/" + uuid.NewString(), "", nil, http.StatusNotFound},
		{"hotel list", http.MethodGet, "/api/hotels?city=phuket", "", nil, http.StatusOK},
		{"profile", http.MethodGet, "/api/user/profile", s.guest, nil, http.StatusOK},
		{"profile without token", http.MethodGet, "/api/user/profile", "", nil, http.StatusUnauthorized},
		{"guest listing users", http.MethodGet, "/api/admin/users", s.guest, nil, http.StatusForbidden},
		{"admin listing users", http.MethodGet, "/api/admin/users?page=1&per_page=2", s.admin, nil, http.StatusOK},
		{"admin deleting unknown user", http.MethodDelete, "/api/admin/users/" + uuid.NewString(), s.admin, nil, http.StatusNotFound},
		{"room priced over the cap", http.MethodPost, "/api/admin/hotels/" + s.hotelID.String() + "/rooms", s.admin, map[string]any{"room_number": "PH", "type": "suite", "price": 1000000.01}, http.StatusBadRequest},
		{"stay beyond a year", http.MethodPost, "/api/bookings/initiate", s.guest, s.initiateBody("2099-05-01", "2100-05-02"), http.StatusBadRequest},
		{"guest listing payments", http.MethodGet, "/api/admin/payments", s.guest, nil, http.StatusForbidden},
		{"admin listing payments", http.MethodGet, "/api/admin/payments?status=COMPLETED", s.admin, nil, http.StatusOK},
		{"admin payments bad status", http.MethodGet, "/api/admin/payments?status=LOST", s.admin, nil, http.StatusBadRequest},
		{"admin reading unknown payment", http.MethodGet, "/api/admin/payments/" + uuid.NewString(), s.admin, nil, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := s.do(t, tc.method, tc.path, tc.token, tc.body)
			if code != tc.want {
				t.Fatalf("%s %s = %d (%s), want %d", tc.method, tc.path, code, env.Message, tc.want)
			}
		})
	}
}
