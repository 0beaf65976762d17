package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/memory"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) PublishJSON(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	p.keys = append(p.keys, key)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.keys {
		if k == key {
			n++
		}
	}
	return n
}

type fixture struct {
	store   *memory.Store
	repo    *repository.Repository
	gateway *payment.SimulatedGateway
	events  *recordingPublisher
	clock   *fakeClock
	svc     ReservationService

	guest Actor
	other Actor
	admin Actor
	hotel *entity.Hotel
	room  *entity.Room
}

func testPolicy() ReservationPolicy {
	return ReservationPolicy{
		PendingTTL:     15 * time.Minute,
		CancelLead:     2 * time.Hour,
		RefundPercent:  90,
		CheckInHour:    14,
		PaymentTimeout: 2 * time.Second,
		Currency:       "THB",
	}
}

func newFixture(t *testing.T, tweaks ...func(*ReservationPolicy)) *fixture {
	t.Helper()

	policy := testPolicy()
	for _, tweak := range tweaks {
		tweak(&policy)
	}

	store := memory.NewStore()
	f := &fixture{
		store:   store,
		repo:    memory.NewRepository(store),
		gateway: payment.NewSimulatedGateway(0),
		events:  &recordingPublisher{},
		clock:   &fakeClock{t: time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)},
	}
	f.svc = NewReservationService(f.repo, f.gateway, f.events, policy, zap.NewNop(), WithClock(f.clock.Now))

	ctx := context.Background()
	f.guest = f.addUser(t, "guest@example.com", entity.RoleGuest)
	f.other = f.addUser(t, "other@example.com", entity.RoleGuest)
	f.admin = f.addUser(t, "admin@example.com", entity.RoleAdmin)

	now := f.clock.Now()
	f.hotel = &entity.Hotel{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Riverside",
		Location: "12 Charoen Krung Rd",
		City:     "Bangkok",
	}
	if err := f.repo.Hotel.Create(ctx, f.hotel); err != nil {
		t.Fatalf("seed hotel: %v", err)
	}

	f.room = &entity.Room{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		HotelID:    f.hotel.ID,
		RoomNumber: "101",
		Type:       "deluxe",
		PriceCents: 10000,
		Listed:     true,
	}
	if err := f.repo.Room.Create(ctx, f.room); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	return f
}

func (f *fixture) addUser(t *testing.T, email string, role entity.UserRole) Actor {
	t.Helper()
	now := f.clock.Now()
	u := &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     email,
		Email:    email,
		Role:     role,
		IsActive: true,
	}
	if err := f.repo.User.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return Actor{UserID: u.ID, Role: role}
}

func (f *fixture) initiateReq(in, out string) *request.InitiateBookingRequest {
	return &request.InitiateBookingRequest{
		HotelID:  f.hotel.ID.String(),
		RoomID:   f.room.ID.String(),
		CheckIn:  in,
		CheckOut: out,
	}
}

func (f *fixture) initiate(t *testing.T, actor Actor, in, out string) *response.BookingResponse {
	t.Helper()
	resp, err := f.svc.Initiate(context.Background(), actor, f.initiateReq(in, out))
	if err != nil {
		t.Fatalf("Initiate(%s, %s): %v", in, out, err)
	}
	return resp
}

func finalizeReq(b *response.BookingResponse, method string) *request.FinalizeBookingRequest {
	amount := b.TotalAmount
	return &request.FinalizeBookingRequest{
		BookingID:     b.ID,
		TotalAmount:   &amount,
		PaymentMethod: method,
	}
}

func (f *fixture) confirm(t *testing.T, actor Actor, in, out string) *response.BookingResponse {
	t.Helper()
	b := f.initiate(t, actor, in, out)
	resp, err := f.svc.Finalize(context.Background(), actor, finalizeReq(b, "tokn_test"))
	if err != nil {
		t.Fatalf("Finalize(%s): %v", b.ID, err)
	}
	return resp
}

func (f *fixture) booking(t *testing.T, id string) *entity.Booking {
	t.Helper()
	b, err := f.repo.Booking.FindByID(context.Background(), uuid.MustParse(id))
	if err != nil || b == nil {
		t.Fatalf("load booking %s: %v", id, err)
	}
	return b
}

func (f *fixture) payment(t *testing.T, id string) *entity.Payment {
	t.Helper()
	p, err := f.repo.Payment.FindByBookingID(context.Background(), uuid.MustParse(id))
	if err != nil {
		t.Fatalf("load payment for %s: %v", id, err)
	}
	return p
}
