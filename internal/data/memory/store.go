// Package memory is an in-process implementation of the repository
// interfaces. It enforces the same constraints as the postgres schema: no
// two holding bookings of a room overlap, a booking has at most one payment
// and deleting a booking deletes its payment.
package memory

import (
	"sort"
	"sync"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]entity.User
	hotels   map[uuid.UUID]entity.Hotel
	rooms    map[uuid.UUID]entity.Room
	bookings map[uuid.UUID]entity.Booking
	payments map[uuid.UUID]entity.Payment // keyed by booking ID
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]entity.User),
		hotels:   make(map[uuid.UUID]entity.Hotel),
		rooms:    make(map[uuid.UUID]entity.Room),
		bookings: make(map[uuid.UUID]entity.Booking),
		payments: make(map[uuid.UUID]entity.Payment),
	}
}

// NewRepository exposes s through the repository aggregate.
func NewRepository(s *Store) *repository.Repository {
	return &repository.Repository{
		User:    &userRepository{s},
		Hotel:   &hotelRepository{s},
		Room:    &roomRepository{s},
		Booking: &bookingRepository{s},
		Payment: &paymentRepository{s},
	}
}

// PutBooking stores b as is, skipping the overlap constraint. It exists to
// build fixtures that the constraint would otherwise refuse.
func (s *Store) PutBooking(b entity.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func sortBookings(items []*entity.Booking, less func(a, b *entity.Booking) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
