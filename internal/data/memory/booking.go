package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
)

type bookingRepository struct{ s *Store }

func (r *bookingRepository) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[booking.ID]; ok {
		return fmt.Errorf("create booking %s: %w", booking.ID, repository.ErrDuplicate)
	}
	if booking.Status.Blocking() {
		for _, other := range r.s.bookings {
			if other.RoomID == booking.RoomID && other.Status.Blocking() &&
				other.Overlaps(booking.CheckIn, booking.CheckOut) {
				return repository.ErrOverlap
			}
		}
	}
	r.s.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *bookingRepository) where(keep func(b *entity.Booking) bool) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		b := b
		if keep(&b) {
			out = append(out, &b)
		}
	}
	return out
}

func newestFirst(a, b *entity.Booking) bool { return a.CreatedAt.After(b.CreatedAt) }

func (r *bookingRepository) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.where(func(b *entity.Booking) bool { return b.UserID == userID })
	sortBookings(out, newestFirst)
	return page(out, limit, offset), nil
}

func (r *bookingRepository) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.where(func(b *entity.Booking) bool { return b.UserID == userID }))), nil
}

func matchStatus(status *entity.BookingStatus) func(b *entity.Booking) bool {
	return func(b *entity.Booking) bool { return status == nil || b.Status == *status }
}

func (r *bookingRepository) FindAll(_ context.Context, status *entity.BookingStatus, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.where(matchStatus(status))
	sortBookings(out, newestFirst)
	return page(out, limit, offset), nil
}

func (r *bookingRepository) CountAll(_ context.Context, status *entity.BookingStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.where(matchStatus(status)))), nil
}

func (r *bookingRepository) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.where(func(b *entity.Booking) bool { return b.RoomID == roomID })
	sortBookings(out, func(a, b *entity.Booking) bool { return a.CheckIn.Before(b.CheckIn) })
	return out, nil
}

func (r *bookingRepository) FindBlockingByRoom(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.where(func(b *entity.Booking) bool {
		return b.RoomID == roomID && b.Status.Blocking() && b.Overlaps(checkIn, checkOut)
	}), nil
}

func (r *bookingRepository) HasBlockingFrom(_ context.Context, roomID uuid.UUID, from time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookings {
		if b.RoomID == roomID && b.Status.Blocking() && b.CheckOut.After(from) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepository) FindStalePending(_ context.Context, createdBefore time.Time, limit int) ([]*entity.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.where(func(b *entity.Booking) bool {
		return b.Status == entity.BookingStatusPending && b.CreatedAt.Before(createdBefore)
	})
	sortBookings(out, func(a, b *entity.Booking) bool { return a.CreatedAt.Before(b.CreatedAt) })
	return page(out, limit, 0), nil
}

// transition applies a conditional status change. Callers hold the lock.
func (r *bookingRepository) transition(id uuid.UUID, from, to entity.BookingStatus, reason *string) (entity.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return b, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	if b.Status != from {
		return b, fmt.Errorf("booking %s: %w", id, repository.ErrStatusMismatch)
	}

	now := time.Now()
	b.Status = to
	b.UpdatedAt = now
	if reason != nil {
		b.CancelReason = reason
	}
	if to == entity.BookingStatusCancelled {
		b.CancelledAt = &now
	}
	return b, nil
}

func (r *bookingRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus, reason *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, err := r.transition(id, from, to, reason)
	if err != nil {
		return err
	}
	r.s.bookings[id] = b
	return nil
}

func (r *bookingRepository) Confirm(_ context.Context, id uuid.UUID, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, err := r.transition(id, entity.BookingStatusPending, entity.BookingStatusConfirmed, nil)
	if err != nil {
		return err
	}
	if _, ok := r.s.payments[payment.BookingID]; !ok || payment.BookingID != id {
		return fmt.Errorf("payment %s: %w", payment.ID, repository.ErrNotFound)
	}

	r.s.bookings[id] = b
	p := *payment
	p.UpdatedAt = time.Now()
	r.s.payments[id] = p
	return nil
}

func (r *bookingRepository) Delete(_ context.Context, id uuid.UUID, deletable ...entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	allowed := false
	for _, s := range deletable {
		if b.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("booking %s: %w", id, repository.ErrStatusMismatch)
	}

	delete(r.s.bookings, id)
	delete(r.s.payments, id)
	return nil
}

type paymentRepository struct{ s *Store }

func (r *paymentRepository) Create(_ context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.bookings[payment.BookingID]; !ok {
		return fmt.Errorf("payment for booking %s: %w", payment.BookingID, repository.ErrNotFound)
	}
	if _, ok := r.s.payments[payment.BookingID]; ok {
		return fmt.Errorf("payment for booking %s: %w", payment.BookingID, repository.ErrDuplicate)
	}
	r.s.payments[payment.BookingID] = *payment
	return nil
}

func (r *paymentRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *paymentRepository) matching(status *entity.PaymentStatus) []*entity.Payment {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		p := p
		if status == nil || p.Status == *status {
			out = append(out, &p)
		}
	}
	return out
}

func (r *paymentRepository) FindAll(_ context.Context, status *entity.PaymentStatus, limit, offset int) ([]*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.matching(status)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *paymentRepository) CountAll(_ context.Context, status *entity.PaymentStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matching(status))), nil
}

func (r *paymentRepository) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[bookingID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *paymentRepository) Update(_ context.Context, payment *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.payments[payment.BookingID]
	if !ok || existing.ID != payment.ID {
		return fmt.Errorf("payment %s: %w", payment.ID, repository.ErrNotFound)
	}
	p := *payment
	p.UpdatedAt = time.Now()
	r.s.payments[payment.BookingID] = p
	return nil
}
