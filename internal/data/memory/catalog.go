package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/google/uuid"
)

type hotelRepository struct{ s *Store }

func (r *hotelRepository) Create(_ context.Context, hotel *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.hotels[hotel.ID]; ok {
		return fmt.Errorf("create hotel %s: %w", hotel.Name, repository.ErrDuplicate)
	}
	r.s.hotels[hotel.ID] = *hotel
	return nil
}

func (r *hotelRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Hotel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	h, ok := r.s.hotels[id]
	if !ok || h.DeletedAt != nil {
		return nil, nil
	}
	return &h, nil
}

func (r *hotelRepository) filter(cityFilter *string) []*entity.Hotel {
	var out []*entity.Hotel
	for _, h := range r.s.hotels {
		if h.DeletedAt != nil {
			continue
		}
		if cityFilter != nil && *cityFilter != "" &&
			!strings.Contains(strings.ToLower(h.City), strings.ToLower(*cityFilter)) {
			continue
		}
		h := h
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (r *hotelRepository) FindAll(_ context.Context, limit, offset int, cityFilter *string) ([]*entity.Hotel, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.filter(cityFilter), limit, offset), nil
}

func (r *hotelRepository) CountAll(_ context.Context, cityFilter *string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.filter(cityFilter))), nil
}

func (r *hotelRepository) Update(_ context.Context, hotel *entity.Hotel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.hotels[hotel.ID]
	if !ok || h.DeletedAt != nil {
		return fmt.Errorf("hotel %s: %w", hotel.ID, repository.ErrNotFound)
	}
	r.s.hotels[hotel.ID] = *hotel
	return nil
}

func (r *hotelRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	h, ok := r.s.hotels[id]
	if !ok || h.DeletedAt != nil {
		return fmt.Errorf("hotel %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	h.DeletedAt = &now
	r.s.hotels[id] = h
	return nil
}

type roomRepository struct{ s *Store }

func (r *roomRepository) Create(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.rooms {
		if existing.HotelID == room.HotelID && existing.RoomNumber == room.RoomNumber && existing.DeletedAt == nil {
			return fmt.Errorf("create room %s: %w", room.RoomNumber, repository.ErrDuplicate)
		}
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt != nil {
		return nil, nil
	}
	return &room, nil
}

func (r *roomRepository) FindByHotelID(_ context.Context, hotelID uuid.UUID) ([]*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*entity.Room
	for _, room := range r.s.rooms {
		if room.HotelID == hotelID && room.DeletedAt == nil {
			room := room
			out = append(out, &room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *roomRepository) Update(_ context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.rooms[room.ID]
	if !ok || existing.DeletedAt != nil {
		return fmt.Errorf("room %s: %w", room.ID, repository.ErrNotFound)
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *roomRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt != nil {
		return fmt.Errorf("room %s: %w", id, repository.ErrNotFound)
	}
	now := time.Now()
	room.DeletedAt = &now
	r.s.rooms[id] = room
	return nil
}

func (r *roomRepository) SetListed(_ context.Context, id uuid.UUID, listed bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[id]
	if !ok || room.DeletedAt != nil {
		return fmt.Errorf("room %s: %w", id, repository.ErrNotFound)
	}
	room.Listed = listed
	room.UpdatedAt = time.Now()
	r.s.rooms[id] = room
	return nil
}
