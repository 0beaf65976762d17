package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"go.uber.org/zap"
)

type seedRoom struct {
	number string
	kind   string
	price  int64
}

var demoRooms = []seedRoom{
	{"101", "standard", 180000},
	{"102", "standard", 180000},
	{"201", "deluxe", 260000},
	{"301", "suite", 450000},
}

// seedDemo creates a guest, an admin and one hotel with a few rooms, then
// logs a bearer token for each account. Existing accounts are reused.
func seedDemo(ctx context.Context, rt *runtime) error {
	tokens, err := rt.tokens()
	if err != nil {
		return err
	}
	now := time.Now()

	for _, acct := range []struct {
		name, email string
		role        entity.UserRole
	}{
		{"Demo Guest", "guest@hotel.local", entity.RoleGuest},
		{"Demo Admin", "admin@hotel.local", entity.RoleAdmin},
	} {
		user := &entity.User{
			Base:     entity.NewBase(now),
			Name:     acct.name,
			Email:    acct.email,
			Role:     acct.role,
			IsActive: true,
		}
		if err := rt.repo.User.Create(ctx, user); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				return err
			}
			if user, err = rt.repo.User.FindByEmail(ctx, acct.email); err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("seed account %s vanished", acct.email)
			}
		}

		token, err := tokens.Issue(user.ID.String(), string(user.Role), user.Email)
		if err != nil {
			return err
		}
		rt.logger.Info("Seeded account",
			zap.String("email", user.Email),
			zap.String("role", string(user.Role)),
			zap.String("token", token),
		)
	}

	desc := "Demo property"
	hotel := &entity.Hotel{
		Base:        entity.NewBase(now),
		Name:        "Chao Phraya Riverside",
		Location:    "12 Charoen Krung Rd",
		City:        "Bangkok",
		Description: &desc,
	}
	if err := rt.repo.Hotel.Create(ctx, hotel); err != nil {
		return err
	}

	for _, r := range demoRooms {
		room := &entity.Room{
			Base:       entity.NewBase(now),
			HotelID:    hotel.ID,
			RoomNumber: r.number,
			Type:       r.kind,
			PriceCents: r.price,
			Listed:     true,
		}
		if err := rt.repo.Room.Create(ctx, room); err != nil {
			return err
		}
	}

	rt.logger.Info("Seeded hotel",
		zap.String("hotel_id", hotel.ID.String()),
		zap.Int("rooms", len(demoRooms)),
	)
	return nil
}
