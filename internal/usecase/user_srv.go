package usecase

import (
	"context"
	"fmt"
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, actor Actor) (*response.UserResponse, error) {
	user, err := us.repo.User.FindByID(ctx, actor.UserID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("get profile %s: %w", actor.UserID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get all users: %w", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.Limit(), total), nil
}

// DeleteUser deactivates an account. Guests with a pending or confirmed
// stay that has not ended yet are refused.
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrInvalidID
	}

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("get user %s: %w", userID, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	upcoming, err := us.hasUpcomingStay(ctx, id)
	if err != nil {
		return err
	}
	if upcoming {
		return ErrUserHasStays
	}

	if err := us.repo.User.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", userID))
		return fmt.Errorf("delete user %s: %w", userID, err)
	}

	us.log.Info("User deleted", zap.String("user_id", userID), zap.String("email", user.Email))
	return nil
}

func (us *userService) hasUpcomingStay(ctx context.Context, userID uuid.UUID) (bool, error) {
	const batch = 100
	today := utils.TruncateDay(time.Now())

	for offset := 0; ; offset += batch {
		bookings, err := us.repo.Booking.FindByUserID(ctx, userID, batch, offset)
		if err != nil {
			return false, fmt.Errorf("get bookings for user %s: %w", userID, err)
		}
		for _, b := range bookings {
			if b.Status.Blocking() && b.CheckOut.After(today) {
				return true, nil
			}
		}
		if len(bookings) < batch {
			return false, nil
		}
	}
}
