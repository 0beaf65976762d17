package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/dto/request"

	"go.uber.org/zap"
)

func TestUserProfileAndListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := NewUserService(f.repo, zap.NewNop())

	profile, err := users.GetProfile(ctx, f.guest)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Email != "guest@example.com" || !profile.IsActive {
		t.Fatalf("profile = %+v", profile)
	}

	list, err := users.GetAllUsers(ctx, &request.PaginatedRequest{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("GetAllUsers: %v", err)
	}
	if list.Pagination.Total != 3 || len(list.Data) != 2 || list.Pagination.TotalPages != 2 {
		t.Fatalf("list = %+v", list.Pagination)
	}
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := NewUserService(f.repo, zap.NewNop())

	f.initiate(t, f.guest, "2030-01-05", "2030-01-07")
	if err := users.DeleteUser(ctx, f.guest.UserID.String()); !errors.Is(err, ErrUserHasStays) {
		t.Fatalf("delete guest with stay err = %v, want ErrUserHasStays", err)
	}

	if err := users.DeleteUser(ctx, f.other.UserID.String()); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := users.GetProfile(ctx, f.other); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("profile after delete err = %v, want ErrUserNotFound", err)
	}
	if err := users.DeleteUser(ctx, f.other.UserID.String()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("second delete err = %v, want ErrUserNotFound", err)
	}
	if err := users.DeleteUser(ctx, "not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad id err = %v, want ErrInvalidID", err)
	}

	// A deleted guest can no longer book.
	if _, err := f.svc.Initiate(ctx, f.other, f.initiateReq("2030-02-01", "2030-02-02")); !errors.Is(err, ErrUnknownGuest) {
		t.Fatalf("initiate by deleted guest err = %v, want ErrUnknownGuest", err)
	}
}
