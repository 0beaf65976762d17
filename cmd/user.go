package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		name  string
		email string
		phone string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a guest or admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			userRole := entity.UserRole(strings.ToLower(role))
			if userRole != entity.RoleGuest && userRole != entity.RoleAdmin {
				return fmt.Errorf("--role must be %s or %s", entity.RoleGuest, entity.RoleAdmin)
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.openStorage(cmd.Context()); err != nil {
				return err
			}
			if err := rt.requirePostgres("user add"); err != nil {
				return err
			}

			now := time.Now()
			user := &entity.User{
				Base:     entity.NewBase(now),
				Name:     name,
				Email:    strings.ToLower(email),
				Role:     userRole,
				IsActive: true,
			}
			if phone != "" {
				user.Phone = &phone
			}

			if err := rt.repo.User.Create(cmd.Context(), user); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return fmt.Errorf("email %s is already registered", user.Email)
				}
				return err
			}

			cmd.Printf("created %s %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&role, "role", string(entity.RoleGuest), "guest or admin")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
