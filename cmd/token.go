package cmd

import (
	"errors"
	"fmt"
	"strings"

	"hotel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (userID == "") == (email == "") {
				return errors.New("pass exactly one of --user-id or --email")
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.openStorage(cmd.Context()); err != nil {
				return err
			}
			if err := rt.requirePostgres("token"); err != nil {
				return err
			}
			tokens, err := rt.tokens()
			if err != nil {
				return err
			}

			var user *entity.User
			if userID != "" {
				id, perr := uuid.Parse(userID)
				if perr != nil {
					return fmt.Errorf("--user-id: %w", perr)
				}
				user, err = rt.repo.User.FindByID(cmd.Context(), id)
			} else {
				user, err = rt.repo.User.FindByEmail(cmd.Context(), strings.ToLower(email))
			}
			if err != nil {
				return err
			}
			if user == nil {
				return errors.New("user not found")
			}
			if !user.IsActive {
				return fmt.Errorf("user %s is inactive", user.Email)
			}

			token, err := tokens.Issue(user.ID.String(), string(user.Role), user.Email)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "account id")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}
