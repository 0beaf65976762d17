package cmd

import (
	"hotel-booking/internal/usecase"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Expire unpaid holds once and exit",
		Long:  "Cancels PENDING bookings whose hold has lapsed and relists their rooms. Suitable for a cron job when the server runs with SWEEP_INTERVAL=0.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.openStorage(cmd.Context()); err != nil {
				return err
			}
			if err := rt.requirePostgres("sweep"); err != nil {
				return err
			}
			gateway, err := rt.gateway()
			if err != nil {
				return err
			}

			svc := usecase.NewService(rt.repo, gateway, rt.publisher(), rt.config, rt.logger)
			n, err := svc.Reservation.SweepExpired(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("expired %d booking(s)\n", n)
			return nil
		},
	}
}
