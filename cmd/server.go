package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel-booking/internal/usecase"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/obs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 15 * time.Second

func newServeCmd() *cobra.Command {
	var (
		migrate bool
		seed    bool
		port    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the expired hold sweeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			config, logger := rt.config, rt.logger
			if port != "" {
				config.App.Port = port
			}

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("version", Version),
				zap.String("port", config.App.Port),
				zap.String("storage", config.App.Storage),
				zap.Bool("debug", config.App.Debug),
			)

			if config.Tracing.Endpoint != "" {
				shutdown, err := obs.InitTracer(ctx, config.App.Name, Version, config.App.Env, config.Tracing.Endpoint)
				if err != nil {
					return fmt.Errorf("init tracer: %w", err)
				}
				rt.onClose(func() {
					sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := shutdown(sctx); err != nil {
						logger.Warn("Tracer shutdown failed", zap.Error(err))
					}
				})
			}

			if err := rt.openStorage(ctx); err != nil {
				return err
			}
			if migrate {
				if err := rt.migrate(ctx); err != nil {
					return err
				}
			}
			if seed {
				if err := seedDemo(ctx, rt); err != nil {
					return fmt.Errorf("seed: %w", err)
				}
			}

			gateway, err := rt.gateway()
			if err != nil {
				return err
			}
			tokens, err := rt.tokens()
			if err != nil {
				return err
			}

			app := wire.Wiring(rt.repo, gateway, rt.publisher(), tokens, config, logger)

			sweeper := &usecase.Sweeper{
				Reservations: app.Service.Reservation,
				Interval:     config.Booking.SweepInterval,
				Log:          logger,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return APIServer(gctx, app.Router, config.App.Port, logger)
			})
			g.Go(func() error {
				return sweeper.Run(gctx)
			})

			err = g.Wait()
			logger.Info("Shut down")
			return err
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply database migrations before serving")
	cmd.Flags().BoolVar(&seed, "seed", false, "create demo users, a hotel and rooms before serving")
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

// APIServer serves route on port until ctx is cancelled, then drains
// in-flight requests.
func APIServer(ctx context.Context, route http.Handler, port string, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           route,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
