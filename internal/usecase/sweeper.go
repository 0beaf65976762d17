package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically releases rooms held by unpaid bookings.
type Sweeper struct {
	Reservations ReservationService
	Interval     time.Duration
	Log          *zap.Logger
}

func (s *Sweeper) Run(ctx context.Context) error {
	if s.Interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(s.Interval)
	defer t.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	n, err := s.Reservations.SweepExpired(ctx)
	if err != nil && ctx.Err() == nil {
		s.Log.Error("Sweep of expired bookings failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.Log.Debug("Sweep finished", zap.Int("expired", n))
	}
}
