// Package payment talks to the card processor. A Gateway charges and
// refunds in minor currency units.
package payment

import (
	"context"
	"errors"
	"time"
)

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
	Refund(ctx context.Context, reference string, amount int64) error
}

type ChargeRequest struct {
	BookingID string
	Amount    int64
	Currency  string
	Method    string // card token, source id, or a simulated method name
}

type Receipt struct {
	Reference   string
	Amount      int64
	Currency    string
	ProcessedAt time.Time
}

// DeclineError is a definitive rejection by the processor.
type DeclineError struct {
	Code   string
	Reason string
}

func (e *DeclineError) Error() string {
	if e.Code == "" {
		return "payment declined: " + e.Reason
	}
	return "payment declined (" + e.Code + "): " + e.Reason
}

var ErrTimeout = errors.New("payment gateway timed out")

// FailureReason renders err as the reason recorded on a failed payment.
func FailureReason(err error) string {
	var decline *DeclineError
	switch {
	case errors.As(err, &decline):
		return decline.Reason
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout.Error()
	case errors.Is(err, context.Canceled):
		return "payment aborted"
	default:
		return "payment gateway error"
	}
}

// await runs call and gives up when ctx ends first. call keeps running in
// the background, its result is discarded.
func await(ctx context.Context, call func() error) error {
	done := make(chan error, 1)
	go func() { done <- call() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
