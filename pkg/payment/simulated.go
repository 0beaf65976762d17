package payment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Method names with a scripted outcome on the simulated gateway.
const (
	MethodDeclined = "declined"
	MethodTimeout  = "timeout"
)

// SimulatedGateway approves every charge except the scripted methods:
// "declined" is refused and "timeout" never answers before ctx ends.
type SimulatedGateway struct {
	delay   time.Duration
	charges atomic.Int64

	mu      sync.Mutex
	settled map[string]int64 // reference -> refundable amount
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{delay: delay, settled: make(map[string]int64)}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	g.charges.Add(1)

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctxErr(ctx)
		}
	}

	switch {
	case strings.EqualFold(req.Method, MethodTimeout):
		<-ctx.Done()
		return nil, ctxErr(ctx)
	case strings.EqualFold(req.Method, MethodDeclined):
		return nil, &DeclineError{Code: "card_declined", Reason: "card declined"}
	case req.Amount < 0:
		return nil, &DeclineError{Code: "invalid_amount", Reason: "amount must not be negative"}
	}

	ref := "sim_" + uuid.NewString()
	g.mu.Lock()
	g.settled[ref] = req.Amount
	g.mu.Unlock()

	return &Receipt{
		Reference:   ref,
		Amount:      req.Amount,
		Currency:    strings.ToUpper(req.Currency),
		ProcessedAt: time.Now(),
	}, nil
}

func (g *SimulatedGateway) Refund(ctx context.Context, reference string, amount int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	left, ok := g.settled[reference]
	if !ok {
		return errors.New("unknown charge reference " + reference)
	}
	if amount > left {
		return errors.New("refund exceeds charged amount")
	}
	g.settled[reference] = left - amount
	return nil
}

// Charges reports how many charge attempts reached the gateway.
func (g *SimulatedGateway) Charges() int64 {
	return g.charges.Load()
}

func ctxErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
