package payment

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSimulatedGatewayOutcomes(t *testing.T) {
	g := NewSimulatedGateway(0)
	ctx := context.Background()

	receipt, err := g.Charge(ctx, ChargeRequest{Amount: 27000, Currency: "thb", Method: "card"})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if receipt.Reference == "" || receipt.Amount != 27000 || receipt.Currency != "THB" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}

	_, err = g.Charge(ctx, ChargeRequest{Amount: 100, Method: MethodDeclined})
	var decline *DeclineError
	if !errors.As(err, &decline) {
		t.Fatalf("declined charge err = %v, want *DeclineError", err)
	}
	if FailureReason(err) != "card declined" {
		t.Fatalf("FailureReason = %q", FailureReason(err))
	}

	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = g.Charge(tctx, ChargeRequest{Amount: 100, Method: MethodTimeout})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("timeout charge err = %v, want ErrTimeout", err)
	}

	if got := g.Charges(); got != 3 {
		t.Fatalf("Charges() = %d, want 3", got)
	}
}

func TestSimulatedGatewayRefund(t *testing.T) {
	g := NewSimulatedGateway(0)
	ctx := context.Background()

	receipt, err := g.Charge(ctx, ChargeRequest{Amount: 1000, Method: "card"})
	if err != nil {
		t.Fatalf("charge: %v", err)
	}
	if err := g.Refund(ctx, receipt.Reference, 900); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if err := g.Refund(ctx, receipt.Reference, 200); err == nil {
		t.Fatalf("refunding more than charged should fail")
	}
	if err := g.Refund(ctx, "sim_unknown", 1); err == nil {
		t.Fatalf("refunding an unknown charge should fail")
	}
}

func TestAwaitGivesUpOnDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	release := make(chan struct{})
	defer close(release)

	err := await(ctx, func() error {
		<-release
		return nil
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("await err = %v, want ErrTimeout", err)
	}
}
