package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"
	"go.uber.org/zap"
)

// OmiseGateway charges cards (tokn_) and sources (src_) through Omise.
type OmiseGateway struct {
	client *omise.Client
	log    *zap.Logger
}

func NewOmiseGateway(publicKey, secretKey string, log *zap.Logger) (*OmiseGateway, error) {
	c, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("omise client: %w", err)
	}
	c.SetDebug(false)
	return &OmiseGateway{client: c, log: log.With(zap.String("gateway", "omise"))}, nil
}

func (g *OmiseGateway) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	op := &operations.CreateCharge{
		Amount:   req.Amount,
		Currency: strings.ToLower(req.Currency),
		Metadata: map[string]any{"booking_id": req.BookingID},
	}
	switch {
	case strings.HasPrefix(req.Method, "tokn_"):
		op.Card = req.Method
	case strings.HasPrefix(req.Method, "src_"):
		op.Source = req.Method
	default:
		return nil, &DeclineError{Code: "invalid_payment_method", Reason: "unsupported payment method"}
	}

	ch := &omise.Charge{}
	if err := await(ctx, func() error { return g.client.Do(ch, op) }); err != nil {
		g.log.Warn("Omise charge call failed",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, err
	}

	switch string(ch.Status) {
	case "successful":
		return &Receipt{
			Reference:   ch.ID,
			Amount:      ch.Amount,
			Currency:    strings.ToUpper(ch.Currency),
			ProcessedAt: time.Now(),
		}, nil
	case "failed":
		var code, msg string
		if ch.FailureCode != nil {
			code = *ch.FailureCode
		}
		if ch.FailureMessage != nil {
			msg = *ch.FailureMessage
		}
		if msg == "" {
			msg = "charge failed"
		}
		return nil, &DeclineError{Code: code, Reason: msg}
	default:
		// pending and awaiting-authorization charges cannot confirm a stay
		// synchronously
		return nil, &DeclineError{Code: "charge_" + string(ch.Status), Reason: "charge was not completed"}
	}
}

func (g *OmiseGateway) Refund(ctx context.Context, reference string, amount int64) error {
	refund := &omise.Refund{}
	op := &operations.CreateRefund{ChargeID: reference, Amount: amount}
	if err := await(ctx, func() error { return g.client.Do(refund, op) }); err != nil {
		g.log.Warn("Omise refund failed",
			zap.Error(err),
			zap.String("charge_id", reference),
			zap.Int64("amount", amount),
		)
		return fmt.Errorf("refund charge %s: %w", reference, err)
	}
	return nil
}
