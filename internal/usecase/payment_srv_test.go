package usecase

import (
	"context"
	"errors"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/dto/request"
	"hotel-booking/pkg/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestPaymentListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payments := NewPaymentService(f.repo, zap.NewNop())

	paid := f.confirm(t, f.guest, "2030-01-10", "2030-01-13")

	declined := f.initiate(t, f.other, "2030-02-01", "2030-02-02")
	if _, err := f.svc.Finalize(ctx, f.other, finalizeReq(declined, payment.MethodDeclined)); err == nil {
		t.Fatalf("declined Finalize succeeded")
	}

	all, err := payments.GetPayments(ctx, &request.PaymentListRequest{PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10}})
	if err != nil {
		t.Fatalf("GetPayments: %v", err)
	}
	if all.Pagination.Total != 2 || len(all.Data) != 2 {
		t.Fatalf("payments = %+v", all.Pagination)
	}

	completed, err := payments.GetPayments(ctx, &request.PaymentListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Status:           string(entity.PaymentStatusCompleted),
	})
	if err != nil {
		t.Fatalf("GetPayments COMPLETED: %v", err)
	}
	if completed.Pagination.Total != 1 || completed.Data[0].BookingID != paid.ID || completed.Data[0].Amount != 300 {
		t.Fatalf("completed = %+v", completed.Data)
	}

	one, err := payments.GetPayment(ctx, completed.Data[0].ID)
	if err != nil {
		t.Fatalf("GetPayment: %v", err)
	}
	if one.Status != entity.PaymentStatusCompleted || one.Reference == nil {
		t.Fatalf("payment = %+v", one)
	}
}

func TestPaymentLookupErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	payments := NewPaymentService(f.repo, zap.NewNop())

	if _, err := payments.GetPayment(ctx, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad id err = %v, want ErrInvalidID", err)
	}
	if _, err := payments.GetPayment(ctx, uuid.NewString()); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("unknown payment err = %v, want ErrPaymentNotFound", err)
	}
	_, err := payments.GetPayments(ctx, &request.PaymentListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Status:           "LOST",
	})
	if err == nil {
		t.Fatalf("unknown status accepted")
	}
}
