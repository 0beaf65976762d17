package usecase

import (
	"context"
	"fmt"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService is the operator's read-only view of charge records.
// Payments only change through the booking lifecycle.
type PaymentService interface {
	GetPayments(ctx context.Context, req *request.PaymentListRequest) (*response.PaginatedResponse[response.PaymentResponse], error)
	GetPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		log:  log.With(zap.String("service", "payment")),
	}
}

func (ps *paymentService) GetPayments(ctx context.Context, req *request.PaymentListRequest) (*response.PaginatedResponse[response.PaymentResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var status *entity.PaymentStatus
	if req.Status != "" {
		st := entity.PaymentStatus(req.Status)
		status = &st
	}

	payments, err := ps.repo.Payment.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		ps.log.Error("Failed to get payments", zap.Error(err), zap.String("status", req.Status))
		return nil, fmt.Errorf("get payments: %w", err)
	}

	total, err := ps.repo.Payment.CountAll(ctx, status)
	if err != nil {
		ps.log.Error("Failed to count payments", zap.Error(err))
		return nil, fmt.Errorf("count payments: %w", err)
	}

	out := make([]response.PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = *response.PaymentToResponse(p)
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (ps *paymentService) GetPayment(ctx context.Context, paymentID string) (*response.PaymentResponse, error) {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, ErrInvalidID
	}

	p, err := ps.repo.Payment.FindByID(ctx, id)
	if err != nil {
		ps.log.Error("Failed to get payment", zap.Error(err), zap.String("payment_id", paymentID))
		return nil, fmt.Errorf("get payment %s: %w", paymentID, err)
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	return response.PaymentToResponse(p), nil
}
