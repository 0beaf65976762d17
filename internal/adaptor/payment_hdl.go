package adaptor

import (
	"net/http"

	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/usecase"
	"hotel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// GetPayments handles GET /api/admin/payments (admin only)
func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	req := request.PaymentListRequest{
		PaginatedRequest: paginationFromQuery(r),
		Status:           r.URL.Query().Get("status"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	payments, err := h.service.GetPayments(r.Context(), &req)
	if err != nil {
		writeServiceError(h.log, w, err, "get payments")
		return
	}

	utils.ResponseSuccess(w, "Payments retrieved successfully", payments)
}

// GetPayment handles GET /api/admin/payments/{id} (admin only)
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetPayment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.log, w, err, "get payment")
		return
	}

	utils.ResponseSuccess(w, "Payment retrieved successfully", p)
}
