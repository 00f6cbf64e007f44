package handler

import (
	"context"
	"net/http"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	CreatePayment(ctx context.Context, input usecase.CreatePaymentInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, filter usecase.PaymentFilter) ([]domain.Payment, error)
}

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	paymentUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentUC PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUC: paymentUC}
}

// Create records a payment.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	payment, err := h.paymentUC.CreatePayment(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create payment", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentFromDomain(payment))
}

// List lists payments. Customers only see their own.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := scopedCustomerID(w, r)
	if !ok {
		return
	}

	payments, err := h.paymentUC.ListPayments(r.Context(), usecase.PaymentFilter{CustomerID: customerID})
	if err != nil {
		writeDomainError(w, r, "failed to list payments", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentsFromDomain(payments))
}
