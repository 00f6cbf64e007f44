package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
)

// PaymentUseCase handles money received from customers.
type PaymentUseCase struct {
	paymentRepo  PaymentRepository
	customerRepo CustomerRepository
	clock        Clock
	metrics      *metrics.Metrics
}

// NewPaymentUseCase creates a new PaymentUseCase. m may be nil.
func NewPaymentUseCase(paymentRepo PaymentRepository, customerRepo CustomerRepository, clock Clock, m *metrics.Metrics) *PaymentUseCase {
	return &PaymentUseCase{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		clock:        clock,
		metrics:      m,
	}
}

// CreatePaymentInput represents input for recording a payment. A zero Date means today.
type CreatePaymentInput struct {
	CustomerID  string
	Amount      decimal.Decimal
	Date        domain.Date
	Description string
}

// CreatePayment records a payment from an existing customer.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = today(uc.clock)
	}

	payment := &domain.Payment{
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Date:        date,
		Description: strings.TrimSpace(input.Description),
	}

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsCreated.Inc()
		uc.metrics.PaymentAmount.Observe(payment.Amount.InexactFloat64())
	}
	return payment, nil
}

// ListPayments lists payments matching the filter, in recording order.
func (uc *PaymentUseCase) ListPayments(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	return uc.paymentRepo.List(ctx, filter)
}
