package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
)

// RateUseCase manages per-customer prices.
type RateUseCase struct {
	rateRepo     RateRepository
	customerRepo CustomerRepository
	clock        Clock
}

// NewRateUseCase creates a new RateUseCase.
func NewRateUseCase(rateRepo RateRepository, customerRepo CustomerRepository, clock Clock) *RateUseCase {
	return &RateUseCase{
		rateRepo:     rateRepo,
		customerRepo: customerRepo,
		clock:        clock,
	}
}

// SetRateInput represents a new rate record. A zero EffectiveDate means today.
type SetRateInput struct {
	CustomerID    string
	Rate          decimal.Decimal
	EffectiveDate domain.Date
}

// SetRate appends a rate record. Earlier records are kept so that past
// entries still resolve to the price that applied at the time.
func (uc *RateUseCase) SetRate(ctx context.Context, input SetRateInput) (*domain.RateRecord, error) {
	if err := domain.ValidateRate(input.Rate); err != nil {
		return nil, err
	}

	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	effective := input.EffectiveDate
	if effective.IsZero() {
		effective = today(uc.clock)
	}

	record := &domain.RateRecord{
		CustomerID:    input.CustomerID,
		Rate:          input.Rate,
		EffectiveDate: effective,
	}
	if err := uc.rateRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListRates lists rate records. An empty customerID lists all customers.
func (uc *RateUseCase) ListRates(ctx context.Context, customerID string) ([]domain.RateRecord, error) {
	return uc.rateRepo.List(ctx, customerID)
}

// CurrentRate returns the rate in effect for the customer on the given date,
// or today when on is zero.
func (uc *RateUseCase) CurrentRate(ctx context.Context, customerID string, on domain.Date) (decimal.Decimal, error) {
	if on.IsZero() {
		on = today(uc.clock)
	}

	records, err := uc.rateRepo.List(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := domain.ResolveRate(customerID, on, records)
	if !ok {
		return decimal.Zero, domain.ErrRateNotFound
	}
	return rate, nil
}
