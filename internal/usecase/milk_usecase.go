package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
)

// MilkUseCase handles milk collection entries.
type MilkUseCase struct {
	entryRepo    MilkEntryRepository
	customerRepo CustomerRepository
	rateRepo     RateRepository
	conv         domain.DateConverter
	clock        Clock
	metrics      *metrics.Metrics
}

// NewMilkUseCase creates a new MilkUseCase. m may be nil.
func NewMilkUseCase(
	entryRepo MilkEntryRepository,
	customerRepo CustomerRepository,
	rateRepo RateRepository,
	conv domain.DateConverter,
	clock Clock,
	m *metrics.Metrics,
) *MilkUseCase {
	return &MilkUseCase{
		entryRepo:    entryRepo,
		customerRepo: customerRepo,
		rateRepo:     rateRepo,
		conv:         conv,
		clock:        clock,
		metrics:      m,
	}
}

// CreateEntryInput represents input for recording one shift's collection.
// A nil Rate falls back to the customer's rate on Date. A zero Date means today.
type CreateEntryInput struct {
	CustomerID string
	Date       domain.Date
	Liters     decimal.Decimal
	Rate       *decimal.Decimal
	Shift      domain.Shift
}

// CreateEntry validates the input, resolves the rate and stores the entry.
func (uc *MilkUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.MilkEntry, error) {
	entry, err := uc.buildEntry(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	uc.recordCreated(entry)
	return entry, nil
}

// BatchLine is one customer's row in a collection sheet.
type BatchLine struct {
	CustomerID string
	Liters     decimal.Decimal
	Rate       *decimal.Decimal
}

// CreateEntriesInput records a single shift for many customers at once.
type CreateEntriesInput struct {
	Date  domain.Date
	Shift domain.Shift
	Lines []BatchLine
}

// CreateEntries validates every line before storing any of them. The first
// invalid line aborts the whole batch.
func (uc *MilkUseCase) CreateEntries(ctx context.Context, input CreateEntriesInput) ([]*domain.MilkEntry, error) {
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if len(input.Lines) > MaxBatchSize {
		return nil, fmt.Errorf("%w: at most %d lines per batch", domain.ErrAmountTooLarge, MaxBatchSize)
	}

	entries := make([]*domain.MilkEntry, 0, len(input.Lines))
	for i, line := range input.Lines {
		entry, err := uc.buildEntry(ctx, CreateEntryInput{
			CustomerID: line.CustomerID,
			Date:       input.Date,
			Liters:     line.Liters,
			Rate:       line.Rate,
			Shift:      input.Shift,
		})
		if err != nil {
			return nil, fmt.Errorf("line %d (%s): %w", i+1, line.CustomerID, err)
		}
		entries = append(entries, entry)
	}

	if err := uc.entryRepo.CreateBatch(ctx, entries); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		uc.recordCreated(entry)
	}
	return entries, nil
}

// ListEntries lists entries matching the filter, in recording order.
func (uc *MilkUseCase) ListEntries(ctx context.Context, filter EntryFilter) ([]domain.MilkEntry, error) {
	return uc.entryRepo.List(ctx, filter)
}

// UpdateEntryInput lists the fields to change. Nil fields keep their value.
type UpdateEntryInput struct {
	ID     string
	Date   *domain.Date
	Liters *decimal.Decimal
	Rate   *decimal.Decimal
	Shift  *domain.Shift
}

// UpdateEntry applies the changes and returns the new record. Total and the
// BS display date are recomputed.
func (uc *MilkUseCase) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*domain.MilkEntry, error) {
	if input.Liters != nil {
		if err := domain.ValidateLiters(*input.Liters); err != nil {
			return nil, err
		}
	}
	if input.Rate != nil {
		if err := domain.ValidateRate(*input.Rate); err != nil {
			return nil, err
		}
	}
	if input.Shift != nil {
		shift, err := domain.ParseShift(string(*input.Shift))
		if err != nil {
			return nil, err
		}
		input.Shift = &shift
	}
	if input.Date != nil && input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	existing, err := uc.entryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	updated := existing.Apply(domain.MilkEntryPatch{
		Date:   input.Date,
		Liters: input.Liters,
		Rate:   input.Rate,
		Shift:  input.Shift,
	}, uc.conv)

	if err := uc.entryRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesUpdated.Inc()
	}
	return &updated, nil
}

// DeleteEntry removes an entry.
func (uc *MilkUseCase) DeleteEntry(ctx context.Context, id string) error {
	if err := uc.entryRepo.Delete(ctx, id); err != nil {
		return err
	}
	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Inc()
	}
	return nil
}

func (uc *MilkUseCase) buildEntry(ctx context.Context, input CreateEntryInput) (*domain.MilkEntry, error) {
	if err := domain.ValidateLiters(input.Liters); err != nil {
		return nil, err
	}

	shift, err := domain.ParseShift(string(input.Shift))
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = today(uc.clock)
	}

	if _, err := uc.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}

	rate, err := uc.resolveRate(ctx, input.CustomerID, date, input.Rate)
	if err != nil {
		return nil, err
	}

	entry := domain.NewMilkEntry(input.CustomerID, date, input.Liters, rate, shift, uc.conv)
	return &entry, nil
}

// resolveRate prefers an explicit positive rate. A missing or zero rate falls
// back to the customer's rate on that date.
func (uc *MilkUseCase) resolveRate(ctx context.Context, customerID string, on domain.Date, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil && !explicit.IsZero() {
		if err := domain.ValidateRate(*explicit); err != nil {
			return decimal.Zero, err
		}
		uc.recordRate("explicit")
		return *explicit, nil
	}

	records, err := uc.rateRepo.List(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	rate, ok := domain.ResolveRate(customerID, on, records)
	if !ok {
		uc.recordRate("missing")
		return decimal.Zero, domain.ErrRateNotFound
	}

	uc.recordRate("resolved")
	return rate, nil
}

func (uc *MilkUseCase) recordCreated(entry *domain.MilkEntry) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.EntriesCreated.WithLabelValues(string(entry.Shift)).Inc()
	uc.metrics.LitersCollected.WithLabelValues(string(entry.Shift)).Add(entry.Liters.InexactFloat64())
}

func (uc *MilkUseCase) recordRate(outcome string) {
	if uc.metrics != nil {
		uc.metrics.RateResolutions.WithLabelValues(outcome).Inc()
	}
}
