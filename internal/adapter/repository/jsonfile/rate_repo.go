package jsonfile

import (
	"context"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// RateRepository implements usecase.RateRepository over customerRates.json.
type RateRepository struct {
	store *Store
	rates collection[rateRecord]
}

var _ usecase.RateRepository = (*RateRepository)(nil)

// NewRateRepository creates a new RateRepository.
func NewRateRepository(store *Store) *RateRepository {
	return &RateRepository{
		store: store,
		rates: collection[rateRecord]{store: store, name: RatesFile},
	}
}

// Create appends a rate record. Records are never replaced.
func (r *RateRepository) Create(ctx context.Context, record *domain.RateRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.rates.load(ctx)
	if err != nil {
		return err
	}
	return r.rates.save(ctx, append(records, rateFromDomain(record)))
}

// List returns rate records in insertion order. An empty customerID lists all.
func (r *RateRepository) List(ctx context.Context, customerID string) ([]domain.RateRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := r.rates.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RateRecord, 0, len(records))
	for _, rec := range records {
		if customerID != "" && rec.UserID != customerID {
			continue
		}
		out = append(out, rec.toDomain())
	}
	return out, nil
}
