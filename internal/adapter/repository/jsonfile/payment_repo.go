package jsonfile

import (
	"context"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository over payments.json.
type PaymentRepository struct {
	store    *Store
	payments collection[paymentRecord]
}

var _ usecase.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(store *Store) *PaymentRepository {
	return &PaymentRepository{
		store:    store,
		payments: collection[paymentRecord]{store: store, name: PaymentsFile},
	}
}

// Create assigns the next PAY identifier and appends the payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := r.payments.load(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.PaymentID
	}

	id, err := r.store.nextID(ctx, domain.PaymentIDPrefix, ids)
	if err != nil {
		return err
	}
	rec := paymentFromDomain(payment)
	rec.PaymentID = id
	if err := r.payments.save(ctx, append(records, rec)); err != nil {
		return err
	}

	payment.ID = id
	return nil
}

// List returns payments matching the filter, in file order.
func (r *PaymentRepository) List(ctx context.Context, filter usecase.PaymentFilter) ([]domain.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := r.payments.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(records))
	for _, rec := range records {
		if filter.CustomerID != "" && rec.UserID != filter.CustomerID {
			continue
		}
		out = append(out, rec.toDomain())
	}
	return out, nil
}
