package usecase

import (
	"context"
	"time"

	"github.com/iho/dairyledger/internal/domain"
)

// CustomerRepository defines data access for customers and admins.
type CustomerRepository interface {
	// Create stores the record, assigning the next CUST identifier when ID is empty.
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Count(ctx context.Context, role domain.Role) (int, error)
}

// EntryFilter narrows milk entry listings. Zero values mean no constraint.
type EntryFilter struct {
	CustomerID string
	From       domain.Date
	To         domain.Date
}

// MilkEntryRepository defines data access for milk entries.
type MilkEntryRepository interface {
	// Create assigns the next M identifier and stores the entry.
	Create(ctx context.Context, entry *domain.MilkEntry) error
	// CreateBatch stores all entries in one write, or none of them.
	CreateBatch(ctx context.Context, entries []*domain.MilkEntry) error
	GetByID(ctx context.Context, id string) (*domain.MilkEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]domain.MilkEntry, error)
	Update(ctx context.Context, entry *domain.MilkEntry) error
	Delete(ctx context.Context, id string) error
}

// PaymentFilter narrows payment listings. Zero values mean no constraint.
type PaymentFilter struct {
	CustomerID string
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	// Create assigns the next PAY identifier and stores the payment.
	Create(ctx context.Context, payment *domain.Payment) error
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
}

// RateRepository defines data access for customer rate records.
type RateRepository interface {
	Create(ctx context.Context, record *domain.RateRecord) error
	// List returns records in insertion order. An empty customerID lists all.
	List(ctx context.Context, customerID string) ([]domain.RateRecord, error)
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID string, role domain.Role) (string, error)
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
