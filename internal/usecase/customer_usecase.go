package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/infrastructure/metrics"
)

// CustomerUseCase handles customer management.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	entryRepo    MilkEntryRepository
	paymentRepo  PaymentRepository
	metrics      *metrics.Metrics
}

// NewCustomerUseCase creates a new CustomerUseCase. m may be nil.
func NewCustomerUseCase(
	customerRepo CustomerRepository,
	entryRepo MilkEntryRepository,
	paymentRepo PaymentRepository,
	m *metrics.Metrics,
) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		entryRepo:    entryRepo,
		paymentRepo:  paymentRepo,
		metrics:      m,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	Name     string
	Password string
	Address  string
	Mobile   string
}

// CreateCustomer validates the input, hashes the password and stores a new
// customer. The returned record never carries the password hash.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}
	if err := domain.ValidateMobile(input.Mobile); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashedPassword,
		Role:         domain.RoleCustomer,
		Address:      strings.TrimSpace(input.Address),
		Mobile:       strings.TrimSpace(input.Mobile),
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CustomersCreated.Inc()
	}

	return withoutHash(customer), nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return withoutHash(customer), nil
}

// ListCustomers lists every account with the customer role, in file order.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	all, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(all))
	for _, c := range all {
		if c.Role != domain.RoleCustomer {
			continue
		}
		c.PasswordHash = ""
		customers = append(customers, c)
	}
	return customers, nil
}

// UpdateCustomerInput represents input for updating a customer. An empty
// Password keeps the current one.
type UpdateCustomerInput struct {
	ID       string
	Name     string
	Password string
	Address  string
	Mobile   string
}

// UpdateCustomer applies the input to the stored customer and returns the new record.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateMobile(input.Mobile); err != nil {
		return nil, err
	}

	existing, err := uc.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	patch := domain.CustomerPatch{
		Name:    strings.TrimSpace(input.Name),
		Address: strings.TrimSpace(input.Address),
		Mobile:  strings.TrimSpace(input.Mobile),
	}

	if input.Password != "" {
		if err := domain.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		patch.PasswordHash, err = HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
	}

	updated := existing.Update(patch)
	if err := uc.customerRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return withoutHash(&updated), nil
}

// GetCustomerLedger returns billed, paid and dues for one customer.
func (uc *CustomerUseCase) GetCustomerLedger(ctx context.Context, id string) (domain.Ledger, error) {
	if _, err := uc.customerRepo.GetByID(ctx, id); err != nil {
		return domain.Ledger{}, err
	}

	entries, err := uc.entryRepo.List(ctx, EntryFilter{CustomerID: id})
	if err != nil {
		return domain.Ledger{}, err
	}

	payments, err := uc.paymentRepo.List(ctx, PaymentFilter{CustomerID: id})
	if err != nil {
		return domain.Ledger{}, err
	}

	return domain.CustomerLedger(id, entries, payments), nil
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func withoutHash(c *domain.Customer) *domain.Customer {
	out := *c
	out.PasswordHash = ""
	return &out
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrCustomerNotFound)
}
