package jsonfile

import (
	"context"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// CustomerRepository implements usecase.CustomerRepository over users.json.
type CustomerRepository struct {
	store *Store
	users collection[userRecord]
}

var _ usecase.CustomerRepository = (*CustomerRepository)(nil)

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{
		store: store,
		users: collection[userRecord]{store: store, name: UsersFile},
	}
}

// Create stores the customer, assigning the next CUST identifier when ID is empty.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return err
	}

	id := customer.ID
	if id == "" {
		ids := make([]string, len(users))
		for i, u := range users {
			ids[i] = u.UserID
		}
		if id, err = r.store.nextID(ctx, domain.CustomerIDPrefix, ids); err != nil {
			return err
		}
	} else if indexOfUser(users, id) >= 0 {
		return domain.ErrCustomerExists
	}

	rec := userFromDomain(customer)
	rec.UserID = id
	if err := r.users.save(ctx, append(users, rec)); err != nil {
		return err
	}

	customer.ID = id
	return nil
}

// GetByID retrieves a customer or admin by ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOfUser(users, id)
	if i < 0 {
		return nil, domain.ErrCustomerNotFound
	}
	c := users[i].toDomain()
	return &c, nil
}

// List returns every account in file order.
func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Customer, len(users))
	for i, u := range users {
		out[i] = u.toDomain()
	}
	return out, nil
}

// Update replaces the stored record with the same ID.
func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return err
	}

	i := indexOfUser(users, customer.ID)
	if i < 0 {
		return domain.ErrCustomerNotFound
	}
	users[i] = userFromDomain(customer)
	return r.users.save(ctx, users)
}

// Count returns the number of accounts with the given role.
func (r *CustomerRepository) Count(ctx context.Context, role domain.Role) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users, err := r.users.load(ctx)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, u := range users {
		if domain.Role(u.Role) == role {
			n++
		}
	}
	return n, nil
}

func indexOfUser(users []userRecord, id string) int {
	for i, u := range users {
		if u.UserID == id {
			return i
		}
	}
	return -1
}
