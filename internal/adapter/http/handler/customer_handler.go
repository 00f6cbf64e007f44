package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// CustomerService defines the behavior needed by CustomerHandler.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input usecase.CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, input usecase.UpdateCustomerInput) (*domain.Customer, error)
	GetCustomerLedger(ctx context.Context, id string) (domain.Ledger, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customerUC CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC CustomerService) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create registers a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.customerUC.CreateCustomer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create customer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	customer, err := h.customerUC.GetCustomer(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// List lists customers, admins excluded.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUC.ListCustomers(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to list customers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.CustomersFromDomain(customers),
		Total:     len(customers),
	})
}

// Update edits a customer's profile.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing customer ID", "")
		return
	}

	var req dto.UpdateCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.customerUC.UpdateCustomer(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, "failed to update customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// Ledger returns a customer's billed, paid and dues.
func (h *CustomerHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ledger, err := h.customerUC.GetCustomerLedger(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerLedgerResponse{
		CustomerID:     id,
		LedgerResponse: dto.LedgerFromDomain(ledger),
	})
}
