package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		UserID:   strings.TrimSpace(r.UserID),
		Password: r.Password,
	}
}

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.CreateCustomerInput {
	return usecase.CreateCustomerInput{
		Name:     r.Name,
		Password: r.Password,
		Address:  r.Address,
		Mobile:   r.Mobile,
	}
}

// UpdateCustomerRequest represents a request to edit a customer. An empty
// password keeps the current one.
type UpdateCustomerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Address  string `json:"address,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCustomerRequest) ToUseCaseInput(id string) usecase.UpdateCustomerInput {
	return usecase.UpdateCustomerInput{
		ID:       id,
		Name:     r.Name,
		Password: r.Password,
		Address:  r.Address,
		Mobile:   r.Mobile,
	}
}

// OptionalRate is a rate field that may be omitted, null or "". Zero is kept
// as given; the use case treats it as absent.
type OptionalRate struct {
	decimal.NullDecimal
}

// NewOptionalRate returns a rate that is present.
func NewOptionalRate(d decimal.Decimal) OptionalRate {
	return OptionalRate{decimal.NewNullDecimal(d)}
}

// UnmarshalJSON accepts "" as no rate.
func (r *OptionalRate) UnmarshalJSON(b []byte) error {
	if strings.TrimSpace(string(b)) == `""` {
		r.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	return r.NullDecimal.UnmarshalJSON(b)
}

// Ptr returns the rate, or nil when none was given.
func (r OptionalRate) Ptr() *decimal.Decimal {
	if !r.Valid {
		return nil
	}
	d := r.Decimal
	return &d
}

// CreateEntryRequest represents a single milk entry. Date defaults to today
// and Rate to the customer's current rate.
type CreateEntryRequest struct {
	CustomerID string          `json:"customer_id"`
	Date       string          `json:"date,omitempty"`
	Liters     decimal.Decimal `json:"liters"`
	Rate       OptionalRate    `json:"rate,omitempty"`
	Shift      string          `json:"shift,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() (usecase.CreateEntryInput, error) {
	date, err := ParseOptionalDate(r.Date)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	shift, err := domain.ParseShift(r.Shift)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	return usecase.CreateEntryInput{
		CustomerID: strings.TrimSpace(r.CustomerID),
		Date:       date,
		Liters:     r.Liters,
		Rate:       r.Rate.Ptr(),
		Shift:      shift,
	}, nil
}

// CreateEntriesRequest records one shift for many customers at once.
type CreateEntriesRequest struct {
	Date    string      `json:"date,omitempty"`
	Shift   string      `json:"shift,omitempty"`
	Entries []BatchLine `json:"entries"`
}

// BatchLine is one customer's quantity within a batch.
type BatchLine struct {
	CustomerID string          `json:"customer_id"`
	Liters     decimal.Decimal `json:"liters"`
	Rate       OptionalRate    `json:"rate,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntriesRequest) ToUseCaseInput() (usecase.CreateEntriesInput, error) {
	date, err := ParseOptionalDate(r.Date)
	if err != nil {
		return usecase.CreateEntriesInput{}, err
	}

	shift, err := domain.ParseShift(r.Shift)
	if err != nil {
		return usecase.CreateEntriesInput{}, err
	}

	lines := make([]usecase.BatchLine, len(r.Entries))
	for i, l := range r.Entries {
		lines[i] = usecase.BatchLine{
			CustomerID: strings.TrimSpace(l.CustomerID),
			Liters:     l.Liters,
			Rate:       l.Rate.Ptr(),
		}
	}

	return usecase.CreateEntriesInput{
		Date:  date,
		Shift: shift,
		Lines: lines,
	}, nil
}

// UpdateEntryRequest lists the entry fields to change. Omitted fields keep
// their value.
type UpdateEntryRequest struct {
	Date   *string          `json:"date,omitempty"`
	Liters *decimal.Decimal `json:"liters,omitempty"`
	Rate   *decimal.Decimal `json:"rate,omitempty"`
	Shift  *string          `json:"shift,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput(id string) (usecase.UpdateEntryInput, error) {
	input := usecase.UpdateEntryInput{
		ID:     id,
		Liters: r.Liters,
		Rate:   r.Rate,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return usecase.UpdateEntryInput{}, err
		}
		input.Date = &date
	}

	if r.Shift != nil {
		shift, err := domain.ParseShift(*r.Shift)
		if err != nil {
			return usecase.UpdateEntryInput{}, err
		}
		input.Shift = &shift
	}

	return input, nil
}

// CreatePaymentRequest represents a payment received from a customer.
type CreatePaymentRequest struct {
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePaymentRequest) ToUseCaseInput() (usecase.CreatePaymentInput, error) {
	date, err := ParseOptionalDate(r.Date)
	if err != nil {
		return usecase.CreatePaymentInput{}, err
	}

	return usecase.CreatePaymentInput{
		CustomerID:  strings.TrimSpace(r.CustomerID),
		Amount:      r.Amount,
		Date:        date,
		Description: r.Description,
	}, nil
}

// SetRateRequest sets a customer's price per liter from a date on.
type SetRateRequest struct {
	CustomerID    string          `json:"customer_id"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate string          `json:"effective_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SetRateRequest) ToUseCaseInput() (usecase.SetRateInput, error) {
	date, err := ParseOptionalDate(r.EffectiveDate)
	if err != nil {
		return usecase.SetRateInput{}, err
	}

	return usecase.SetRateInput{
		CustomerID:    strings.TrimSpace(r.CustomerID),
		Rate:          r.Rate,
		EffectiveDate: date,
	}, nil
}

// ParseOptionalDate parses an ISO date, returning the zero Date for an empty
// string.
func ParseOptionalDate(s string) (domain.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Date{}, nil
	}
	return domain.ParseDate(s)
}
