package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// CustomerResponse represents a customer in API responses. The password hash
// is never exposed.
type CustomerResponse struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	Address string      `json:"address,omitempty"`
	Mobile  string      `json:"mobile,omitempty"`
}

// CustomerFromDomain converts a domain customer to response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Role:    c.Role,
		Address: c.Address,
		Mobile:  c.Mobile,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i := range customers {
		result[i] = CustomerFromDomain(&customers[i])
	}
	return result
}

// ListCustomersResponse represents a list of customers.
type ListCustomersResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Total     int                 `json:"total"`
}

// EntryResponse represents a milk entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Date        domain.Date     `json:"date"`
	DisplayDate domain.BSDate   `json:"nepali_date"`
	Liters      decimal.Decimal `json:"liters"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total"`
	Shift       domain.Shift    `json:"shift"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.MilkEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		CustomerID:  e.CustomerID,
		Date:        e.Date,
		DisplayDate: e.DisplayDate,
		Liters:      e.Liters,
		Rate:        e.Rate,
		Total:       e.Total,
		Shift:       e.Shift,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []domain.MilkEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i := range entries {
		result[i] = EntryFromDomain(&entries[i])
	}
	return result
}

// ListEntriesResponse represents a list of milk entries with their sums.
type ListEntriesResponse struct {
	Entries     []*EntryResponse `json:"entries"`
	Total       int              `json:"total"`
	TotalLiters decimal.Decimal  `json:"total_liters"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// NewListEntriesResponse builds the list response and its sums.
func NewListEntriesResponse(entries []domain.MilkEntry) ListEntriesResponse {
	liters, amount := decimal.Zero, decimal.Zero
	for _, e := range entries {
		liters = liters.Add(e.Liters)
		amount = amount.Add(e.Total)
	}
	return ListEntriesResponse{
		Entries:     EntriesFromDomain(entries),
		Total:       len(entries),
		TotalLiters: liters,
		TotalAmount: amount,
	}
}

// BatchEntriesResponse represents the entries stored by a batch request.
type BatchEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Count   int              `json:"count"`
}

// BatchEntriesFromDomain converts the stored batch to response.
func BatchEntriesFromDomain(entries []*domain.MilkEntry) BatchEntriesResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return BatchEntriesResponse{Entries: result, Count: len(result)}
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        domain.Date     `json:"date"`
	Description string          `json:"description,omitempty"`
}

// PaymentFromDomain converts a domain payment to response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Amount:      p.Amount,
		Date:        p.Date,
		Description: p.Description,
	}
}

// ListPaymentsResponse represents a list of payments.
type ListPaymentsResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// PaymentsFromDomain converts domain payments to a list response.
func PaymentsFromDomain(payments []domain.Payment) ListPaymentsResponse {
	result := make([]*PaymentResponse, len(payments))
	for i := range payments {
		result[i] = PaymentFromDomain(&payments[i])
	}
	return ListPaymentsResponse{Payments: result, Total: len(result)}
}

// RateResponse represents a rate record.
type RateResponse struct {
	CustomerID    string          `json:"customer_id"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate domain.Date     `json:"effective_date"`
}

// RateFromDomain converts a domain rate record to response.
func RateFromDomain(r *domain.RateRecord) *RateResponse {
	return &RateResponse{
		CustomerID:    r.CustomerID,
		Rate:          r.Rate,
		EffectiveDate: r.EffectiveDate,
	}
}

// ListRatesResponse represents a list of rate records.
type ListRatesResponse struct {
	Rates []*RateResponse `json:"rates"`
}

// RatesFromDomain converts domain rate records to a list response.
func RatesFromDomain(records []domain.RateRecord) ListRatesResponse {
	result := make([]*RateResponse, len(records))
	for i := range records {
		result[i] = RateFromDomain(&records[i])
	}
	return ListRatesResponse{Rates: result}
}

// CurrentRateResponse is the rate in effect for a customer on a date.
type CurrentRateResponse struct {
	CustomerID string          `json:"customer_id"`
	Date       domain.Date     `json:"date"`
	Rate       decimal.Decimal `json:"rate"`
}

// LedgerResponse represents a billed/paid/dues position.
type LedgerResponse struct {
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Dues        decimal.Decimal `json:"dues"`
}

// LedgerFromDomain converts a domain ledger to response.
func LedgerFromDomain(l domain.Ledger) LedgerResponse {
	return LedgerResponse{
		TotalBilled: l.TotalBilled,
		TotalPaid:   l.TotalPaid,
		Dues:        l.Dues,
	}
}

// CustomerLedgerResponse is a ledger tagged with its customer.
type CustomerLedgerResponse struct {
	CustomerID string `json:"customer_id"`
	LedgerResponse
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token     string            `json:"token"`
	ExpiresIn int64             `json:"expires_in"`
	User      *CustomerResponse `json:"user"`
}

// MeResponse describes the caller as seen from the verified session.
type MeResponse struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// CalendarResponse pairs an AD date with its BS equivalent.
type CalendarResponse struct {
	AD domain.Date   `json:"ad"`
	BS domain.BSDate `json:"bs"`
}

// ShiftTotalsResponse is one shift's collected quantity and value.
type ShiftTotalsResponse struct {
	Liters decimal.Decimal `json:"liters"`
	Amount decimal.Decimal `json:"amount"`
}

// DailyTotalsResponse is one chart column.
type DailyTotalsResponse struct {
	Date    domain.Date         `json:"date"`
	Morning ShiftTotalsResponse `json:"morning"`
	Evening ShiftTotalsResponse `json:"evening"`
	Total   ShiftTotalsResponse `json:"total"`
}

// ChartResponse is the trailing daily collection chart.
type ChartResponse struct {
	Days      []DailyTotalsResponse `json:"days"`
	MaxLiters decimal.Decimal       `json:"max_liters"`
}

// CollectionResponse is one customer's merged entries for the dashboard.
type CollectionResponse struct {
	CustomerID  string           `json:"customer_id"`
	Name        string           `json:"name,omitempty"`
	Entries     []*EntryResponse `json:"entries"`
	TotalLiters decimal.Decimal  `json:"total_liters"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	AverageRate decimal.Decimal  `json:"average_rate"`
}

// BalanceResponse is one customer's row in the dues table.
type BalanceResponse struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	LedgerResponse
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	Today         domain.Date          `json:"today"`
	TodayBS       domain.BSDate        `json:"today_bs"`
	CustomerCount int                  `json:"customer_count"`
	TotalLiters   decimal.Decimal      `json:"total_liters"`
	Ledger        LedgerResponse       `json:"ledger"`
	Chart         ChartResponse        `json:"chart"`
	Collections   []CollectionResponse `json:"collections"`
	Balances      []BalanceResponse    `json:"balances"`
}

// DashboardFromUseCase converts the dashboard to response.
func DashboardFromUseCase(d *usecase.Dashboard) *DashboardResponse {
	names := make(map[string]string, len(d.Balances))
	balances := make([]BalanceResponse, len(d.Balances))
	for i, b := range d.Balances {
		names[b.CustomerID] = b.Name
		balances[i] = BalanceResponse{
			CustomerID:     b.CustomerID,
			Name:           b.Name,
			LedgerResponse: LedgerFromDomain(b.Ledger),
		}
	}

	collections := make([]CollectionResponse, len(d.Collections))
	for i, c := range d.Collections {
		collections[i] = CollectionResponse{
			CustomerID:  c.CustomerID,
			Name:        names[c.CustomerID],
			Entries:     EntriesFromDomain(c.Entries),
			TotalLiters: c.TotalLiters,
			TotalAmount: c.TotalAmount,
			AverageRate: c.AverageRate,
		}
	}

	return &DashboardResponse{
		Today:         d.Today,
		TodayBS:       d.TodayBS,
		CustomerCount: d.CustomerCount,
		TotalLiters:   d.TotalLiters,
		Ledger:        LedgerFromDomain(d.Ledger),
		Chart:         ChartFromDomain(d.Chart),
		Collections:   collections,
		Balances:      balances,
	}
}

// ChartFromDomain converts the daily chart to response.
func ChartFromDomain(c domain.DailyChart) ChartResponse {
	days := make([]DailyTotalsResponse, len(c.Days))
	for i, d := range c.Days {
		days[i] = DailyTotalsResponse{
			Date:    d.Date,
			Morning: ShiftTotalsResponse(d.Morning),
			Evening: ShiftTotalsResponse(d.Evening),
			Total:   ShiftTotalsResponse(d.Total),
		}
	}
	return ChartResponse{Days: days, MaxLiters: c.MaxLiters}
}

// MonthResponse is one month of a customer statement.
type MonthResponse struct {
	Month    string             `json:"month"`
	Name     string             `json:"name"`
	Current  bool               `json:"current"`
	Ledger   LedgerResponse     `json:"ledger"`
	Entries  []*EntryResponse   `json:"entries"`
	Payments []*PaymentResponse `json:"payments"`
}

// StatementResponse is a customer's account statement.
type StatementResponse struct {
	Customer    *CustomerResponse `json:"customer"`
	Today       domain.Date       `json:"today"`
	TodayBS     domain.BSDate     `json:"today_bs"`
	Ledger      LedgerResponse    `json:"ledger"`
	CurrentRate *decimal.Decimal  `json:"current_rate,omitempty"`
	Months      []MonthResponse   `json:"months"`
}

// StatementFromUseCase converts the statement to response.
func StatementFromUseCase(s *usecase.CustomerStatement) *StatementResponse {
	months := make([]MonthResponse, len(s.Months))
	for i, m := range s.Months {
		months[i] = MonthResponse{
			Month:    m.Key.String(),
			Name:     m.Key.Name(),
			Current:  m.Current,
			Ledger:   LedgerFromDomain(m.Ledger),
			Entries:  EntriesFromDomain(m.Entries),
			Payments: PaymentsFromDomain(m.Payments).Payments,
		}
	}

	resp := &StatementResponse{
		Customer: CustomerFromDomain(s.Customer),
		Today:    s.Today,
		TodayBS:  s.TodayBS,
		Ledger:   LedgerFromDomain(s.Ledger),
		Months:   months,
	}
	if s.HasRate {
		rate := s.CurrentRate
		resp.CurrentRate = &rate
	}
	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
