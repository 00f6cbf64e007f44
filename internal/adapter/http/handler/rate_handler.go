package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// RateService defines the behavior needed by RateHandler.
type RateService interface {
	SetRate(ctx context.Context, input usecase.SetRateInput) (*domain.RateRecord, error)
	ListRates(ctx context.Context, customerID string) ([]domain.RateRecord, error)
	CurrentRate(ctx context.Context, customerID string, on domain.Date) (decimal.Decimal, error)
}

// RateHandler handles customer rate HTTP requests.
type RateHandler struct {
	rateUC RateService
	clock  usecase.Clock
}

// NewRateHandler creates a new RateHandler. The clock supplies the date
// reported when /rates/current is asked without one.
func NewRateHandler(rateUC RateService, clock usecase.Clock) *RateHandler {
	return &RateHandler{rateUC: rateUC, clock: clock}
}

// Set appends a rate record for a customer.
func (h *RateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	record, err := h.rateUC.SetRate(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to set rate", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RateFromDomain(record))
}

// List lists rate records, optionally for one customer_id.
func (h *RateHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(r.URL.Query().Get("customer_id"))

	records, err := h.rateUC.ListRates(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, r, "failed to list rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RatesFromDomain(records))
}

// Current resolves the rate in effect for customer_id on date, today by default.
func (h *RateHandler) Current(w http.ResponseWriter, r *http.Request) {
	customerID := strings.TrimSpace(r.URL.Query().Get("customer_id"))
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "missing customer_id", "")
		return
	}

	on, err := dto.ParseOptionalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	if on.IsZero() {
		on = domain.NewDate(h.clock.Now())
	}

	rate, err := h.rateUC.CurrentRate(r.Context(), customerID, on)
	if err != nil {
		if mapDomainError(err) == http.StatusBadRequest {
			writeError(w, http.StatusNotFound, "no rate set", err.Error())
			return
		}
		writeDomainError(w, r, "failed to resolve rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrentRateResponse{
		CustomerID: customerID,
		Date:       on,
		Rate:       rate,
	})
}
