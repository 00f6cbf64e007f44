package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// MilkService defines the behavior needed by MilkHandler.
type MilkService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.MilkEntry, error)
	CreateEntries(ctx context.Context, input usecase.CreateEntriesInput) ([]*domain.MilkEntry, error)
	ListEntries(ctx context.Context, filter usecase.EntryFilter) ([]domain.MilkEntry, error)
	UpdateEntry(ctx context.Context, input usecase.UpdateEntryInput) (*domain.MilkEntry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// MilkHandler handles milk entry HTTP requests.
type MilkHandler struct {
	milkUC MilkService
}

// NewMilkHandler creates a new MilkHandler.
func NewMilkHandler(milkUC MilkService) *MilkHandler {
	return &MilkHandler{milkUC: milkUC}
}

// Create records a single entry.
func (h *MilkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	entry, err := h.milkUC.CreateEntry(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create entry", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// CreateBatch records one shift for several customers. Nothing is stored
// unless every line is valid.
func (h *MilkHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	entries, err := h.milkUC.CreateEntries(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create entries", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BatchEntriesFromDomain(entries))
}

// List lists entries, optionally filtered by customer_id, from and to.
// Customers only ever see their own entries.
func (h *MilkHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, ok := scopedCustomerID(w, r)
	if !ok {
		return
	}

	from, err := dto.ParseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}
	to, err := dto.ParseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	entries, err := h.milkUC.ListEntries(r.Context(), usecase.EntryFilter{
		CustomerID: customerID,
		From:       from,
		To:         to,
	})
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListEntriesResponse(entries))
}

// Update edits an entry. Total and the BS date are recomputed.
func (h *MilkHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.UpdateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	entry, err := h.milkUC.UpdateEntry(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to update entry", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete removes an entry.
func (h *MilkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.milkUC.DeleteEntry(r.Context(), id); err != nil {
		writeDomainError(w, r, "failed to delete entry", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
