package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler and PageHandler.
type ReportService interface {
	Dashboard(ctx context.Context) (*usecase.Dashboard, error)
	CustomerStatement(ctx context.Context, customerID string) (*usecase.CustomerStatement, error)
}

// ReportHandler serves the dashboard and statements as JSON.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Dashboard returns the admin overview.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportUC.Dashboard(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to build dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(dashboard))
}

// Statement returns a customer's statement for the trailing months.
func (h *ReportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.reportUC.CustomerStatement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to build statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromUseCase(statement))
}
