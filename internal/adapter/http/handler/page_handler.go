package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

// PageHandler serves the server-rendered HTML pages.
type PageHandler struct {
	reportUC ReportService
	authUC   AuthService
	pages    *pageTemplates
	auth     *AuthHandler
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(reportUC ReportService, authUC AuthService, conv domain.DateConverter, tokenDuration time.Duration, secureCookie bool) *PageHandler {
	return &PageHandler{
		reportUC: reportUC,
		authUC:   authUC,
		pages:    newPageTemplates(conv),
		auth:     NewAuthHandler(authUC, tokenDuration, secureCookie),
	}
}

type loginView struct {
	UserID string
	Error  string
}

type dashboardView struct {
	*usecase.Dashboard
	Names map[string]string
}

// Index sends visitors to the sign-in page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginForm renders the sign-in form.
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.pages.login, loginView{})
}

// LoginSubmit handles the sign-in form. Admins land on the dashboard and
// customers on their own statement.
func (h *PageHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, h.pages.login, loginView{Error: "Could not read the form."})
		return
	}

	input := usecase.LoginInput{
		UserID:   strings.TrimSpace(r.PostForm.Get("user_id")),
		Password: r.PostForm.Get("password"),
	}

	result, err := h.authUC.Login(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		view := loginView{UserID: input.UserID, Error: "Invalid user ID or password."}
		if status >= http.StatusInternalServerError {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
			view.Error = "Sign in is unavailable right now."
		}
		h.render(w, r, status, h.pages.login, view)
		return
	}

	h.auth.setSessionCookie(w, result.Token)

	target := "/dashboard"
	if result.User.Role != domain.RoleAdmin {
		target = "/customers/" + url.PathEscape(result.User.ID) + "/statement"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Dashboard renders the admin overview.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportUC.Dashboard(r.Context())
	if err != nil {
		h.renderError(w, r, "failed to build dashboard", err)
		return
	}

	names := make(map[string]string, len(dashboard.Balances))
	for _, b := range dashboard.Balances {
		names[b.CustomerID] = b.Name
	}

	h.render(w, r, http.StatusOK, h.pages.dashboard, dashboardView{Dashboard: dashboard, Names: names})
}

// Statement renders a customer's statement.
func (h *PageHandler) Statement(w http.ResponseWriter, r *http.Request) {
	statement, err := h.reportUC.CustomerStatement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, "failed to build statement", err)
		return
	}

	h.render(w, r, http.StatusOK, h.pages.statement, statement)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, tpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", tpl.Name()).Msg("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(message)
	}
	if errors.Is(err, domain.ErrCustomerNotFound) {
		http.Error(w, "customer not found", status)
		return
	}
	http.Error(w, http.StatusText(status), status)
}
