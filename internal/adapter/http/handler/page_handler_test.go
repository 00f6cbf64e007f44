package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

func newTestPageHandler(report ReportService, auth AuthService) *PageHandler {
	return NewPageHandler(report, auth, domain.DefaultDateConverter, time.Hour, false)
}

func postForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPageHandler_IndexRedirectsToLogin(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{}, &authServiceStub{})

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestPageHandler_LoginForm(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{}, &authServiceStub{})

	rec := httptest.NewRecorder()
	h.LoginForm(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `name="password"`)
}

func TestPageHandler_LoginSubmit_Redirects(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.Customer
		location string
	}{
		{"admin goes to dashboard", &domain.Customer{ID: "admin", Role: domain.RoleAdmin}, "/dashboard"},
		{"customer goes to own statement", &domain.Customer{ID: "CUST001", Role: domain.RoleCustomer}, "/customers/CUST001/statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestPageHandler(&reportServiceStub{}, loginAs(tt.user))

			rec := httptest.NewRecorder()
			h.LoginSubmit(rec, postForm(url.Values{"user_id": {tt.user.ID}, "password": {"secret"}}))

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
			cookie := sessionCookie(t, rec)
			require.NotNil(t, cookie)
			assert.Equal(t, "signed-token", cookie.Value)
		})
	}
}

func TestPageHandler_LoginSubmit_BadCredentialsRerendersForm(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{}, loginAs(&domain.Customer{ID: "CUST001", Role: domain.RoleCustomer}))

	rec := httptest.NewRecorder()
	h.LoginSubmit(rec, postForm(url.Values{"user_id": {"CUST001"}, "password": {"wrong"}}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid user ID or password.")
	assert.Contains(t, rec.Body.String(), `value="CUST001"`)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestPageHandler_LoginSubmit_StoreFailure(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{}, &authServiceStub{
		loginFn: func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error) {
			return nil, errors.New("read users.json: input/output error")
		},
	})

	rec := httptest.NewRecorder()
	h.LoginSubmit(rec, postForm(url.Values{"user_id": {"CUST001"}, "password": {"secret"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in is unavailable right now.")
	assert.NotContains(t, rec.Body.String(), "users.json")
}

func TestPageHandler_Dashboard(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{
		dashboardFn: func(ctx context.Context) (*usecase.Dashboard, error) { return sampleDashboard(), nil },
	}, &authServiceStub{})

	rec := httptest.NewRecorder()
	h.Dashboard(rec, asAdmin(httptest.NewRequest(http.MethodGet, "/dashboard", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ram Bahadur")
	assert.Contains(t, body, "Sita Kumari")
	assert.Contains(t, body, "Rs. 750.00")
	assert.Contains(t, body, "2082-10-02")
	assert.Contains(t, body, `href="/customers/CUST002/statement"`)
}

func TestPageHandler_Statement(t *testing.T) {
	h := newTestPageHandler(&reportServiceStub{
		statementFn: func(ctx context.Context, customerID string) (*usecase.CustomerStatement, error) {
			if customerID != "CUST001" {
				return nil, domain.ErrCustomerNotFound
			}
			return sampleStatement(), nil
		},
	}, &authServiceStub{})

	rec := httptest.NewRecorder()
	h.Statement(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/customers/CUST001/statement", nil), "id", "CUST001"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ram Bahadur")
	assert.Contains(t, body, "Rs. 90.00 / L")
	assert.Contains(t, body, "January 2026")
	assert.Contains(t, body, "<details open>")
	assert.Contains(t, body, "cash")

	rec = httptest.NewRecorder()
	h.Statement(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/customers/CUST404/statement", nil), "id", "CUST404"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "customer not found")
}
