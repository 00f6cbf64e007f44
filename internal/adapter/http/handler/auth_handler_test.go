package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/dairyledger/internal/adapter/http/dto"
	"github.com/iho/dairyledger/internal/adapter/http/middleware"
	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

type authServiceStub struct {
	loginFn func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error)
}

func (s *authServiceStub) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error) {
	return s.loginFn(ctx, input)
}

// loginAs accepts password "secret" for the given user.
func loginAs(user *domain.Customer) *authServiceStub {
	return &authServiceStub{
		loginFn: func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginResult, error) {
			if input.UserID != user.ID || input.Password != "secret" {
				return nil, domain.ErrUnauthorized
			}
			return &usecase.LoginResult{User: user, Token: "signed-token"}, nil
		},
	}
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	h := NewAuthHandler(loginAs(&domain.Customer{ID: "CUST001", Name: "Ram", Role: domain.RoleCustomer}), 24*time.Hour, true)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"user_id":" CUST001 ","password":"secret"}`)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, int64(86400), resp.ExpiresIn)
	assert.Equal(t, "CUST001", resp.User.ID)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, 86400, cookie.MaxAge)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h := NewAuthHandler(loginAs(&domain.Customer{ID: "CUST001", Role: domain.RoleCustomer}), time.Hour, false)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"user_id":"CUST001","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&authServiceStub{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	h := NewAuthHandler(&authServiceStub{}, time.Hour, false)

	rec := httptest.NewRecorder()
	h.GetCurrentUser(rec, withUser(httptest.NewRequest(http.MethodGet, "/auth/me", nil), "CUST002", domain.RoleCustomer))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.MeResponse{UserID: "CUST002", Role: domain.RoleCustomer}, resp)

	rec = httptest.NewRecorder()
	h.GetCurrentUser(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
