package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/core/config"
	"ticket-sales/internal/core/web"
	customeradapters "ticket-sales/internal/features/customers/adapters"
	customerdomain "ticket-sales/internal/features/customers/domain"
	customerservice "ticket-sales/internal/features/customers/service"
	"ticket-sales/internal/features/sessions/adapters"
	"ticket-sales/internal/features/sessions/domain"
	"ticket-sales/internal/features/sessions/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	app       *fiber.App
	customers *customerservice.CustomerServiceImpl
	issuer    *auth.Issuer
	customer  *customerdomain.Customer
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	customers := customerservice.NewCustomerService(
		customeradapters.NewMemoryCustomerRepository(),
		auth.NewPasswordHasher(bcrypt.MinCost),
	)
	issuer := auth.NewIssuer(config.AuthConfig{
		Secret:     "handler-test-secret",
		Issuer:     "ticket-sales",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: time.Hour,
	})

	customer, err := customers.Create(context.Background(), access.Principal{IsSuperuser: true}, customerdomain.CustomerInput{
		Email:    "maria@example.com",
		Name:     "Maria",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	h := NewSessionHandler(service.NewSessionService(adapters.NewCustomerAccounts(customers), issuer))
	for _, r := range h.Routes() {
		app.Add(r.Method, r.Path, r.Handler)
	}

	return &testEnv{app: app, customers: customers, issuer: issuer, customer: customer}
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestLogin_Scenario(t *testing.T) {
	env := setup(t)

	t.Run("Success", func(t *testing.T) {
		resp, body := post(t, env.app, "/auth/login/", `{"email":"maria@example.com","password":"correct-horse"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.LoginResponse
		require.NoError(t, json.Unmarshal([]byte(body), &got))
		assert.NotEmpty(t, got.AccessToken)
		assert.NotEmpty(t, got.RefreshToken)
		assert.Equal(t, domain.User{ID: env.customer.ID, Email: "maria@example.com", Name: "Maria"}, got.User)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"WrongPassword", `{"email":"maria@example.com","password":"nope"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"UnknownEmail", `{"email":"ghost@example.com","password":"correct-horse"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"BlankEmail", `{"email":"   ","password":"correct-horse"}`, http.StatusUnauthorized, `{"error":"Invalid credentials"}`},
		{"MissingPassword", `{"email":"maria@example.com"}`, http.StatusBadRequest, `{"error":"Email and password are required"}`},
		{"MissingEmail", `{"password":"correct-horse"}`, http.StatusBadRequest, `{"error":"Email and password are required"}`},
		{"EmptyBody", ``, http.StatusBadRequest, `{"error":"Email and password are required"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, env.app, "/auth/login/", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestRefresh(t *testing.T) {
	env := setup(t)
	pair, err := env.issuer.IssuePair(env.customer.ID)
	require.NoError(t, err)

	resp, body := post(t, env.app, "/auth/refresh/", `{"refresh":"`+pair.Refresh+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.RefreshResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	claims, err := env.issuer.Verify(got.Access, auth.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, env.customer.ID, claims.UserID)

	resp, _ = post(t, env.app, "/auth/refresh/", `{"refresh":"`+pair.Access+`"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = post(t, env.app, "/auth/refresh/", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NoError(t, env.customers.Delete(context.Background(), access.Principal{IsStaff: true}, env.customer.ID))
	resp, body = post(t, env.app, "/auth/refresh/", `{"refresh":"`+pair.Refresh+`"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Token is invalid or expired"}`, body)
}
