package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/orders/adapters"
	"ticket-sales/internal/features/orders/domain"
	"ticket-sales/internal/features/orders/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp mounts the order routes behind a middleware that authenticates
// whoever is named in the X-Customer header.
func setupApp(principals map[string]access.Principal) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	authenticate := func(c *fiber.Ctx) error {
		if p, ok := principals[c.Get("X-Customer")]; ok {
			web.SetPrincipal(c, p)
		}
		return c.Next()
	}

	h := NewOrderHandler(service.NewOrderService(adapters.NewMemoryOrderRepository()))
	for _, r := range h.Routes() {
		app.Add(r.Method, r.Path, authenticate, r.Handler)
	}
	return app
}

func call(t *testing.T, app *fiber.App, who, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Customer", who)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func listOrders(t *testing.T, app *fiber.App, who string) []domain.Order {
	t.Helper()
	resp := call(t, app, who, "GET", "/orders/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	return orders
}

func TestOrderHandler_OwnershipScenario(t *testing.T) {
	app := setupApp(map[string]access.Principal{
		"alice": {CustomerID: 1},
		"bob":   {CustomerID: 2},
		"staff": {CustomerID: 3, IsStaff: true},
		"root":  {CustomerID: 4, IsSuperuser: true},
	})

	for _, who := range []string{"alice", "alice", "bob"} {
		// A customer field in the body is ignored.
		resp := call(t, app, who, "POST", "/orders/", map[string]interface{}{"total_cents": 1000, "customer": 2})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	aliceOrders := listOrders(t, app, "alice")
	require.Len(t, aliceOrders, 2)
	for _, o := range aliceOrders {
		assert.Equal(t, int64(1), o.CustomerID)
	}

	bobOrders := listOrders(t, app, "bob")
	require.Len(t, bobOrders, 1)
	assert.Equal(t, int64(2), bobOrders[0].CustomerID)

	assert.Len(t, listOrders(t, app, "staff"), 3)
	assert.Len(t, listOrders(t, app, "root"), 3)

	resp := call(t, app, "bob", "GET", fmt.Sprintf("/orders/%d/", aliceOrders[0].ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, "staff", "GET", fmt.Sprintf("/orders/%d/", aliceOrders[0].ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOrderHandler_Validation(t *testing.T) {
	app := setupApp(map[string]access.Principal{"alice": {CustomerID: 1}})

	resp := call(t, app, "alice", "POST", "/orders/", map[string]interface{}{"status": "shipped"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body web.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "oneof=pending paid cancelled", body.Fields["status"])

	resp = call(t, app, "alice", "POST", "/orders/", map[string]interface{}{"total_cents": -5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_UpdateAndDelete(t *testing.T) {
	app := setupApp(map[string]access.Principal{"alice": {CustomerID: 1}, "bob": {CustomerID: 2}})

	resp := call(t, app, "alice", "POST", "/orders/", map[string]interface{}{"total_cents": 1000})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	path := fmt.Sprintf("/orders/%d/", created.ID)

	resp = call(t, app, "alice", "PATCH", path, map[string]interface{}{"status": "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, domain.OrderStatusPaid, updated.Status)
	assert.Equal(t, int64(1000), updated.TotalCents)

	resp = call(t, app, "alice", "PUT", path, map[string]interface{}{"total_cents": 1200})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, domain.OrderStatusPending, updated.Status)

	resp = call(t, app, "bob", "DELETE", path, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, "alice", "DELETE", path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestOrderHandler_Unauthenticated(t *testing.T) {
	app := setupApp(nil)

	resp := call(t, app, "", "GET", "/orders/", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
