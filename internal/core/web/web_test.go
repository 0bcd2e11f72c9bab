package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title string  `json:"title" validate:"required,max=10"`
	Link  *string `json:"link_url" validate:"omitempty,url"`
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/sample", func(c *fiber.Ctx) error {
		var req sampleRequest
		if err := BindJSON(c, &req); err != nil {
			return err
		}
		return c.JSON(req)
	})
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": id})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("connection refused at 10.0.0.3")
	})
	app.Get("/busy", func(c *fiber.Ctx) error {
		return fmt.Errorf("service: failed to move banner: %w", database.ErrTransactionConflict)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": p.CustomerID})
	})
	return app
}

func decodeError(t *testing.T, body io.Reader) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestBindJSON_ValidationFields(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("POST", "/sample", strings.NewReader(`{"title":"","link_url":"not a url"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, map[string]string{"title": "required", "link_url": "url"}, body.Fields)
}

func TestBindJSON_MalformedBody(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("POST", "/sample", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", decodeError(t, resp.Body).Error)
}

func TestBindJSON_Valid(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("POST", "/sample", strings.NewReader(`{"title":"ok"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParamID(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/items/12", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	for _, path := range []string{"/items/abc", "/items/0", "/items/-3"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestErrorHandler_HidesInternals(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "internal server error", body.Error)
}

func TestErrorHandler_TransactionConflict(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/busy", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "please retry", decodeError(t, resp.Body).Error)
}

func TestErrorHandler_FiberErrors(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, decodeError(t, resp.Body).Error)
}

func TestCurrentPrincipal(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	withPrincipal := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	withPrincipal.Use(func(c *fiber.Ctx) error {
		SetPrincipal(c, access.Principal{CustomerID: 5})
		return c.Next()
	})
	withPrincipal.Get("/me", func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": p.CustomerID})
	})

	resp, err = withPrincipal.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
