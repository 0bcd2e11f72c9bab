package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ticket-sales/internal/core/web"
	"ticket-sales/internal/features/categories/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryService is a mock implementation of ports.CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, in domain.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupApp(svc *MockCategoryService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
	for _, r := range NewCategoryHandler(svc).Routes() {
		app.Add(r.Method, r.Path, r.Handler)
	}
	return app
}

func request(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Create", mock.Anything, domain.CategoryInput{Name: "Sports"}).
			Return(&domain.Category{ID: 4, Name: "Sports"}, nil)

		resp, err := setupApp(svc).Test(request("POST", "/categories/", `{"name":"Sports"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got domain.Category
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(4), got.ID)
	})

	t.Run("NameRequired", func(t *testing.T) {
		svc := new(MockCategoryService)

		resp, err := setupApp(svc).Test(request("POST", "/categories/", `{"description":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		svc := new(MockCategoryService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrCategoryNameTaken)

		resp, err := setupApp(svc).Test(request("POST", "/categories/", `{"name":"Sports"}`))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body web.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.ErrCategoryNameTaken.Error(), body.Fields["name"])
	})
}

func TestCategoryHandler_GetAndDelete(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Get", mock.Anything, int64(1)).Return(&domain.Category{ID: 1, Name: "Film"}, nil)
	svc.On("Get", mock.Anything, int64(2)).Return(nil, domain.ErrCategoryNotFound)
	svc.On("Delete", mock.Anything, int64(1)).Return(nil)
	svc.On("List", mock.Anything).Return(nil, errors.New("db down"))
	app := setupApp(svc)

	resp, err := app.Test(request("GET", "/categories/1/", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(request("GET", "/categories/2/", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(request("DELETE", "/categories/1/", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(request("GET", "/categories/", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCategoryHandler_Patch(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p domain.CategoryPatch) bool {
		return p.Name == nil && p.Description != nil && *p.Description == "Movies"
	})).Return(&domain.Category{ID: 1, Name: "Film", Description: "Movies"}, nil)

	resp, err := setupApp(svc).Test(request("PATCH", "/categories/1/", `{"description":"Movies"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	svc.AssertExpectations(t)
}
