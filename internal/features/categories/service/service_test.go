package service

import (
	"context"
	"errors"
	"testing"

	"ticket-sales/internal/features/categories/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCategoryRepository is a mock implementation of ports.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	repo.On("Create", ctx, &domain.Category{Name: "Concerts", Description: "Live music"}).
		Return(&domain.Category{ID: 1, Name: "Concerts", Description: "Live music"}, nil).Once()
	repo.On("Create", ctx, &domain.Category{Name: "Concerts"}).
		Return(nil, domain.ErrCategoryNameTaken).Once()

	got, err := svc.Create(ctx, domain.CategoryInput{Name: "Concerts", Description: "Live music"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)

	_, err = svc.Create(ctx, domain.CategoryInput{Name: "Concerts"})
	assert.ErrorIs(t, err, domain.ErrCategoryNameTaken)

	repo.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PatchKeepsUnsetFields", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)

		repo.On("GetByID", ctx, int64(3)).Return(&domain.Category{ID: 3, Name: "Theatre", Description: "Plays"}, nil)
		repo.On("Update", ctx, &domain.Category{ID: 3, Name: "Drama", Description: "Plays"}).
			Return(&domain.Category{ID: 3, Name: "Drama", Description: "Plays"}, nil)

		name := "Drama"
		got, err := svc.Update(ctx, 3, domain.CategoryPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Drama", got.Name)
		assert.Equal(t, "Plays", got.Description)
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		svc := NewCategoryService(repo)
		repo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrCategoryNotFound)

		_, err := svc.Update(ctx, 9, domain.CategoryPatch{})
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	svc := NewCategoryService(repo)

	repo.On("List", ctx).Return(nil, errors.New("db down"))
	repo.On("Delete", ctx, int64(5)).Return(domain.ErrCategoryNotFound)

	_, err := svc.List(ctx)
	assert.EqualError(t, err, "service: failed to list categories: db down")
	assert.ErrorIs(t, svc.Delete(ctx, 5), domain.ErrCategoryNotFound)
}
