package ports

import (
	"context"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/orders/domain"
)

// OrderService defines the owner-scoped order use cases.
type OrderService interface {
	List(ctx context.Context, p access.Principal) ([]*domain.Order, error)
	Get(ctx context.Context, p access.Principal, id int64) (*domain.Order, error)
	Create(ctx context.Context, p access.Principal, in domain.OrderInput) (*domain.Order, error)
	Update(ctx context.Context, p access.Principal, id int64, patch domain.OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, p access.Principal, id int64) error
}

// OrderRepository persists orders.
// This is a Secondary Port (Driven Port).
type OrderRepository interface {
	// List returns every order, or only customerID's when it is not nil.
	List(ctx context.Context, customerID *int64) ([]*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
