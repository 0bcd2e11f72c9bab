package service

import (
	"context"
	"fmt"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/orders/domain"
	"ticket-sales/internal/features/orders/ports"
)

// OrderServiceImpl handles the business logic for customer orders.
type OrderServiceImpl struct {
	repo ports.OrderRepository
}

// NewOrderService creates a new instance of OrderServiceImpl.
func NewOrderService(repo ports.OrderRepository) *OrderServiceImpl {
	return &OrderServiceImpl{repo: repo}
}

// List returns the orders p may see.
func (s *OrderServiceImpl) List(ctx context.Context, p access.Principal) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx, access.Scope(p))
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}

// Get retrieves an order, reporting orders owned by someone else as not found.
func (s *OrderServiceImpl) Get(ctx context.Context, p access.Principal, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get order: %w", err)
	}
	if !access.Allowed(p, order.Resource()) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// Create places an order for the caller.
func (s *OrderServiceImpl) Create(ctx context.Context, p access.Principal, in domain.OrderInput) (*domain.Order, error) {
	order, err := s.repo.Create(ctx, domain.NewOrder(p.CustomerID, in))
	if err != nil {
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}
	return order, nil
}

func (s *OrderServiceImpl) Update(ctx context.Context, p access.Principal, id int64, patch domain.OrderPatch) (*domain.Order, error) {
	order, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(order)

	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update order: %w", err)
	}
	return updated, nil
}

// Delete removes the order and, through the foreign key, its tickets.
func (s *OrderServiceImpl) Delete(ctx context.Context, p access.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete order: %w", err)
	}
	return nil
}
