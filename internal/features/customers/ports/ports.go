package ports

import (
	"context"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/customers/domain"
)

// CustomerService defines the primary port for customer accounts.
// Every call acts on behalf of p and only sees rows p may see.
type CustomerService interface {
	Create(ctx context.Context, p access.Principal, in domain.CustomerInput) (*domain.Customer, error)
	Get(ctx context.Context, p access.Principal, id int64) (*domain.Customer, error)
	List(ctx context.Context, p access.Principal) ([]*domain.Customer, error)
	Update(ctx context.Context, p access.Principal, id int64, patch domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, p access.Principal, id int64) error
}

// CustomerRepository defines the secondary port for customer storage.
type CustomerRepository interface {
	// Create returns domain.ErrEmailTaken when the email is in use.
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	// List returns every customer when only is nil, otherwise just that one.
	List(ctx context.Context, only *int64) ([]*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
