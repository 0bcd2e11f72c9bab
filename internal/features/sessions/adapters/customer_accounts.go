package adapters

import (
	"context"
	"errors"

	"ticket-sales/internal/core/auth"
	customerdomain "ticket-sales/internal/features/customers/domain"
	customerservice "ticket-sales/internal/features/customers/service"
	"ticket-sales/internal/features/sessions/domain"
	"ticket-sales/internal/features/sessions/ports"
)

// CustomerAccounts implements ports.Accounts on top of the customer service.
type CustomerAccounts struct {
	customers *customerservice.CustomerServiceImpl
}

// NewCustomerAccounts creates a CustomerAccounts backed by the customer service.
func NewCustomerAccounts(customers *customerservice.CustomerServiceImpl) *CustomerAccounts {
	return &CustomerAccounts{customers: customers}
}

// Authenticate checks the credentials and returns the account summary sent on login.
func (a *CustomerAccounts) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	c, err := a.customers.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, customerdomain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return &domain.User{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		IsStaff:     c.IsStaff,
		IsSuperuser: c.IsSuperuser,
	}, nil
}

// Exists reports whether the customer with id still has an account.
func (a *CustomerAccounts) Exists(ctx context.Context, id int64) (bool, error) {
	if _, err := a.customers.PrincipalByID(ctx, id); err != nil {
		if errors.Is(err, auth.ErrUnknownPrincipal) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ ports.Accounts = (*CustomerAccounts)(nil)
