package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/core/auth"
	"ticket-sales/internal/features/customers/domain"
	"ticket-sales/internal/features/customers/ports"
)

// CustomerServiceImpl implements ports.CustomerService and auth.PrincipalSource.
type CustomerServiceImpl struct {
	repo   ports.CustomerRepository
	hasher *auth.PasswordHasher
}

// NewCustomerService creates a new CustomerServiceImpl.
func NewCustomerService(repo ports.CustomerRepository, hasher *auth.PasswordHasher) *CustomerServiceImpl {
	return &CustomerServiceImpl{
		repo:   repo,
		hasher: hasher,
	}
}

// Create registers a new customer. Only privileged callers may create staff or superusers.
func (s *CustomerServiceImpl) Create(ctx context.Context, p access.Principal, in domain.CustomerInput) (*domain.Customer, error) {
	if in.Password == "" {
		return nil, domain.ErrPasswordRequired
	}
	if !p.Privileged() && (isSet(in.IsStaff) || isSet(in.IsSuperuser)) {
		return nil, domain.ErrPrivilegeEscalation
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("service: failed to hash password: %w", err)
	}

	customer := &domain.Customer{
		Email:        domain.NormalizeEmail(in.Email),
		Name:         in.Name,
		PasswordHash: hash,
		IsStaff:      isSet(in.IsStaff),
		IsSuperuser:  isSet(in.IsSuperuser),
		DateJoined:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create customer: %w", err)
	}
	return created, nil
}

// Get returns the customer if p may see it.
func (s *CustomerServiceImpl) Get(ctx context.Context, p access.Principal, id int64) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get customer: %w", err)
	}
	if !access.Allowed(p, customer.Resource()) {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// List returns all customers for privileged callers and just the caller otherwise.
func (s *CustomerServiceImpl) List(ctx context.Context, p access.Principal) ([]*domain.Customer, error) {
	customers, err := s.repo.List(ctx, access.Scope(p))
	if err != nil {
		return nil, fmt.Errorf("service: failed to list customers: %w", err)
	}
	return customers, nil
}

// Update changes a profile. Non-privileged callers may only edit themselves and
// may not change their own staff or superuser flags.
func (s *CustomerServiceImpl) Update(ctx context.Context, p access.Principal, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	current, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if !p.Privileged() && (changes(patch.IsStaff, current.IsStaff) || changes(patch.IsSuperuser, current.IsSuperuser)) {
		return nil, domain.ErrPrivilegeEscalation
	}

	patch.Apply(current)
	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("service: failed to hash password: %w", err)
		}
		current.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update customer: %w", err)
	}
	return updated, nil
}

// Delete removes the account if p may see it.
func (s *CustomerServiceImpl) Delete(ctx context.Context, p access.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete customer: %w", err)
	}
	return nil
}

// Authenticate checks an email and password pair.
func (s *CustomerServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service: failed to look up customer: %w", err)
	}
	if !s.hasher.Check(customer.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return customer, nil
}

// PrincipalByID loads the current permissions of a customer for the auth middleware.
func (s *CustomerServiceImpl) PrincipalByID(ctx context.Context, id int64) (access.Principal, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return access.Principal{}, auth.ErrUnknownPrincipal
		}
		return access.Principal{}, fmt.Errorf("service: failed to load principal: %w", err)
	}
	return customer.Principal(), nil
}

func isSet(b *bool) bool {
	return b != nil && *b
}

func changes(want *bool, current bool) bool {
	return want != nil && *want != current
}
