package adapters

import (
	"context"
	"sort"
	"sync"

	"ticket-sales/internal/features/customers/domain"
	"ticket-sales/internal/features/customers/ports"
)

// MemoryCustomerRepository is an in-memory ports.CustomerRepository.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[int64]domain.Customer
	nextID    int64
}

// NewMemoryCustomerRepository creates an empty repository.
func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{
		customers: make(map[int64]domain.Customer),
		nextID:    1,
	}
}

func (r *MemoryCustomerRepository) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(c.Email, 0) {
		return nil, domain.ErrEmailTaken
	}

	stored := *c
	stored.ID = r.nextID
	r.nextID++
	r.customers[stored.ID] = stored

	result := stored
	return &result, nil
}

func (r *MemoryCustomerRepository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *MemoryCustomerRepository) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.Email == email {
			result := c
			return &result, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *MemoryCustomerRepository) List(_ context.Context, only *int64) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if only != nil && c.ID != *only {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCustomerRepository) Update(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[c.ID]; !ok {
		return nil, domain.ErrCustomerNotFound
	}
	if r.emailTaken(c.Email, c.ID) {
		return nil, domain.ErrEmailTaken
	}
	r.customers[c.ID] = *c

	result := *c
	return &result, nil
}

func (r *MemoryCustomerRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *MemoryCustomerRepository) emailTaken(email string, except int64) bool {
	for id, c := range r.customers {
		if id != except && c.Email == email {
			return true
		}
	}
	return false
}

var _ ports.CustomerRepository = (*MemoryCustomerRepository)(nil)
