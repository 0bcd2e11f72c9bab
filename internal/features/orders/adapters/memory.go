package adapters

import (
	"context"
	"sort"
	"sync"
	"time"

	"ticket-sales/internal/features/orders/domain"
	"ticket-sales/internal/features/orders/ports"
)

// MemoryOrderRepository is an in-memory ports.OrderRepository.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]domain.Order
	nextID int64
	now    func() time.Time
}

// NewMemoryOrderRepository creates an empty repository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[int64]domain.Order),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MemoryOrderRepository) List(_ context.Context, customerID *int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if customerID != nil && o.CustomerID != *customerID {
			continue
		}
		o := o
		out = append(out, &o)
	}
	// Newest first, matching the postgres adapter; ids break ties.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (r *MemoryOrderRepository) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *o
	stored.ID = r.nextID
	stored.CreatedAt = r.now().UTC()
	r.nextID++
	r.orders[stored.ID] = stored

	result := stored
	return &result, nil
}

func (r *MemoryOrderRepository) Update(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.orders[o.ID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	current.Status = o.Status
	current.TotalCents = o.TotalCents
	r.orders[o.ID] = current

	result := current
	return &result, nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

var _ ports.OrderRepository = (*MemoryOrderRepository)(nil)
