package adapters

import (
	"context"
	"sync"

	"ticket-sales/internal/features/banners/domain"
	"ticket-sales/internal/features/banners/ports"
)

// MemoryStore keeps banners in memory. It is both a repository for plain
// reads and a unit of work whose Run applies all of fn's writes or none.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

type memoryState struct {
	banners map[int64]domain.Banner
	nextID  int64
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		banners: make(map[int64]domain.Banner, len(s.banners)),
		nextID:  s.nextID,
	}
	for id, b := range s.banners {
		c.banners[id] = b
	}
	return c
}

func (s *memoryState) dense() bool {
	orders := make([]int, 0, len(s.banners))
	for _, b := range s.banners {
		orders = append(orders, b.Order)
	}
	return domain.IsDenseRanking(orders)
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{banners: make(map[int64]domain.Banner), nextID: 1},
	}
}

// Run executes fn on a private copy of the data and publishes the copy only if
// fn succeeds and the ranking is still dense.
func (m *MemoryStore) Run(ctx context.Context, fn func(repo ports.BannerRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := m.state.clone()
	if err := fn(&memoryRepo{state: work}); err != nil {
		return err
	}
	if !work.dense() {
		return domain.ErrBrokenRanking
	}

	m.state = work
	return nil
}

func (m *MemoryStore) view() *memoryRepo {
	return &memoryRepo{state: m.state}
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Count(ctx)
}

func (m *MemoryStore) Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Create(ctx, b)
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().GetByID(ctx, id)
}

func (m *MemoryStore) List(ctx context.Context) ([]*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().List(ctx)
}

func (m *MemoryStore) Update(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Update(ctx, b)
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Delete(ctx, id)
}

// Lock is a no-op outside Run; Run already holds the store lock.
func (m *MemoryStore) Lock(context.Context) error { return nil }

func (m *MemoryStore) Predecessor(ctx context.Context, order int) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Predecessor(ctx, order)
}

func (m *MemoryStore) Successor(ctx context.Context, order int) (*domain.Banner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().Successor(ctx, order)
}

func (m *MemoryStore) SwapOrders(ctx context.Context, a, b *domain.Banner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().SwapOrders(ctx, a, b)
}

func (m *MemoryStore) CompactAfter(ctx context.Context, order int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view().CompactAfter(ctx, order)
}

// memoryRepo operates on one state without locking. The caller holds the lock.
type memoryRepo struct {
	state *memoryState
}

func (r *memoryRepo) Count(context.Context) (int, error) {
	return len(r.state.banners), nil
}

func (r *memoryRepo) Create(_ context.Context, b *domain.Banner) (*domain.Banner, error) {
	stored := *b
	stored.ID = r.state.nextID
	r.state.nextID++
	r.state.banners[stored.ID] = stored

	result := stored
	return &result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Banner, error) {
	b, ok := r.state.banners[id]
	if !ok {
		return nil, domain.ErrBannerNotFound
	}
	return &b, nil
}

func (r *memoryRepo) List(context.Context) ([]*domain.Banner, error) {
	banners := make([]*domain.Banner, 0, len(r.state.banners))
	for _, b := range r.state.banners {
		b := b
		banners = append(banners, &b)
	}
	domain.SortByOrder(banners)
	return banners, nil
}

func (r *memoryRepo) Update(_ context.Context, b *domain.Banner) (*domain.Banner, error) {
	stored, ok := r.state.banners[b.ID]
	if !ok {
		return nil, domain.ErrBannerNotFound
	}
	stored.Title = b.Title
	stored.ImageURL = b.ImageURL
	stored.LinkURL = b.LinkURL
	stored.UpdatedAt = b.UpdatedAt
	r.state.banners[b.ID] = stored

	result := stored
	return &result, nil
}

func (r *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.state.banners[id]; !ok {
		return domain.ErrBannerNotFound
	}
	delete(r.state.banners, id)
	return nil
}

func (r *memoryRepo) Lock(context.Context) error { return nil }

func (r *memoryRepo) Predecessor(_ context.Context, order int) (*domain.Banner, error) {
	var best *domain.Banner
	for _, b := range r.state.banners {
		if b.Order < order && (best == nil || b.Order > best.Order) {
			b := b
			best = &b
		}
	}
	return best, nil
}

func (r *memoryRepo) Successor(_ context.Context, order int) (*domain.Banner, error) {
	var best *domain.Banner
	for _, b := range r.state.banners {
		if b.Order > order && (best == nil || b.Order < best.Order) {
			b := b
			best = &b
		}
	}
	return best, nil
}

func (r *memoryRepo) SwapOrders(_ context.Context, a, b *domain.Banner) error {
	storedA, okA := r.state.banners[a.ID]
	storedB, okB := r.state.banners[b.ID]
	if !okA || !okB {
		return domain.ErrBannerNotFound
	}
	storedA.Order, storedB.Order = b.Order, a.Order
	r.state.banners[a.ID] = storedA
	r.state.banners[b.ID] = storedB
	return nil
}

func (r *memoryRepo) CompactAfter(_ context.Context, order int) error {
	for id, b := range r.state.banners {
		if b.Order > order {
			b.Order--
			r.state.banners[id] = b
		}
	}
	return nil
}

var (
	_ ports.BannerRepository = (*MemoryStore)(nil)
	_ ports.UnitOfWork       = (*MemoryStore)(nil)
)
