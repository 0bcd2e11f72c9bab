package ports

import (
	"context"

	"ticket-sales/internal/features/banners/domain"
)

// BannerService defines the primary port for banner operations.
type BannerService interface {
	List(ctx context.Context) ([]*domain.Banner, error)
	Get(ctx context.Context, id int64) (*domain.Banner, error)
	Append(ctx context.Context, in domain.BannerInput) (*domain.Banner, error)
	Update(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error)
	MoveUp(ctx context.Context, id int64) (*domain.Banner, error)
	MoveDown(ctx context.Context, id int64) (*domain.Banner, error)
	Delete(ctx context.Context, id int64) error
}

// BannerRepository defines the secondary port for banner storage.
// Ranking writes are only safe inside UnitOfWork.Run after Lock.
type BannerRepository interface {
	Count(ctx context.Context) (int, error)
	// Create stores b at b.Order and returns it with its id.
	Create(ctx context.Context, b *domain.Banner) (*domain.Banner, error)
	GetByID(ctx context.Context, id int64) (*domain.Banner, error)
	// List returns every banner ordered by rank.
	List(ctx context.Context) ([]*domain.Banner, error)
	// Update writes the content fields of b. Order is not touched.
	Update(ctx context.Context, b *domain.Banner) (*domain.Banner, error)
	Delete(ctx context.Context, id int64) error

	// Lock blocks other ranking changes until the surrounding transaction ends.
	// Statements after it see every change committed before it was granted.
	Lock(ctx context.Context) error
	// Predecessor returns the banner ranked just above order, or nil at the top.
	Predecessor(ctx context.Context, order int) (*domain.Banner, error)
	// Successor returns the banner ranked just below order, or nil at the bottom.
	Successor(ctx context.Context, order int) (*domain.Banner, error)
	// SwapOrders exchanges the ranks of a and b using the ranks read into them.
	SwapOrders(ctx context.Context, a, b *domain.Banner) error
	// CompactAfter shifts every banner ranked below order up by one.
	CompactAfter(ctx context.Context, order int) error
}

// UnitOfWork runs fn against a repository bound to one transaction.
// Either every write fn makes is kept or none is.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(repo BannerRepository) error) error
}

// ListCache caches the ranked listing per generation. Invalidate advances the
// generation, and a listing is stored under the generation that was current
// before it was read, so a fill racing a committed change is never served.
type ListCache interface {
	// Get returns the listing for the current generation. On a miss gen is the
	// generation to hand to Set; it is negative when it could not be read.
	Get(ctx context.Context) (banners []*domain.Banner, gen int64, ok bool)
	// Set stores banners for gen. A negative gen is ignored.
	Set(ctx context.Context, gen int64, banners []*domain.Banner)
	Invalidate(ctx context.Context)
}
