package service

import (
	"context"
	"fmt"
	"time"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/banners/domain"
	"ticket-sales/internal/features/banners/ports"

	"go.uber.org/zap"
)

// BannerServiceImpl implements ports.BannerService.
type BannerServiceImpl struct {
	repo  ports.BannerRepository
	uow   ports.UnitOfWork
	cache ports.ListCache
}

// NewBannerService creates a new BannerServiceImpl. repo serves reads outside
// transactions; every write goes through uow.
func NewBannerService(repo ports.BannerRepository, uow ports.UnitOfWork, cache ports.ListCache) *BannerServiceImpl {
	return &BannerServiceImpl{
		repo:  repo,
		uow:   uow,
		cache: cache,
	}
}

// List returns every banner ordered by rank. A miss is filled under the
// generation observed before the read, so a change committed meanwhile wins.
func (s *BannerServiceImpl) List(ctx context.Context) ([]*domain.Banner, error) {
	cached, gen, ok := s.cache.Get(ctx)
	if ok {
		return cached, nil
	}

	banners, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list banners: %w", err)
	}

	s.cache.Set(ctx, gen, banners)
	return banners, nil
}

// Get retrieves one banner.
func (s *BannerServiceImpl) Get(ctx context.Context, id int64) (*domain.Banner, error) {
	banner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get banner: %w", err)
	}
	return banner, nil
}

// Append stores a new banner at rank count+1.
func (s *BannerServiceImpl) Append(ctx context.Context, in domain.BannerInput) (*domain.Banner, error) {
	var created *domain.Banner
	err := s.mutate(ctx, "append", func(repo ports.BannerRepository) error {
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		created, err = repo.Create(ctx, domain.NewBanner(in, n+1))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to append banner: %w", err)
	}
	return created, nil
}

// Update changes a banner's content. Its rank stays where it is.
func (s *BannerServiceImpl) Update(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error) {
	var updated *domain.Banner
	err := s.mutate(ctx, "update", func(repo ports.BannerRepository) error {
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(current)
		current.UpdatedAt = time.Now().UTC()
		updated, err = repo.Update(ctx, current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to update banner: %w", err)
	}
	return updated, nil
}

// MoveUp swaps the banner with the one ranked directly above it. The top banner stays put.
func (s *BannerServiceImpl) MoveUp(ctx context.Context, id int64) (*domain.Banner, error) {
	banner, err := s.move(ctx, "move_up", id, ports.BannerRepository.Predecessor)
	if err != nil {
		return nil, fmt.Errorf("service: failed to move banner up: %w", err)
	}
	return banner, nil
}

// MoveDown swaps the banner with the one ranked directly below it. The bottom banner stays put.
func (s *BannerServiceImpl) MoveDown(ctx context.Context, id int64) (*domain.Banner, error) {
	banner, err := s.move(ctx, "move_down", id, ports.BannerRepository.Successor)
	if err != nil {
		return nil, fmt.Errorf("service: failed to move banner down: %w", err)
	}
	return banner, nil
}

// Delete removes the banner and closes the gap it leaves in the ranking.
func (s *BannerServiceImpl) Delete(ctx context.Context, id int64) error {
	err := s.mutate(ctx, "delete", func(repo ports.BannerRepository) error {
		target, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		return repo.CompactAfter(ctx, target.Order)
	})
	if err != nil {
		return fmt.Errorf("service: failed to delete banner: %w", err)
	}
	return nil
}

type neighbourFunc func(repo ports.BannerRepository, ctx context.Context, order int) (*domain.Banner, error)

func (s *BannerServiceImpl) move(ctx context.Context, op string, id int64, neighbour neighbourFunc) (*domain.Banner, error) {
	var moved *domain.Banner
	err := s.mutate(ctx, op, func(repo ports.BannerRepository) error {
		target, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		other, err := neighbour(repo, ctx, target.Order)
		if err != nil {
			return err
		}
		if other == nil {
			moved = target
			return nil
		}

		if err := repo.SwapOrders(ctx, target, other); err != nil {
			return err
		}
		target.Order = other.Order
		moved = target
		return nil
	})
	return moved, err
}

// mutate runs fn under the ranking lock in one transaction and drops the
// cached listing once it commits.
func (s *BannerServiceImpl) mutate(ctx context.Context, op string, fn func(repo ports.BannerRepository) error) error {
	err := s.uow.Run(ctx, func(repo ports.BannerRepository) error {
		if err := repo.Lock(ctx); err != nil {
			return err
		}
		return fn(repo)
	})
	metrics.ObserveBannerOperation(op, err)
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	logger.Get().Debug("Banner ranking changed", zap.String("operation", op))
	return nil
}
