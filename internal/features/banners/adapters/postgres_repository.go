package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/banners/domain"
	"ticket-sales/internal/features/banners/ports"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// bannerLockKey is the advisory lock every ranking change takes.
const bannerLockKey int64 = 0x62616e6e6572 // "banner"

const bannerColumns = `id, title, image_url, link_url, sort_order, created_at, updated_at`

// PostgresBannerRepository implements ports.BannerRepository on top of a pool or a transaction.
type PostgresBannerRepository struct {
	db database.Querier
}

// NewPostgresBannerRepository creates a repository that runs its queries on db.
func NewPostgresBannerRepository(db database.Querier) *PostgresBannerRepository {
	return &PostgresBannerRepository{db: db}
}

// Count returns the number of banners.
func (r *PostgresBannerRepository) Count(ctx context.Context) (n int, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_count", start, err) }(time.Now())

	if err = r.db.QueryRow(ctx, `SELECT count(*) FROM banners`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count banners: %w", err)
	}
	return n, nil
}

// Create inserts b at its rank.
func (r *PostgresBannerRepository) Create(ctx context.Context, b *domain.Banner) (created *domain.Banner, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_create", start, err) }(time.Now())

	args := pgx.NamedArgs{
		"title":      b.Title,
		"image_url":  b.ImageURL,
		"link_url":   b.LinkURL,
		"sort_order": b.Order,
		"created_at": b.CreatedAt,
		"updated_at": b.UpdatedAt,
	}
	query := `
		INSERT INTO banners (title, image_url, link_url, sort_order, created_at, updated_at)
		VALUES (@title, @image_url, @link_url, @sort_order, @created_at, @updated_at)
		RETURNING ` + bannerColumns

	created, err = scanBanner(r.db.QueryRow(ctx, query, args))
	if err != nil {
		return nil, fmt.Errorf("insert banner: %w", err)
	}

	logger.Get().Debug("Banner created", zap.Int64("id", created.ID), zap.Int("order", created.Order))
	return created, nil
}

// GetByID returns domain.ErrBannerNotFound when no banner has the id.
func (r *PostgresBannerRepository) GetByID(ctx context.Context, id int64) (b *domain.Banner, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_get_by_id", start, err) }(time.Now())

	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = @id`
	b, err = scanBanner(r.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBannerNotFound
		}
		return nil, fmt.Errorf("get banner %d: %w", id, err)
	}
	return b, nil
}

// List returns all banners by rank.
func (r *PostgresBannerRepository) List(ctx context.Context) (banners []*domain.Banner, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_list", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	defer rows.Close()

	banners = make([]*domain.Banner, 0)
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan banner: %w", err)
		}
		banners = append(banners, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Update writes the content columns of b.
func (r *PostgresBannerRepository) Update(ctx context.Context, b *domain.Banner) (updated *domain.Banner, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_update", start, err) }(time.Now())

	args := pgx.NamedArgs{
		"id":         b.ID,
		"title":      b.Title,
		"image_url":  b.ImageURL,
		"link_url":   b.LinkURL,
		"updated_at": b.UpdatedAt,
	}
	query := `
		UPDATE banners
		SET title = @title, image_url = @image_url, link_url = @link_url, updated_at = @updated_at
		WHERE id = @id
		RETURNING ` + bannerColumns

	updated, err = scanBanner(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBannerNotFound
		}
		return nil, fmt.Errorf("update banner %d: %w", b.ID, err)
	}
	return updated, nil
}

// Delete removes one banner without touching the others' ranks.
func (r *PostgresBannerRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM banners WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete banner %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBannerNotFound
	}
	return nil
}

// Lock takes a transaction-scoped advisory lock on the banner collection.
func (r *PostgresBannerRepository) Lock(ctx context.Context) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_lock", start, err) }(time.Now())

	if _, err = r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(@key)`, pgx.NamedArgs{"key": bannerLockKey}); err != nil {
		return fmt.Errorf("lock banners: %w", err)
	}
	return nil
}

// Predecessor returns the banner with the greatest rank below order.
func (r *PostgresBannerRepository) Predecessor(ctx context.Context, order int) (*domain.Banner, error) {
	return r.neighbour(ctx, "banner_predecessor",
		`SELECT `+bannerColumns+` FROM banners WHERE sort_order < @order ORDER BY sort_order DESC LIMIT 1`, order)
}

// Successor returns the banner with the smallest rank above order.
func (r *PostgresBannerRepository) Successor(ctx context.Context, order int) (*domain.Banner, error) {
	return r.neighbour(ctx, "banner_successor",
		`SELECT `+bannerColumns+` FROM banners WHERE sort_order > @order ORDER BY sort_order ASC LIMIT 1`, order)
}

func (r *PostgresBannerRepository) neighbour(ctx context.Context, queryType, query string, order int) (b *domain.Banner, err error) {
	defer func(start time.Time) { metrics.ObserveQuery(queryType, start, err) }(time.Now())

	b, err = scanBanner(r.db.QueryRow(ctx, query, pgx.NamedArgs{"order": order}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find neighbour of rank %d: %w", order, err)
	}
	return b, nil
}

// SwapOrders exchanges the ranks of a and b in one statement. The unique
// constraint on sort_order is deferred, so the transient duplicate is fine.
func (r *PostgresBannerRepository) SwapOrders(ctx context.Context, a, b *domain.Banner) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_swap", start, err) }(time.Now())

	args := pgx.NamedArgs{
		"a_id":    a.ID,
		"a_order": a.Order,
		"b_id":    b.ID,
		"b_order": b.Order,
	}
	query := `
		UPDATE banners
		SET sort_order = CASE id WHEN @a_id THEN @b_order::int ELSE @a_order::int END,
		    updated_at = now()
		WHERE id IN (@a_id, @b_id)`

	tag, err := r.db.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("swap banners %d and %d: %w", a.ID, b.ID, err)
	}
	if tag.RowsAffected() != 2 {
		return fmt.Errorf("swap banners %d and %d: %w", a.ID, b.ID, domain.ErrBannerNotFound)
	}
	return nil
}

// CompactAfter closes the gap left at order with a single bulk update.
func (r *PostgresBannerRepository) CompactAfter(ctx context.Context, order int) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("banner_compact", start, err) }(time.Now())

	_, err = r.db.Exec(ctx,
		`UPDATE banners SET sort_order = sort_order - 1 WHERE sort_order > @order`,
		pgx.NamedArgs{"order": order},
	)
	if err != nil {
		return fmt.Errorf("compact banners after rank %d: %w", order, err)
	}
	return nil
}

func scanBanner(row pgx.Row) (*domain.Banner, error) {
	var b domain.Banner
	if err := row.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.Order, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ ports.BannerRepository = (*PostgresBannerRepository)(nil)
