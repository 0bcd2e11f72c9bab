package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/categories/domain"
	"ticket-sales/internal/features/categories/ports"

	"github.com/jackc/pgx/v5"
)

// PostgresCategoryRepository implements ports.CategoryRepository.
type PostgresCategoryRepository struct {
	db database.Querier
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository.
func NewPostgresCategoryRepository(db database.Querier) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) List(ctx context.Context) (categories []*domain.Category, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("category_list", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories = make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (c *domain.Category, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("category_get_by_id", start, err) }(time.Now())

	c, err = scanCategory(r.db.QueryRow(ctx,
		`SELECT id, name, description FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, c *domain.Category) (created *domain.Category, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("category_create", start, err) }(time.Now())

	created, err = scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES (@name, @description)
		RETURNING id, name, description`,
		pgx.NamedArgs{"name": c.Name, "description": c.Description}))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return created, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, c *domain.Category) (updated *domain.Category, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("category_update", start, err) }(time.Now())

	updated, err = scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories SET name = @name, description = @description
		WHERE id = @id
		RETURNING id, name, description`,
		pgx.NamedArgs{"id": c.ID, "name": c.Name, "description": c.Description}))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrCategoryNotFound
		case database.IsUniqueViolation(err):
			return nil, domain.ErrCategoryNameTaken
		}
		return nil, fmt.Errorf("update category %d: %w", c.ID, err)
	}
	return updated, nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("category_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ ports.CategoryRepository = (*PostgresCategoryRepository)(nil)
