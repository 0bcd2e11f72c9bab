package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/events/domain"
	"ticket-sales/internal/features/events/ports"

	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, title, description, category_id, venue, starts_at, price_cents, capacity, image_url, created_at`

// PostgresEventRepository implements ports.EventRepository.
type PostgresEventRepository struct {
	db database.Querier
}

func NewPostgresEventRepository(db database.Querier) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) List(ctx context.Context) (events []*domain.Event, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("event_list", start, err) }(time.Now())

	rows, err := r.db.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY starts_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events = make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (e *domain.Event, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("event_get_by_id", start, err) }(time.Now())

	e, err = scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

func (r *PostgresEventRepository) Create(ctx context.Context, e *domain.Event) (created *domain.Event, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("event_create", start, err) }(time.Now())

	query := `
		INSERT INTO events (title, description, category_id, venue, starts_at, price_cents, capacity, image_url)
		VALUES (@title, @description, @category_id, @venue, @starts_at, @price_cents, @capacity, @image_url)
		RETURNING ` + eventColumns

	created, err = scanEvent(r.db.QueryRow(ctx, query, eventArgs(e)))
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, domain.ErrUnknownCategory
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}

func (r *PostgresEventRepository) Update(ctx context.Context, e *domain.Event) (updated *domain.Event, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("event_update", start, err) }(time.Now())

	query := `
		UPDATE events
		SET title = @title, description = @description, category_id = @category_id, venue = @venue,
		    starts_at = @starts_at, price_cents = @price_cents, capacity = @capacity, image_url = @image_url
		WHERE id = @id
		RETURNING ` + eventColumns

	args := eventArgs(e)
	args["id"] = e.ID
	updated, err = scanEvent(r.db.QueryRow(ctx, query, args))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrEventNotFound
		case database.IsForeignKeyViolation(err):
			return nil, domain.ErrUnknownCategory
		}
		return nil, fmt.Errorf("update event %d: %w", e.ID, err)
	}
	return updated, nil
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("event_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return domain.ErrEventHasTickets
		}
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func eventArgs(e *domain.Event) pgx.NamedArgs {
	return pgx.NamedArgs{
		"title":       e.Title,
		"description": e.Description,
		"category_id": e.CategoryID,
		"venue":       e.Venue,
		"starts_at":   e.StartsAt,
		"price_cents": e.PriceCents,
		"capacity":    e.Capacity,
		"image_url":   e.ImageURL,
	}
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.Venue,
		&e.StartsAt, &e.PriceCents, &e.Capacity, &e.ImageURL, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

var _ ports.EventRepository = (*PostgresEventRepository)(nil)
