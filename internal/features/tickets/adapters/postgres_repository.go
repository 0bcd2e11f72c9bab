package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/tickets/domain"
	"ticket-sales/internal/features/tickets/ports"

	"github.com/jackc/pgx/v5"
)

// Foreign key constraint names generated by postgres for the tickets table.
const (
	orderForeignKey = "tickets_order_id_fkey"
	eventForeignKey = "tickets_event_id_fkey"
)

const ticketSelect = `
	SELECT t.id, t.order_id, t.event_id, t.seat, t.price_cents, o.customer_id, t.created_at
	FROM tickets t
	JOIN orders o ON o.id = t.order_id`

// PostgresTicketRepository implements ports.TicketRepository.
type PostgresTicketRepository struct {
	db database.Querier
}

func NewPostgresTicketRepository(db database.Querier) *PostgresTicketRepository {
	return &PostgresTicketRepository{db: db}
}

func (r *PostgresTicketRepository) List(ctx context.Context, customerID *int64) (tickets []*domain.Ticket, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_list", start, err) }(time.Now())

	query := ticketSelect + `
		WHERE @customer_id::bigint IS NULL OR o.customer_id = @customer_id::bigint
		ORDER BY t.id`
	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	tickets = make([]*domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *PostgresTicketRepository) GetByID(ctx context.Context, id int64) (t *domain.Ticket, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_get_by_id", start, err) }(time.Now())

	t, err = scanTicket(r.db.QueryRow(ctx, ticketSelect+` WHERE t.id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("get ticket %d: %w", id, err)
	}
	return t, nil
}

func (r *PostgresTicketRepository) Create(ctx context.Context, t *domain.Ticket) (created *domain.Ticket, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_create", start, err) }(time.Now())

	query := `
		WITH t AS (
			INSERT INTO tickets (order_id, event_id, seat, price_cents)
			VALUES (@order_id, @event_id, @seat, @price_cents)
			RETURNING *
		)
		SELECT t.id, t.order_id, t.event_id, t.seat, t.price_cents, o.customer_id, t.created_at
		FROM t JOIN orders o ON o.id = t.order_id`

	created, err = scanTicket(r.db.QueryRow(ctx, query, ticketArgs(t)))
	if err != nil {
		if ref := danglingReference(err); ref != nil {
			return nil, ref
		}
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	return created, nil
}

func (r *PostgresTicketRepository) Update(ctx context.Context, t *domain.Ticket) (updated *domain.Ticket, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_update", start, err) }(time.Now())

	query := `
		WITH t AS (
			UPDATE tickets
			SET order_id = @order_id, event_id = @event_id, seat = @seat, price_cents = @price_cents
			WHERE id = @id
			RETURNING *
		)
		SELECT t.id, t.order_id, t.event_id, t.seat, t.price_cents, o.customer_id, t.created_at
		FROM t JOIN orders o ON o.id = t.order_id`

	args := ticketArgs(t)
	args["id"] = t.ID
	updated, err = scanTicket(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		if ref := danglingReference(err); ref != nil {
			return nil, ref
		}
		return nil, fmt.Errorf("update ticket %d: %w", t.ID, err)
	}
	return updated, nil
}

func (r *PostgresTicketRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete ticket %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (r *PostgresTicketRepository) OrderOwner(ctx context.Context, orderID int64) (owner int64, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("ticket_order_owner", start, err) }(time.Now())

	err = r.db.QueryRow(ctx, `SELECT customer_id FROM orders WHERE id = @id`, pgx.NamedArgs{"id": orderID}).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUnknownOrder
		}
		return 0, fmt.Errorf("get owner of order %d: %w", orderID, err)
	}
	return owner, nil
}

// danglingReference maps a foreign key violation to the domain error for the missing row.
func danglingReference(err error) error {
	if !database.IsForeignKeyViolation(err) {
		return nil
	}
	switch database.ConstraintName(err) {
	case orderForeignKey:
		return domain.ErrUnknownOrder
	case eventForeignKey:
		return domain.ErrUnknownEvent
	default:
		return nil
	}
}

func ticketArgs(t *domain.Ticket) pgx.NamedArgs {
	return pgx.NamedArgs{
		"order_id":    t.OrderID,
		"event_id":    t.EventID,
		"seat":        t.Seat,
		"price_cents": t.PriceCents,
	}
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := row.Scan(&t.ID, &t.OrderID, &t.EventID, &t.Seat, &t.PriceCents, &t.CustomerID, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

var _ ports.TicketRepository = (*PostgresTicketRepository)(nil)
