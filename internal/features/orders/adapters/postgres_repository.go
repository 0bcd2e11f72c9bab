package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/orders/domain"
	"ticket-sales/internal/features/orders/ports"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, customer_id, status, total_cents, created_at`

// PostgresOrderRepository implements ports.OrderRepository.
type PostgresOrderRepository struct {
	db database.Querier
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository.
func NewPostgresOrderRepository(db database.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) List(ctx context.Context, customerID *int64) (orders []*domain.Order, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("order_list", start, err) }(time.Now())

	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE @customer_id::bigint IS NULL OR customer_id = @customer_id::bigint
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders = make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (o *domain.Order, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("order_get_by_id", start, err) }(time.Now())

	o, err = scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return o, nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o *domain.Order) (created *domain.Order, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("order_create", start, err) }(time.Now())

	query := `
		INSERT INTO orders (customer_id, status, total_cents)
		VALUES (@customer_id, @status, @total_cents)
		RETURNING ` + orderColumns
	args := pgx.NamedArgs{
		"customer_id": o.CustomerID,
		"status":      string(o.Status),
		"total_cents": o.TotalCents,
	}

	created, err = scanOrder(r.db.QueryRow(ctx, query, args))
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

func (r *PostgresOrderRepository) Update(ctx context.Context, o *domain.Order) (updated *domain.Order, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("order_update", start, err) }(time.Now())

	query := `
		UPDATE orders SET status = @status, total_cents = @total_cents
		WHERE id = @id
		RETURNING ` + orderColumns
	args := pgx.NamedArgs{
		"id":          o.ID,
		"status":      string(o.Status),
		"total_cents": o.TotalCents,
	}

	updated, err = scanOrder(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order %d: %w", o.ID, err)
	}
	return updated, nil
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("order_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.CustomerID, &status, &o.TotalCents, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

var _ ports.OrderRepository = (*PostgresOrderRepository)(nil)
