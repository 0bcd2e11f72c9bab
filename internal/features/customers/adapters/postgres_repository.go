package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/core/metrics"
	"ticket-sales/internal/features/customers/domain"
	"ticket-sales/internal/features/customers/ports"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, email, name, password_hash, is_staff, is_superuser, date_joined`

// PostgresCustomerRepository implements ports.CustomerRepository.
type PostgresCustomerRepository struct {
	db database.Querier
}

// NewPostgresCustomerRepository creates a new PostgresCustomerRepository.
func NewPostgresCustomerRepository(db database.Querier) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, c *domain.Customer) (created *domain.Customer, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_create", start, err) }(time.Now())

	args := pgx.NamedArgs{
		"email":         c.Email,
		"name":          c.Name,
		"password_hash": c.PasswordHash,
		"is_staff":      c.IsStaff,
		"is_superuser":  c.IsSuperuser,
		"date_joined":   c.DateJoined,
	}
	query := `
		INSERT INTO customers (email, name, password_hash, is_staff, is_superuser, date_joined)
		VALUES (@email, @name, @password_hash, @is_staff, @is_superuser, @date_joined)
		RETURNING ` + customerColumns

	created, err = scanCustomer(r.db.QueryRow(ctx, query, args))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return created, nil
}

func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id int64) (c *domain.Customer, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_get_by_id", start, err) }(time.Now())

	c, err = scanCustomer(r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = @id`, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	return c, nil
}

func (r *PostgresCustomerRepository) GetByEmail(ctx context.Context, email string) (c *domain.Customer, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_get_by_email", start, err) }(time.Now())

	c, err = scanCustomer(r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = @email`, pgx.NamedArgs{"email": email}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

func (r *PostgresCustomerRepository) List(ctx context.Context, only *int64) (customers []*domain.Customer, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_list", start, err) }(time.Now())

	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE @only::bigint IS NULL OR id = @only::bigint
		ORDER BY id`
	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"only": only})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers = make([]*domain.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

func (r *PostgresCustomerRepository) Update(ctx context.Context, c *domain.Customer) (updated *domain.Customer, err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_update", start, err) }(time.Now())

	args := pgx.NamedArgs{
		"id":            c.ID,
		"email":         c.Email,
		"name":          c.Name,
		"password_hash": c.PasswordHash,
		"is_staff":      c.IsStaff,
		"is_superuser":  c.IsSuperuser,
	}
	query := `
		UPDATE customers
		SET email = @email, name = @name, password_hash = @password_hash,
		    is_staff = @is_staff, is_superuser = @is_superuser
		WHERE id = @id
		RETURNING ` + customerColumns

	updated, err = scanCustomer(r.db.QueryRow(ctx, query, args))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domain.ErrCustomerNotFound
		case database.IsUniqueViolation(err):
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	return updated, nil
}

func (r *PostgresCustomerRepository) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { metrics.ObserveQuery("customer_delete", start, err) }(time.Now())

	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.PasswordHash, &c.IsStaff, &c.IsSuperuser, &c.DateJoined); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ ports.CustomerRepository = (*PostgresCustomerRepository)(nil)
