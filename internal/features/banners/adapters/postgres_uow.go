package adapters

import (
	"context"

	"ticket-sales/internal/core/database"
	"ticket-sales/internal/features/banners/ports"

	"github.com/jackc/pgx/v5"
)

// PostgresUnitOfWork runs banner writes inside retried READ COMMITTED
// transactions. Ranking changes serialize on the repository's advisory lock,
// and every statement after the lock sees the previous holder's commit.
type PostgresUnitOfWork struct {
	tx *database.Transactor
}

// NewPostgresUnitOfWork creates a PostgresUnitOfWork on top of tx.
func NewPostgresUnitOfWork(tx *database.Transactor) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{tx: tx.WithIsolation(pgx.ReadCommitted)}
}

// Run hands fn a repository bound to the transaction. fn may run again after a deadlock.
func (u *PostgresUnitOfWork) Run(ctx context.Context, fn func(repo ports.BannerRepository) error) error {
	return u.tx.WithinTx(ctx, func(q database.Querier) error {
		return fn(NewPostgresBannerRepository(q))
	})
}
