package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-sales/internal/core/logger"
	"ticket-sales/internal/core/metrics"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const retryBackoff = 20 * time.Millisecond

// Transactor runs functions inside transactions, serializable unless
// WithIsolation says otherwise, and retries them when postgres aborts them
// with a serialization failure or deadlock.
type Transactor struct {
	db          TxBeginner
	maxAttempts int
	options     pgx.TxOptions
}

// NewTransactor creates a Transactor. maxAttempts below 1 is treated as 1.
func NewTransactor(db TxBeginner, maxAttempts int) *Transactor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Transactor{
		db:          db,
		maxAttempts: maxAttempts,
		options:     pgx.TxOptions{IsoLevel: pgx.Serializable},
	}
}

// WithIsolation returns a copy of t that begins transactions at level.
// Callers that serialize on a lock taken as their first statement use
// pgx.ReadCommitted, so later statements read what the previous holder committed.
func (t *Transactor) WithIsolation(level pgx.TxIsoLevel) *Transactor {
	c := *t
	c.options.IsoLevel = level
	return &c
}

// WithinTx runs fn in a transaction. fn may run more than once, so it must not
// have side effects outside the transaction.
func (t *Transactor) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	var err error
	for attempt := 1; attempt <= t.maxAttempts; attempt++ {
		err = t.runOnce(ctx, fn)
		if err == nil || !IsConflict(err) {
			return err
		}

		if attempt == t.maxAttempts {
			break
		}

		metrics.TransactionRetriesTotal.Inc()
		logger.Get().Debug("Retrying conflicting transaction",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	metrics.TransactionConflictsTotal.Inc()
	return fmt.Errorf("%w: %w", ErrTransactionConflict, err)
}

func (t *Transactor) runOnce(ctx context.Context, fn func(q Querier) error) (err error) {
	tx, err := t.db.BeginTx(ctx, t.options)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Get().Error("Failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
