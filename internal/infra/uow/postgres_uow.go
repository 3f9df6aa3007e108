package uow

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tablebook/internal/infra"
	"tablebook/internal/infra/db"
	"tablebook/internal/infra/readstore"
	"tablebook/internal/infra/repository"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"
)

const (
	maxRetries   = 3
	retryBackoff = 50 * time.Millisecond
)

// Serializable isolation is what makes conflict-probe-then-insert safe: at
// read committed two concurrent inserts on a free table both see zero rows
// to lock and both commit. The retry loop absorbs the resulting 40001s.
var txOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

// Within runs fn in one serializable transaction, retrying on serialization
// failures and deadlocks. Row locks taken by the repositories live until
// commit.
func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return errs.Wrap(ctx.Err(), "transaction retry aborted")
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		lastErr = u.runOnce(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
	}
	return infra.WrapRepoErr(infra.KindDBFailure, "transaction retries exhausted", lastErr)
}

func (u *PostgresUnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgtx, err := u.pool.BeginTx(ctx, txOptions)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to begin transaction", err)
	}
	defer func() { _ = pgtx.Rollback(ctx) }()

	if err := fn(ctx, newPgTx(pgtx)); err != nil {
		return err
	}
	if err := pgtx.Commit(ctx); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to commit transaction", err)
	}
	return nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// serialization_failure and deadlock_detected
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

type pgTx struct {
	reservations *repository.ReservationRepository
	settings     *repository.SettingsRepository
	tables       *readstore.TableReadStore
}

func newPgTx(tx db.DBTX) *pgTx {
	return &pgTx{
		reservations: repository.NewReservationRepository(tx),
		settings:     repository.NewSettingsRepository(tx),
		tables:       readstore.NewTableReadStore(tx),
	}
}

func (t *pgTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *pgTx) Settings() shared.SettingsRepository        { return t.settings }
func (t *pgTx) Tables() shared.TableCatalog                { return t.tables }
