package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos totales de una unidad transaccional ante contención
// de locks (deadlock, serialization_failure, lock_timeout). Acotado: agotados
// los intentos, el error se devuelve al caller.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Fija lock_timeout por transacción para que la espera por el lock de fila sea
// acotada (la operación falla en lugar de colgarse) y reintenta la unidad
// completa ante errores transitorios de contención.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout <= 0 desactiva el
// SET LOCAL lock_timeout (se usa el default del servidor).
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Ante contención reintenta fn completa hasta maxTxAttempts veces;
// fn debe ser re-ejecutable.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryableTxError(err) || attempt >= maxTxAttempts {
			return err
		}
		// backoff lineal corto antes de reintentar
		select {
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	ledgerRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	ledgerRepo := NewStockTransactionRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(ledgerRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
