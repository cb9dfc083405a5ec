package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/application/transaction"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and transaction.TxRunner.
var (
	_ inventory.TxRunner   = (*TxRunner)(nil)
	_ transaction.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de inventario atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	adjustments repository.InventoryAdjustmentRepository,
	auditLog repository.AuditLogRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewInventoryItemRepository(tx),
			NewInventoryAdjustmentRepository(tx),
			&savepointAuditRepo{tx: tx},
		)
	})
}

// RunTransactions inicia una transacción con el repo de transacciones y la bitácora.
func (r *TxRunner) RunTransactions(ctx context.Context, fn func(
	txs repository.TransactionRepository,
	auditLog repository.AuditLogRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewTransactionRepository(tx), &savepointAuditRepo{tx: tx})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
