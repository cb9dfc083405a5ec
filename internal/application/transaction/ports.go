package transaction

import (
	"context"

	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción de BD con el repositorio de transacciones y la bitácora
// atados a ella. La bitácora escribe en un savepoint: su fallo no revierte la operación principal.
type TxRunner interface {
	RunTransactions(ctx context.Context, fn func(
		txs repository.TransactionRepository,
		auditLog repository.AuditLogRepository,
	) error) error
}
