package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que la existencia del insumo y su registro de ajuste se escriben juntos o no se escriben.
// El repositorio de bitácora escribe en un savepoint: si falla, la tx principal sigue adelante.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryItemRepository,
		adjustments repository.InventoryAdjustmentRepository,
		auditLog repository.AuditLogRepository,
	) error) error
}

// Locker lock distribuido por clave (Redis en producción, en memoria en desarrollo).
// Obtain devuelve domain.ErrConflict si la clave sigue tomada al agotar los reintentos.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Lock lock obtenido.
type Lock interface {
	Release(ctx context.Context) error
}
