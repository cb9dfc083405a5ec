package repository

import (
	"context"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// TransactionFilter filtro de consulta de transacciones. Campos vacíos no filtran.
type TransactionFilter struct {
	BusinessDateKey      string
	FromKey              string // inclusivo
	ToKey                string // inclusivo
	ServiceStatuses      []entity.ServiceStatus
	ExcludePaymentStatus entity.PaymentStatus
	Limit                int
}

// TransactionRepository define el puerto de persistencia para transacciones.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Transaction, error)
	// Update guarda los campos mutables e incrementa Revision.
	Update(ctx context.Context, tx *entity.Transaction) error
	// Find ordena por StartedAt descendente.
	Find(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)
}
