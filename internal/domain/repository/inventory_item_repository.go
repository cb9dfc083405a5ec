package repository

import (
	"context"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para insumos.
type InventoryItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*entity.InventoryItem, error)
	// Update guarda el insumo e incrementa Revision.
	Update(ctx context.Context, item *entity.InventoryItem) error
	List(ctx context.Context, includeInactive bool) ([]*entity.InventoryItem, error)
	ListBelowReorderLevel(ctx context.Context) ([]*entity.InventoryItem, error)
}
