package repository

import (
	"context"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// AdjustmentFilter filtro de la bitácora de ajustes. Las llaves de fecha son inclusivas.
type AdjustmentFilter struct {
	ItemID  string
	FromKey string
	ToKey   string
	Kind    entity.AdjustmentKind
	Limit   int
}

// InventoryAdjustmentRepository puerto append-only: no hay Update ni Delete.
type InventoryAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	// List devuelve los ajustes más recientes primero.
	List(ctx context.Context, filter AdjustmentFilter) ([]*entity.InventoryAdjustment, error)
}
