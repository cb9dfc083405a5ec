package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
type CreateItemRequest struct {
	Name           string           `json:"name" validate:"required,max=200"`
	SKU            string           `json:"sku" validate:"required,max=64"`
	Category       string           `json:"category"`
	QuantityOnHand LooseNumber      `json:"quantityOnHand"`
	ReorderLevel   LooseNumber      `json:"reorderLevel"`
	UnitCost       *decimal.Decimal `json:"unitCost,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty"`
}

// UpdateItemRequest body para PATCH /api/inventory/items/:id. La existencia no se toca aquí.
type UpdateItemRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category,omitempty"`
	ReorderLevel LooseNumber      `json:"reorderLevel"`
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unitPrice,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
}

// ItemResponse salida de un insumo.
type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Category       string          `json:"category"`
	QuantityOnHand int             `json:"quantityOnHand"`
	ReorderLevel   int             `json:"reorderLevel"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	IsActive       bool            `json:"isActive"`
	LastUpdatedBy  string          `json:"lastUpdatedByUserId,omitempty"`
	Revision       int64           `json:"revision"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ReceiveRequest body para POST /api/inventory/receive.
type ReceiveRequest struct {
	ItemID   string      `json:"itemId"`
	Quantity LooseNumber `json:"quantity"`
	Reason   string      `json:"reason"`
}

// DailyCountEntry conteo físico de un insumo.
type DailyCountEntry struct {
	ItemID    string      `json:"itemId"`
	ActualQty LooseNumber `json:"actualQty"`
}

// DailyCountRequest body para POST /api/inventory/daily. DateKey vacío = día de negocio actual.
type DailyCountRequest struct {
	DateKey string            `json:"dateKey"`
	Counts  []DailyCountEntry `json:"counts"`
}

// DailyCountResult resultado de un conteo aplicado.
type DailyCountResult struct {
	ItemID      string `json:"itemId"`
	PreviousQty int    `json:"previousQty"`
	NewQty      int    `json:"newQty"`
	Difference  int    `json:"difference"`
}

// Motivos de descarte de una línea del conteo.
const (
	SkipMissingItemID = "missing_item_id"
	SkipInvalidQty    = "invalid_quantity"
	SkipItemNotFound  = "item_not_found"
)

// DailyCountSkipped línea del conteo que no se aplicó.
type DailyCountSkipped struct {
	ItemID string `json:"itemId"`
	Reason string `json:"reason"`
}

// DailyCountResponse respuesta del conteo diario.
type DailyCountResponse struct {
	Success bool                `json:"success"`
	DateKey string              `json:"dateKey"`
	Results []DailyCountResult  `json:"results"`
	Skipped []DailyCountSkipped `json:"skipped"`
}

// AdjustRequest body para POST /api/inventory/adjust (admin).
type AdjustRequest struct {
	ItemID string      `json:"itemId"`
	NewQty LooseNumber `json:"newQty"`
	Reason string      `json:"reason"`
}

// AdjustmentResponse salida de un registro de la bitácora de inventario.
type AdjustmentResponse struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	BusinessDateKey string    `json:"dateKey"`
	Kind            string    `json:"type"`
	PreviousQty     int       `json:"previousQty"`
	NewQty          int       `json:"newQty"`
	Difference      int       `json:"difference"`
	Reason          string    `json:"reason"`
	ActorID         string    `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ItemHistoryQuery filtros de GET /api/inventory/items/:id/adjustments.
type ItemHistoryQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// LowStockSuggestionDTO sugerencia de reposición para un insumo en o bajo su nivel de reorden.
type LowStockSuggestionDTO struct {
	ItemID             string          `json:"itemId"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	QuantityOnHand     int             `json:"quantityOnHand"`
	ReorderLevel       int             `json:"reorderLevel"`
	SuggestedOrderQty  int             `json:"suggestedOrderQty"`  // max(2*reorder - onHand, 1)
	UnitCost           decimal.Decimal `json:"unitCost"`
	EstimatedOrderCost decimal.Decimal `json:"estimatedOrderCost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`           // 1 = más urgente
}
