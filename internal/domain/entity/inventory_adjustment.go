package entity

import "time"

// AdjustmentKind tipo de ajuste de inventario.
type AdjustmentKind string

// Tipos de ajuste.
const (
	AdjustmentReceived   AdjustmentKind = "received"    // entrada de mercancía o stock inicial
	AdjustmentDailyCount AdjustmentKind = "daily_count" // conteo de cierre de jornada
	AdjustmentManual     AdjustmentKind = "adjustment"  // corrección manual (admin)
)

// InventoryAdjustment registro inmutable de un cambio de cantidad. Nunca se actualiza ni se borra.
type InventoryAdjustment struct {
	ID              string
	ItemID          string
	BusinessDateKey string
	Kind            AdjustmentKind
	PreviousQty     int
	NewQty          int
	Difference      int // NewQty - PreviousQty
	Reason          string
	ActorID         string
	CreatedAt       time.Time
}

// NewInventoryAdjustment construye el registro a partir de la existencia previa y la nueva.
func NewInventoryAdjustment(item *InventoryItem, kind AdjustmentKind, newQty int, dateKey, reason, actorID string, now time.Time) *InventoryAdjustment {
	return &InventoryAdjustment{
		ItemID:          item.ID,
		BusinessDateKey: dateKey,
		Kind:            kind,
		PreviousQty:     item.QuantityOnHand,
		NewQty:          newQty,
		Difference:      newQty - item.QuantityOnHand,
		Reason:          reason,
		ActorID:         actorID,
		CreatedAt:       now,
	}
}
