package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory categoría de un insumo del spa.
type ItemCategory string

// Categorías de inventario.
const (
	CategoryOil        ItemCategory = "oil"
	CategoryTowel      ItemCategory = "towel"
	CategoryDisposable ItemCategory = "disposable"
	CategoryDrink      ItemCategory = "drink"
	CategoryOther      ItemCategory = "other"
)

// ParseItemCategory valida la categoría; vacío o desconocido devuelve false.
func ParseItemCategory(s string) (ItemCategory, bool) {
	switch ItemCategory(s) {
	case CategoryOil, CategoryTowel, CategoryDisposable, CategoryDrink, CategoryOther:
		return ItemCategory(s), true
	}
	return "", false
}

// MaxQuantity existencia máxima de un insumo (columna INTEGER).
const MaxQuantity = math.MaxInt32

// InventoryItem insumo con su existencia actual.
// QuantityOnHand es la proyección vigente: solo cambia junto con un InventoryAdjustment.
type InventoryItem struct {
	ID             string
	Name           string
	SKU            string // único
	Category       ItemCategory
	QuantityOnHand int
	ReorderLevel   int
	UnitCost       decimal.Decimal
	UnitPrice      decimal.Decimal
	IsActive       bool
	LastUpdatedBy  string
	Revision       int64 // +1 en cada guardado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
