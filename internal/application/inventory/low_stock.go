package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// LowStockUseCase genera la lista de reposición: insumos activos en o bajo su nivel de reorden.
type LowStockUseCase struct {
	items repository.InventoryItemRepository
}

// NewLowStockUseCase construye el caso de uso de reposición.
func NewLowStockUseCase(items repository.InventoryItemRepository) *LowStockUseCase {
	return &LowStockUseCase{items: items}
}

// GenerateList devuelve los insumos a reponer con la cantidad sugerida de pedido
// (2 × nivel de reorden − existencia, mínimo 1) y su costo estimado.
func (uc *LowStockUseCase) GenerateList(ctx context.Context, actor entity.Actor) ([]dto.LowStockSuggestionDTO, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}

	// 1. Insumos en o bajo el nivel de reorden
	rawItems, err := uc.items.ListBelowReorderLevel(ctx)
	if err != nil {
		return nil, err
	}
	if len(rawItems) == 0 {
		return []dto.LowStockSuggestionDTO{}, nil
	}

	// 2. Sugerencias
	suggestions := make([]dto.LowStockSuggestionDTO, 0, len(rawItems))
	for _, item := range rawItems {
		suggestedQty := item.ReorderLevel*2 - item.QuantityOnHand
		if suggestedQty < 1 {
			suggestedQty = 1
		}
		suggestions = append(suggestions, dto.LowStockSuggestionDTO{
			ItemID:             item.ID,
			SKU:                item.SKU,
			Name:               item.Name,
			Category:           string(item.Category),
			QuantityOnHand:     item.QuantityOnHand,
			ReorderLevel:       item.ReorderLevel,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           item.UnitCost,
			EstimatedOrderCost: item.UnitCost.Mul(decimal.NewFromInt(int64(suggestedQty))),
		})
	}

	// 3. Ordenar: mayor déficit primero (reorden − existencia), luego nombre.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.ReorderLevel - a.QuantityOnHand
		defB := b.ReorderLevel - b.QuantityOnHand
		if defA != defB {
			return defA > defB
		}
		return a.Name < b.Name
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
