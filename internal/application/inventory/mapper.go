package inventory

import (
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// ToItemResponse mapea el insumo al DTO de salida.
func ToItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		SKU:            i.SKU,
		Category:       string(i.Category),
		QuantityOnHand: i.QuantityOnHand,
		ReorderLevel:   i.ReorderLevel,
		UnitCost:       i.UnitCost,
		UnitPrice:      i.UnitPrice,
		IsActive:       i.IsActive,
		LastUpdatedBy:  i.LastUpdatedBy,
		Revision:       i.Revision,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

// ToItemResponses mapea una lista de insumos.
func ToItemResponses(items []*entity.InventoryItem) []*dto.ItemResponse {
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}

// ToAdjustmentResponses mapea registros de la bitácora de inventario.
func ToAdjustmentResponses(list []*entity.InventoryAdjustment) []dto.AdjustmentResponse {
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AdjustmentResponse{
			ID:              a.ID,
			ItemID:          a.ItemID,
			BusinessDateKey: a.BusinessDateKey,
			Kind:            string(a.Kind),
			PreviousQty:     a.PreviousQty,
			NewQty:          a.NewQty,
			Difference:      a.Difference,
			Reason:          a.Reason,
			ActorID:         a.ActorID,
			CreatedAt:       a.CreatedAt,
		})
	}
	return out
}
