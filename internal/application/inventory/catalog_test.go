package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/application/inventory"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestCreateItem_StockInicial(t *testing.T) {
	f := newFixture(t)
	cost := decimal.NewFromInt(120)

	item, err := f.catalog.CreateItem(context.Background(), admin, dto.CreateItemRequest{
		Name: "Coconut oil", SKU: "OIL-COCO", Category: "unknown",
		QuantityOnHand: dto.Int(12), ReorderLevel: dto.Int(4), UnitCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, item.Category)
	assert.Equal(t, 12, item.QuantityOnHand)
	assert.True(t, item.IsActive)

	adjs := f.history(t, item.ID)
	require.Len(t, adjs, 1)
	assert.Equal(t, entity.AdjustmentReceived, adjs[0].Kind)
	assert.Equal(t, inventory.ReasonInitialStock, adjs[0].Reason)
	assert.Equal(t, 0, adjs[0].PreviousQty)
}

func TestCreateItem_Reglas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.catalog.CreateItem(ctx, staff, dto.CreateItemRequest{Name: "X", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X", QuantityOnHand: dto.Int(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X", QuantityOnHand: number(t, "2147483648")})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X", ReorderLevel: number(t, "18446744073709551616")})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X", UnitCost: ptr(decimal.RequireFromString("10000000000"))})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X", UnitPrice: ptr(decimal.RequireFromString("1.005"))})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "X", SKU: "X"})
	require.NoError(t, err)
	_, err = f.catalog.CreateItem(ctx, admin, dto.CreateItemRequest{Name: "Y", SKU: "X"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdateItem_NoTocaExistencia(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "oil", 7, 2)
	ctx := context.Background()

	_, err := f.catalog.UpdateItem(ctx, admin, "oil", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNoOp)

	_, err = f.catalog.UpdateItem(ctx, admin, "oil", dto.UpdateItemRequest{Category: ptr("fuel")})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	item, err := f.catalog.UpdateItem(ctx, admin, "oil", dto.UpdateItemRequest{Name: ptr("Lavender oil"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Lavender oil", item.Name)
	assert.False(t, item.IsActive)
	assert.Equal(t, 7, item.QuantityOnHand)
	assert.Empty(t, f.history(t, "oil"))

	list, err := f.catalog.ListItems(ctx, staff, false)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = f.catalog.ListItems(ctx, staff, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestItemHistory_MasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "oil", 0, 2)
	ctx := context.Background()

	_, err := f.ledger.Receive(ctx, staff, dto.ReceiveRequest{ItemID: "oil", Quantity: dto.Int(5)})
	require.NoError(t, err)
	_, err = f.ledger.Adjust(ctx, admin, dto.AdjustRequest{ItemID: "oil", NewQty: dto.Int(4), Reason: "spill"})
	require.NoError(t, err)

	list, err := f.catalog.ItemHistory(ctx, staff, "oil", dto.ItemHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.AdjustmentManual, list[0].Kind)

	_, err = f.catalog.ItemHistory(ctx, staff, "oil", dto.ItemHistoryQuery{From: "05/01/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = f.catalog.ItemHistory(ctx, staff, "ghost", dto.ItemHistoryQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_Sugerencias(t *testing.T) {
	f := newFixture(t)
	f.seedItem(t, "a", 1, 5)  // déficit 4, sugerido 9
	f.seedItem(t, "b", 5, 5)  // déficit 0, sugerido 5
	f.seedItem(t, "c", 0, 0)  // sugerido mínimo 1
	f.seedItem(t, "d", 20, 5) // no aparece

	list, err := f.lowStock.GenerateList(context.Background(), staff)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "a", list[0].ItemID)
	assert.Equal(t, 9, list[0].SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(90).Equal(list[0].EstimatedOrderCost))
	assert.Equal(t, 1, list[0].Priority)

	byID := map[string]dto.LowStockSuggestionDTO{}
	for _, s := range list {
		byID[s.ItemID] = s
	}
	assert.Equal(t, 5, byID["b"].SuggestedOrderQty)
	assert.Equal(t, 1, byID["c"].SuggestedOrderQty)
}
