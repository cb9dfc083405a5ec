package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/pkg/metrics"
)

// HistoryLimit máximo de ajustes devueltos por ItemHistory.
const HistoryLimit = 500

// CatalogUseCase alta, edición y consulta de insumos.
// La existencia solo cambia por el Ledger (o como stock inicial al crear el insumo).
type CatalogUseCase struct {
	txRunner    TxRunner
	items       repository.InventoryItemRepository
	adjustments repository.InventoryAdjustmentRepository
	calendar    *businessdate.Calendar
	recorder    *audit.Recorder
	metrics     *metrics.LedgerMetrics
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	txRunner TxRunner,
	items repository.InventoryItemRepository,
	adjustments repository.InventoryAdjustmentRepository,
	calendar *businessdate.Calendar,
	recorder *audit.Recorder,
	m *metrics.LedgerMetrics,
) *CatalogUseCase {
	return &CatalogUseCase{
		txRunner:    txRunner,
		items:       items,
		adjustments: adjustments,
		calendar:    calendar,
		recorder:    recorder,
		metrics:     m,
	}
}

// CreateItem crea un insumo (solo admin). SKU duplicado = ErrDuplicate; categoría desconocida = other.
// Una existencia inicial > 0 se registra como ajuste "received" con motivo "Initial stock".
func (uc *CatalogUseCase) CreateItem(ctx context.Context, actor entity.Actor, in dto.CreateItemRequest) (*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	sku := strings.TrimSpace(in.SKU)
	if name == "" || sku == "" {
		return nil, domain.ErrMissingInput
	}
	initialQty := 0
	if in.QuantityOnHand.Present {
		q, ok := in.QuantityOnHand.AsInt()
		if !ok || q < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		initialQty = q
	}
	reorder := 0
	if in.ReorderLevel.Present {
		r, ok := in.ReorderLevel.AsInt()
		if !ok || r < 0 {
			return nil, domain.ErrInvalidValue
		}
		reorder = r
	}
	category, ok := entity.ParseItemCategory(in.Category)
	if !ok {
		category = entity.CategoryOther
	}
	unitCost, err := nonNegative(in.UnitCost)
	if err != nil {
		return nil, err
	}
	unitPrice, err := nonNegative(in.UnitPrice)
	if err != nil {
		return nil, err
	}

	existing, err := uc.items.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.calendar.Now()
	item := &entity.InventoryItem{
		ID:            uuid.New().String(),
		Name:          name,
		SKU:           sku,
		Category:      category,
		ReorderLevel:  reorder,
		UnitCost:      unitCost,
		UnitPrice:     unitPrice,
		IsActive:      true,
		LastUpdatedBy: actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		adjustments repository.InventoryAdjustmentRepository,
		auditLog repository.AuditLogRepository,
	) error {
		if err := items.Create(ctx, item); err != nil {
			return err
		}
		if initialQty > 0 {
			if _, err := applyAdjustment(ctx, items, adjustments, item, entity.AdjustmentReceived, initialQty,
				uc.calendar.KeyFor(now), ReasonInitialStock, actor.ID, now, true); err != nil {
				return err
			}
		}
		uc.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Created inventory item %s", item.SKU),
			Path:    "/api/inventory/items",
			Meta:    map[string]any{"itemId": item.ID, "sku": item.SKU, "quantityOnHand": initialQty},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if initialQty > 0 {
		uc.metrics.IncAdjustment(string(entity.AdjustmentReceived))
	}
	return item, nil
}

// UpdateItem modifica los datos descriptivos de un insumo (solo admin). Nunca toca la existencia.
func (uc *CatalogUseCase) UpdateItem(ctx context.Context, actor entity.Actor, id string, in dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var out *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		_ repository.InventoryAdjustmentRepository,
		auditLog repository.AuditLogRepository,
	) error {
		item, err := items.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		changes := map[string]any{}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.ErrInvalidValue
			}
			item.Name = name
			changes["name"] = name
		}
		if in.Category != nil {
			c, ok := entity.ParseItemCategory(*in.Category)
			if !ok {
				return domain.ErrInvalidValue
			}
			item.Category = c
			changes["category"] = string(c)
		}
		if in.ReorderLevel.Present {
			r, ok := in.ReorderLevel.AsInt()
			if !ok || r < 0 {
				return domain.ErrInvalidValue
			}
			item.ReorderLevel = r
			changes["reorderLevel"] = r
		}
		if in.UnitCost != nil {
			if in.UnitCost.IsNegative() {
				return domain.ErrInvalidValue
			}
			item.UnitCost = *in.UnitCost
			changes["unitCost"] = in.UnitCost.String()
		}
		if in.UnitPrice != nil {
			if in.UnitPrice.IsNegative() {
				return domain.ErrInvalidValue
			}
			item.UnitPrice = *in.UnitPrice
			changes["unitPrice"] = in.UnitPrice.String()
		}
		if in.IsActive != nil {
			item.IsActive = *in.IsActive
			changes["isActive"] = *in.IsActive
		}
		if len(changes) == 0 {
			return domain.ErrNoOp
		}
		item.LastUpdatedBy = actor.ID
		item.UpdatedAt = uc.calendar.Now()
		if err := items.Update(ctx, item); err != nil {
			return err
		}
		uc.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Updated inventory item %s", item.SKU),
			Path:    "/api/inventory/items/" + item.ID,
			Meta:    map[string]any{"updates": changes},
		})
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListItems lista insumos ordenados por nombre.
func (uc *CatalogUseCase) ListItems(ctx context.Context, actor entity.Actor, includeInactive bool) ([]*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	return uc.items.List(ctx, includeInactive)
}

// GetItem obtiene un insumo por id.
func (uc *CatalogUseCase) GetItem(ctx context.Context, actor entity.Actor, id string) (*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// ItemHistory devuelve los ajustes del insumo, el más reciente primero (máximo HistoryLimit).
// from y to son llaves de fecha de negocio inclusivas y opcionales.
func (uc *CatalogUseCase) ItemHistory(ctx context.Context, actor entity.Actor, id string, q dto.ItemHistoryQuery) ([]*entity.InventoryAdjustment, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if (q.From != "" && !businessdate.ValidKey(q.From)) || (q.To != "" && !businessdate.ValidKey(q.To)) {
		return nil, domain.ErrInvalidValue
	}
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.adjustments.List(ctx, repository.AdjustmentFilter{
		ItemID:  id,
		FromKey: q.From,
		ToKey:   q.To,
		Limit:   HistoryLimit,
	})
}

func nonNegative(d *decimal.Decimal) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, nil
	}
	if d.IsNegative() || !entity.ValidAmount(*d) {
		return decimal.Zero, domain.ErrInvalidValue
	}
	return *d, nil
}
