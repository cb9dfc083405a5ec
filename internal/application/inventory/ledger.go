package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/spa-pos-api/internal/application/audit"
	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/pkg/metrics"
)

// Motivos por defecto de cada tipo de ajuste.
const (
	ReasonReceived     = "Received stock"
	ReasonDailyCount   = "End-of-day inventory count"
	ReasonInitialStock = "Initial stock"
)

const dailyCountLockTTL = 30 * time.Second

// errSkipNotFound marca dentro de la tx que el insumo de una línea del conteo no existe.
var errSkipNotFound = errors.New("insumo no encontrado")

// Ledger registra los cambios de existencia: entradas, conteo diario y ajustes manuales.
// Cada cambio escribe la nueva existencia y su InventoryAdjustment en la misma transacción
// (bloqueo de fila con SELECT FOR UPDATE).
type Ledger struct {
	txRunner TxRunner
	calendar *businessdate.Calendar
	recorder *audit.Recorder
	locker   Locker
	metrics  *metrics.LedgerMetrics
}

// NewLedger construye el ledger de inventario. locker y m pueden ser nil.
func NewLedger(txRunner TxRunner, calendar *businessdate.Calendar, recorder *audit.Recorder, locker Locker, m *metrics.LedgerMetrics) *Ledger {
	return &Ledger{
		txRunner: txRunner,
		calendar: calendar,
		recorder: recorder,
		locker:   locker,
		metrics:  m,
	}
}

// Receive suma quantity (entero > 0) a la existencia del insumo y registra un ajuste "received"
// con la fecha de negocio actual. Cualquier rol autenticado.
func (l *Ledger) Receive(ctx context.Context, actor entity.Actor, in dto.ReceiveRequest) (*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	itemID := strings.TrimSpace(in.ItemID)
	if itemID == "" {
		return nil, domain.ErrMissingInput
	}
	qty, ok := in.Quantity.AsInt()
	if !ok || qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = ReasonReceived
	}

	now := l.calendar.Now()
	dateKey := l.calendar.KeyFor(now)
	var out *entity.InventoryItem
	err := l.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		adjustments repository.InventoryAdjustmentRepository,
		auditLog repository.AuditLogRepository,
	) error {
		item, err := items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if qty > entity.MaxQuantity-item.QuantityOnHand {
			return domain.ErrInvalidQuantity
		}
		adj, err := applyAdjustment(ctx, items, adjustments, item, entity.AdjustmentReceived, item.QuantityOnHand+qty, dateKey, reason, actor.ID, now, true)
		if err != nil {
			return err
		}
		l.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Received %d of %s", qty, item.SKU),
			Path:    "/api/inventory/receive",
			Meta:    adjustmentMeta(adj),
		})
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.metrics.IncAdjustment(string(entity.AdjustmentReceived))
	return out, nil
}

// RecordDailyCount aplica el conteo físico de cierre. Cada línea se procesa en su propia transacción:
// las líneas inválidas o de insumos inexistentes se descartan (y se informan en Skipped) sin abortar el lote.
// Toda línea válida deja un ajuste "daily_count", aunque la diferencia sea 0; la existencia solo
// se reescribe si cambió. Los conteos de una misma fecha de negocio se serializan con Locker.
func (l *Ledger) RecordDailyCount(ctx context.Context, actor entity.Actor, in dto.DailyCountRequest) (*dto.DailyCountResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Counts) == 0 {
		return nil, domain.ErrMissingInput
	}
	dateKey := strings.TrimSpace(in.DateKey)
	if dateKey == "" {
		dateKey = l.calendar.Today()
	} else if !businessdate.ValidKey(dateKey) {
		return nil, domain.ErrInvalidValue
	}

	if l.locker != nil {
		lock, err := l.locker.Obtain(ctx, "inventory:daily:"+dateKey, dailyCountLockTTL)
		if err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release(context.WithoutCancel(ctx)) }()
	}

	resp := &dto.DailyCountResponse{
		Success: true,
		DateKey: dateKey,
		Results: []dto.DailyCountResult{},
		Skipped: []dto.DailyCountSkipped{},
	}
	for _, entry := range in.Counts {
		itemID := strings.TrimSpace(entry.ItemID)
		if itemID == "" {
			resp.Skipped = append(resp.Skipped, dto.DailyCountSkipped{Reason: dto.SkipMissingItemID})
			continue
		}
		actual, ok := entry.ActualQty.AsInt()
		if !ok || actual < 0 {
			resp.Skipped = append(resp.Skipped, dto.DailyCountSkipped{ItemID: itemID, Reason: dto.SkipInvalidQty})
			continue
		}

		var result dto.DailyCountResult
		err := l.txRunner.Run(ctx, func(
			items repository.InventoryItemRepository,
			adjustments repository.InventoryAdjustmentRepository,
			_ repository.AuditLogRepository,
		) error {
			item, err := items.GetForUpdate(ctx, itemID)
			if err != nil {
				return err
			}
			if item == nil {
				return errSkipNotFound
			}
			now := l.calendar.Now()
			adj, err := applyAdjustment(ctx, items, adjustments, item, entity.AdjustmentDailyCount, actual, dateKey, ReasonDailyCount, actor.ID, now, false)
			if err != nil {
				return err
			}
			result = dto.DailyCountResult{
				ItemID:      itemID,
				PreviousQty: adj.PreviousQty,
				NewQty:      adj.NewQty,
				Difference:  adj.Difference,
			}
			return nil
		})
		if errors.Is(err, errSkipNotFound) {
			resp.Skipped = append(resp.Skipped, dto.DailyCountSkipped{ItemID: itemID, Reason: dto.SkipItemNotFound})
			continue
		}
		if err != nil {
			return nil, err
		}
		l.metrics.IncAdjustment(string(entity.AdjustmentDailyCount))
		resp.Results = append(resp.Results, result)
	}

	l.recorder.Record(ctx, entity.AuditEntry{
		UserID:  actor.ID,
		Kind:    entity.AuditAction,
		Message: fmt.Sprintf("Recorded daily inventory count %s", dateKey),
		Path:    "/api/inventory/daily",
		Meta: map[string]any{
			"dateKey":   dateKey,
			"processed": len(resp.Results),
			"skipped":   len(resp.Skipped),
		},
	})
	return resp, nil
}

// Adjust corrige la existencia a newQty con un motivo obligatorio. Solo admin.
func (l *Ledger) Adjust(ctx context.Context, actor entity.Actor, in dto.AdjustRequest) (*entity.InventoryItem, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	itemID := strings.TrimSpace(in.ItemID)
	reason := strings.TrimSpace(in.Reason)
	if itemID == "" || reason == "" {
		return nil, domain.ErrMissingInput
	}
	newQty, ok := in.NewQty.AsInt()
	if !ok || newQty < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := l.calendar.Now()
	dateKey := l.calendar.KeyFor(now)
	var out *entity.InventoryItem
	err := l.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		adjustments repository.InventoryAdjustmentRepository,
		auditLog repository.AuditLogRepository,
	) error {
		item, err := items.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		adj, err := applyAdjustment(ctx, items, adjustments, item, entity.AdjustmentManual, newQty, dateKey, reason, actor.ID, now, true)
		if err != nil {
			return err
		}
		l.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Adjusted %s to %d", item.SKU, newQty),
			Path:    "/api/inventory/adjust",
			Meta:    adjustmentMeta(adj),
		})
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.metrics.IncAdjustment(string(entity.AdjustmentManual))
	return out, nil
}

// applyAdjustment crea el registro del ajuste y, si corresponde, guarda la nueva existencia del insumo.
// alwaysWrite=false omite el guardado cuando la diferencia es 0 (conteo diario).
func applyAdjustment(
	ctx context.Context,
	items repository.InventoryItemRepository,
	adjustments repository.InventoryAdjustmentRepository,
	item *entity.InventoryItem,
	kind entity.AdjustmentKind,
	newQty int,
	dateKey, reason, actorID string,
	now time.Time,
	alwaysWrite bool,
) (*entity.InventoryAdjustment, error) {
	adj := entity.NewInventoryAdjustment(item, kind, newQty, dateKey, reason, actorID, now)
	adj.ID = uuid.New().String()
	if alwaysWrite || adj.Difference != 0 {
		item.QuantityOnHand = newQty
		item.LastUpdatedBy = actorID
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			return nil, err
		}
	}
	if err := adjustments.Create(ctx, adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func adjustmentMeta(adj *entity.InventoryAdjustment) map[string]any {
	return map[string]any{
		"itemId":      adj.ItemID,
		"type":        string(adj.Kind),
		"dateKey":     adj.BusinessDateKey,
		"previousQty": adj.PreviousQty,
		"newQty":      adj.NewQty,
		"difference":  adj.Difference,
	}
}
