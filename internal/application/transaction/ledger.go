// Package transaction contiene el ledger de transacciones de recepción: alta, cambios de estado
// con reglas por rol y consultas por alcance (active, today, history).
package transaction

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

// Alcances de consulta.
const (
	ScopeActive  = "active"
	ScopeToday   = "today"
	ScopeHistory = "history"
)

// Límites por alcance.
const (
	ActiveLimit  = 100
	TodayLimit   = 200
	HistoryLimit = 500
)

// Ledger casos de uso de transacciones.
type Ledger struct {
	txRunner TxRunner
	txs      repository.TransactionRepository
	calendar *businessdate.Calendar
	recorder *audit.Recorder
	metrics  *metrics.LedgerMetrics
}

// NewLedger construye el ledger. m puede ser nil.
func NewLedger(txRunner TxRunner, txs repository.TransactionRepository, calendar *businessdate.Calendar, recorder *audit.Recorder, m *metrics.LedgerMetrics) *Ledger {
	return &Ledger{txRunner: txRunner, txs: txs, calendar: calendar, recorder: recorder, metrics: m}
}

// Create registra una atención. El total es la suma de las líneas (montos no numéricos = 0).
// Solo admin puede fijar StartedAt; si staff lo envía se ignora y se usa la hora actual.
// Staff solo puede crear para el día de negocio actual.
func (l *Ledger) Create(ctx context.Context, actor entity.Actor, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Services) == 0 {
		return nil, domain.ErrMissingInput
	}
	lines := make([]entity.ServiceLine, 0, len(in.Services))
	for _, s := range in.Services {
		name := strings.TrimSpace(s.ServiceName)
		if name == "" {
			return nil, domain.ErrMissingInput
		}
		line := entity.ServiceLine{ServiceName: name, Amount: decimal.Zero}
		if s.Amount.Valid {
			line.Amount = s.Amount.Value.Round(2)
		}
		if d, ok := s.DurationMinutes.AsInt(); ok && d >= 0 {
			line.DurationMinutes = &d
		}
		lines = append(lines, line)
	}

	now := l.calendar.Now()
	startedAt := now
	if actor.IsAdmin() && strings.TrimSpace(in.StartedAt) != "" {
		if t, ok := l.calendar.ParseTimestamp(in.StartedAt); ok {
			startedAt = t
		}
	}
	dateKey := l.calendar.KeyFor(startedAt)
	if !actor.IsAdmin() && dateKey != l.calendar.KeyFor(now) {
		return nil, domain.ErrForbidden
	}

	total := entity.SumServiceAmounts(lines)
	if !entity.ValidAmount(total) {
		return nil, domain.ErrInvalidValue
	}
	t := &entity.Transaction{
		ID:              uuid.New().String(),
		BusinessDateKey: dateKey,
		StartedAt:       startedAt,
		GuestName:       strings.TrimSpace(in.GuestName),
		Services:        lines,
		TotalAmount:     total,
		TherapistID:     in.TherapistID,
		TherapistName:   in.TherapistName,
		RoomName:        in.RoomName,
		ServiceStatus:   entity.ServiceOngoing,
		PaymentStatus:   entity.PaymentUnpaid,
		Notes:           in.Notes,
		CreatedByUserID: actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := l.txRunner.RunTransactions(ctx, func(txs repository.TransactionRepository, auditLog repository.AuditLogRepository) error {
		if err := txs.Create(ctx, t); err != nil {
			return err
		}
		l.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Created transaction %s (₱%s)", t.ID, total.StringFixed(2)),
			Path:    "/api/transactions",
			Meta: map[string]any{
				"transactionId":   t.ID,
				"businessDateKey": dateKey,
				"totalAmount":     total.InexactFloat64(),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.metrics.IncTransactionCreated()
	return t, nil
}

// Patch aplica cambios de estado y campos editables.
// Staff no puede tocar transacciones de días anteriores, ni revertir un cobro a unpaid, ni cambiar el total.
// ExpectedRevision, si viene, debe coincidir con la revisión actual (ErrConflict).
func (l *Ledger) Patch(ctx context.Context, actor entity.Actor, id string, in dto.PatchTransactionRequest) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	var out *entity.Transaction
	err := l.txRunner.RunTransactions(ctx, func(txs repository.TransactionRepository, auditLog repository.AuditLogRepository) error {
		existing, err := txs.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if !actor.IsAdmin() && existing.BusinessDateKey != l.calendar.Today() {
			return domain.ErrForbidden
		}
		if in.ExpectedRevision != nil && *in.ExpectedRevision != existing.Revision {
			return domain.ErrConflict
		}
		cs, err := admitPatch(existing, in, actor)
		if err != nil {
			return err
		}
		cs.apply(existing)
		existing.UpdatedAt = l.calendar.Now()
		if err := txs.Update(ctx, existing); err != nil {
			return err
		}
		l.recorder.Bind(auditLog).Record(ctx, entity.AuditEntry{
			UserID:  actor.ID,
			Kind:    entity.AuditAction,
			Message: fmt.Sprintf("Updated transaction %s", existing.ID),
			Path:    "/api/transactions/" + existing.ID,
			Meta:    map[string]any{"updates": cs.meta()},
		})
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.metrics.IncTransactionPatched()
	return out, nil
}

// Get devuelve una transacción por id. Cualquier rol autenticado.
func (l *Ledger) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	t, err := l.txs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// Query devuelve las transacciones del alcance pedido, ordenadas por StartedAt descendente.
//   - active: día actual, servicio ongoing o done, pago distinto de paid (máx. 100)
//   - today: todo el día actual (máx. 200)
//   - history: solo admin, rango opcional inclusivo de llaves de fecha (máx. 500)
func (l *Ledger) Query(ctx context.Context, actor entity.Actor, q dto.TransactionQuery) ([]*entity.Transaction, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	filter, err := l.filterFor(actor, q)
	if err != nil {
		return nil, err
	}
	return l.txs.Find(ctx, filter)
}

func (l *Ledger) filterFor(actor entity.Actor, q dto.TransactionQuery) (repository.TransactionFilter, error) {
	scope := strings.TrimSpace(q.Scope)
	if scope == "" {
		scope = ScopeActive
	}
	switch scope {
	case ScopeActive:
		return repository.TransactionFilter{
			BusinessDateKey:      l.calendar.Today(),
			ServiceStatuses:      []entity.ServiceStatus{entity.ServiceOngoing, entity.ServiceDone},
			ExcludePaymentStatus: entity.PaymentPaid,
			Limit:                ActiveLimit,
		}, nil
	case ScopeToday:
		return repository.TransactionFilter{
			BusinessDateKey: l.calendar.Today(),
			Limit:           TodayLimit,
		}, nil
	case ScopeHistory:
		if !actor.IsAdmin() {
			return repository.TransactionFilter{}, domain.ErrForbidden
		}
		if (q.From != "" && !businessdate.ValidKey(q.From)) || (q.To != "" && !businessdate.ValidKey(q.To)) {
			return repository.TransactionFilter{}, domain.ErrInvalidValue
		}
		return repository.TransactionFilter{
			FromKey: q.From,
			ToKey:   q.To,
			Limit:   HistoryLimit,
		}, nil
	}
	return repository.TransactionFilter{}, domain.ErrInvalidValue
}
