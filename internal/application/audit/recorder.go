// Package audit contiene la bitácora append-only: el sink que usan los ledgers
// y los casos de uso de logs del cliente y consulta de logs.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
	"github.com/jhoicas/spa-pos-api/pkg/logger"
	"github.com/jhoicas/spa-pos-api/pkg/metrics"
)

// Sink recibe entradas de bitácora. Nunca devuelve error: un fallo de bitácora no puede
// tumbar la operación que lo originó.
type Sink interface {
	Record(ctx context.Context, entry entity.AuditEntry)
}

// Recorder implementa Sink sobre un AuditLogRepository.
// Los fallos se registran en el log (warn) y en métricas, y se descartan.
type Recorder struct {
	repo    repository.AuditLogRepository
	log     *logger.Logger
	metrics *metrics.LedgerMetrics
	now     func() time.Time
}

var _ Sink = (*Recorder)(nil)

// NewRecorder construye el recorder. log y m pueden ser nil.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger, m *metrics.LedgerMetrics) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{repo: repo, log: log.WithStr("component", "audit"), metrics: m, now: time.Now}
}

// WithClock devuelve una copia que usa el reloj dado para CreatedAt.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	cp := *r
	cp.now = now
	return &cp
}

// Bind devuelve un Recorder que escribe en repo (p.ej. el repositorio atado a una transacción de BD)
// conservando logger, métricas y reloj.
func (r *Recorder) Bind(repo repository.AuditLogRepository) *Recorder {
	cp := *r
	cp.repo = repo
	return &cp
}

// Record persiste la entrada. Completa ID y CreatedAt si vienen vacíos.
func (r *Recorder) Record(ctx context.Context, entry entity.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now()
	}
	if entry.Kind == "" {
		entry.Kind = entity.AuditAction
	}
	if r.repo == nil {
		r.fail(entry, nil)
		return
	}
	if err := r.repo.Create(ctx, &entry); err != nil {
		r.fail(entry, err)
	}
}

func (r *Recorder) fail(entry entity.AuditEntry, err error) {
	r.metrics.IncAuditFailure(string(entry.Kind))
	ev := r.log.Warn().
		Str("kind", string(entry.Kind)).
		Str("user_id", entry.UserID).
		Str("message", entry.Message)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("no se pudo escribir la bitácora")
}
