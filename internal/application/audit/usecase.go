package audit

import (
	"context"
	"strings"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

// Límites de GET /api/logs.
const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

const defaultClientMessage = "client log"

// LogUseCase logs enviados por el frontend y consulta de la bitácora (admin).
type LogUseCase struct {
	sink Sink
	repo repository.AuditLogRepository
}

// NewLogUseCase construye el caso de uso.
func NewLogUseCase(sink Sink, repo repository.AuditLogRepository) *LogUseCase {
	return &LogUseCase{sink: sink, repo: repo}
}

// RecordClientLog registra un evento del cliente. El actor es opcional (páginas públicas).
// Tipo vacío = action; tipo desconocido = ErrInvalidValue.
func (uc *LogUseCase) RecordClientLog(ctx context.Context, actor *entity.Actor, in dto.ClientLogRequest) error {
	kind := entity.AuditAction
	if in.Type != "" {
		k, ok := entity.ParseAuditKind(in.Type)
		if !ok {
			return domain.ErrInvalidValue
		}
		kind = k
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		msg = defaultClientMessage
	}
	entry := entity.AuditEntry{
		Kind:    kind,
		Message: msg,
		Path:    in.Path,
		Meta:    in.Meta,
	}
	if actor != nil {
		entry.UserID = actor.ID
	}
	uc.sink.Record(ctx, entry)
	return nil
}

// List devuelve la bitácora más reciente primero. Solo admin.
func (uc *LogUseCase) List(ctx context.Context, actor entity.Actor, q dto.LogQuery) ([]dto.AuditEntryResponse, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	filter := repository.AuditFilter{UserID: q.UserID, Limit: clampLimit(q.Limit)}
	if q.Type != "" {
		k, ok := entity.ParseAuditKind(q.Type)
		if !ok {
			return nil, domain.ErrInvalidValue
		}
		filter.Kind = k
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToAuditEntryResponse(e))
	}
	return out, nil
}

// ToAuditEntryResponse mapea la entidad al DTO.
func ToAuditEntryResponse(e *entity.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      string(e.Kind),
		Message:   e.Message,
		Path:      e.Path,
		Meta:      e.Meta,
		CreatedAt: e.CreatedAt,
	}
}

func clampLimit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	if n > MaxListLimit {
		return MaxListLimit
	}
	return n
}
