package repository

import (
	"context"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// AuditFilter filtro de lectura de la bitácora.
type AuditFilter struct {
	UserID string
	Kind   entity.AuditKind
	Limit  int
}

// AuditLogRepository bitácora append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, error)
}
