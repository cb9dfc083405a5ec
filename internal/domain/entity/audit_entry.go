package entity

import "time"

// AuditKind clasificación de la bitácora.
type AuditKind string

const (
	AuditAuth       AuditKind = "auth"
	AuditNavigation AuditKind = "navigation"
	AuditAction     AuditKind = "action"
	AuditSystem     AuditKind = "system"
)

// ParseAuditKind valida el tipo de bitácora.
func ParseAuditKind(s string) (AuditKind, bool) {
	switch AuditKind(s) {
	case AuditAuth, AuditNavigation, AuditAction, AuditSystem:
		return AuditKind(s), true
	}
	return "", false
}

// AuditEntry registro de bitácora; solo se crea.
type AuditEntry struct {
	ID        string
	UserID    string // vacío si la acción no tiene usuario identificado
	Kind      AuditKind
	Message   string
	Path      string
	Meta      map[string]any
	CreatedAt time.Time
}
