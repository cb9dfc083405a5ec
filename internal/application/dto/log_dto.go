package dto

import "time"

// ClientLogRequest body para POST /api/log (navegación o acciones del frontend).
type ClientLogRequest struct {
	Type    string         `json:"type"`
	Message string         `json:"message" validate:"omitempty,max=1000"`
	Path    string         `json:"path" validate:"omitempty,max=500"`
	Meta    map[string]any `json:"meta"`
}

// LogQuery filtros de GET /api/logs.
type LogQuery struct {
	Type   string `query:"type"`
	UserID string `query:"userId"`
	Limit  int    `query:"limit"`
}

// AuditEntryResponse salida de un registro de bitácora.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId,omitempty"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Path      string         `json:"path,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
