package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceLineRequest línea de servicio tal como llega del cliente.
// Amount no numérico cuenta como 0; DurationMinutes no entero se descarta.
type ServiceLineRequest struct {
	ServiceName     string      `json:"serviceName"`
	DurationMinutes LooseNumber `json:"durationMinutes"`
	Amount          LooseNumber `json:"amount"`
}

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Services      []ServiceLineRequest `json:"services"`
	StartedAt     string               `json:"startedAt"` // solo admin; staff se ignora
	GuestName     string               `json:"guestName"`
	TherapistID   string               `json:"therapistId"`
	TherapistName string               `json:"therapistName"`
	RoomName      string               `json:"roomName"`
	Notes         string               `json:"notes"`
}

// PatchTransactionRequest body para PATCH /api/transactions/:id.
// Los estados vacíos cuentan como ausentes; los textos se aplican aunque vengan vacíos.
type PatchTransactionRequest struct {
	ServiceStatus    *string     `json:"serviceStatus,omitempty"`
	PaymentStatus    *string     `json:"paymentStatus,omitempty"`
	PaymentMethod    *string     `json:"paymentMethod,omitempty"`
	TherapistName    *string     `json:"therapistName,omitempty"`
	RoomName         *string     `json:"roomName,omitempty"`
	Notes            *string     `json:"notes,omitempty"`
	GuestName        *string     `json:"guestName,omitempty"`
	TotalAmount      LooseNumber `json:"totalAmount"`
	ExpectedRevision *int64      `json:"expectedRevision,omitempty"`
}

// TransactionQuery parámetros de GET /api/transactions.
type TransactionQuery struct {
	Scope string `query:"scope"` // active | today | history (vacío = active)
	From  string `query:"from"`
	To    string `query:"to"`
}

// ServiceLineResponse línea de servicio en la respuesta.
type ServiceLineResponse struct {
	ServiceName     string          `json:"serviceName"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID              string                `json:"id"`
	BusinessDateKey string                `json:"businessDateKey"`
	StartedAt       time.Time             `json:"startedAt"`
	GuestName       string                `json:"guestName,omitempty"`
	Services        []ServiceLineResponse `json:"services"`
	TotalAmount     decimal.Decimal       `json:"totalAmount"`
	TherapistID     string                `json:"therapistId,omitempty"`
	TherapistName   string                `json:"therapistName,omitempty"`
	RoomName        string                `json:"roomName,omitempty"`
	ServiceStatus   string                `json:"serviceStatus"`
	PaymentStatus   string                `json:"paymentStatus"`
	PaymentMethod   string                `json:"paymentMethod,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	CreatedByUserID string                `json:"createdByUserId"`
	Revision        int64                 `json:"revision"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}
