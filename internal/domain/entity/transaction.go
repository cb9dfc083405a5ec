package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceStatus estado del servicio.
type ServiceStatus string

// PaymentStatus estado del cobro.
type PaymentStatus string

// PaymentMethod medio de pago.
type PaymentMethod string

const (
	ServiceOngoing   ServiceStatus = "ongoing"
	ServiceDone      ServiceStatus = "done"
	ServiceCancelled ServiceStatus = "cancelled"

	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPaid          PaymentStatus = "paid"
	PaymentComplimentary PaymentStatus = "complimentary"

	MethodCash  PaymentMethod = "cash"
	MethodGCash PaymentMethod = "gcash"
	MethodCard  PaymentMethod = "card"
	MethodOther PaymentMethod = "other"
)

// ParseServiceStatus valida un estado de servicio.
func ParseServiceStatus(s string) (ServiceStatus, bool) {
	switch ServiceStatus(s) {
	case ServiceOngoing, ServiceDone, ServiceCancelled:
		return ServiceStatus(s), true
	}
	return "", false
}

// ParsePaymentStatus valida un estado de pago.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid, PaymentComplimentary:
		return PaymentStatus(s), true
	}
	return "", false
}

// ParsePaymentMethod valida un medio de pago.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodCash, MethodGCash, MethodCard, MethodOther:
		return PaymentMethod(s), true
	}
	return "", false
}

// Settled true si el pago ya quedó cerrado (pagado o cortesía).
func (p PaymentStatus) Settled() bool {
	return p == PaymentPaid || p == PaymentComplimentary
}

// ServiceLine línea de servicio de una transacción. Se guarda como JSONB.
type ServiceLine struct {
	ServiceName     string          `json:"serviceName"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
}

// Transaction atención registrada en recepción.
// BusinessDateKey se fija al crear y no cambia; Services nunca queda vacío.
type Transaction struct {
	ID              string
	BusinessDateKey string
	StartedAt       time.Time
	GuestName       string
	Services        []ServiceLine
	TotalAmount     decimal.Decimal
	TherapistID     string
	TherapistName   string
	RoomName        string
	ServiceStatus   ServiceStatus
	PaymentStatus   PaymentStatus
	PaymentMethod   PaymentMethod // vacío = sin definir
	Notes           string
	CreatedByUserID string
	Revision        int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// maxAmount límite exclusivo de un monto guardado en NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)

// ValidAmount true si d cabe en NUMERIC(12,2) sin redondeo: como mucho 2 decimales y |d| < 10^10.
func ValidAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxAmount)
}

// SumServiceAmounts total de las líneas.
func SumServiceAmounts(lines []ServiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
