package dto

import "github.com/shopspring/decimal"

// DailySummaryDTO respuesta de GET /api/reports/daily.
// Resume las transacciones de un día de negocio.
type DailySummaryDTO struct {
	DateKey          string `json:"dateKey"`
	TransactionCount int    `json:"transactionCount"`

	// Conteos por estado
	ByServiceStatus map[string]int `json:"byServiceStatus"`
	ByPaymentStatus map[string]int `json:"byPaymentStatus"`

	// Montos
	PaidTotal          decimal.Decimal            `json:"paidTotal"`
	UnpaidTotal        decimal.Decimal            `json:"unpaidTotal"`        // no incluye canceladas
	ComplimentaryTotal decimal.Decimal            `json:"complimentaryTotal"`
	ByPaymentMethod    map[string]decimal.Decimal `json:"byPaymentMethod"` // solo pagadas; "unspecified" si falta el medio

	// Top servicios del día por monto
	TopServices []ServiceTotalDTO `json:"topServices"`
}

// ServiceTotalDTO total vendido de un servicio en el día.
type ServiceTotalDTO struct {
	ServiceName string          `json:"serviceName"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}
