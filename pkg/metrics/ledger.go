package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics contadores de las operaciones del ledger.
// Un *LedgerMetrics nil (o construido sin registerer) no registra nada.
type LedgerMetrics struct {
	adjustments  *prometheus.CounterVec
	txCreated    prometheus.Counter
	txPatched    prometheus.Counter
	auditFailure *prometheus.CounterVec
}

// NewLedgerMetrics registra las métricas del ledger en el registerer dado.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	adjustments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_adjustments_total",
		Help: "Inventory adjustments appended, by kind.",
	}, []string{"kind"})
	txCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Transactions created.",
	})
	txPatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "transactions_patched_total",
		Help: "Transactions updated through patch.",
	})
	auditFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Audit entries that could not be persisted, by kind.",
	}, []string{"kind"})
	reg.MustRegister(adjustments, txCreated, txPatched, auditFailure)
	return &LedgerMetrics{
		adjustments:  adjustments,
		txCreated:    txCreated,
		txPatched:    txPatched,
		auditFailure: auditFailure,
	}
}

// IncAdjustment cuenta un ajuste de inventario del tipo indicado.
func (m *LedgerMetrics) IncAdjustment(kind string) {
	if m == nil || m.adjustments == nil {
		return
	}
	m.adjustments.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncTransactionCreated cuenta una transacción creada.
func (m *LedgerMetrics) IncTransactionCreated() {
	if m == nil || m.txCreated == nil {
		return
	}
	m.txCreated.Inc()
}

// IncTransactionPatched cuenta una transacción modificada.
func (m *LedgerMetrics) IncTransactionPatched() {
	if m == nil || m.txPatched == nil {
		return
	}
	m.txPatched.Inc()
}

// IncAuditFailure cuenta una escritura de bitácora fallida.
func (m *LedgerMetrics) IncAuditFailure(kind string) {
	if m == nil || m.auditFailure == nil {
		return
	}
	m.auditFailure.WithLabelValues(normalizeLabel(kind)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
