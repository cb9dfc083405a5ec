// Package report contiene los reportes de cierre: resumen diario, exportación de historial
// a Excel y reporte diario en PDF.
package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
	"github.com/jhoicas/spa-pos-api/internal/domain"
	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
	"github.com/jhoicas/spa-pos-api/internal/domain/repository"
)

const (
	topServices   = 5
	dayLimit      = 1000
	exportLimit   = 500
	noMethodLabel = "unspecified"
)

// Spreadsheet genera el .xlsx del historial de transacciones.
type Spreadsheet interface {
	TransactionsXLSX(list []*entity.Transaction) ([]byte, error)
}

// PDFGenerator genera el PDF de cierre diario.
type PDFGenerator interface {
	DailyReport(summary *dto.DailySummaryDTO, list []*entity.Transaction) ([]byte, error)
}

// UseCase reportes sobre el ledger de transacciones. Solo lectura.
type UseCase struct {
	txs      repository.TransactionRepository
	calendar *businessdate.Calendar
	sheet    Spreadsheet
	pdf      PDFGenerator
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(txs repository.TransactionRepository, calendar *businessdate.Calendar, sheet Spreadsheet, pdf PDFGenerator) *UseCase {
	return &UseCase{txs: txs, calendar: calendar, sheet: sheet, pdf: pdf}
}

// DailySummary resumen de un día de negocio (vacío = hoy). Staff solo puede ver el día actual.
func (uc *UseCase) DailySummary(ctx context.Context, actor entity.Actor, dateKey string) (*dto.DailySummaryDTO, error) {
	key, err := uc.resolveDay(actor, dateKey)
	if err != nil {
		return nil, err
	}
	list, err := uc.txs.Find(ctx, repository.TransactionFilter{BusinessDateKey: key, Limit: dayLimit})
	if err != nil {
		return nil, err
	}
	return Summarize(key, list), nil
}

// ExportHistory .xlsx del alcance history (solo admin). Rango inclusivo opcional.
func (uc *UseCase) ExportHistory(ctx context.Context, actor entity.Actor, from, to string) ([]byte, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if (from != "" && !businessdate.ValidKey(from)) || (to != "" && !businessdate.ValidKey(to)) {
		return nil, domain.ErrInvalidValue
	}
	list, err := uc.txs.Find(ctx, repository.TransactionFilter{FromKey: from, ToKey: to, Limit: exportLimit})
	if err != nil {
		return nil, err
	}
	return uc.sheet.TransactionsXLSX(list)
}

// DailyReportPDF resumen más listado del día en PDF (solo admin).
func (uc *UseCase) DailyReportPDF(ctx context.Context, actor entity.Actor, dateKey string) ([]byte, error) {
	if !actor.Valid() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	key, err := uc.resolveDay(actor, dateKey)
	if err != nil {
		return nil, err
	}
	list, err := uc.txs.Find(ctx, repository.TransactionFilter{BusinessDateKey: key, Limit: dayLimit})
	if err != nil {
		return nil, err
	}
	return uc.pdf.DailyReport(Summarize(key, list), list)
}

func (uc *UseCase) resolveDay(actor entity.Actor, dateKey string) (string, error) {
	if !actor.Valid() {
		return "", domain.ErrUnauthenticated
	}
	today := uc.calendar.Today()
	if dateKey == "" {
		return today, nil
	}
	if !businessdate.ValidKey(dateKey) {
		return "", domain.ErrInvalidValue
	}
	if !actor.IsAdmin() && dateKey != today {
		return "", domain.ErrForbidden
	}
	return dateKey, nil
}

// Summarize agrega las transacciones de un día. Las canceladas cuentan por estado
// pero no suman en unpaidTotal ni en los servicios más vendidos.
func Summarize(dateKey string, list []*entity.Transaction) *dto.DailySummaryDTO {
	s := &dto.DailySummaryDTO{
		DateKey:            dateKey,
		TransactionCount:   len(list),
		ByServiceStatus:    map[string]int{},
		ByPaymentStatus:    map[string]int{},
		PaidTotal:          decimal.Zero,
		UnpaidTotal:        decimal.Zero,
		ComplimentaryTotal: decimal.Zero,
		ByPaymentMethod:    map[string]decimal.Decimal{},
		TopServices:        []dto.ServiceTotalDTO{},
	}
	services := map[string]*dto.ServiceTotalDTO{}
	for _, t := range list {
		s.ByServiceStatus[string(t.ServiceStatus)]++
		s.ByPaymentStatus[string(t.PaymentStatus)]++
		cancelled := t.ServiceStatus == entity.ServiceCancelled

		switch t.PaymentStatus {
		case entity.PaymentPaid:
			s.PaidTotal = s.PaidTotal.Add(t.TotalAmount)
			method := string(t.PaymentMethod)
			if method == "" {
				method = noMethodLabel
			}
			s.ByPaymentMethod[method] = s.ByPaymentMethod[method].Add(t.TotalAmount)
		case entity.PaymentComplimentary:
			s.ComplimentaryTotal = s.ComplimentaryTotal.Add(t.TotalAmount)
		case entity.PaymentUnpaid:
			if !cancelled {
				s.UnpaidTotal = s.UnpaidTotal.Add(t.TotalAmount)
			}
		}

		if cancelled {
			continue
		}
		for _, line := range t.Services {
			st, ok := services[line.ServiceName]
			if !ok {
				st = &dto.ServiceTotalDTO{ServiceName: line.ServiceName, Amount: decimal.Zero}
				services[line.ServiceName] = st
			}
			st.Count++
			st.Amount = st.Amount.Add(line.Amount)
		}
	}

	for _, st := range services {
		s.TopServices = append(s.TopServices, *st)
	}
	sort.Slice(s.TopServices, func(i, j int) bool {
		a, b := s.TopServices[i], s.TopServices[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.ServiceName < b.ServiceName
	})
	if len(s.TopServices) > topServices {
		s.TopServices = s.TopServices[:topServices]
	}
	return s
}
