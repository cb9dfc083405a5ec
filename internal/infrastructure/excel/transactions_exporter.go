// Package excel exporta el historial de transacciones a .xlsx con excelize.
package excel

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/spa-pos-api/internal/application/report"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

const sheetName = "Transactions"

var headers = []string{
	"ID", "Business date", "Started at", "Guest", "Services", "Therapist", "Room",
	"Service status", "Payment status", "Payment method", "Total", "Notes", "Created by",
}

// TransactionsExporter implementa report.Spreadsheet.
type TransactionsExporter struct {
	loc *time.Location
}

var _ report.Spreadsheet = (*TransactionsExporter)(nil)

// NewTransactionsExporter construye el exportador. Las horas se escriben en loc.
func NewTransactionsExporter(loc *time.Location) *TransactionsExporter {
	if loc == nil {
		loc = time.Local
	}
	return &TransactionsExporter{loc: loc}
}

// TransactionsXLSX una fila por transacción, en el orden recibido.
func (e *TransactionsExporter) TransactionsXLSX(list []*entity.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
	}

	for r, t := range list {
		names := make([]string, 0, len(t.Services))
		for _, s := range t.Services {
			names = append(names, s.ServiceName)
		}
		total, _ := t.TotalAmount.Float64()
		values := []any{
			t.ID,
			t.BusinessDateKey,
			t.StartedAt.In(e.loc).Format("2006-01-02 15:04"),
			t.GuestName,
			strings.Join(names, ", "),
			t.TherapistName,
			t.RoomName,
			string(t.ServiceStatus),
			string(t.PaymentStatus),
			string(t.PaymentMethod),
			total,
			t.Notes,
			t.CreatedByUserID,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("excel: fila %d: %w", r+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
