package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/application/report"
	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "PHP 0.00", formatMoney(decimal.Zero))
	assert.Equal(t, "PHP 950.00", formatMoney(decimal.NewFromInt(950)))
	assert.Equal(t, "PHP 1,150.50", formatMoney(decimal.RequireFromString("1150.5")))
	assert.Equal(t, "PHP -1,234,567.00", formatMoney(decimal.NewFromInt(-1234567)))
}

func TestDailyReport_GeneraPDF(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)
	list := []*entity.Transaction{{
		ID: "t1", BusinessDateKey: "2024-05-01", StartedAt: time.Date(2024, 5, 1, 14, 0, 0, 0, loc),
		GuestName:     "Ana",
		Services:      []entity.ServiceLine{{ServiceName: "Swedish", Amount: decimal.NewFromInt(800)}},
		TotalAmount:   decimal.NewFromInt(800),
		ServiceStatus: entity.ServiceDone, PaymentStatus: entity.PaymentPaid, PaymentMethod: entity.MethodCash,
	}}
	g := NewDailyReportGenerator("Serenity Spa", loc)

	out, err := g.DailyReport(report.Summarize("2024-05-01", list), list)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
