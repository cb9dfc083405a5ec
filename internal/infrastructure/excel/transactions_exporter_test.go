package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

func TestTransactionsXLSX(t *testing.T) {
	loc := time.FixedZone("PHT", 8*3600)
	list := []*entity.Transaction{
		{
			ID: "t1", BusinessDateKey: "2024-05-01", StartedAt: time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC),
			GuestName: "Ana",
			Services: []entity.ServiceLine{
				{ServiceName: "Swedish", Amount: decimal.NewFromInt(800)},
				{ServiceName: "Foot spa", Amount: decimal.NewFromInt(300)},
			},
			TotalAmount:   decimal.NewFromInt(1100),
			ServiceStatus: entity.ServiceDone, PaymentStatus: entity.PaymentPaid, PaymentMethod: entity.MethodCard,
		},
	}

	out, err := NewTransactionsExporter(loc).TransactionsXLSX(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "t1", rows[1][0])
	assert.Equal(t, "2024-05-01 14:00", rows[1][2])
	assert.Equal(t, "Swedish, Foot spa", rows[1][4])
	assert.Equal(t, "1100", rows[1][10])
}

func TestTransactionsXLSX_SinFilas(t *testing.T) {
	out, err := NewTransactionsExporter(nil).TransactionsXLSX(nil)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
