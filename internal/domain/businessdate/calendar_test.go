package businessdate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/domain/businessdate"
)

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return loc
}

func TestKey_AntesDelCorteEsDiaAnterior(t *testing.T) {
	loc := manila(t)
	ts := time.Date(2025, 11, 25, 3, 59, 0, 0, loc)
	assert.Equal(t, "2025-11-24", businessdate.Key(ts, 4))
}

func TestKey_EnElCorteEsMismoDia(t *testing.T) {
	loc := manila(t)
	ts := time.Date(2025, 11, 25, 4, 0, 0, 0, loc)
	assert.Equal(t, "2025-11-25", businessdate.Key(ts, 4))
}

func TestKey_CruceDeMesYAnio(t *testing.T) {
	ts := time.Date(2026, 1, 1, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-12-31", businessdate.Key(ts, 4))

	ts = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-28", businessdate.Key(ts, 4))
}

func TestKey_CorteCeroNuncaRetrocede(t *testing.T) {
	ts := time.Date(2025, 11, 25, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-25", businessdate.Key(ts, 0))
}

func TestCalendar_KeyForConvierteAZonaDelNegocio(t *testing.T) {
	loc := manila(t)
	cal, err := businessdate.NewCalendar(loc, 4, nil)
	require.NoError(t, err)

	// 19:30 UTC = 03:30 del día siguiente en Manila (UTC+8) → aún es el día anterior.
	ts := time.Date(2025, 11, 24, 19, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-24", cal.KeyFor(ts))

	// 20:30 UTC = 04:30 en Manila → nuevo día de negocio.
	ts = time.Date(2025, 11, 24, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-25", cal.KeyFor(ts))
}

func TestCalendar_TodayUsaRelojInyectado(t *testing.T) {
	loc := manila(t)
	fixed := time.Date(2025, 11, 25, 4, 30, 0, 0, loc)
	cal, err := businessdate.NewCalendar(loc, 4, func() time.Time { return fixed })
	require.NoError(t, err)

	assert.Equal(t, "2025-11-25", cal.Today())
	assert.True(t, cal.Now().Equal(fixed))
}

func TestNewCalendar_CorteFueraDeRango(t *testing.T) {
	_, err := businessdate.NewCalendar(time.UTC, 24, nil)
	assert.Error(t, err)
	_, err = businessdate.NewCalendar(time.UTC, -1, nil)
	assert.Error(t, err)
}

func TestValidKey(t *testing.T) {
	assert.True(t, businessdate.ValidKey("2025-11-25"))
	assert.False(t, businessdate.ValidKey("2025-13-01"))
	assert.False(t, businessdate.ValidKey("2025-2-1"))
	assert.False(t, businessdate.ValidKey(""))
}

func TestParseTimestamp(t *testing.T) {
	loc := manila(t)
	cal, err := businessdate.NewCalendar(loc, 4, nil)
	require.NoError(t, err)

	ts, ok := cal.ParseTimestamp("2025-01-01")
	require.True(t, ok)
	assert.Equal(t, loc, ts.Location())
	assert.Equal(t, "2024-12-31", cal.KeyFor(ts), "medianoche cae antes del corte")

	ts, ok = cal.ParseTimestamp("2025-01-01T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, "2025-01-01", cal.KeyFor(ts))

	_, ok = cal.ParseTimestamp("ayer")
	assert.False(t, ok)
}
