// Package businessdate calcula el "día de negocio" del spa: la jornada no termina
// a medianoche sino a la hora de corte (por defecto 4:00 am).
package businessdate

import (
	"fmt"
	"time"
)

// DefaultCutoffHour hora en la que se reinicia el día de negocio.
const DefaultCutoffHour = 4

// KeyLayout formato de la llave de fecha (YYYY-MM-DD).
const KeyLayout = "2006-01-02"

// Key devuelve la llave de fecha de negocio para t usando la hora local de t.
// Si la hora es anterior a cutoffHour, la fecha pertenece al día calendario anterior.
func Key(t time.Time, cutoffHour int) string {
	if t.Hour() < cutoffHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(KeyLayout)
}

// ValidKey indica si s es una llave YYYY-MM-DD real.
func ValidKey(s string) bool {
	d, err := time.Parse(KeyLayout, s)
	return err == nil && d.Format(KeyLayout) == s
}

// Calendar fija zona horaria, hora de corte y reloj del negocio.
type Calendar struct {
	loc        *time.Location
	cutoffHour int
	now        func() time.Time
}

// NewCalendar construye el calendario. now puede ser nil (usa time.Now).
func NewCalendar(loc *time.Location, cutoffHour int, now func() time.Time) (*Calendar, error) {
	if cutoffHour < 0 || cutoffHour > 23 {
		return nil, fmt.Errorf("businessdate: hora de corte fuera de rango: %d", cutoffHour)
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, cutoffHour: cutoffHour, now: now}, nil
}

// Now hora actual en la zona del negocio.
func (c *Calendar) Now() time.Time { return c.now().In(c.loc) }

// Location zona horaria del negocio.
func (c *Calendar) Location() *time.Location { return c.loc }

// KeyFor llave de negocio para t, convertido a la zona del negocio.
func (c *Calendar) KeyFor(t time.Time) string { return Key(t.In(c.loc), c.cutoffHour) }

// Today llave del día de negocio en curso.
func (c *Calendar) Today() string { return c.KeyFor(c.now()) }

// ParseTimestamp interpreta marcas de tiempo enviadas por clientes.
// Sin offset explícito se asume la zona del negocio.
func (c *Calendar) ParseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04", KeyLayout} {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
