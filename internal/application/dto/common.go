package dto

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"
)

// ErrorResponse cuerpo de error HTTP.
// Retryable solo es true para errores internos (almacenamiento, red); los de dominio no se reintentan.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Retryable bool              `json:"retryable,omitempty"`
	Details   map[string]string `json:"details,omitempty"` // errores por campo de la validación del body
}

// LooseNumber número JSON tolerante: un valor que no es número (string, bool, objeto)
// no rompe el decode del body; queda Present=true y Valid=false para que el caso de uso decida.
type LooseNumber struct {
	Value   decimal.Decimal
	Valid   bool
	Present bool
}

// Number construye un LooseNumber válido (tests y llamadas internas).
func Number(v decimal.Decimal) LooseNumber {
	return LooseNumber{Value: v, Valid: true, Present: true}
}

// Int atajo de Number para enteros.
func Int(v int64) LooseNumber { return Number(decimal.NewFromInt(v)) }

// UnmarshalJSON acepta solo literales numéricos; todo lo demás se marca inválido sin error.
func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	n.Present = true
	n.Valid = false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || b[0] == '"' {
		return nil
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return nil
	}
	n.Value = d
	n.Valid = true
	return nil
}

// MarshalJSON escribe el número o null.
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

var (
	minInt32 = decimal.NewFromInt(math.MinInt32)
	maxInt32 = decimal.NewFromInt(math.MaxInt32)
)

// AsInt devuelve el valor como entero si es un número entero válido dentro del rango de INTEGER
// de PostgreSQL (int32). Fuera de rango devuelve false.
func (n LooseNumber) AsInt() (int, bool) {
	if !n.Valid || !n.Value.IsInteger() {
		return 0, false
	}
	if n.Value.LessThan(minInt32) || n.Value.GreaterThan(maxInt32) {
		return 0, false
	}
	return int(n.Value.IntPart()), true
}
