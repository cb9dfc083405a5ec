package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/spa-pos-api/internal/application/dto"
)

func TestLooseNumber_AsInt(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"-3", -3, true},
		{"2147483647", 2147483647, true},
		{"-2147483648", -2147483648, true},
		{"2147483648", 0, false},
		{"-2147483649", 0, false},
		{"9223372036854775807", 0, false},
		{"18446744073709551621", 0, false},
		{"1.5", 0, false},
		{`"7"`, 0, false},
		{"null", 0, false},
	}
	for _, c := range cases {
		var n dto.LooseNumber
		require.NoError(t, json.Unmarshal([]byte(c.raw), &n), c.raw)
		got, ok := n.AsInt()
		assert.Equal(t, c.ok, ok, c.raw)
		assert.Equal(t, c.want, got, c.raw)
	}
}

func TestLooseNumber_NoNumericoNoRompeElBody(t *testing.T) {
	var body dto.ReceiveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"itemId":"oil","quantity":"diez"}`), &body))
	assert.True(t, body.Quantity.Present)
	assert.False(t, body.Quantity.Valid)
}
