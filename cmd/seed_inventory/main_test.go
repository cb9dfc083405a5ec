package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

func TestParseCatalog_UTF8ConComas(t *testing.T) {
	csv := "name,sku,category,reorder_level,unit_cost,unit_price\n" +
		"Aceite de coco,OIL-1,oil,5,\"1,250.50\",1500\n" +
		"Toalla,TWL-1,desconocida,,80,\n" +
		"Sin sku,,oil,1,1,1\n" +
		"Repetido,OIL-1,oil,1,1,1\n" +
		"Negativo,NEG-1,oil,-1,1,1\n"

	items, skipped, err := parseCatalog(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, skipped)

	assert.Equal(t, "OIL-1", items[0].SKU)
	assert.Equal(t, entity.CategoryOil, items[0].Category)
	assert.Equal(t, 5, items[0].ReorderLevel)
	assert.Equal(t, "1250.50", items[0].UnitCost.StringFixed(2))

	assert.Equal(t, entity.CategoryOther, items[1].Category, "categoría desconocida = other")
	assert.True(t, items[1].UnitPrice.IsZero())
}

func TestParseCatalog_Windows1252ConPuntoYComa(t *testing.T) {
	utf := "name;sku;unit_cost\nJabón neutro;SOAP-1;12,50\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(utf)
	require.NoError(t, err)

	items, _, err := parseCatalog(strings.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Jabón neutro", items[0].Name)
	assert.Equal(t, "12.50", items[0].UnitCost.StringFixed(2))
}

func TestParseCatalog_FaltaColumnaSKU(t *testing.T) {
	_, _, err := parseCatalog(strings.NewReader("name,category\nAceite,oil\n"))
	assert.Error(t, err)
}

func TestWriteSQL_IdempotenteYEscapado(t *testing.T) {
	items, _, err := parseCatalog(strings.NewReader("name,sku\nD'Aloe gel,GEL-1\n"))
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, writeSQL(&b, items))
	sql := b.String()
	assert.Contains(t, sql, "'D''Aloe gel'")
	assert.Contains(t, sql, "ON CONFLICT (sku) DO NOTHING;")

	again, _, err := parseCatalog(strings.NewReader("name,sku\nOtro nombre,GEL-1\n"))
	require.NoError(t, err)
	assert.Equal(t, items[0].ID, again[0].ID, "el id depende solo del SKU")
}
