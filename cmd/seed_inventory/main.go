// seed_inventory genera un script SQL idempotente con el catálogo de insumos a partir de un CSV.
//
// Uso: go run ./cmd/seed_inventory [-o salida.sql] [catalogo.csv]
// Por defecto lee catalogo.csv del directorio actual y escribe en stdout.
//
// Columnas (con encabezado, en cualquier orden): name, sku, category, reorder_level, unit_cost, unit_price.
// Acepta UTF-8 o Windows-1252 (exportaciones de Excel). La existencia inicial no se siembra:
// se registra después como recepción para que quede en la bitácora.
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/spa-pos-api/internal/domain/entity"
)

// namespace de los ids: el mismo SKU produce siempre el mismo UUID.
var itemNamespace = uuid.MustParse("6f1c2a9e-3b7d-4e58-9a0c-5d2f8e4b7a11")

type seedItem struct {
	ID           uuid.UUID
	Name         string
	SKU          string
	Category     entity.ItemCategory
	ReorderLevel int
	UnitCost     decimal.Decimal
	UnitPrice    decimal.Decimal
}

func main() {
	outPath := flag.String("o", "", "archivo de salida (vacío = stdout)")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	items, skipped, err := parseCatalog(bytes.NewReader(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d insumos, %d filas descartadas\n", len(items), skipped)
}

// decodeUTF8 convierte a UTF-8: si el contenido no es UTF-8 válido se asume Windows-1252.
func decodeUTF8(raw []byte) ([]byte, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return raw, nil
	}
	return io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()))
}

// separator ';' si el encabezado lo usa en lugar de ',' (Excel con configuración regional latina).
func separator(content []byte) rune {
	header, _, _ := bytes.Cut(content, []byte("\n"))
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// parseCatalog lee el CSV. Filas sin nombre o SKU, o con números inválidos, se descartan.
// Un SKU repetido conserva la primera fila.
func parseCatalog(r io.Reader) ([]seedItem, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	content, err := decodeUTF8(raw)
	if err != nil {
		return nil, 0, err
	}
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = separator(content)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("CSV vacío")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, 0, fmt.Errorf("falta la columna name")
	}
	if _, ok := cols["sku"]; !ok {
		return nil, 0, fmt.Errorf("falta la columna sku")
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []seedItem
	seen := map[string]bool{}
	skipped := 0
	for _, row := range rows[1:] {
		item, ok := parseRow(row, field)
		if !ok || seen[item.SKU] {
			skipped++
			continue
		}
		seen[item.SKU] = true
		items = append(items, item)
	}
	return items, skipped, nil
}

func parseRow(row []string, field func([]string, string) string) (seedItem, bool) {
	name, sku := field(row, "name"), field(row, "sku")
	if name == "" || sku == "" {
		return seedItem{}, false
	}
	category, ok := entity.ParseItemCategory(strings.ToLower(field(row, "category")))
	if !ok {
		category = entity.CategoryOther
	}
	reorder := 0
	if s := field(row, "reorder_level"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return seedItem{}, false
		}
		reorder = n
	}
	cost, ok := money(field(row, "unit_cost"))
	if !ok {
		return seedItem{}, false
	}
	price, ok := money(field(row, "unit_price"))
	if !ok {
		return seedItem{}, false
	}
	return seedItem{
		ID:           uuid.NewSHA1(itemNamespace, []byte(sku)),
		Name:         name,
		SKU:          sku,
		Category:     category,
		ReorderLevel: reorder,
		UnitCost:     cost,
		UnitPrice:    price,
	}, true
}

// money acepta "1,250.50", "12,50" (coma decimal) o vacío (= 0). Negativos no.
func money(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	if i := strings.LastIndex(s, ","); i >= 0 && !strings.Contains(s, ".") && len(s)-i-1 <= 2 {
		s = s[:i] + "." + s[i+1:]
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

func writeSQL(w io.Writer, items []seedItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de insumos\n")
	b.WriteString("-- Generado por cmd/seed_inventory; se puede ejecutar más de una vez\n\n")
	for _, it := range items {
		b.WriteString("INSERT INTO inventory_items (id, name, sku, category, reorder_level, unit_cost, unit_price)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %d, %s, %s)\n",
			it.ID, escapeSQL(it.Name), escapeSQL(it.SKU), it.Category, it.ReorderLevel,
			it.UnitCost.StringFixed(2), it.UnitPrice.StringFixed(2))
		b.WriteString("ON CONFLICT (sku) DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
