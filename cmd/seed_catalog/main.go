// seed_catalog genera un script SQL para cargar el catálogo de productos de bodega
// desde la planilla exportada por el sistema anterior (CSV separado por ';', ISO-8859-1).
//
// Columnas: codigo;nombre;categoria;precio_compra;stock_minimo;ubicacion
// La primera fila es encabezado. El stock no se carga: entra por recepciones.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Escribe: migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogRow struct {
	code     string
	name     string
	category string
	price    decimal.Decimal
	minStock decimal.Decimal
	location string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := readCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d productos, %d filas omitidas\n", outPath, len(rows), skipped)
}

// readCatalog lee las filas válidas; las incompletas o con números ilegibles se omiten.
// Si un código se repite gana la última fila.
func readCatalog(r io.Reader) ([]catalogRow, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var (
		rows    []catalogRow
		skipped int
		index   = make(map[string]int)
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		row, ok := parseRow(rec)
		if !ok {
			skipped++
			continue
		}
		key := strings.ToLower(row.code)
		if i, dup := index[key]; dup {
			rows[i] = row
			skipped++
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func parseRow(rec []string) (catalogRow, bool) {
	if len(rec) < 2 {
		return catalogRow{}, false
	}
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	row := catalogRow{
		code:     field(0),
		name:     field(1),
		category: field(2),
		location: field(5),
	}
	if row.code == "" || row.name == "" {
		return catalogRow{}, false
	}
	var ok bool
	if row.price, ok = parseNumber(field(3)); !ok {
		return catalogRow{}, false
	}
	if row.minStock, ok = parseNumber(field(4)); !ok {
		return catalogRow{}, false
	}
	return row, true
}

// parseNumber acepta "12.500,50" y "12500.50"; vacío es cero.
func parseNumber(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, true
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func writeSQL(w io.Writer, rows []catalogRow) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de productos de bodega\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "INSERT INTO products (id, code, name, category, purchase_price, min_stock, location)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, %s, '%s')\n",
			uuid.New().String(), escapeSQL(r.code), escapeSQL(r.name), escapeSQL(r.category),
			r.price.String(), r.minStock.String(), escapeSQL(r.location))
		b.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, category = EXCLUDED.category,\n")
		b.WriteString("  purchase_price = EXCLUDED.purchase_price, min_stock = EXCLUDED.min_stock, location = EXCLUDED.location;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
