package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadCatalog_ISO88591(t *testing.T) {
	src := "codigo;nombre;categoria;precio_compra;stock_minimo;ubicacion\n" +
		"FLT-001;Filtro de aceite;Repuestos;8.500,50;5;Estante A\n" +
		"GUA-010;Guantes de nitrilo talla M;EPP;1200;20;\n" +
		";sin código;;;;\n" +
		"ACE-15;Aceite;Lubricantes;abc;1;\n" +
		"flt-001;Filtro de aceite (reemplazo);Repuestos;9000;6;Estante B\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	rows, skipped, err := readCatalog(transform.NewReader(strings.NewReader(encoded), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, skipped)

	assert.Equal(t, "FLT-001", rows[0].code)
	assert.Equal(t, "Filtro de aceite (reemplazo)", rows[0].name)
	assert.Equal(t, "9000", rows[0].price.String())
	assert.Equal(t, "Estante B", rows[0].location)

	assert.Equal(t, "GUA-010", rows[1].code)
	assert.Equal(t, "1200", rows[1].price.String())
	assert.Equal(t, "20", rows[1].minStock.String())
}

func TestParseNumber(t *testing.T) {
	d, ok := parseNumber("12.500,75")
	require.True(t, ok)
	assert.Equal(t, "12500.75", d.String())

	d, ok = parseNumber("")
	require.True(t, ok)
	assert.True(t, d.IsZero())

	_, ok = parseNumber("-3")
	assert.False(t, ok)
}

func TestWriteSQL_EscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	rows, _, err := readCatalog(strings.NewReader("h\nX-1;Llave 1/2';Herramientas;100;0;\n"))
	require.NoError(t, err)
	require.NoError(t, writeSQL(&buf, rows))
	assert.Contains(t, buf.String(), "'Llave 1/2'''")
	assert.Contains(t, buf.String(), "ON CONFLICT (code) DO UPDATE")
}
