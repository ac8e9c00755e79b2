package purchasing

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// NormalizeKey clave de comparación para texto libre: sin espacios en los extremos y con
// plegado de mayúsculas Unicode ("Ñandú " == "ñANDÚ").
func NormalizeKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func sameKey(a, b string) bool {
	ka := NormalizeKey(a)
	return ka != "" && ka == NormalizeKey(b)
}

// Match tipo de coincidencia entre una línea de orden y un producto.
type Match int

const (
	MatchNone Match = iota
	MatchByName
	MatchByCode
	MatchByID
)

// MatchLine compara una línea de orden con el producto recibido.
// Prioridad: ID estructurado, luego código, luego nombre. La descripción libre de la línea
// se compara tanto contra el código como contra el nombre del producto.
func MatchLine(line *entity.OrderLine, product *entity.Product) Match {
	ref := line.Product
	if ref.IsKnown() && ref.ProductID == product.ID {
		return MatchByID
	}
	if sameKey(ref.Code, product.Code) || sameKey(ref.Name, product.Code) {
		return MatchByCode
	}
	if sameKey(ref.Name, product.Name) || sameKey(ref.Code, product.Name) {
		return MatchByName
	}
	return MatchNone
}

// CandidateLines devuelve los índices de las líneas que coinciden con el producto,
// quedándose solo con el mejor nivel de coincidencia encontrado y en el orden de la OC.
func CandidateLines(order *entity.PurchaseOrder, product *entity.Product) []int {
	best := MatchNone
	var idx []int
	for i := range order.Lines {
		m := MatchLine(&order.Lines[i], product)
		switch {
		case m == MatchNone || m < best:
			continue
		case m > best:
			best = m
			idx = idx[:0]
		}
		idx = append(idx, i)
	}
	return idx
}
