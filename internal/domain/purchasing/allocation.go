package purchasing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LineAllocation cantidad aceptada contra una línea concreta de la OC.
type LineAllocation struct {
	LineIndex int
	LineID    string
	Accepted  decimal.Decimal
}

// Allocation resultado de imputar una cantidad recibida a las líneas coincidentes.
type Allocation struct {
	Lines    []LineAllocation
	Accepted decimal.Decimal // suma aceptada, nunca mayor al pendiente total
	Excess   decimal.Decimal // sobre-entrega ignorada (> 0 genera advertencia)
}

// Allocate descuenta qty de los pendientes de las líneas indicadas, en orden, sin dejar
// ningún pendiente negativo. Modifica order.Lines.
func Allocate(order *entity.PurchaseOrder, lineIdx []int, qty decimal.Decimal) Allocation {
	res := Allocation{Accepted: decimal.Zero, Excess: decimal.Zero}
	remaining := qty
	for _, i := range lineIdx {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		line := &order.Lines[i]
		if !line.Pending.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, line.Pending)
		line.Pending = line.Pending.Sub(take)
		remaining = remaining.Sub(take)
		res.Accepted = res.Accepted.Add(take)
		res.Lines = append(res.Lines, LineAllocation{LineIndex: i, LineID: line.ID, Accepted: take})
	}
	if remaining.GreaterThan(decimal.Zero) {
		res.Excess = remaining
	}
	return res
}
