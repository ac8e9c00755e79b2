package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ApplyDelta calcula el nuevo stock de un producto. Una salida que lo deje negativo
// devuelve InsufficientStockError y no modifica nada.
func ApplyDelta(product *entity.Product, delta decimal.Decimal) (decimal.Decimal, error) {
	next := product.Stock.Add(delta)
	if next.LessThan(decimal.Zero) {
		return product.Stock, &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: delta.Abs(),
			Available: product.Stock,
		}
	}
	return next, nil
}

// ValidateMotive revisa que el motivo corresponda al sentido del movimiento y que las
// salidas a maquinaria traigan equipo.
func ValidateMotive(v *domain.ValidationError, prefix string, qty decimal.Decimal, motive entity.Motive, equipmentID string) {
	switch {
	case qty.IsZero():
		v.Add(prefix+"quantity", "no puede ser 0")
	case qty.GreaterThan(decimal.Zero) && !motive.IsEntry():
		v.Add(prefix+"motive", "motivo de entrada inválido: "+string(motive))
	case qty.LessThan(decimal.Zero) && !motive.IsExit():
		v.Add(prefix+"motive", "motivo de salida inválido: "+string(motive))
	}
	if motive.RequiresEquipment() && equipmentID == "" {
		v.Add(prefix+"equipment_id", "requerido para salidas a maquinaria")
	}
}
