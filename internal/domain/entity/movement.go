package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motive motivo (o cargo) de un movimiento de stock.
type Motive string

// Motivos de entrada.
const (
	MotivePurchase     Motive = "compra"
	MotiveReturn       Motive = "devolucion"
	MotiveOrderReceipt Motive = "recepcion_oc"
)

// Motivos (cargos) de salida.
const (
	MotiveMachinery     Motive = "maquinaria"
	MotiveWorkshop      Motive = "taller"
	MotiveWarehouse     Motive = "bodega"
	MotiveManagement    Motive = "gerencia"
	MotiveStoreSupplies Motive = "insumos_de_bodega"
	MotiveOther         Motive = "otros"
)

// IsEntry motivos válidos para entradas.
func (m Motive) IsEntry() bool {
	switch m {
	case MotivePurchase, MotiveReturn, MotiveOrderReceipt:
		return true
	}
	return false
}

// IsExit motivos válidos para salidas.
func (m Motive) IsExit() bool {
	switch m {
	case MotiveMachinery, MotiveWorkshop, MotiveWarehouse, MotiveManagement, MotiveStoreSupplies, MotiveOther:
		return true
	}
	return false
}

// RequiresEquipment las salidas a maquinaria exigen referencia de equipo.
func (m Motive) RequiresEquipment() bool {
	return m == MotiveMachinery
}

// Movement registro inmutable de entrada (Quantity > 0) o salida (Quantity < 0).
type Movement struct {
	ID            string
	TransactionID string // agrupa los movimientos de una misma operación
	ProductID     string
	Quantity      decimal.Decimal
	Motive        Motive
	OrderID       string // solo recepcion_oc
	EquipmentID   string // solo salidas a maquinaria
	UnitCost      decimal.Decimal
	UpdatePrice   bool
	StockAfter    decimal.Decimal
	Comment       string
	CreatedBy     string
	CreatedAt     time.Time
}

// IsEntry indica si el movimiento suma stock.
func (m *Movement) IsEntry() bool {
	return m.Quantity.GreaterThan(decimal.Zero)
}

// TotalCost valor absoluto del movimiento.
func (m *Movement) TotalCost() decimal.Decimal {
	return m.Quantity.Abs().Mul(m.UnitCost)
}

// MovementFilter filtros para listar el libro de movimientos.
type MovementFilter struct {
	ProductID   string
	Kind        string // "entry" | "exit" | ""
	From        *time.Time
	To          *time.Time
	Consignment bool
	Limit       int
	Offset      int
}
