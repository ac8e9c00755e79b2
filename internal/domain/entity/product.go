package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de bodega.
// Stock solo lo modifica el libro de movimientos (StockLedger); nunca se edita directamente.
type Product struct {
	ID              string
	Code            string // código único
	Name            string
	Description     string
	Category        string
	Type            string
	PurchasePrice   decimal.Decimal // precio de compra de referencia
	Stock           decimal.Decimal // stock actual, nunca negativo
	MinStock        decimal.Decimal // umbral para alerta de stock bajo
	Location        string
	Consignment     bool
	ConsignmentName string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBelowMinimum indica si el stock actual quedó bajo el mínimo configurado.
func (p *Product) IsBelowMinimum() bool {
	return p.MinStock.GreaterThan(decimal.Zero) && p.Stock.LessThan(p.MinStock)
}

// StockValue valor del stock a precio de compra.
func (p *Product) StockValue() decimal.Decimal {
	return p.Stock.Mul(p.PurchasePrice)
}
