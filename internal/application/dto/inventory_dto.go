package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptRequest body para POST /api/receipts. OrderID nulo = entrada sin OC.
type ReceiptRequest struct {
	OrderID *string              `json:"order_id"`
	Lines   []ReceiptLineRequest `json:"lines"`
	Motive  string               `json:"motive"`
	Comment string               `json:"comment"`
}

// ReceiptLineRequest línea recibida.
type ReceiptLineRequest struct {
	ProductRefDTO
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	UpdatePrice bool             `json:"update_price"`
}

// ReceiptWarning advertencia no bloqueante (línea sin coincidencia o sobre-entrega).
type ReceiptWarning struct {
	Line    int             `json:"line"`
	Code    string          `json:"code"` // UNMATCHED | EXCESS_IGNORED | UNKNOWN_PRODUCT
	Product string          `json:"product"`
	Excess  decimal.Decimal `json:"excess,omitempty"`
	Message string          `json:"message"`
}

// ReceiptResponse resultado de conciliar una recepción.
type ReceiptResponse struct {
	Movements   []MovementResponse `json:"movements"`
	Warnings    []ReceiptWarning   `json:"warnings"`
	OrderStatus *string            `json:"order_status,omitempty"`
}

// ExitRequest body para POST /api/exits.
type ExitRequest struct {
	Lines   []ExitLineRequest `json:"lines"`
	Comment string            `json:"comment"`
}

// ExitLineRequest línea de salida.
type ExitLineRequest struct {
	ProductID   string          `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Motive      string          `json:"motive"`
	EquipmentID string          `json:"equipment_id,omitempty"`
}

// ExitResponse movimientos creados por una salida.
type ExitResponse struct {
	Movements []MovementResponse `json:"movements"`
}

// MovementResponse movimiento del libro.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ProductID     string          `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Motive        string          `json:"motive"`
	OrderID       string          `json:"order_id,omitempty"`
	EquipmentID   string          `json:"equipment_id,omitempty"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	UpdatePrice   bool            `json:"update_price"`
	StockAfter    decimal.Decimal `json:"stock_after"`
	Comment       string          `json:"comment,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MovementListResponse listado del libro de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
