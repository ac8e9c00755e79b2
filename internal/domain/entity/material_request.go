package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus estado de una solicitud de materiales.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pendiente"
	RequestStatusApproved RequestStatus = "aprobada"
	RequestStatusRejected RequestStatus = "rechazada"
)

// MaterialRequest solicitud de compra de materiales e insumos.
type MaterialRequest struct {
	ID              string
	Number          string
	Folio           string
	QuotationNumber string
	RequesterName   string
	Comment         string
	Status          RequestStatus
	CreatedBy       string
	DecidedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Lines           []MaterialRequestLine
}

// MaterialRequestLine línea solicitada (texto libre).
type MaterialRequestLine struct {
	ID             string
	Product        string
	Quantity       decimal.Decimal
	Motive         string
	WarehouseStock decimal.Decimal // stock en bodega al momento de solicitar
}
