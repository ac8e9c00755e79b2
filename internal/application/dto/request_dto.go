package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest body para POST /api/requests.
type CreateMaterialRequest struct {
	Folio           string                      `json:"folio"`
	QuotationNumber string                      `json:"quotation_number"`
	RequesterName   string                      `json:"requester_name"`
	Comment         string                      `json:"comment"`
	Lines           []CreateMaterialRequestLine `json:"lines"`
}

// CreateMaterialRequestLine línea solicitada.
type CreateMaterialRequestLine struct {
	Product        string          `json:"product"`
	Quantity       decimal.Decimal `json:"quantity"`
	Motive         string          `json:"motive"`
	WarehouseStock decimal.Decimal `json:"warehouse_stock"`
}

// MaterialRequestResponse solicitud con líneas.
type MaterialRequestResponse struct {
	ID              string                      `json:"id"`
	Number          string                      `json:"number"`
	Folio           string                      `json:"folio,omitempty"`
	QuotationNumber string                      `json:"quotation_number,omitempty"`
	RequesterName   string                      `json:"requester_name"`
	Comment         string                      `json:"comment,omitempty"`
	Status          string                      `json:"status"`
	CreatedBy       string                      `json:"created_by"`
	DecidedBy       string                      `json:"decided_by,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	Lines           []CreateMaterialRequestLine `json:"lines"`
}
