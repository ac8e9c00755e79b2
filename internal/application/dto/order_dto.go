package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Company          string               `json:"company"`
	QuotationNumber  string               `json:"quotation_number"`
	DeliveryLocation string               `json:"delivery_location"`
	SupplierID       string               `json:"supplier_id"`
	Charge           string               `json:"charge"`
	PaymentTerms     string               `json:"payment_terms"`
	DeliveryTerm     string               `json:"delivery_term"`
	Comments         string               `json:"comments"`
	Lines            []CreateOrderLineDTO `json:"lines"`
}

// CreateOrderLineDTO línea de la orden a crear.
type CreateOrderLineDTO struct {
	ProductRefDTO
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderLineResponse línea con pendiente derivado.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	Position  int             `json:"position"`
	ProductID string          `json:"product_id,omitempty"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Received  decimal.Decimal `json:"received"`
	Pending   decimal.Decimal `json:"pending"`
}

// OrderResponse orden con sus líneas.
type OrderResponse struct {
	ID               string              `json:"id"`
	Number           string              `json:"number"`
	Company          string              `json:"company"`
	QuotationNumber  string              `json:"quotation_number"`
	DeliveryLocation string              `json:"delivery_location"`
	SupplierID       string              `json:"supplier_id"`
	Charge           string              `json:"charge"`
	PaymentTerms     string              `json:"payment_terms"`
	DeliveryTerm     string              `json:"delivery_term"`
	Comments         string              `json:"comments"`
	Status           string              `json:"status"`
	CreatedBy        string              `json:"created_by"`
	NetTotal         decimal.Decimal     `json:"net_total"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Lines            []OrderLineResponse `json:"lines"`
}

// OrderListResponse listado de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int             `json:"total"`
}
