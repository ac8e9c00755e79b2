package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse salida de un producto (solo lectura).
type ProductResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Type            string          `json:"type"`
	PurchasePrice   decimal.Decimal `json:"purchase_price"`
	Stock           decimal.Decimal `json:"stock"`
	MinStock        decimal.Decimal `json:"min_stock"`
	StockValue      decimal.Decimal `json:"stock_value"`
	BelowMinimum    bool            `json:"below_minimum"`
	Location        string          `json:"location"`
	Consignment     bool            `json:"consignment"`
	ConsignmentName string          `json:"consignment_name,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ReplenishmentSuggestionDTO sugerencia de compra para un producto bajo mínimo.
type ReplenishmentSuggestionDTO struct {
	Priority              int             `json:"priority"`
	ProductID             string          `json:"product_id"`
	Code                  string          `json:"code"`
	ProductName           string          `json:"product_name"`
	CurrentStock          decimal.Decimal `json:"current_stock"`
	MinStock              decimal.Decimal `json:"min_stock"`
	IdealStock            decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty     decimal.Decimal `json:"suggested_order_qty"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost    decimal.Decimal `json:"estimated_order_cost"`
	UnitsExitedLast90Days decimal.Decimal `json:"units_exited_last_90_days"`
}
