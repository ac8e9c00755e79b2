package dto

import "github.com/jhoicas/bodega-api/internal/domain"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son inválidos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Fields solo viene en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// ProductRefDTO referencia a producto: product_id (estructurada) o code/name (texto libre).
type ProductRefDTO struct {
	ProductID string `json:"product_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name,omitempty"`
}
