package purchasing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ValidateOrder revisa cabecera y líneas y reporta todos los problemas juntos.
func ValidateOrder(order *entity.PurchaseOrder) error {
	v := &domain.ValidationError{}
	required := []struct {
		field, value string
	}{
		{"company", order.Company},
		{"quotation_number", order.QuotationNumber},
		{"delivery_location", order.DeliveryLocation},
		{"supplier_id", order.SupplierID},
		{"charge", order.Charge},
		{"payment_terms", order.PaymentTerms},
		{"delivery_term", order.DeliveryTerm},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			v.Add(r.field, "es requerido")
		}
	}
	if len(order.Lines) == 0 {
		v.Add("lines", "la orden debe tener al menos una línea")
	}
	for i := range order.Lines {
		l := &order.Lines[i]
		if l.Product.IsEmpty() {
			v.Addf("lines[%d].product", i, "descriptor de producto vacío")
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			v.Addf("lines[%d].quantity", i, "debe ser mayor a 0")
		}
		if !l.UnitPrice.GreaterThan(decimal.Zero) {
			v.Addf("lines[%d].unit_price", i, "debe ser mayor a 0")
		}
	}
	return v.OrNil()
}
