package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra.
type OrderStatus string

// Estados de la orden de compra (OC).
const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusPartiallyReceived OrderStatus = "partially_received"
	OrderStatusReceived          OrderStatus = "received"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

// IsValid indica si el estado es uno de los conocidos.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPartiallyReceived, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// IsOpen indica si la orden aún admite recepciones.
func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusPending || s == OrderStatusPartiallyReceived
}

// IsTerminal received y cancelled no tienen transiciones de salida.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCancelled
}

// ProductRef referencia a producto en una línea: conocido por ID o texto libre (código y/o nombre).
type ProductRef struct {
	ProductID string
	Code      string
	Name      string
}

// KnownProduct construye una referencia estructurada.
func KnownProduct(productID string) ProductRef {
	return ProductRef{ProductID: productID}
}

// FreeTextProduct construye una referencia de texto libre.
func FreeTextProduct(code, name string) ProductRef {
	return ProductRef{Code: code, Name: name}
}

// IsKnown indica si la referencia trae un ID de producto.
func (r ProductRef) IsKnown() bool {
	return strings.TrimSpace(r.ProductID) != ""
}

// IsEmpty indica que no hay ningún descriptor de producto.
func (r ProductRef) IsEmpty() bool {
	return strings.TrimSpace(r.ProductID) == "" &&
		strings.TrimSpace(r.Code) == "" &&
		strings.TrimSpace(r.Name) == ""
}

// Label texto legible para mensajes y logs.
func (r ProductRef) Label() string {
	switch {
	case strings.TrimSpace(r.Code) != "" && strings.TrimSpace(r.Name) != "":
		return strings.TrimSpace(r.Code) + " - " + strings.TrimSpace(r.Name)
	case strings.TrimSpace(r.Code) != "":
		return strings.TrimSpace(r.Code)
	case strings.TrimSpace(r.Name) != "":
		return strings.TrimSpace(r.Name)
	}
	return r.ProductID
}

// OrderLine línea de una orden de compra. Pending = Quantity - recibido acumulado.
type OrderLine struct {
	ID        string
	OrderID   string
	Position  int
	Product   ProductRef
	Quantity  decimal.Decimal // cantidad ordenada
	UnitPrice decimal.Decimal
	Pending   decimal.Decimal // 0 <= Pending <= Quantity, solo decrece
}

// Received cantidad ya recibida en la línea.
func (l *OrderLine) Received() decimal.Decimal {
	return l.Quantity.Sub(l.Pending)
}

// Total cantidad * precio unitario.
func (l *OrderLine) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// PurchaseOrder cabecera de una orden de compra; es dueña exclusiva de sus líneas.
type PurchaseOrder struct {
	ID               string
	Number           string // correlativo por empresa
	Company          string
	QuotationNumber  string
	DeliveryLocation string // "mercadería puesta en"
	SupplierID       string
	Charge           string // cargo / rol del solicitante
	PaymentTerms     string
	DeliveryTerm     string
	Comments         string
	Status           OrderStatus
	CreatedBy        string
	Version          int // se incrementa en cada modificación persistida
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Lines            []OrderLine
}

// NetTotal suma de las líneas.
func (o *PurchaseOrder) NetTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Total())
	}
	return total
}
