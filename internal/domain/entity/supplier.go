package entity

// Supplier proveedor referenciado por las órdenes de compra.
type Supplier struct {
	ID       string
	Name     string
	TaxID    string // RUT
	Address  string
	Location string
	Email    string
	Phone    string
}
