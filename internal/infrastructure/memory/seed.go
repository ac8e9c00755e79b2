package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// IDs fijos de los datos de demostración.
const (
	DemoSupplierID  = "5d1c0e2a-0000-4000-8000-000000000001"
	DemoEquipmentID = "5d1c0e2a-0000-4000-8000-000000000101"
)

// SeedDemo carga un proveedor, un equipo y algunos productos para APP_STORAGE=memory.
func SeedDemo(s *Store) {
	now := time.Now()
	s.AddSupplier(&entity.Supplier{
		ID:       DemoSupplierID,
		Name:     "Ferretería Central",
		TaxID:    "76.123.456-7",
		Location: "Puerto Montt",
	})
	s.AddEquipment(&entity.Equipment{ID: DemoEquipmentID, Number: "EQ-12", Type: "camion", Plate: "HJKL-23"})

	products := []struct {
		id, code, name string
		price, stock   int64
		min            int64
	}{
		{"5d1c0e2a-0000-4000-8000-000000001001", "FLT-001", "Filtro de aceite", 8500, 12, 5},
		{"5d1c0e2a-0000-4000-8000-000000001002", "GUA-010", "Guantes de nitrilo", 1200, 40, 20},
		{"5d1c0e2a-0000-4000-8000-000000001003", "ACE-15W40", "Aceite motor 15W40", 32000, 3, 4},
	}
	for _, p := range products {
		s.AddProduct(&entity.Product{
			ID:            p.id,
			Code:          p.code,
			Name:          p.name,
			PurchasePrice: decimal.NewFromInt(p.price),
			Stock:         decimal.NewFromInt(p.stock),
			MinStock:      decimal.NewFromInt(p.min),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
}
